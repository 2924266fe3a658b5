// Package githubcli wraps GitHub CLI invocations needed when publishing a
// repository whose remote does not exist yet: availability checks,
// authentication checks, and repository creation with an initial push.
package githubcli
