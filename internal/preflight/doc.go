// Package preflight implements the deployment preparation workflow: an
// ordered sequence of idempotent checks that validates required files,
// ensures version control and remote linkage exist, materializes a default
// environment file, commits pending changes, and publishes the branch,
// creating the remote repository when necessary.
package preflight
