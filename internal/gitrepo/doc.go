// Package gitrepo exposes repository-level git operations used by the
// deployment preflight workflow, built on top of execshell, along with
// helpers for parsing and formatting remote URLs.
package gitrepo
