// Package verify implements the read-only deployment readiness checks that
// audit the project tree without mutating repository state.
package verify
