// Package userseed collects platform credentials interactively, hashes the
// passwords with per-user salts, and emits the USERS environment payload the
// hosting dashboard expects.
package userseed
