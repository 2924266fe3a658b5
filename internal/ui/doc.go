// Package ui renders leveled, colored console messages for preflight runs and
// adapts execshell command lifecycle events into human-readable output.
package ui
