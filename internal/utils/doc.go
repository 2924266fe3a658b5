// Package utils aggregates reusable primitives shared across the preflight
// CLI: structured logger construction, configuration loading, command context
// accessors, and output helpers.
package utils
