// Package timezone keeps every wall clock calculation in the configured
// APP_TIMEZONE. The location is resolved lazily on first use and falls back
// to UTC when the name is empty or unknown.
package timezone
