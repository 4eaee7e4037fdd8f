// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by stage of a run.
const (
	// Setup
	OpLoadConfig Op = "load config"
	OpOpenCache  Op = "open tag cache"
	OpCacheStore Op = "update tag cache"

	// Inputs
	OpReadInput    Op = "read input"
	OpReadDir      Op = "scan directory"
	OpReadPlaylist Op = "read playlist"
	OpReadTags     Op = "read file tags"

	// Shuffling
	OpBuild Op = "build shuffle"

	// Outputs
	OpWritePlaylist Op = "write playlist"
	OpWriteStdout   Op = "write to stdout"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
