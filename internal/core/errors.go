// ABOUTME: Sentinel errors shared by all core components
// ABOUTME: Operations wrap these so callers can branch with errors.Is
package core

import "errors"

// Common errors
var (
	// ErrProvider is returned when an embedding or completion call failed or timed out
	ErrProvider = errors.New("provider call failed")

	// ErrNotFound is returned when a correction targets a nonexistent fact
	ErrNotFound = errors.New("no matching fact found")

	// ErrParse is returned when extraction output was not well-formed
	ErrParse = errors.New("malformed extraction output")

	// ErrStore is returned when a persistence read or write failed
	ErrStore = errors.New("storage operation failed")
)
