package main

import (
	"errors"

	"github.com/matsen/cliprdf/internal/citation"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable config, no clipboard)
	ExitDataError   = 3 // Data error (malformed citation)
)

// exitCodeFor maps a conversion error to an exit code.
func exitCodeFor(err error) int {
	if errors.Is(err, citation.ErrMalformedInput) {
		return ExitDataError
	}
	return ExitError
}
