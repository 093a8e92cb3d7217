package main

import (
	"errors"

	"github.com/aretw0/notes/internal/platform"
	"github.com/aretw0/notes/pkg/core"
)

// Exit codes of the notes CLI.
const (
	ExitSuccess            = 0 // Success
	ExitError              = 1 // General error (I/O, runtime failure)
	ExitConfigError        = 2 // Configuration error (bad config file or env)
	ExitDataError          = 3 // Validation failure or malformed argument
	ExitNotFound           = 4 // Referenced note does not exist
	ExitSerializationError = 5 // Corrupt stored note or malformed import file
)

// exitCode maps an error to the exit code of its kind.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, platform.ErrConfig) {
		return ExitConfigError
	}
	switch core.KindOf(err) {
	case core.KindValidation, core.KindInvalidInput:
		return ExitDataError
	case core.KindNotFound:
		return ExitNotFound
	case core.KindSerialization:
		return ExitSerializationError
	default:
		return ExitError
	}
}
