// Package exitcode defines the process exit codes for techscan
package exitcode

import (
	"errors"

	"github.com/fulmenhq/techscan/pkg/config"
	"github.com/fulmenhq/techscan/pkg/render"
	"github.com/fulmenhq/techscan/pkg/scanner"
)

// Exit codes for the techscan CLI
const (
	Success           = 0
	GeneralError      = 1
	ConfigError       = 2
	ValidationError   = 3
	FileSystemError   = 4
	UnsupportedFormat = 8
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case ValidationError:
		return "Validation error"
	case FileSystemError:
		return "File system error"
	case UnsupportedFormat:
		return "Unsupported format"
	default:
		return "Unknown error"
	}
}

// FromError maps a fatal error to the code the process should exit with.
func FromError(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, scanner.ErrDirectoryNotFound):
		return FileSystemError
	case errors.Is(err, scanner.ErrValidation):
		return ValidationError
	case errors.Is(err, render.ErrUnsupportedFormat):
		return UnsupportedFormat
	case errors.Is(err, config.ErrConfig):
		return ConfigError
	default:
		return GeneralError
	}
}
