package scanner

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectoryNotFound matches errors for a scan root that is missing or not a directory
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrValidation matches errors for exclude patterns rejected before traversal
	ErrValidation = errors.New("validation error")
)

// DirectoryNotFoundError reports a scan root that does not exist.
type DirectoryNotFoundError struct {
	Path string
	Err  error
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("Directory not found: %s", e.Path)
}

func (e *DirectoryNotFoundError) Is(target error) bool { return target == ErrDirectoryNotFound }

func (e *DirectoryNotFoundError) Unwrap() error { return e.Err }

// ValidationError reports an exclude pattern that cannot be compiled into a rule.
type ValidationError struct {
	Pattern string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation error: failed to add exclude pattern '%s': %s", e.Pattern, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
