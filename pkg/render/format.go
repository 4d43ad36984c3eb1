// Package render writes analysis reports in the supported output formats.
package render

import (
	"errors"
	"fmt"
	"strings"
)

// Format is a reporter token accepted on the command line.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
)

// DefaultFormat is used when no reporter is configured.
const DefaultFormat = FormatJSON

// SupportedFormats lists every token in the order error messages name them.
var SupportedFormats = []Format{FormatTable, FormatJSON, FormatYAML, FormatTOML}

// ErrUnsupportedFormat matches any UnsupportedFormatError.
var ErrUnsupportedFormat = errors.New("unsupported reporter format")

// UnsupportedFormatError reports a reporter token outside SupportedFormats.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	names := make([]string, len(SupportedFormats))
	for i, f := range SupportedFormats {
		names[i] = string(f)
	}
	return fmt.Sprintf("Unsupported reporter format: '%s'. Supported formats: %s.", e.Format, strings.Join(names, ", "))
}

func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

// ParseFormat maps a token to a Format. Tokens are matched exactly.
func ParseFormat(token string) (Format, error) {
	for _, f := range SupportedFormats {
		if string(f) == token {
			return f, nil
		}
	}
	return "", &UnsupportedFormatError{Format: token}
}

// ValidateFormat reports whether token names a supported format.
func ValidateFormat(token string) error {
	_, err := ParseFormat(token)
	return err
}
