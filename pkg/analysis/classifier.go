// Package analysis turns a stream of discovered files into a per-language report.
package analysis

import (
	"strings"

	"github.com/fulmenhq/techscan/pkg/language"
	"github.com/fulmenhq/techscan/pkg/scanner"
)

// Classifier resolves discovered files to languages by extension.
type Classifier struct {
	registry *language.Registry
}

// NewClassifier returns a classifier backed by reg, or by the built-in
// registry when reg is nil.
func NewClassifier(reg *language.Registry) *Classifier {
	if reg == nil {
		reg = language.Default()
	}
	return &Classifier{registry: reg}
}

// Classify returns the language for f. Files without a known extension are
// unclassified.
func (c *Classifier) Classify(f scanner.DiscoveredFile) (language.Language, bool) {
	if f.Extension == "" {
		return language.Language{}, false
	}
	return c.registry.LookupByExtension(strings.ToLower(f.Extension))
}
