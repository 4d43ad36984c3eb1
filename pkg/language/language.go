// Package language holds the extension-to-language registry used for classification
package language

import (
	"fmt"
	"strings"
	"sync"
)

// Language describes a recognized programming or markup language
type Language struct {
	Name string   `json:"name" yaml:"name" toml:"name"`
	Exts []string `json:"exts" yaml:"exts" toml:"exts"`
}

// Registry maps normalized extensions and names to languages.
// A Registry is immutable once built; share it freely across goroutines.
type Registry struct {
	languages []Language
	byExt     map[string]int
	byName    map[string]int
}

// NewRegistry builds a registry from the given table. Extensions are stored
// lowercase and must be unique across the whole table.
func NewRegistry(langs []Language) (*Registry, error) {
	r := &Registry{
		languages: make([]Language, 0, len(langs)),
		byExt:     make(map[string]int),
		byName:    make(map[string]int, len(langs)),
	}

	for _, lang := range langs {
		if lang.Name == "" {
			return nil, fmt.Errorf("language with extensions %v has no name", lang.Exts)
		}
		if _, dup := r.byName[lang.Name]; dup {
			return nil, fmt.Errorf("duplicate language name %q", lang.Name)
		}

		idx := len(r.languages)
		exts := make([]string, 0, len(lang.Exts))
		for _, ext := range lang.Exts {
			ext = strings.ToLower(strings.TrimPrefix(ext, "."))
			if ext == "" {
				return nil, fmt.Errorf("language %q declares an empty extension", lang.Name)
			}
			if owner, taken := r.byExt[ext]; taken {
				ownerName := lang.Name
				if owner < idx {
					ownerName = r.languages[owner].Name
				}
				return nil, fmt.Errorf("extension %q claimed by both %q and %q", ext, ownerName, lang.Name)
			}
			r.byExt[ext] = idx
			exts = append(exts, ext)
		}

		r.byName[lang.Name] = idx
		r.languages = append(r.languages, Language{Name: lang.Name, Exts: exts})
	}

	return r, nil
}

// LookupByExtension returns the language owning ext. The caller normalizes
// ext to lowercase without a leading dot.
func (r *Registry) LookupByExtension(ext string) (Language, bool) {
	idx, ok := r.byExt[ext]
	if !ok {
		return Language{}, false
	}
	return r.languages[idx].clone(), true
}

// LookupByName returns the language registered under name.
func (r *Registry) LookupByName(name string) (Language, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return Language{}, false
	}
	return r.languages[idx].clone(), true
}

// Languages returns every registered language in table order.
func (r *Registry) Languages() []Language {
	out := make([]Language, len(r.languages))
	for i, lang := range r.languages {
		out[i] = lang.clone()
	}
	return out
}

func (l Language) clone() Language {
	return Language{Name: l.Name, Exts: append([]string(nil), l.Exts...)}
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(builtinLanguages)
	if err != nil {
		panic(fmt.Sprintf("language: invalid built-in table: %v", err))
	}
	return r
})

// Default returns the built-in registry. It is built on first use and never
// changes afterwards.
func Default() *Registry {
	return defaultRegistry()
}
