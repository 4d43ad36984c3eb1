package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// Validate checks a decoded config document against the embedded schema and
// returns one message per violation. The error is non-nil only when the
// document could not be validated at all.
func Validate(doc map[string]any) ([]string, error) {
	if doc == nil {
		doc = map[string]any{}
	}
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}
	var violations []string
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return violations, nil
}

// decode parses raw file contents of the given viper config type into a
// generic document for schema validation.
func decode(typ string, data []byte) (map[string]any, error) {
	doc := map[string]any{}
	var err error
	switch typ {
	case "json":
		err = json.Unmarshal(data, &doc)
	case "yaml":
		err = yaml.Unmarshal(data, &doc)
	case "toml":
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported config type %q", typ)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", typ, err)
	}
	return doc, nil
}
