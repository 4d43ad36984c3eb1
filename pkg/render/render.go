package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/fulmenhq/techscan/pkg/analysis"
)

type renderFunc func(w io.Writer, r *analysis.Report) error

var renderers = map[Format]renderFunc{
	FormatJSON:  renderJSON,
	FormatYAML:  renderYAML,
	FormatTOML:  renderTOML,
	FormatTable: renderTable,
}

// Render writes r to w in the format named by token. The report is not
// modified.
func Render(w io.Writer, r *analysis.Report, token string) error {
	f, err := ParseFormat(token)
	if err != nil {
		return err
	}
	return renderers[f](w, r)
}

func renderJSON(w io.Writer, r *analysis.Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON serialization error: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func renderYAML(w io.Writer, r *analysis.Report) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("YAML serialization error: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("YAML serialization error: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func renderTOML(w io.Writer, r *analysis.Report) error {
	data, err := toml.Marshal(r)
	if err != nil {
		return fmt.Errorf("TOML serialization error: %w", err)
	}
	_, err = w.Write(data)
	return err
}
