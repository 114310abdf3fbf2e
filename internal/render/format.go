// Package render writes recipes, shopping lists and pantry reports in the
// human, JSON, YAML and Markdown output formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	Human    Format = "human"
	JSON     Format = "json"
	YAML     Format = "yaml"
	Markdown Format = "markdown"
)

// ParseFormat accepts a format name. Empty means human.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "human", "text":
		return Human, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "markdown", "md":
		return Markdown, nil
	default:
		return "", fmt.Errorf("invalid format %q (use human|json|yaml|markdown)", s)
	}
}

// FormatFromPath infers a format from an output file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, true
	case ".yaml", ".yml":
		return YAML, true
	case ".md":
		return Markdown, true
	default:
		return "", false
	}
}

// Resolve picks the explicit format when set, else one inferred from the
// output path, else human.
func Resolve(explicit, outputPath string) (Format, error) {
	if strings.TrimSpace(explicit) != "" {
		return ParseFormat(explicit)
	}
	if f, ok := FormatFromPath(outputPath); ok {
		return f, nil
	}
	return Human, nil
}

// Encode writes v as JSON or YAML.
func Encode(w io.Writer, f Format, v any, pretty bool) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %s cannot encode structured data", f)
	}
}
