package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// cellResult is the structured form of a cell printed by get.
type cellResult struct {
	Cell  string `json:"cell" yaml:"cell"`
	Kind  string `json:"kind" yaml:"kind"`
	Date  bool   `json:"date,omitempty" yaml:"date,omitempty"`
	Value any    `json:"value" yaml:"value"`
}

func checkFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

// render writes v as JSON or YAML, or calls text for the plain format.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch strings.ToLower(format) {
	case "", "text":
		return text(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return checkFormat(format)
	}
}

// printable converts accessor results into values that read the same in
// every output format.
func printable(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return v
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
