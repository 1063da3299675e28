package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// VoidText is printed for an unparseable result
const VoidText = "unparseable"

// errUnparseable makes the process exit non-zero after printing VoidText
var errUnparseable = fmt.Errorf("result is %s", VoidText)

// printValue writes v as JSON or YAML, or text when the output format is text
func printValue(w io.Writer, format string, v any, text string) error {
	switch format {
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
	case "text", "":
		_, err := fmt.Fprintln(w, text)
		return err
	default:
		return fmt.Errorf("unknown output format %q (text, json, yaml)", format)
	}
}
