package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/koca-build/rpmdeps/pkg/rpm"
	"gopkg.in/yaml.v3"
)

// Writes a query result.
type printer func(out io.Writer, result any) error

func newPrinter(outputType string) (printer, error) {
	switch outputType {
	case "text":
		return printText, nil
	case "json":
		return printJSON, nil
	case "yaml":
		return printYAML, nil
	default:
		return nil, fmt.Errorf("unknown output type '%s'", outputType)
	}
}

// Plain output: one `Requires` entry per line, or the bare value.
func printText(out io.Writer, result any) error {
	switch r := result.(type) {
	case rpm.Dependencies:
		for _, dep := range r.Requires {
			if _, err := fmt.Fprintln(out, dep); err != nil {
				return err
			}
		}
		return nil
	case rpm.Capabilities:
		_, err := fmt.Fprintf(out, "version: %s\nboolean dependencies: %t\nusr path: %s\n", r.Version, r.SupportsBooleanDeps, r.UsrPath)
		return err
	default:
		_, err := fmt.Fprintln(out, r)
		return err
	}
}

func printJSON(out io.Writer, result any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printYAML(out io.Writer, result any) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return err
	}
	return encoder.Close()
}
