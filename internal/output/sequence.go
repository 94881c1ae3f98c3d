package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// SequenceDocument is the serialized form of a resolved sequence.
// The "js" field name matches what loaders expect from the resolve endpoint.
type SequenceDocument struct {
	JS []string `json:"js" yaml:"js"`
}

// SequenceOptions controls sequence output formatting.
type SequenceOptions struct {
	// Format is one of text, json, yaml, table or tree.
	Format Format
	// Roots are the requested resources, used by the tree format.
	Roots []string
	// Deps maps each resource to its direct dependencies (table and tree).
	Deps map[string][]string
	// Writer is the output destination.
	Writer io.Writer
}

// WriteSequence writes a resolved sequence in the requested format.
func WriteSequence(order []string, opts SequenceOptions) error {
	if order == nil {
		order = []string{}
	}

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(opts.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(SequenceDocument{JS: order})
	case FormatYAML:
		enc := yaml.NewEncoder(opts.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(SequenceDocument{JS: order}); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		_, err := fmt.Fprintln(opts.Writer, RenderSequenceTable(order, opts.Deps))
		return err
	case FormatTree:
		_, err := io.WriteString(opts.Writer, RenderDependencyTree(opts.Roots, opts.Deps))
		return err
	case FormatText, "":
		if len(order) == 0 {
			return nil
		}
		_, err := io.WriteString(opts.Writer, strings.Join(order, "\n")+"\n")
		return err
	}
	return fmt.Errorf("unsupported output format %q", opts.Format)
}
