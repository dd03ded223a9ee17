package inventory

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by Encode.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Encode writes the report in the given format.
func (r *Report) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding report as YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding report as JSON: %w", err)
		}
		return nil
	case FormatText, "":
		return r.encodeText(w)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func (r *Report) encodeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT CODE\tCONTEXT\tNAME\tVERSION\tPUBLISHER")
	for _, rec := range r.Products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			rec.ProductCode, rec.Context, rec.Name(), rec.Version(), rec.Properties["Publisher"])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, f := range r.Failures {
		if _, err := fmt.Fprintf(w, "error: %s: %s\n", f.ProductCode, f.Error); err != nil {
			return err
		}
	}
	return nil
}
