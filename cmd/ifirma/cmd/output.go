package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

// printResult writes v as indented JSON or as a two-column table
func printResult(w io.Writer, v map[string]any) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case "table":
		return printTable(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func printTable(w io.Writer, v map[string]any) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeRows(tw, "", v)
	return tw.Flush()
}

func writeRows(w io.Writer, prefix string, v map[string]any) {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		switch val := v[k].(type) {
		case map[string]any:
			writeRows(w, name, val)
		case []any:
			for i, item := range val {
				if m, ok := item.(map[string]any); ok {
					writeRows(w, fmt.Sprintf("%s[%d]", name, i), m)
				} else {
					fmt.Fprintf(w, "%s[%d]\t%v\n", name, i, item)
				}
			}
		case nil:
			fmt.Fprintf(w, "%s\t-\n", name)
		default:
			fmt.Fprintf(w, "%s\t%v\n", name, val)
		}
	}
}
