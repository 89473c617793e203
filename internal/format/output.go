package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Tabular is implemented by command results that can render as a table.
type Tabular interface {
	Header() table.Row
	Rows() []table.Row
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - table (v must implement Tabular)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "table":
		t, ok := v.(Tabular)
		if !ok {
			return fmt.Errorf("table output not supported for %T", v)
		}
		return WriteTable(w, t, pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteTable renders t with go-pretty. pretty switches to the rounded box style;
// otherwise the default ASCII style is used so output stays grep-friendly.
func WriteTable(w io.Writer, t Tabular, pretty bool) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if pretty {
		tw.SetStyle(table.StyleRounded)
	}
	tw.AppendHeader(t.Header())
	for _, r := range t.Rows() {
		tw.AppendRow(r)
	}
	tw.Render()
	return nil
}
