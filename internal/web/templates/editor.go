// Package templates renders the editor's HTML debug view. Components are
// hand-built templ.ComponentFunc values rather than generated files.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// EditorPageView provides data for the editor debug page.
type EditorPageView struct {
	// Identity is the store identity backing save/load, empty when the
	// editor runs without persistence.
	Identity string
	// Busy mirrors the session busy flag at render time.
	Busy bool
	// Fields lists the current configuration as label/value pairs in
	// display order.
	Fields []FieldRow
	// HierarchyJSON is the assembled avatar tree, pretty-printed for the
	// export block.
	HierarchyJSON string
}

// FieldRow is one configuration field in the debug table.
type FieldRow struct {
	Label string
	Value string
	// Color holds the hex value for color fields so the row can show a
	// swatch; empty for style fields.
	Color string
}

// EditorPage renders the full debug page.
func EditorPage(view EditorPageView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><title>FaceForge</title></head><body>"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<h1>FaceForge</h1>"); err != nil {
			return err
		}
		if err := renderStatus(w, view); err != nil {
			return err
		}
		if err := renderFields(w, view.Fields); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<h2>Assembled hierarchy</h2><pre>%s</pre>", templ.EscapeString(view.HierarchyJSON)); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

func renderStatus(w io.Writer, view EditorPageView) error {
	identity := view.Identity
	if identity == "" {
		identity = "not connected"
	}
	state := "idle"
	if view.Busy {
		state = "busy"
	}
	_, err := fmt.Fprintf(
		w,
		"<p>Identity: <strong>%s</strong> · Session: <strong>%s</strong></p>",
		templ.EscapeString(identity),
		templ.EscapeString(state),
	)
	return err
}

func renderFields(w io.Writer, fields []FieldRow) error {
	if _, err := io.WriteString(w, "<h2>Configuration</h2><table><tbody>"); err != nil {
		return err
	}
	for _, field := range fields {
		swatch := ""
		if field.Color != "" {
			swatch = fmt.Sprintf(
				"<span style=\"display:inline-block;width:1em;height:1em;background:%s\"></span> ",
				templ.EscapeString(field.Color),
			)
		}
		if _, err := fmt.Fprintf(
			w,
			"<tr><th>%s</th><td>%s%s</td></tr>",
			templ.EscapeString(field.Label),
			swatch,
			templ.EscapeString(field.Value),
		); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</tbody></table>")
	return err
}
