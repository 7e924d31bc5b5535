// Package render turns resolver output into terminal-friendly text. It
// contains dumb renderers only; choosing between them is the caller's
// business.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/tidwall/pretty"

	"github.com/snapdbg/snapdbg/varresolve"
)

// JSON renders resolved entries as indented JSON, optionally colorized for
// terminals. Entry order is preserved.
func JSON(entries []varresolve.Entry, color bool) ([]byte, error) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	out := pretty.PrettyOptions(raw, &pretty.Options{Indent: "  "})
	if color {
		out = pretty.Color(out, nil)
	}
	return out, nil
}

// Table renders resolved entries as an aligned two-column listing. Nested
// objects indent their members under the parent's row.
func Table(entries []varresolve.Entry) string {
	rows := flatten(entries, 0)

	width := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r.label); w > width {
			width = w
		}
	}

	var b strings.Builder
	for _, r := range rows {
		if r.value == "" {
			b.WriteString(r.label)
		} else {
			b.WriteString(runewidth.FillRight(r.label, width))
			b.WriteString("  ")
			b.WriteString(r.value)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

type row struct {
	label string
	value string
}

func flatten(entries []varresolve.Entry, indent int) []row {
	var rows []row
	pad := strings.Repeat("  ", indent)
	for _, e := range entries {
		switch v := e.Value.(type) {
		case varresolve.Object:
			rows = append(rows, row{label: pad + e.Name + ":"})
			rows = append(rows, flatten(v, indent+1)...)
		case nil:
			rows = append(rows, row{label: pad + e.Name, value: "null"})
		case string:
			rows = append(rows, row{label: pad + e.Name, value: v})
		default:
			rows = append(rows, row{label: pad + e.Name, value: fmt.Sprint(v)})
		}
	}
	return rows
}
