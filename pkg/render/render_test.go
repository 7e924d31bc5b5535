package render

import (
	"strings"
	"testing"

	"github.com/snapdbg/snapdbg/varresolve"
)

func sample() []varresolve.Entry {
	return []varresolve.Entry{
		{Name: "count (int)", Value: "3"},
		{Name: "self (Handler)", Value: varresolve.Object{
			{Name: "port", Value: "8080"},
			{Name: "peer", Value: nil},
		}},
	}
}

func TestJSON_PreservesOrder(t *testing.T) {
	out, err := JSON(sample(), false)
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `"count (int)": "3"`) {
		t.Errorf("missing scalar entry:\n%s", s)
	}
	if !strings.Contains(s, `"peer": null`) {
		t.Errorf("missing null member:\n%s", s)
	}
	if strings.Index(s, `"port"`) > strings.Index(s, `"peer"`) {
		t.Errorf("member order not preserved:\n%s", s)
	}
}

func TestTable_AlignsColumns(t *testing.T) {
	out := Table(sample())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}

	if !strings.HasPrefix(lines[0], "count (int)") || !strings.HasSuffix(lines[0], "3") {
		t.Errorf("scalar row = %q", lines[0])
	}
	if lines[1] != "self (Handler):" {
		t.Errorf("composite row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "  port") {
		t.Errorf("member row not indented: %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "null") {
		t.Errorf("null member row = %q", lines[3])
	}

	// Values of aligned rows start at the same column.
	if strings.Index(lines[2], "8080") != strings.Index(lines[3], "null") {
		t.Errorf("columns misaligned:\n%s", out)
	}
}

func TestTable_Empty(t *testing.T) {
	if out := Table(nil); out != "" {
		t.Errorf("Table(nil) = %q, want empty", out)
	}
}
