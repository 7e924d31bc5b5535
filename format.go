// Package snapdbg models debugger breakpoint documents and implements the
// transforms between their wire form and their display form: the log
// template compiler (human "{expression}" templates to positional "$N"
// formats and back) and the status message formatter.
package snapdbg

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitLogTemplate compiles a human-authored log template into the
// positional wire format consumed by debug agents. Each "{expression}" span
// becomes a "$N" token referencing the returned expression list; identical
// expression text shares one index. Expression text may itself contain
// balanced braces, which are captured literally. A "$" in literal text is
// escaped to "$$".
//
// The only error conditions are unbalanced braces: a stray "}" fails at its
// position, an unclosed "{" fails after the full scan.
func SplitLogTemplate(template string) (string, []string, error) {
	var out strings.Builder
	var capture strings.Builder
	expressions := []string{}
	depth := 0

	for i := 0; i < len(template); i++ {
		c := template[i]

		if depth == 0 {
			switch c {
			case '{':
				depth = 1
				capture.Reset()
			case '}':
				return "", nil, fmt.Errorf("too many '}' in log message at position %d", i)
			case '$':
				out.WriteString("$$")
			default:
				out.WriteByte(c)
			}
			continue
		}

		switch c {
		case '{':
			depth++
			capture.WriteByte(c)
		case '}':
			depth--
			if depth > 0 {
				capture.WriteByte(c)
				continue
			}
			idx := expressionIndex(&expressions, capture.String())
			out.WriteByte('$')
			out.WriteString(strconv.Itoa(idx))
			// A digit directly after the placeholder would fuse with the
			// emitted index, so break the token with a space.
			if i+1 < len(template) && isASCIIDigit(template[i+1]) {
				out.WriteByte(' ')
			}
		default:
			capture.WriteByte(c)
		}
	}

	if depth > 0 {
		return "", nil, fmt.Errorf("too many '{' in log message")
	}
	return out.String(), expressions, nil
}

// MergeLogTemplate reconstructs the human template from a positional format
// and its expression list. Out-of-range "$N" tokens are left verbatim:
// merge renders previously stored data and must not fail on it.
func MergeLogTemplate(format string, expressions []string) string {
	return expandPositional(format, len(expressions), func(n int) string {
		return "{" + expressions[n] + "}"
	})
}

// expandPositional substitutes every "$N" token in format with render(N),
// honoring "$$" as an escaped literal "$". Tokens whose index is >= limit
// are left verbatim.
func expandPositional(format string, limit int, render func(int) string) string {
	segments := strings.Split(format, "$$")
	for i, seg := range segments {
		segments[i] = expandSegment(seg, limit, render)
	}
	return strings.Join(segments, "$")
}

func expandSegment(seg string, limit int, render func(int) string) string {
	if !strings.Contains(seg, "$") {
		return seg
	}
	var b strings.Builder
	b.Grow(len(seg))
	for i := 0; i < len(seg); {
		if seg[i] != '$' || i+1 >= len(seg) || !isASCIIDigit(seg[i+1]) {
			b.WriteByte(seg[i])
			i++
			continue
		}
		j := i + 1
		for j < len(seg) && isASCIIDigit(seg[j]) {
			j++
		}
		n, err := strconv.Atoi(seg[i+1 : j])
		if err != nil || n >= limit {
			b.WriteString(seg[i:j])
		} else {
			b.WriteString(render(n))
		}
		i = j
	}
	return b.String()
}

// expressionIndex returns the index of expr in *list, appending it first if
// absent. Indices are allocated in first-use order.
func expressionIndex(list *[]string, expr string) int {
	for i, e := range *list {
		if e == expr {
			return i
		}
	}
	*list = append(*list, expr)
	return len(*list) - 1
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
