// Package varresolve expands the variable graphs captured in a debugger
// snapshot into ordered, display-ready name/value entries.
//
// Snapshot variable records may reference a shared variable table by index,
// and the graph formed by those references may alias (the same table entry
// reachable from several branches) or cycle (a record whose expansion
// points back to one of its own ancestors). Cycles are an expected property
// of self-referential object graphs in the debugged program, not a data
// error. Resolution is therefore depth-bounded and path-sensitive: only a
// back-edge along the current root-to-leaf path is reported as a cycle,
// while re-visits from sibling branches expand normally.
package varresolve

import (
	"fmt"

	"github.com/snapdbg/snapdbg"
)

// Resolver resolves variable records against one snapshot's variable
// table. A Resolver owns no state beyond its inputs; every public call is
// independent and callers may run them concurrently on read-only data.
type Resolver struct {
	frames []*snapdbg.StackFrame
	exprs  []*snapdbg.Variable
	table  []*snapdbg.Variable

	maxLevel int
	status   StatusFormatter
	logger   Logger
}

// New creates a resolver over one captured breakpoint. The breakpoint may
// be sparse or malformed in any way; resolution degrades rather than
// failing, because snapshots originate from version-skewed third-party
// agents and must always render something.
func New(bp *snapdbg.Breakpoint, opts Options) *Resolver {
	r := &Resolver{
		maxLevel: opts.MaxLevel,
		status:   opts.StatusFormatter,
		logger:   opts.Logger,
	}
	if bp != nil {
		r.frames = bp.StackFrames
		r.exprs = bp.EvaluatedExpressions
		r.table = bp.VariableTable
	}
	if r.maxLevel < 0 {
		r.maxLevel = 0
	}
	if r.status == nil {
		r.status = snapdbg.FormatStatusMessage
	}
	if r.logger == nil {
		r.logger = newNoopLogger()
	}
	return r
}

// ResolveExpressions resolves the snapshot's evaluated expressions in
// order. Each expression yields one entry, plus a diagnostic sibling when
// the agent attached a status message to it.
func (r *Resolver) ResolveExpressions() []Entry {
	r.logger.Debugf("resolving %d evaluated expressions", len(r.exprs))
	return r.resolveRoots(r.exprs)
}

// ResolveLocals resolves the arguments followed by the locals of the
// selected stack frame. An out-of-range frame index yields an empty
// result, not an error.
func (r *Resolver) ResolveLocals(frameIndex int) []Entry {
	if frameIndex < 0 || frameIndex >= len(r.frames) {
		r.logger.Warnf("stack frame %d out of range (%d frames captured)", frameIndex, len(r.frames))
		return []Entry{}
	}
	frame := r.frames[frameIndex]
	roots := make([]*snapdbg.Variable, 0, len(frame.Arguments)+len(frame.Locals))
	roots = append(roots, frame.Arguments...)
	roots = append(roots, frame.Locals...)
	r.logger.Debugf("resolving frame %d: %d arguments, %d locals", frameIndex, len(frame.Arguments), len(frame.Locals))
	return r.resolveRoots(roots)
}

// resolveRoots resolves each root at depth zero with a fresh ancestor set,
// so that a table entry shared between two roots expands fully under both.
func (r *Resolver) resolveRoots(roots []*snapdbg.Variable) []Entry {
	out := make([]Entry, 0, len(roots))
	for _, v := range roots {
		name, value, message := r.resolveOne(v, 0, map[int]string{})
		out = append(out, Entry{Name: name, Value: value})
		if message != nil {
			out = append(out, Entry{Name: name + " - DBG_MSG", Value: *message})
		}
	}
	return out
}

// resolveOne resolves a single record. ancestors maps the variable table
// indices on the current root-to-here path to the display name that
// entered them; an index already present marks a true cycle. The entry
// added for this record is removed on exit so sibling branches may revisit
// the same index.
func (r *Resolver) resolveOne(v *snapdbg.Variable, level int, ancestors map[int]string) (string, any, *string) {
	if v == nil {
		return "", nil, nil
	}
	if level > r.maxLevel {
		return v.Name, truncationMessage(r.maxLevel), nil
	}

	work := *v
	if v.VarTableIndex != nil {
		idx := *v.VarTableIndex
		if prior, ok := ancestors[idx]; ok {
			return v.Name, cycleMessage(prior), nil
		}
		ancestors[idx] = v.Name
		defer delete(ancestors, idx)

		if idx >= 0 && idx < len(r.table) && r.table[idx] != nil {
			mergeTableEntry(&work, r.table[idx])
		} else {
			// Dangling reference: resolve the record as-is, as a leaf
			// with nothing to show.
			r.logger.Warnf("variable %q references varTableIndex %d outside table of size %d", v.Name, idx, len(r.table))
		}
	}

	display := work.Name
	if work.Type != "" {
		display += " (" + work.Type + ")"
	} else if work.Value != nil && len(work.Members) > 0 {
		// Some agent families store the type name of a composite in its
		// value field.
		display += " (" + *work.Value + ")"
	}

	var value any
	if len(work.Members) > 0 {
		// Members would land beyond the budget; the whole composite
		// collapses to the truncation message.
		if level >= r.maxLevel {
			return display, truncationMessage(r.maxLevel), nil
		}
		obj := make(Object, 0, len(work.Members))
		for _, m := range work.Members {
			mName, mValue, mMessage := r.resolveOne(m, level+1, ancestors)
			obj = append(obj, Entry{Name: mName, Value: mValue})
			if mMessage != nil {
				obj = append(obj, Entry{Name: mName + " - DBG_MSG", Value: *mMessage})
			}
		}
		value = obj
	} else if work.Value != nil {
		value = *work.Value
	} else if work.VarTableIndex != nil {
		// A reference with nothing to show, as opposed to a known-empty
		// scalar.
		value = nil
	} else {
		value = ""
	}

	return display, value, r.status(&work)
}

// mergeTableEntry merges the shared table entry into the inline record.
// Fields present on the table entry win over the inline record's fields;
// this mirrors the behavior agents have been observed to rely on.
func mergeTableEntry(work *snapdbg.Variable, entry *snapdbg.Variable) {
	if entry.Name != "" {
		work.Name = entry.Name
	}
	if entry.Value != nil {
		work.Value = entry.Value
	}
	if entry.Type != "" {
		work.Type = entry.Type
	}
	if entry.VarTableIndex != nil {
		work.VarTableIndex = entry.VarTableIndex
	}
	if len(entry.Members) > 0 {
		work.Members = entry.Members
	}
	if entry.Status != nil {
		work.Status = entry.Status
	}
}

func truncationMessage(maxLevel int) string {
	return fmt.Sprintf("Max expansion level of %d reached, increase the maximum level to see more", maxLevel)
}

func cycleMessage(ancestor string) string {
	if ancestor == "" {
		return "Reference cycle, variable points back to an enclosing ancestor"
	}
	return fmt.Sprintf("Reference cycle, already expanding '%s'", ancestor)
}
