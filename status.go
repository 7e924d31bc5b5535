package snapdbg

// FormatStatusMessage renders a variable's status descriptor as a display
// string, substituting "$N" tokens in the description format with the
// corresponding parameter. "$$" escapes a literal "$"; out-of-range
// references are left verbatim. Returns nil when the variable carries no
// status.
func FormatStatusMessage(v *Variable) *string {
	if v == nil || v.Status == nil {
		return nil
	}
	desc := v.Status.Description
	msg := expandPositional(desc.Format, len(desc.Parameters), func(n int) string {
		return desc.Parameters[n]
	})
	return &msg
}
