package varresolve

import (
	"github.com/snapdbg/snapdbg"
)

// StatusFormatter turns a variable's status descriptor into a display
// string, or nil when the variable carries none. The resolver treats it as
// a black box.
type StatusFormatter func(*snapdbg.Variable) *string

// Options configures variable resolution.
type Options struct {
	// MaxLevel is the maximum expansion depth from a root expression or
	// local to a nested member. Members below it resolve to a truncation
	// message. Zero is valid and truncates every composite at the root.
	MaxLevel int

	// Logger receives resolution diagnostics. Nil means silent.
	Logger Logger

	// StatusFormatter decodes per-variable agent status messages.
	// Nil selects snapdbg.FormatStatusMessage.
	StatusFormatter StatusFormatter
}

// DefaultOptions returns the default configuration for resolution.
func DefaultOptions() Options {
	return Options{
		MaxLevel: 3,
	}
}
