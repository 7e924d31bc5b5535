package snapdbg

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Breakpoint is the typed form of one breakpoint document as stored in the
// backing database. A snapshot is a breakpoint whose agent has captured
// stack frames and a variable table; a logpoint is a breakpoint carrying a
// positional log message format.
type Breakpoint struct {
	ID                 string
	Action             string
	Location           *Location
	Condition          string
	Expressions        []string
	LogMessageFormat   string
	LogLevel           string
	IsFinalState       bool
	CreateTimeUnixMsec int64
	FinalTimeUnixMsec  int64
	UserEmail          string
	Status             *StatusMessage

	StackFrames          []*StackFrame
	VariableTable        []*Variable
	EvaluatedExpressions []*Variable
}

// Location is a source position.
type Location struct {
	Path string
	Line int
}

// StackFrame is one captured frame of the debugged program.
type StackFrame struct {
	Function  string
	Location  *Location
	Arguments []*Variable
	Locals    []*Variable
}

// Variable is one captured variable record. It is either a leaf scalar
// (Value set), an inline composite (Members set), or a reference into the
// snapshot's shared variable table (VarTableIndex set). Value and
// VarTableIndex are pointers because their absence is meaningful to the
// resolver, not just a zero.
type Variable struct {
	Name          string
	Value         *string
	Type          string
	VarTableIndex *int
	Members       []*Variable
	Status        *StatusMessage
}

// StatusMessage is the agent-reported status attached to a breakpoint or a
// single variable (agent errors, informational notes).
type StatusMessage struct {
	IsError     bool
	RefersTo    string
	Description FormatMessage
}

// FormatMessage is a positional message: "$N" tokens in Format reference
// Parameters[N].
type FormatMessage struct {
	Format     string
	Parameters []string
}

// DecodeBreakpoint decodes one breakpoint document. Agent payloads are
// version-skewed third-party data, so decoding is tolerant and never
// fails: missing keys become zero values, numbers are accepted as either
// JSON numbers or numeric strings, and malformed members are dropped.
func DecodeBreakpoint(data []byte) *Breakpoint {
	doc := gjson.ParseBytes(data)
	bp := &Breakpoint{
		ID:                 doc.Get("id").String(),
		Action:             doc.Get("action").String(),
		Location:           decodeLocation(doc.Get("location")),
		Condition:          doc.Get("condition").String(),
		LogMessageFormat:   doc.Get("logMessageFormat").String(),
		LogLevel:           doc.Get("logLevel").String(),
		IsFinalState:       doc.Get("isFinalState").Bool(),
		CreateTimeUnixMsec: doc.Get("createTimeUnixMsec").Int(),
		FinalTimeUnixMsec:  doc.Get("finalTimeUnixMsec").Int(),
		UserEmail:          doc.Get("userEmail").String(),
		Status:             decodeStatus(doc.Get("status")),
	}
	for _, e := range doc.Get("expressions").Array() {
		bp.Expressions = append(bp.Expressions, e.String())
	}
	for _, f := range doc.Get("stackFrames").Array() {
		bp.StackFrames = append(bp.StackFrames, decodeStackFrame(f))
	}
	bp.VariableTable = decodeVariables(doc.Get("variableTable"))
	bp.EvaluatedExpressions = decodeVariables(doc.Get("evaluatedExpressions"))
	return bp
}

// LogMessage reconstructs the human-readable log template from the stored
// positional format.
func (bp *Breakpoint) LogMessage() string {
	return MergeLogTemplate(bp.LogMessageFormat, bp.Expressions)
}

// ApplyLogTemplate compiles template and writes the resulting
// logMessageFormat and expressions fields into the raw document, returning
// the updated document. The only possible error is an unbalanced template.
func ApplyLogTemplate(doc []byte, template string) ([]byte, error) {
	format, expressions, err := SplitLogTemplate(template)
	if err != nil {
		return nil, err
	}
	out, err := sjson.SetBytes(doc, "logMessageFormat", format)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(out, "expressions", expressions)
}

func decodeLocation(r gjson.Result) *Location {
	if !r.Exists() {
		return nil
	}
	return &Location{
		Path: r.Get("path").String(),
		Line: int(r.Get("line").Int()),
	}
}

func decodeStackFrame(r gjson.Result) *StackFrame {
	return &StackFrame{
		Function:  r.Get("function").String(),
		Location:  decodeLocation(r.Get("location")),
		Arguments: decodeVariables(r.Get("arguments")),
		Locals:    decodeVariables(r.Get("locals")),
	}
}

func decodeVariables(r gjson.Result) []*Variable {
	var vars []*Variable
	for _, v := range r.Array() {
		if dv := decodeVariable(v); dv != nil {
			vars = append(vars, dv)
		}
	}
	return vars
}

func decodeVariable(r gjson.Result) *Variable {
	if !r.IsObject() {
		return nil
	}
	v := &Variable{
		Name: r.Get("name").String(),
		Type: r.Get("type").String(),
	}
	if val := r.Get("value"); val.Exists() {
		s := val.String()
		v.Value = &s
	}
	if idx := r.Get("varTableIndex"); idx.Exists() {
		n := int(idx.Int())
		v.VarTableIndex = &n
	}
	v.Members = decodeVariables(r.Get("members"))
	v.Status = decodeStatus(r.Get("status"))
	return v
}

func decodeStatus(r gjson.Result) *StatusMessage {
	if !r.Exists() {
		return nil
	}
	s := &StatusMessage{
		IsError:  r.Get("isError").Bool(),
		RefersTo: r.Get("refersTo").String(),
	}
	s.Description.Format = r.Get("description.format").String()
	for _, p := range r.Get("description.parameters").Array() {
		s.Description.Parameters = append(s.Description.Parameters, p.String())
	}
	return s
}
