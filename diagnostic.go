package jsonstructure

import (
	"fmt"
	"strings"

	i18n "github.com/kaptinlin/go-i18n"
)

// Category classifies a Diagnostic by the kind of check that raised it.
type Category string

const (
	CategoryStructural      Category = "structural"
	CategoryReference       Category = "reference"
	CategoryIdentifier      Category = "identifier"
	CategoryTypeMismatch    Category = "type_mismatch"
	CategoryConstraint      Category = "constraint"
	CategoryExtensionGating Category = "extension_gating"
)

// Diagnostic is a single finding against a schema or instance: a
// message template plus the path it occurred at, following the
// keyword/code/message/params shape of EvaluationError,
// generalized with an explicit Category and a Path string instead of
// JSON-Schema-specific EvaluationPath/SchemaLocation/InstanceLocation
// triple (JSON Structure has one effective path per diagnostic, not a
// three-way schema/instance/evaluation split).
type Diagnostic struct {
	Category Category
	Code     string
	Path     string
	Message  string
	Params   map[string]any
}

// NewDiagnostic builds a Diagnostic from message and optional params;
// the {key} placeholders in message are substituted from params when
// the diagnostic is rendered by Error.
func NewDiagnostic(category Category, code, path, message string, params ...map[string]any) *Diagnostic {
	d := &Diagnostic{Category: category, Code: code, Path: path, Message: message}
	if len(params) > 0 {
		d.Params = params[0]
	}
	return d
}

// Error renders the diagnostic as a single human-readable string.
func (d *Diagnostic) Error() string {
	msg := d.Message
	for k, v := range d.Params {
		msg = strings.ReplaceAll(msg, "{"+k+"}", toDisplayString(v))
	}
	if d.Path != "" {
		return d.Path + ": " + msg
	}
	return msg
}

// Localize renders the diagnostic's message via an i18n.Localizer keyed
// by Code, falling back to Error() when localizer is nil.
func (d *Diagnostic) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return d.Error()
	}
	vars := make(map[string]interface{}, len(d.Params))
	for k, v := range d.Params {
		vars[k] = v
	}
	return localizer.Get(d.Code, i18n.Vars(vars))
}

func toDisplayString(v any) string {
	if vv, ok := v.(Value); ok {
		return vv.AsGoString()
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}

// DiagnosticList is an append-only buffer of Diagnostics with a
// length-marker save/restore API: allOf/anyOf/oneOf/if evaluate a
// branch against the live buffer, then either keep the tail
// (successful branch) or truncate back to the mark (probe/failed
// branch), without ever swapping buffer identity.
type DiagnosticList struct {
	items []*Diagnostic
}

// Mark returns the current length, to be passed to Restore later.
func (l *DiagnosticList) Mark() int {
	return len(l.items)
}

// Restore truncates the buffer back to a previously taken Mark.
func (l *DiagnosticList) Restore(mark int) {
	l.items = l.items[:mark]
}

// Since returns the diagnostics appended after mark, without
// truncating the buffer.
func (l *DiagnosticList) Since(mark int) []*Diagnostic {
	return l.items[mark:]
}

// Add appends a diagnostic.
func (l *DiagnosticList) Add(d *Diagnostic) {
	l.items = append(l.items, d)
}

// Addf builds and appends a Diagnostic in one call.
func (l *DiagnosticList) Addf(category Category, code, path, message string, params ...map[string]any) {
	l.Add(NewDiagnostic(category, code, path, message, params...))
}

// All returns every diagnostic collected so far, in order.
func (l *DiagnosticList) All() []*Diagnostic {
	return l.items
}

// Empty reports whether no diagnostics have been recorded.
func (l *DiagnosticList) Empty() bool {
	return len(l.items) == 0
}

// Strings renders every diagnostic via Error() as an ordered list of
// strings, the CLI's and the Validator's output contract.
func (l *DiagnosticList) Strings() []string {
	out := make([]string, len(l.items))
	for i, d := range l.items {
		out[i] = d.Error()
	}
	return out
}
