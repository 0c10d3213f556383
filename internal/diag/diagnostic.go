package diag

import (
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// Diagnostic is a single message tied to a span of the preprocessed text.
type Diagnostic struct {
	Severity    Severity
	Code        Code
	Message     string
	Primary     source.Span
	Suggestions []string
}

// WithSuggestion returns a copy with one more suggestion attached.
func (d Diagnostic) WithSuggestion(s string) Diagnostic {
	d.Suggestions = append(append([]string(nil), d.Suggestions...), s)
	return d
}
