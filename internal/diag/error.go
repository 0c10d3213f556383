package diag

import (
	"fmt"
	"strings"

	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// Error is a blocking failure from the preprocessor or parser: the first
// diagnostic that stopped the pipeline for a file, with its resolved
// 1-based position.
type Error struct {
	Diag Diagnostic
	Pos  source.LineCol
}

// NewError builds an Error, resolving the diagnostic's span against text.
// A nil text leaves the position at its zero value.
func NewError(d Diagnostic, text *source.Text) *Error {
	e := &Error{Diag: d}
	if text != nil {
		e.Pos = text.LineCol(d.Primary.Start)
	}
	return e
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Pos.Line > 0 {
		fmt.Fprintf(&sb, "Error at line %d, column %d: %s", e.Pos.Line, e.Pos.Col, e.Diag.Message)
	} else {
		fmt.Fprintf(&sb, "Error: %s", e.Diag.Message)
	}
	if len(e.Diag.Suggestions) > 0 {
		fmt.Fprintf(&sb, " (Suggestions: %s)", strings.Join(e.Diag.Suggestions, ", "))
	}
	return sb.String()
}

// Code returns the diagnostic code behind the error.
func (e *Error) Code() Code {
	return e.Diag.Code
}
