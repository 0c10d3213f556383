package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/SeanMcLoughlin/very-sub000/internal/diag"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
)

// Pretty renders every diagnostic in the bag in source order:
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//	        <source line>
//	        ^~~~
//
// The caret underline covers the primary span, clipped to its first line.
// Callers should Sort the bag first for deterministic output.
func Pretty(w io.Writer, bag *diag.Bag, text *source.Text, path string, opts Options) {
	for _, d := range bag.Items() {
		writePretty(w, d, text, path, opts)
	}
}

func writePretty(w io.Writer, d diag.Diagnostic, text *source.Text, path string, opts Options) {
	pos := text.LineCol(d.Primary.Start)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, pos.Line, pos.Col,
		severityLabel(d.Severity, opts), d.Code, d.Message)

	line := int(pos.Line) - 1
	start, end := text.LineStart(line), text.LineEnd(line)
	if start >= end {
		return
	}
	src := text.Slice(source.Span{Start: start, End: end})
	fmt.Fprintf(w, "        %s\n", src)

	// Underline width within this line only.
	underEnd := d.Primary.End
	if underEnd > end {
		underEnd = end
	}
	width := 1
	if underEnd > d.Primary.Start {
		width = int(underEnd - d.Primary.Start)
	}
	pad := strings.Repeat(" ", int(pos.Col)-1)
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "        %s%s\n", pad, marker)
}

func severityLabel(s diag.Severity, opts Options) string {
	if !opts.Color {
		return s.String()
	}
	switch s {
	case diag.SevError:
		return errColor.Sprint(s.String())
	case diag.SevWarning:
		return warnColor.Sprint(s.String())
	default:
		return infoColor.Sprint(s.String())
	}
}
