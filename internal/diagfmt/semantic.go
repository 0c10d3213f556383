package diagfmt

import (
	"fmt"
	"io"

	"github.com/SeanMcLoughlin/very-sub000/internal/diag"
)

// Semantic writes the batch-mode report for one file's semantic
// diagnostics. The layout is kept stable for scripts that scrape it:
//
//	Semantic errors in <path>:
//	  Error at <start>:<end>: <message>
//
// Offsets are byte offsets into the preprocessed text, matching the spans
// carried by the diagnostics.
func Semantic(w io.Writer, path string, bag *diag.Bag, opts Options) {
	if bag.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "Semantic errors in %s:\n", path)
	label := "Error"
	if opts.Color {
		label = errColor.Sprint(label)
	}
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "  %s at %d:%d: %s\n", label, d.Primary.Start, d.Primary.End, d.Message)
	}
}
