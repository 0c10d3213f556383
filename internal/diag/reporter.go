package diag

import (
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// Reporter is the minimal contract phases use to hand off diagnostics.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string)
}

// BagReporter stores every reported diagnostic into a Bag.
type BagReporter struct {
	Bag *Bag
}

func NewBagReporter(max int) *BagReporter {
	return &BagReporter{Bag: NewBag(max)}
}

func (r *BagReporter) Report(code Code, sev Severity, primary source.Span, msg string) {
	r.Bag.Add(Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
	})
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string) {}
