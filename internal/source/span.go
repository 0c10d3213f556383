package source

import (
	"fmt"
)

// Span is a byte range [Start, End) into the post-preprocessing text of a
// single source unit.
type Span struct {
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

// Contains reports whether the byte offset falls inside the span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off < s.End
}

// Within reports whether s is fully contained in outer.
func (s Span) Within(outer Span) bool {
	return s.Start >= outer.Start && s.End <= outer.End
}

// Cover extends the span to include other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
