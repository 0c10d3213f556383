package source

import (
	"bytes"
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Text holds preprocessed source content together with a newline index for
// offset <-> line/column resolution. All AST spans point into one Text.
type Text struct {
	Content []byte
	// LineIdx stores the byte offset of every '\n' in Content.
	LineIdx []uint32
}

// NewText builds a Text and its line index from raw content.
func NewText(content []byte) *Text {
	return &Text{
		Content: content,
		LineIdx: buildLineIndex(content),
	}
}

// NewTextString is a convenience wrapper for string input.
func NewTextString(content string) *Text {
	return NewText([]byte(content))
}

func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("content offset overflow: %w", err))
			}
			idx = append(idx, off)
		}
	}
	return idx
}

// Len returns the content length in bytes.
func (t *Text) Len() uint32 {
	n, err := safecast.Conv[uint32](len(t.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// Slice returns the content covered by span. Out-of-range spans are clamped.
func (t *Text) Slice(span Span) string {
	start, end := span.Start, span.End
	if n := t.Len(); end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return string(t.Content[start:end])
}

// LineCount returns the number of lines, counting a trailing partial line.
func (t *Text) LineCount() int {
	return len(t.LineIdx) + 1
}

// LineStart returns the byte offset where the 0-based line begins.
func (t *Text) LineStart(line int) uint32 {
	if line <= 0 {
		return 0
	}
	if line > len(t.LineIdx) {
		return t.Len()
	}
	return t.LineIdx[line-1] + 1
}

// LineEnd returns the offset of the newline terminating the 0-based line,
// or the content length for the last line.
func (t *Text) LineEnd(line int) uint32 {
	if line < 0 {
		return 0
	}
	if line >= len(t.LineIdx) {
		return t.Len()
	}
	return t.LineIdx[line]
}

// LineCol converts an offset into a 1-based line/column pair. Offsets past
// the end of content resolve to the final position.
func (t *Text) LineCol(offset uint32) LineCol {
	if n := t.Len(); offset > n {
		offset = n
	}
	line := sort.Search(len(t.LineIdx), func(i int) bool { return t.LineIdx[i] >= offset })
	return LineCol{
		Line: uint32(line) + 1,
		Col:  offset - t.LineStart(line) + 1,
	}
}

// LineCol is a human-readable position: both fields are 1-based.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}
