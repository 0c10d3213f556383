package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"

	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// offsetForPositionInText maps an LSP position (0-based line, UTF-16
// character) to a byte offset.
func offsetForPositionInText(text *source.Text, pos position) uint32 {
	if text == nil || pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	content := text.Content
	if len(content) == 0 {
		return 0
	}
	if pos.Line >= text.LineCount() {
		return text.Len()
	}
	lineStart := text.LineStart(pos.Line)
	lineEnd := text.LineEnd(pos.Line)
	units := 0
	off := lineStart
	for off < lineEnd {
		r, size := utf8.DecodeRune(content[off:lineEnd])
		if r == utf8.RuneError && size == 1 {
			size = 1
		}
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		off += safeUint32(size)
		if units == pos.Character {
			break
		}
	}
	return off
}

// positionForOffsetInText maps a byte offset back to an LSP position.
func positionForOffsetInText(text *source.Text, offset uint32) position {
	if text == nil {
		return position{}
	}
	if offset > text.Len() {
		offset = text.Len()
	}
	lineIdx := text.LineIdx
	idx := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= offset })
	lineStart := text.LineStart(idx)
	if lineStart > offset {
		lineStart = offset
	}
	units := 0
	for off := lineStart; off < offset; {
		r, size := utf8.DecodeRune(text.Content[off:offset])
		if r == utf8.RuneError && size == 1 {
			size = 1
		}
		if off+safeUint32(size) > offset {
			break
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		off += safeUint32(size)
	}
	return position{Line: idx, Character: units}
}

func rangeForSpan(text *source.Text, span source.Span) lspRange {
	if text == nil {
		return lspRange{}
	}
	return lspRange{
		Start: positionForOffsetInText(text, span.Start),
		End:   positionForOffsetInText(text, span.End),
	}
}
