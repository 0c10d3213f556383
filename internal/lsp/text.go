package lsp

import "unicode/utf8"

// applyChanges folds a didChange batch into the stored text. A change
// without a range is a full-document replacement; ranged changes splice
// in order, each located against the text produced by the previous one.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := clampOffset(offsetForPosition(text, change.Range.Start), len(text))
		end := clampOffset(offsetForPosition(text, change.Range.End), len(text))
		if end < start {
			end = start
		}
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

func clampOffset(off, limit int) int {
	if off < 0 {
		return 0
	}
	if off > limit {
		return limit
	}
	return off
}

// offsetForPosition converts a protocol position (0-based line, UTF-16
// column) to a byte offset. A line past the last clamps to the end of
// the text; a column past the line end clamps to the newline.
func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	i, line := 0, 0
	for i < len(text) && line < pos.Line {
		if text[i] == '\n' {
			line++
		}
		i++
	}
	if line < pos.Line {
		return len(text)
	}
	return i + utf16ColumnBytes(text[i:], pos.Character)
}

// utf16ColumnBytes counts the bytes spanned by col UTF-16 units from
// the start of line. Astral runes occupy two units.
func utf16ColumnBytes(line string, col int) int {
	units, i := 0, 0
	for i < len(line) && line[i] != '\n' {
		r, size := utf8.DecodeRuneInString(line[i:])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > col {
			break
		}
		units += need
		i += size
		if units == col {
			break
		}
	}
	return i
}
