package lsp

import (
	"encoding/json"
	"sort"

	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

func (s *Server) handleDocumentHighlight(msg *rpcMessage) error {
	var params documentHighlightParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	unit, text := s.unitForURI(params.TextDocument.URI)
	if unit == nil {
		return s.sendResponse(msg.ID, []documentHighlight{})
	}

	offset := offsetForPositionInText(text, params.Position)
	word := identAt(string(text.Content), int(offset))
	if word == "" {
		return s.sendResponse(msg.ID, []documentHighlight{})
	}

	spans := occurrencesOf(unit, word)
	out := make([]documentHighlight, 0, len(spans))
	for _, sp := range spans {
		out = append(out, documentHighlight{Range: rangeForSpan(text, sp)})
	}
	return s.sendResponse(msg.ID, out)
}

// occurrencesOf collects the spans of every name or identifier reference in
// the unit whose text matches word, sorted by position.
func occurrencesOf(unit *ast.SourceUnit, word string) []source.Span {
	var spans []source.Span
	add := func(sp source.Span) {
		if !sp.Empty() {
			spans = append(spans, sp)
		}
	}

	for i := uint32(1); i <= unit.Exprs.Len(); i++ {
		e := unit.Exprs.Get(i)
		switch e.Kind {
		case ast.ExprIdent:
			if e.Text == word {
				add(e.Span)
			}
		case ast.ExprMember:
			if e.Text == word {
				add(e.NameSpan)
			}
		}
	}
	for i := uint32(1); i <= unit.ModItems.Len(); i++ {
		it := unit.ModItems.Get(i)
		if it.Name == word {
			add(it.NameSpan)
		}
		for _, p := range it.Ports {
			if p.Name == word {
				add(p.NameSpan)
			}
		}
		for _, ci := range it.ClassItems {
			if ci.Name == word {
				add(ci.NameSpan)
			}
		}
	}
	for i := uint32(1); i <= unit.Stmts.Len(); i++ {
		st := unit.Stmts.Get(i)
		if st.Kind == ast.StmtVarDecl && st.Name == word {
			add(st.NameSpan)
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
	dedup := spans[:0]
	var prev source.Span
	for i, sp := range spans {
		if i > 0 && sp == prev {
			continue
		}
		dedup = append(dedup, sp)
		prev = sp
	}
	return dedup
}

// identAt returns the identifier the offset touches, or "" when the offset
// is not on one.
func identAt(text string, offset int) string {
	isIdent := func(c byte) bool {
		return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
	}
	if offset > len(text) {
		offset = len(text)
	}
	start, end := offset, offset
	for start > 0 && isIdent(text[start-1]) {
		start--
	}
	for end < len(text) && isIdent(text[end]) {
		end++
	}
	if start == end {
		return ""
	}
	// Identifiers cannot start with a digit; the cursor is on a number.
	if c := text[start]; c >= '0' && c <= '9' {
		return ""
	}
	return text[start:end]
}
