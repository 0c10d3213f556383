package lsp

import (
	"encoding/json"

	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	unit, text := s.unitForURI(params.TextDocument.URI)
	if unit == nil {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	return s.sendResponse(msg.ID, foldingRanges(unit, text))
}

// foldingRanges folds every multi-line container: modules, classes,
// class methods, procedural blocks, and clocking blocks. The closing
// keyword line stays visible when folded.
func foldingRanges(unit *ast.SourceUnit, text *source.Text) []foldingRange {
	var out []foldingRange
	var visit func(ids []ast.ItemID)
	visit = func(ids []ast.ItemID) {
		for _, id := range ids {
			it := unit.Item(id)
			if it == nil {
				continue
			}
			switch it.Kind {
			case ast.ItemModule, ast.ItemClass, ast.ItemProcBlock, ast.ItemGlobalClocking:
				if fr, ok := foldFor(text, it.Span); ok {
					out = append(out, fr)
				}
			}
			switch it.Kind {
			case ast.ItemModule:
				visit(it.Items)
			case ast.ItemClass:
				for i := range it.ClassItems {
					ci := &it.ClassItems[i]
					if ci.Kind != ast.ClassMethod {
						continue
					}
					if fr, ok := foldFor(text, ci.Span); ok {
						out = append(out, fr)
					}
				}
			}
		}
	}
	visit(unit.Items)
	if out == nil {
		out = []foldingRange{}
	}
	return out
}

func foldFor(text *source.Text, span source.Span) (foldingRange, bool) {
	// LineCol is 1-based; folding lines are 0-based and we keep the line
	// holding the end keyword unfolded.
	start := int(text.LineCol(span.Start).Line) - 1
	end := int(text.LineCol(span.End).Line) - 2
	if end <= start {
		return foldingRange{}, false
	}
	return foldingRange{StartLine: start, EndLine: end, Kind: "region"}, true
}
