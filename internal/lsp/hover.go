package lsp

import (
	"encoding/json"
	"fmt"

	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/sema"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	unit, text := s.unitForURI(params.TextDocument.URI)
	if unit == nil {
		return s.sendResponse(msg.ID, nil)
	}
	offset := offsetForPositionInText(text, params.Position)
	value, span, ok := hoverAt(unit, offset)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	rng := rangeForSpan(text, span)
	return s.sendResponse(msg.ID, hover{
		Contents: markupContent{Kind: "markdown", Value: value},
		Range:    &rng,
	})
}

// hoverAt finds the innermost hoverable construct covering the offset:
// system calls resolve against the vocabularies, includes show the
// resolved path, and container names report their kind.
func hoverAt(unit *ast.SourceUnit, offset uint32) (string, source.Span, bool) {
	// Items first: include paths and container names are not expressions.
	if value, span, ok := hoverItem(unit, offset); ok {
		return value, span, ok
	}

	// Statement-level system calls keep their name outside the expression
	// arena.
	for i := uint32(1); i <= unit.Stmts.Len(); i++ {
		st := unit.Stmts.Get(i)
		if st.Kind == ast.StmtSystemCall && st.NameSpan.Contains(offset) {
			return systemCallHover(st.Name), st.NameSpan, true
		}
	}

	best := ast.ExprID(0)
	var bestSpan source.Span
	for i := uint32(1); i <= unit.Exprs.Len(); i++ {
		e := unit.Exprs.Get(i)
		if e == nil || !e.Span.Contains(offset) {
			continue
		}
		if best == 0 || e.Span.Len() <= bestSpan.Len() {
			best = ast.ExprID(i)
			bestSpan = e.Span
		}
	}
	if best == 0 {
		return "", source.Span{}, false
	}
	e := unit.Expr(best)
	switch e.Kind {
	case ast.ExprSystemCall:
		return systemCallHover(e.Text), e.NameSpan, true
	case ast.ExprMacroUsage:
		return fmt.Sprintf("macro usage `` `%s ``", e.Text), e.NameSpan, true
	default:
		return "", source.Span{}, false
	}
}

func hoverItem(unit *ast.SourceUnit, offset uint32) (string, source.Span, bool) {
	var visit func(id ast.ItemID) (string, source.Span, bool)
	visit = func(id ast.ItemID) (string, source.Span, bool) {
		it := unit.Item(id)
		if it == nil || !it.Span.Contains(offset) {
			return "", source.Span{}, false
		}
		switch it.Kind {
		case ast.ItemInclude:
			if it.NameSpan.Contains(offset) {
				value := fmt.Sprintf("include `%s`", it.Path)
				if it.ResolvedPath != "" {
					value += fmt.Sprintf("\n\nresolves to `%s`", it.ResolvedPath)
				} else {
					value += "\n\n_not found on the include path_"
				}
				return value, it.NameSpan, true
			}
		case ast.ItemModule:
			if it.NameSpan.Contains(offset) {
				return fmt.Sprintf("module `%s`", it.Name), it.NameSpan, true
			}
			for _, child := range it.Items {
				if value, span, ok := visit(child); ok {
					return value, span, ok
				}
			}
		case ast.ItemClass:
			if it.NameSpan.Contains(offset) {
				value := fmt.Sprintf("class `%s`", it.Name)
				if it.Extends != "" {
					value += fmt.Sprintf(" extends `%s`", it.Extends)
				}
				return value, it.NameSpan, true
			}
		}
		return "", source.Span{}, false
	}
	for _, id := range unit.Items {
		if value, span, ok := visit(id); ok {
			return value, span, ok
		}
	}
	return "", source.Span{}, false
}

func systemCallHover(name string) string {
	dollar := "$" + name
	if desc, ok := sema.SystemFunctions[name]; ok {
		return fmt.Sprintf("```systemverilog\n%s\n```\n**system function**: %s", dollar, desc)
	}
	if desc, ok := sema.SystemTasks[name]; ok {
		return fmt.Sprintf("```systemverilog\n%s\n```\n**system task**: %s", dollar, desc)
	}
	return fmt.Sprintf("```systemverilog\n%s\n```\nunknown system function or task", dollar)
}
