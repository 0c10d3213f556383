package lsp

import (
	"encoding/json"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
)

func (s *Server) handleDocumentSymbol(msg *rpcMessage) error {
	var params documentSymbolParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	doc := s.getDocument(canonicalURI(params.TextDocument.URI))
	if doc == nil {
		return s.sendResponse(msg.ID, []documentSymbol{})
	}
	s.mu.Lock()
	symbols := doc.symbols
	s.mu.Unlock()
	if symbols == nil {
		symbols = []documentSymbol{}
	}
	return s.sendResponse(msg.ID, symbols)
}

func (s *Server) handleWorkspaceSymbol(msg *rpcMessage) error {
	var params workspaceSymbolParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}

	folder := cases.Fold()
	query := folder.String(params.Query)

	s.mu.Lock()
	uris := make([]string, 0, len(s.index))
	for uri := range s.index {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	var out []symbolInformation
	for _, uri := range uris {
		for _, sym := range s.index[uri] {
			// Empty query matches everything; otherwise match by
			// case-insensitive substring.
			if query == "" || strings.Contains(folder.String(sym.Name), query) {
				out = append(out, sym)
			}
		}
	}
	s.mu.Unlock()

	if out == nil {
		out = []symbolInformation{}
	}
	return s.sendResponse(msg.ID, out)
}

// buildDocumentSymbols turns the AST into the hierarchical symbol tree:
// modules and classes are containers, their declarations are children.
func buildDocumentSymbols(unit *ast.SourceUnit) []documentSymbol {
	out := make([]documentSymbol, 0, len(unit.Items))
	for _, id := range unit.Items {
		if sym, ok := itemSymbol(unit, id); ok {
			out = append(out, sym)
		}
	}
	return out
}

func itemSymbol(unit *ast.SourceUnit, id ast.ItemID) (documentSymbol, bool) {
	it := unit.Item(id)
	if it == nil {
		return documentSymbol{}, false
	}
	text := unit.Text
	switch it.Kind {
	case ast.ItemModule:
		sym := documentSymbol{
			Name:           it.Name,
			Kind:           symbolKindModule,
			Range:          rangeForSpan(text, it.Span),
			SelectionRange: rangeForSpan(text, it.NameSpan),
		}
		for _, port := range it.Ports {
			sym.Children = append(sym.Children, documentSymbol{
				Name:           port.Name,
				Detail:         portDetail(port),
				Kind:           symbolKindVariable,
				Range:          rangeForSpan(text, port.Span),
				SelectionRange: rangeForSpan(text, port.NameSpan),
			})
		}
		for _, child := range it.Items {
			if childSym, ok := itemSymbol(unit, child); ok {
				sym.Children = append(sym.Children, childSym)
			}
		}
		return sym, true
	case ast.ItemClass:
		sym := documentSymbol{
			Name:           it.Name,
			Detail:         classDetail(it),
			Kind:           symbolKindClass,
			Range:          rangeForSpan(text, it.Span),
			SelectionRange: rangeForSpan(text, it.NameSpan),
		}
		for _, ci := range it.ClassItems {
			kind := symbolKindField
			if ci.Kind == ast.ClassMethod {
				kind = symbolKindMethod
			}
			sym.Children = append(sym.Children, documentSymbol{
				Name:           ci.Name,
				Detail:         ci.DataType,
				Kind:           kind,
				Range:          rangeForSpan(text, ci.Span),
				SelectionRange: rangeForSpan(text, ci.NameSpan),
			})
		}
		return sym, true
	case ast.ItemVarDecl:
		return documentSymbol{
			Name:           it.Name,
			Detail:         it.DataType,
			Kind:           symbolKindVariable,
			Range:          rangeForSpan(text, it.Span),
			SelectionRange: rangeForSpan(text, it.NameSpan),
		}, true
	case ast.ItemPortDecl:
		return documentSymbol{
			Name:           it.Name,
			Detail:         strings.TrimSpace(it.Direction.String() + " " + it.PortType),
			Kind:           symbolKindVariable,
			Range:          rangeForSpan(text, it.Span),
			SelectionRange: rangeForSpan(text, it.NameSpan),
		}, true
	case ast.ItemGlobalClocking:
		if it.Name == "" {
			return documentSymbol{}, false
		}
		return documentSymbol{
			Name:           it.Name,
			Kind:           symbolKindEvent,
			Range:          rangeForSpan(text, it.Span),
			SelectionRange: rangeForSpan(text, it.NameSpan),
		}, true
	case ast.ItemDefine:
		return documentSymbol{
			Name:           it.Name,
			Detail:         it.Replacement,
			Kind:           symbolKindProperty,
			Range:          rangeForSpan(text, it.Span),
			SelectionRange: rangeForSpan(text, it.NameSpan),
		}, true
	default:
		return documentSymbol{}, false
	}
}

// flattenSymbols converts the hierarchical tree into the flat entries the
// workspace index stores.
func flattenSymbols(uri string, tree []documentSymbol) []symbolInformation {
	var out []symbolInformation
	var walk func(syms []documentSymbol, container string)
	walk = func(syms []documentSymbol, container string) {
		for _, sym := range syms {
			out = append(out, symbolInformation{
				Name:          sym.Name,
				Kind:          sym.Kind,
				ContainerName: container,
				Location: location{
					URI:   uri,
					Range: sym.SelectionRange,
				},
			})
			walk(sym.Children, sym.Name)
		}
	}
	walk(tree, "")
	return out
}

func portDetail(p ast.Port) string {
	parts := make([]string, 0, 2)
	if dir := p.Direction.String(); dir != "" {
		parts = append(parts, dir)
	}
	if p.PortType != "" {
		parts = append(parts, p.PortType)
	}
	return strings.Join(parts, " ")
}

func classDetail(it *ast.ModuleItem) string {
	if it.Extends == "" {
		return ""
	}
	return "extends " + it.Extends
}
