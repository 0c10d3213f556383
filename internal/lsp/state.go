package lsp

import (
	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// document is the server-side state for one open editor buffer.
type document struct {
	text    *source.Text
	version int
	// unit is the last successful parse. When the current text fails to
	// parse the previous unit is kept so navigation keeps working; stale
	// marks that case.
	unit  *ast.SourceUnit
	stale bool
	// symbols is the hierarchical documentSymbol tree for unit.
	symbols []documentSymbol
}

func (s *Server) getDocument(uri string) *document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documents[uri]
}

// unitForURI returns the last good parse for the document, nil when the
// document is unknown or never parsed.
func (s *Server) unitForURI(uri string) (*ast.SourceUnit, *source.Text) {
	doc := s.getDocument(canonicalURI(uri))
	if doc == nil || doc.unit == nil {
		return nil, nil
	}
	return doc.unit, doc.unit.Text
}
