package parser

import (
	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/diag"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// global clocking [name] @(event); endclocking [: label]
// The event stays opaque, wrapped as an identifier expression.
func (p *Parser) parseGlobalClocking() (ast.ItemID, error) {
	p.skipWS()
	start := p.pos
	if !p.word("global") {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected 'global'")
	}
	if !p.word("clocking") {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected 'clocking'")
	}
	name, nameSpan, _ := p.ident()
	p.skipWS()
	eventStart := p.pos
	event, err := p.parseOptionalEventControl()
	if err != nil {
		return ast.NoItemID, err
	}
	if event == "" {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a clocking event")
	}
	eventExpr := p.b.NewExpr(ast.Expr{
		Kind: ast.ExprIdent,
		Span: source.Span{Start: eventStart, End: p.pos},
		Text: event,
	})
	if err := p.expect(";"); err != nil {
		return ast.NoItemID, err
	}
	if !p.word("endclocking") {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected 'endclocking'")
	}
	endLabel := ""
	if p.lit(":") {
		label, _, ok := p.ident()
		if !ok {
			return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a label after ':'")
		}
		endLabel = label
	}
	return p.b.NewItem(ast.ModuleItem{
		Kind:          ast.ItemGlobalClocking,
		Span:          source.Span{Start: start, End: p.pos},
		Name:          name,
		NameSpan:      nameSpan,
		ClockingEvent: eventExpr,
		EndLabel:      endLabel,
	}), nil
}
