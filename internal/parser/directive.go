package parser

import (
	"strings"

	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/diag"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// Directive items exist for text parsed without preprocessing, such as
// editor buffers. The batch path expands directives before the parser
// ever sees them.

// `define NAME[(params)] replacement-to-end-of-line
func (p *Parser) parseDefineDirective() (ast.ItemID, error) {
	p.skipWS()
	start := p.pos
	if !p.lit("`") {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected '`'")
	}
	if !p.word("define") {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected 'define'")
	}
	name, nameSpan, ok := p.ident()
	if !ok {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a macro name")
	}
	var params []string
	if p.at(0) == '(' {
		p.pos++
		for {
			param, _, ok := p.ident()
			if !ok {
				break
			}
			params = append(params, param)
			if !p.lit(",") {
				break
			}
		}
		if err := p.expect(")"); err != nil {
			return ast.NoItemID, err
		}
	}
	lineStart := p.pos
	for !p.eof() && p.src[p.pos] != '\n' {
		p.pos++
	}
	replacement := strings.TrimSpace(string(p.src[lineStart:p.pos]))
	return p.b.NewItem(ast.ModuleItem{
		Kind:        ast.ItemDefine,
		Span:        source.Span{Start: start, End: p.pos},
		Name:        name,
		NameSpan:    nameSpan,
		Params:      params,
		Replacement: replacement,
	}), nil
}

// `include "path" or `include <path>
func (p *Parser) parseIncludeDirective() (ast.ItemID, error) {
	p.skipWS()
	start := p.pos
	if !p.lit("`") {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected '`'")
	}
	if !p.word("include") {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected 'include'")
	}
	p.skipWS()
	if p.eof() {
		return ast.NoItemID, p.unexpectedEOF("an include path")
	}
	var closer byte
	switch p.src[p.pos] {
	case '"':
		closer = '"'
	case '<':
		closer = '>'
	default:
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a quoted include path")
	}
	p.pos++
	pathStart := p.pos
	for !p.eof() && p.src[p.pos] != closer && p.src[p.pos] != '\n' {
		p.pos++
	}
	if p.eof() || p.src[p.pos] != closer {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "unterminated include path")
	}
	path := string(p.src[pathStart:p.pos])
	nameSpan := source.Span{Start: pathStart, End: p.pos}
	p.pos++
	resolved := ""
	if p.opts.IncludeResolver != nil {
		if abs, ok := p.opts.IncludeResolver(path); ok {
			resolved = abs
		}
	}
	return p.b.NewItem(ast.ModuleItem{
		Kind:         ast.ItemInclude,
		Span:         source.Span{Start: start, End: p.pos},
		Name:         path,
		NameSpan:     nameSpan,
		Path:         path,
		ResolvedPath: resolved,
	}), nil
}
