// Package parser turns SystemVerilog text into an arena-backed AST.
//
// The grammar is recognized by recursive descent over raw bytes with
// ordered alternatives and backtracking. Child nodes are allocated
// before their parents, so every arena reference points strictly
// backwards. The first blocking syntax error aborts the parse.
package parser

import (
	"fmt"

	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/diag"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// Options tunes a single parse.
type Options struct {
	// IncludeResolver maps an `include path to an absolute file path.
	// Used when directives are kept in the tree instead of being
	// expanded up front, e.g. for editor buffers. May be nil.
	IncludeResolver func(path string) (string, bool)
}

// Parser holds the cursor state for one file.
type Parser struct {
	text *source.Text
	src  []byte
	pos  uint32
	b    *ast.Builder
	opts Options

	// Farthest failure seen across backtracking, reported when no
	// alternative matches. Beats the generic error at the choice point.
	maxErr    error
	maxErrPos uint32
}

// Parse parses content into a SourceUnit. On a syntax error it returns
// a *diag.Error positioned in content.
func Parse(content string, opts Options) (*ast.SourceUnit, error) {
	text := source.NewTextString(content)
	p := &Parser{
		text: text,
		src:  text.Content,
		b:    ast.NewBuilder(uint(len(content)/32 + 16)),
		opts: opts,
	}
	if err := p.parseSourceText(); err != nil {
		return nil, err
	}
	return p.b.Finish(text), nil
}

func (p *Parser) parseSourceText() error {
	for {
		p.skipWS()
		if p.eof() {
			return nil
		}
		id, err := p.parseTopLevel()
		if err != nil {
			return err
		}
		p.b.PushRoot(id)
	}
}

// parseTopLevel tries each top-level form in order. Directives come
// first so a backtick never reaches the expression grammar.
func (p *Parser) parseTopLevel() (ast.ItemID, error) {
	alternatives := []func() (ast.ItemID, error){
		p.parseDefineDirective,
		p.parseIncludeDirective,
		p.parseClassDecl,
		p.parseModuleDecl,
		p.parseGlobalClocking,
		p.parseConcurrentAssertion,
		p.parsePortDecl,
	}
	for _, alt := range alternatives {
		snap := p.save()
		id, err := alt()
		if err == nil {
			return id, nil
		}
		p.restore(snap)
	}
	return ast.NoItemID, p.choiceError("expected a module, class, clocking block, assertion, port declaration, or directive")
}

// snapshot captures the cursor and arena high-water marks so a failed
// alternative can be rolled back without leaving orphan nodes.
type snapshot struct {
	pos   uint32
	exprs uint32
	stmts uint32
	items uint32
}

func (p *Parser) save() snapshot {
	return snapshot{
		pos:   p.pos,
		exprs: p.b.Exprs.Len(),
		stmts: p.b.Stmts.Len(),
		items: p.b.Items.Len(),
	}
}

func (p *Parser) restore(s snapshot) {
	p.pos = s.pos
	p.b.Exprs.Truncate(s.exprs)
	p.b.Stmts.Truncate(s.stmts)
	p.b.Items.Truncate(s.items)
}

// errorAt builds a blocking syntax error and remembers the farthest one.
func (p *Parser) errorAt(code diag.Code, span source.Span, msg string) error {
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  msg,
		Primary:  span,
	}
	err := diag.NewError(d, p.text)
	if p.maxErr == nil || span.Start >= p.maxErrPos {
		p.maxErr = err
		p.maxErrPos = span.Start
	}
	return err
}

// choiceError reports the most advanced failure of a choice, falling
// back to a generic message at the current token.
func (p *Parser) choiceError(msg string) error {
	if p.maxErr != nil && p.maxErrPos > p.pos {
		return p.maxErr
	}
	return p.errorAt(diag.SynUnexpectedToken, p.hereSpan(), msg)
}

// hereSpan covers the byte at the cursor, or is empty at end of input.
func (p *Parser) hereSpan() source.Span {
	end := p.pos
	if end < uint32(len(p.src)) {
		end++
	}
	return source.Span{Start: p.pos, End: end}
}

func (p *Parser) unexpectedEOF(what string) error {
	return p.errorAt(diag.SynUnexpectedEOF, p.hereSpan(), fmt.Sprintf("unexpected end of input, expected %s", what))
}
