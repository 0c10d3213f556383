package parser

import (
	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/diag"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// class name [extends base]; items endclass
func (p *Parser) parseClassDecl() (ast.ItemID, error) {
	p.skipWS()
	start := p.pos
	if !p.word("class") {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected 'class'")
	}
	name, nameSpan, ok := p.ident()
	if !ok {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a class name")
	}
	extends := ""
	if p.word("extends") {
		base, _, ok := p.ident()
		if !ok {
			return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a base class name")
		}
		extends = base
	}
	if err := p.expect(";"); err != nil {
		return ast.NoItemID, err
	}
	var items []ast.ClassItem
	for {
		if p.word("endclass") {
			break
		}
		if p.eof() {
			return ast.NoItemID, p.unexpectedEOF("'endclass'")
		}
		item, err := p.parseClassItem()
		if err != nil {
			return ast.NoItemID, err
		}
		items = append(items, item)
	}
	return p.b.NewItem(ast.ModuleItem{
		Kind:       ast.ItemClass,
		Span:       source.Span{Start: start, End: p.pos},
		Name:       name,
		NameSpan:   nameSpan,
		Extends:    extends,
		ClassItems: items,
	}), nil
}

func (p *Parser) parseClassItem() (ast.ClassItem, error) {
	snap := p.save()
	item, err := p.parseClassProperty()
	if err == nil {
		return item, nil
	}
	p.restore(snap)
	snap = p.save()
	item, err = p.parseClassMethod()
	if err == nil {
		return item, nil
	}
	p.restore(snap)
	return ast.ClassItem{}, p.choiceError("expected a class property or method")
}

func (p *Parser) classQualifier() ast.ClassQualifier {
	switch {
	case p.word("local"):
		return ast.QualLocal
	case p.word("protected"):
		return ast.QualProtected
	}
	return ast.QualNone
}

// [qualifier] type name unpacked* [= expr];
func (p *Parser) parseClassProperty() (ast.ClassItem, error) {
	p.skipWS()
	start := p.pos
	qual := p.classQualifier()
	dataType, ok := p.typeKeyword()
	if !ok {
		if dataType, _, ok = p.ident(); !ok {
			return ast.ClassItem{}, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a property type")
		}
	}
	name, nameSpan, ok := p.ident()
	if !ok {
		return ast.ClassItem{}, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a property name")
	}
	unpacked := p.parseUnpackedDims()
	init := ast.NoExprID
	if p.lit("=") {
		var err error
		init, err = p.parseExpr()
		if err != nil {
			return ast.ClassItem{}, err
		}
	}
	if err := p.expect(";"); err != nil {
		return ast.ClassItem{}, err
	}
	return ast.ClassItem{
		Kind:      ast.ClassProperty,
		Span:      source.Span{Start: start, End: p.pos},
		Qualifier: qual,
		DataType:  dataType,
		Name:      name,
		NameSpan:  nameSpan,
		Unpacked:  unpacked,
		Init:      init,
	}, nil
}

// [qualifier] function [type] name(params); body endfunction
// [qualifier] task name(params); body endtask
func (p *Parser) parseClassMethod() (ast.ClassItem, error) {
	p.skipWS()
	start := p.pos
	qual := p.classQualifier()
	isTask := false
	switch {
	case p.word("function"):
	case p.word("task"):
		isTask = true
	default:
		return ast.ClassItem{}, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected 'function' or 'task'")
	}
	returnType := ""
	if !isTask {
		// The return type is optional; when the next word is followed by
		// '(' it is the method name instead.
		snap := p.save()
		if t, ok := p.typeKeyword(); ok {
			returnType = t
		} else if t, _, ok := p.ident(); ok {
			p.skipWS()
			if p.at(0) == '(' {
				p.restore(snap)
			} else {
				returnType = t
			}
		}
	}
	name, nameSpan, ok := p.ident()
	if !ok {
		return ast.ClassItem{}, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a method name")
	}
	if err := p.expect("("); err != nil {
		return ast.ClassItem{}, err
	}
	var params []string
	p.skipWS()
	if p.at(0) != ')' {
		for {
			param, _, ok := p.ident()
			if !ok {
				return ast.ClassItem{}, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a parameter name")
			}
			params = append(params, param)
			if !p.lit(",") {
				break
			}
		}
	}
	if err := p.expect(")"); err != nil {
		return ast.ClassItem{}, err
	}
	if err := p.expect(";"); err != nil {
		return ast.ClassItem{}, err
	}
	body := p.parseStmtList()
	endWord := "endfunction"
	if isTask {
		endWord = "endtask"
	}
	if !p.word(endWord) {
		return ast.ClassItem{}, p.choiceError("expected '" + endWord + "'")
	}
	return ast.ClassItem{
		Kind:      ast.ClassMethod,
		Span:      source.Span{Start: start, End: p.pos},
		Qualifier: qual,
		DataType:  returnType,
		Name:      name,
		NameSpan:  nameSpan,
		Params:    params,
		Body:      body,
		IsTask:    isTask,
	}, nil
}
