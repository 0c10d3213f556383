package parser

import (
	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/diag"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// Binary operators ordered so that every longer operator is tried
// before its prefixes.
var binaryOps = []struct {
	text string
	op   ast.BinaryOp
}{
	{"<->", ast.OpLogEquiv},
	{"->", ast.OpLogImpl},
	{"<<<", ast.OpAShl},
	{">>>", ast.OpAShr},
	{"<<", ast.OpShl},
	{">>", ast.OpShr},
	{"<=", ast.OpLe},
	{">=", ast.OpGe},
	{"===", ast.OpCaseEq},
	{"!==", ast.OpCaseNe},
	{"==?", ast.OpWildEq},
	{"!=?", ast.OpWildNe},
	{"==", ast.OpEq},
	{"!=", ast.OpNe},
	{"&&", ast.OpLogAnd},
	{"||", ast.OpLogOr},
	{"**", ast.OpPower},
	{"~^", ast.OpBitXnor},
	{"<", ast.OpLt},
	{">", ast.OpGt},
	{"+", ast.OpAdd},
	{"-", ast.OpSub},
	{"*", ast.OpMul},
	{"/", ast.OpDiv},
	{"%", ast.OpMod},
	{"&", ast.OpBitAnd},
	{"|", ast.OpBitOr},
	{"^", ast.OpBitXor},
}

var unaryOps = []struct {
	text string
	op   ast.UnaryOp
}{
	{"~&", ast.OpRedNand},
	{"~|", ast.OpRedNor},
	{"~^", ast.OpRedXnor},
	{"~", ast.OpNot},
	{"!", ast.OpLogNot},
	{"+", ast.OpUnaryPlus},
	{"-", ast.OpUnaryMinus},
	{"&", ast.OpRedAnd},
	{"|", ast.OpRedOr},
	{"^", ast.OpRedXor},
}

// parseExpr parses a flat left-associative chain of binary operations.
// All operators share one precedence level.
func (p *Parser) parseExpr() (ast.ExprID, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return ast.NoExprID, err
	}
	for {
		snap := p.save()
		op, ok := p.binaryOp()
		if !ok {
			break
		}
		right, err := p.parsePrimary()
		if err != nil {
			// The operator belongs to an outer construct, e.g. the
			// '=' run-up of a '<=' that was never there. Back off.
			p.restore(snap)
			break
		}
		span := p.b.Exprs.Get(uint32(left)).Span.Cover(p.b.Exprs.Get(uint32(right)).Span)
		left = p.b.NewExpr(ast.Expr{
			Kind:  ast.ExprBinary,
			Span:  span,
			BinOp: op,
			Left:  left,
			Right: right,
		})
	}
	return left, nil
}

func (p *Parser) binaryOp() (ast.BinaryOp, bool) {
	p.skipWS()
	for _, cand := range binaryOps {
		if p.lit(cand.text) {
			return cand.op, true
		}
	}
	return 0, false
}

func (p *Parser) unaryOp() (ast.UnaryOp, source.Span, bool) {
	p.skipWS()
	start := p.pos
	for _, cand := range unaryOps {
		if p.lit(cand.text) {
			return cand.op, source.Span{Start: start, End: p.pos}, true
		}
	}
	return 0, source.Span{}, false
}

// parsePrimary parses [unary] atom, a member-access chain, and at most
// one trailing call argument list.
func (p *Parser) parsePrimary() (ast.ExprID, error) {
	base, err := p.parseUnaryOrAtom()
	if err != nil {
		return ast.NoExprID, err
	}
	for {
		snap := p.save()
		if !p.lit(".") {
			break
		}
		name, nameSpan, ok := p.ident()
		if !ok {
			p.restore(snap)
			break
		}
		span := p.b.Exprs.Get(uint32(base)).Span.Cover(nameSpan)
		base = p.b.NewExpr(ast.Expr{
			Kind:     ast.ExprMember,
			Span:     span,
			Text:     name,
			NameSpan: nameSpan,
			Left:     base,
		})
	}
	snap := p.save()
	if p.lit("(") {
		args, err := p.parseArgs()
		if err == nil && p.lit(")") {
			span := source.Span{Start: p.b.Exprs.Get(uint32(base)).Span.Start, End: p.pos}
			return p.b.NewExpr(ast.Expr{
				Kind: ast.ExprCall,
				Span: span,
				Left: base,
				Args: args,
			}), nil
		}
		p.restore(snap)
	}
	return base, nil
}

func (p *Parser) parseUnaryOrAtom() (ast.ExprID, error) {
	snap := p.save()
	if op, opSpan, ok := p.unaryOp(); ok {
		operand, err := p.parseAtom()
		if err == nil {
			span := opSpan.Cover(p.b.Exprs.Get(uint32(operand)).Span)
			return p.b.NewExpr(ast.Expr{
				Kind: ast.ExprUnary,
				Span: span,
				UnOp: op,
				Left: operand,
			}), nil
		}
		p.restore(snap)
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() (ast.ExprID, error) {
	p.skipWS()
	start := p.pos

	if p.word("new") {
		args, err := p.parseOptionalArgs()
		if err != nil {
			return ast.NoExprID, err
		}
		return p.b.NewExpr(ast.Expr{
			Kind: ast.ExprNew,
			Span: source.Span{Start: start, End: p.pos},
			Args: args,
		}), nil
	}

	if p.lit("$") {
		// System names may collide with reserved words ($time), so the
		// keyword check does not apply here.
		name, nameSpan, ok := p.identOrKeyword()
		if !ok {
			return ast.NoExprID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a system function name after '$'")
		}
		args, err := p.parseOptionalArgs()
		if err != nil {
			return ast.NoExprID, err
		}
		return p.b.NewExpr(ast.Expr{
			Kind:     ast.ExprSystemCall,
			Span:     source.Span{Start: start, End: p.pos},
			Text:     name,
			NameSpan: source.Span{Start: start, End: nameSpan.End},
			Args:     args,
		}), nil
	}

	if p.lit("`") {
		name, nameSpan, ok := p.ident()
		if !ok {
			return ast.NoExprID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a macro name after '`'")
		}
		args, err := p.parseOptionalArgs()
		if err != nil {
			return ast.NoExprID, err
		}
		return p.b.NewExpr(ast.Expr{
			Kind:     ast.ExprMacroUsage,
			Span:     source.Span{Start: start, End: p.pos},
			Text:     name,
			NameSpan: source.Span{Start: start, End: nameSpan.End},
			Args:     args,
		}), nil
	}

	if text, sp, ok := p.stringLit(); ok {
		return p.b.NewExpr(ast.Expr{Kind: ast.ExprString, Span: sp, Text: text}), nil
	}
	if name, sp, ok := p.ident(); ok {
		return p.b.NewExpr(ast.Expr{Kind: ast.ExprIdent, Span: sp, Text: name}), nil
	}
	if text, sp, ok := p.number(); ok {
		return p.b.NewExpr(ast.Expr{Kind: ast.ExprNumber, Span: sp, Text: text}), nil
	}

	if p.lit("(") {
		inner, err := p.parseExpr()
		if err != nil {
			return ast.NoExprID, err
		}
		if err := p.expect(")"); err != nil {
			return ast.NoExprID, err
		}
		return inner, nil
	}

	if p.eof() {
		return ast.NoExprID, p.unexpectedEOF("an expression")
	}
	return ast.NoExprID, p.errorAt(diag.SynUnexpectedToken, p.hereSpan(), "expected an expression")
}

// parseOptionalArgs parses a parenthesized argument list when one
// follows, returning nil when it does not.
func (p *Parser) parseOptionalArgs() ([]ast.ExprID, error) {
	snap := p.save()
	if !p.lit("(") {
		return nil, nil
	}
	args, err := p.parseArgs()
	if err != nil {
		p.restore(snap)
		return nil, nil
	}
	if err := p.expect(")"); err != nil {
		p.restore(snap)
		return nil, nil
	}
	return args, nil
}

// parseArgs parses zero or more comma-separated expressions. The
// closing parenthesis is left for the caller.
func (p *Parser) parseArgs() ([]ast.ExprID, error) {
	p.skipWS()
	if p.at(0) == ')' {
		return []ast.ExprID{}, nil
	}
	var args []ast.ExprID
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.lit(",") {
			return args, nil
		}
	}
}
