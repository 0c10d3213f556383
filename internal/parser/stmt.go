package parser

import (
	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/diag"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// Assignment operators, longest first so compound forms win over their
// prefixes.
var assignOps = []struct {
	text string
	op   ast.AssignOp
}{
	{">>>=", ast.AssignAShr},
	{"<<<=", ast.AssignAShl},
	{">>=", ast.AssignShr},
	{"<<=", ast.AssignShl},
	{"^=", ast.AssignXor},
	{"+=", ast.AssignAdd},
	{"-=", ast.AssignSub},
	{"*=", ast.AssignMul},
	{"/=", ast.AssignDiv},
	{"%=", ast.AssignMod},
	{"&=", ast.AssignAnd},
	{"|=", ast.AssignOr},
	{"=", ast.AssignPlain},
}

// Data types accepted for a local variable declaration statement.
var stmtVarTypes = []string{
	"logic", "bit", "int", "byte", "reg", "integer", "time",
	"shortint", "longint", "real", "realtime",
}

// parseStmt tries each statement form in order.
func (p *Parser) parseStmt() (ast.StmtID, error) {
	alternatives := []func() (ast.StmtID, error){
		p.parseAssertPropertyStmt,
		p.parseCaseStmt,
		p.parseSystemCallStmt,
		p.parseVarDeclStmt,
		p.parseAssignStmt,
		p.parseExprStmt,
	}
	for _, alt := range alternatives {
		snap := p.save()
		id, err := alt()
		if err == nil {
			return id, nil
		}
		p.restore(snap)
	}
	return ast.NoStmtID, p.choiceError("expected a statement")
}

// parseStmtList parses statements until none match. Used for begin/end
// bodies and method bodies, whose terminator keyword never starts a
// statement.
func (p *Parser) parseStmtList() []ast.StmtID {
	var stmts []ast.StmtID
	for {
		snap := p.save()
		id, err := p.parseStmt()
		if err != nil {
			p.restore(snap)
			return stmts
		}
		stmts = append(stmts, id)
	}
}

// assert property (expr) [else $task(args)];
func (p *Parser) parseAssertPropertyStmt() (ast.StmtID, error) {
	p.skipWS()
	start := p.pos
	if !p.word("assert") {
		return ast.NoStmtID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected 'assert'")
	}
	if !p.word("property") {
		return ast.NoStmtID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected 'property'")
	}
	if err := p.expect("("); err != nil {
		return ast.NoStmtID, err
	}
	prop, err := p.parseExpr()
	if err != nil {
		return ast.NoStmtID, err
	}
	if err := p.expect(")"); err != nil {
		return ast.NoStmtID, err
	}
	action := ast.NoStmtID
	if p.word("else") {
		action, err = p.parseActionSystemCall()
		if err != nil {
			return ast.NoStmtID, err
		}
	}
	if err := p.expect(";"); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.NewStmt(ast.Stmt{
		Kind:   ast.StmtAssertProperty,
		Span:   source.Span{Start: start, End: p.pos},
		Value:  prop,
		Action: action,
	}), nil
}

// parseActionSystemCall parses the $call(args) of an assertion else
// branch. The semicolon stays with the caller.
func (p *Parser) parseActionSystemCall() (ast.StmtID, error) {
	p.skipWS()
	start := p.pos
	if !p.lit("$") {
		return ast.NoStmtID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a system task after 'else'")
	}
	name, nameSpan, ok := p.identOrKeyword()
	if !ok {
		return ast.NoStmtID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a system task name after '$'")
	}
	args, err := p.parseOptionalArgs()
	if err != nil {
		return ast.NoStmtID, err
	}
	return p.b.NewStmt(ast.Stmt{
		Kind:     ast.StmtSystemCall,
		Span:     source.Span{Start: start, End: p.pos},
		Name:     name,
		NameSpan: source.Span{Start: start, End: nameSpan.End},
		Args:     args,
	}), nil
}

// [unique|unique0|priority] case|casex|casez (expr) ... endcase
// The body is skipped, not modeled.
func (p *Parser) parseCaseStmt() (ast.StmtID, error) {
	p.skipWS()
	start := p.pos
	modifier := ""
	for _, m := range []string{"unique0", "unique", "priority"} {
		if p.word(m) {
			modifier = m
			break
		}
	}
	kind := ""
	for _, k := range []string{"casez", "casex", "case"} {
		if p.word(k) {
			kind = k
			break
		}
	}
	if kind == "" {
		return ast.NoStmtID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected 'case'")
	}
	if err := p.expect("("); err != nil {
		return ast.NoStmtID, err
	}
	subject, err := p.parseExpr()
	if err != nil {
		return ast.NoStmtID, err
	}
	if err := p.expect(")"); err != nil {
		return ast.NoStmtID, err
	}
	if err := p.skipToWord("endcase"); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.NewStmt(ast.Stmt{
		Kind:         ast.StmtCase,
		Span:         source.Span{Start: start, End: p.pos},
		Value:        subject,
		CaseModifier: modifier,
		CaseKind:     kind,
	}), nil
}

// skipToWord advances past the next occurrence of kw as a whole word,
// skipping comments and string literals on the way.
func (p *Parser) skipToWord(kw string) error {
	for {
		p.skipWS()
		if p.eof() {
			return p.unexpectedEOF("'" + kw + "'")
		}
		if _, _, ok := p.stringLit(); ok {
			continue
		}
		if isIdentStart(p.src[p.pos]) {
			name, _, _ := p.identOrKeyword()
			if name == kw {
				return nil
			}
			continue
		}
		p.pos++
	}
}

// $name(args);
func (p *Parser) parseSystemCallStmt() (ast.StmtID, error) {
	p.skipWS()
	start := p.pos
	if !p.lit("$") {
		return ast.NoStmtID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected '$'")
	}
	name, nameSpan, ok := p.identOrKeyword()
	if !ok {
		return ast.NoStmtID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a system task name after '$'")
	}
	args, err := p.parseOptionalArgs()
	if err != nil {
		return ast.NoStmtID, err
	}
	if err := p.expect(";"); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.NewStmt(ast.Stmt{
		Kind:     ast.StmtSystemCall,
		Span:     source.Span{Start: start, End: p.pos},
		Name:     name,
		NameSpan: source.Span{Start: start, End: nameSpan.End},
		Args:     args,
	}), nil
}

// type name [= expr];
func (p *Parser) parseVarDeclStmt() (ast.StmtID, error) {
	p.skipWS()
	start := p.pos
	dataType := ""
	for _, t := range stmtVarTypes {
		if p.word(t) {
			dataType = t
			break
		}
	}
	if dataType == "" {
		return ast.NoStmtID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a data type")
	}
	name, nameSpan, ok := p.ident()
	if !ok {
		return ast.NoStmtID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a variable name")
	}
	init := ast.NoExprID
	if p.lit("=") {
		var err error
		init, err = p.parseExpr()
		if err != nil {
			return ast.NoStmtID, err
		}
	}
	if err := p.expect(";"); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.NewStmt(ast.Stmt{
		Kind:     ast.StmtVarDecl,
		Span:     source.Span{Start: start, End: p.pos},
		Name:     name,
		NameSpan: nameSpan,
		DataType: dataType,
		Value:    init,
	}), nil
}

// target op= value;
func (p *Parser) parseAssignStmt() (ast.StmtID, error) {
	p.skipWS()
	start := p.pos
	target, err := p.parseExpr()
	if err != nil {
		return ast.NoStmtID, err
	}
	op, ok := p.assignOp()
	if !ok {
		return ast.NoStmtID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected an assignment operator")
	}
	value, err := p.parseExpr()
	if err != nil {
		return ast.NoStmtID, err
	}
	if err := p.expect(";"); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.NewStmt(ast.Stmt{
		Kind:     ast.StmtAssign,
		Span:     source.Span{Start: start, End: p.pos},
		Target:   target,
		AssignOp: op,
		Value:    value,
	}), nil
}

func (p *Parser) assignOp() (ast.AssignOp, bool) {
	p.skipWS()
	for _, cand := range assignOps {
		if p.lit(cand.text) {
			return cand.op, true
		}
	}
	return 0, false
}

// expr;
func (p *Parser) parseExprStmt() (ast.StmtID, error) {
	p.skipWS()
	start := p.pos
	value, err := p.parseExpr()
	if err != nil {
		return ast.NoStmtID, err
	}
	if err := p.expect(";"); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.NewStmt(ast.Stmt{
		Kind:  ast.StmtExpr,
		Span:  source.Span{Start: start, End: p.pos},
		Value: value,
	}), nil
}
