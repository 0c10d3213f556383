package parser

import (
	"strings"

	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/diag"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// Net and variable type keywords, longest first.
var typeKeywords = []string{
	"shortint", "longint", "integer", "supply0", "supply1",
	"triand", "trior", "logic", "uwire", "wire", "wand", "wor",
	"byte", "time", "tri0", "tri1", "tri", "int", "bit", "reg",
}

var strengthKeywords = []string{
	"supply0", "supply1", "strong0", "strong1", "pull0", "pull1",
	"weak0", "weak1", "highz0", "highz1",
}

func (p *Parser) typeKeyword() (string, bool) {
	for _, t := range typeKeywords {
		if p.word(t) {
			return t, true
		}
	}
	return "", false
}

func (p *Parser) portDirection() (ast.PortDirection, bool) {
	switch {
	case p.word("input"):
		return ast.DirInput, true
	case p.word("output"):
		return ast.DirOutput, true
	case p.word("inout"):
		return ast.DirInout, true
	}
	return ast.DirNone, false
}

// module name [(ports)]; items endmodule
func (p *Parser) parseModuleDecl() (ast.ItemID, error) {
	p.skipWS()
	start := p.pos
	if !p.word("module") {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected 'module'")
	}
	name, nameSpan, ok := p.ident()
	if !ok {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a module name")
	}
	var ports []ast.Port
	if p.lit("(") {
		var err error
		ports, err = p.parsePortList()
		if err != nil {
			return ast.NoItemID, err
		}
	}
	if err := p.expect(";"); err != nil {
		return ast.NoItemID, err
	}
	var items []ast.ItemID
	for {
		if p.word("endmodule") {
			break
		}
		if p.eof() {
			return ast.NoItemID, p.unexpectedEOF("'endmodule'")
		}
		item, err := p.parseModuleItem()
		if err != nil {
			return ast.NoItemID, err
		}
		items = append(items, item...)
	}
	return p.b.NewItem(ast.ModuleItem{
		Kind:     ast.ItemModule,
		Span:     source.Span{Start: start, End: p.pos},
		Name:     name,
		NameSpan: nameSpan,
		Ports:    ports,
		Items:    items,
	}), nil
}

// parsePortList parses header ports up to the closing parenthesis.
// A trailing comma before ')' is tolerated.
func (p *Parser) parsePortList() ([]ast.Port, error) {
	ports := []ast.Port{}
	if p.lit(")") {
		return ports, nil
	}
	for {
		port, err := p.parsePort()
		if err != nil {
			return nil, err
		}
		ports = append(ports, port)
		if p.lit(",") {
			if p.lit(")") {
				return ports, nil
			}
			continue
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return ports, nil
	}
}

// direction [type] [range] name, or a bare name in non-ANSI style.
func (p *Parser) parsePort() (ast.Port, error) {
	p.skipWS()
	start := p.pos
	dir, hasDir := p.portDirection()
	if !hasDir {
		name, nameSpan, ok := p.ident()
		if !ok {
			return ast.Port{}, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a port")
		}
		return ast.Port{Name: name, NameSpan: nameSpan, Span: nameSpan}, nil
	}
	portType, _ := p.typeKeyword()
	rng := p.parseOptionalRange()
	name, nameSpan, ok := p.ident()
	if !ok {
		return ast.Port{}, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a port name")
	}
	return ast.Port{
		Name:      name,
		NameSpan:  nameSpan,
		Direction: dir,
		PortType:  portType,
		Range:     rng,
		Span:      source.Span{Start: start, End: p.pos},
	}, nil
}

// parseModuleItem parses one construct in a module body. Variable
// declarations may expand into one item per declared name.
func (p *Parser) parseModuleItem() ([]ast.ItemID, error) {
	single := []func() (ast.ItemID, error){
		p.parseDefineDirective,
		p.parseIncludeDirective,
		p.parseGlobalClocking,
		p.parseConcurrentAssertion,
		p.parsePortDecl,
		p.parseClassDecl,
	}
	for _, alt := range single {
		snap := p.save()
		id, err := alt()
		if err == nil {
			return []ast.ItemID{id}, nil
		}
		p.restore(snap)
	}
	snap := p.save()
	if ids, err := p.parseVarDecl(); err == nil {
		return ids, nil
	}
	p.restore(snap)
	snap = p.save()
	if id, err := p.parseContinuousAssign(); err == nil {
		return []ast.ItemID{id}, nil
	}
	p.restore(snap)
	snap = p.save()
	if id, err := p.parseProcBlock(); err == nil {
		return []ast.ItemID{id}, nil
	}
	p.restore(snap)
	return nil, p.choiceError("expected a module item")
}

// input|output|inout type name;
func (p *Parser) parsePortDecl() (ast.ItemID, error) {
	p.skipWS()
	start := p.pos
	dir, ok := p.portDirection()
	if !ok {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a port direction")
	}
	portType, ok := p.typeKeyword()
	if !ok {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a port type")
	}
	name, nameSpan, ok := p.ident()
	if !ok {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a port name")
	}
	if err := p.expect(";"); err != nil {
		return ast.NoItemID, err
	}
	return p.b.NewItem(ast.ModuleItem{
		Kind:      ast.ItemPortDecl,
		Span:      source.Span{Start: start, End: p.pos},
		Name:      name,
		NameSpan:  nameSpan,
		Direction: dir,
		PortType:  portType,
	}), nil
}

// parseVarDecl parses a declaration list and emits one item per name.
// All names share the declaration's type, signing, strength, packed
// range, and delay.
func (p *Parser) parseVarDecl() ([]ast.ItemID, error) {
	p.skipWS()
	start := p.pos
	dataType, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	signing := ""
	for _, s := range []string{"signed", "unsigned"} {
		if p.word(s) {
			signing = s
			break
		}
	}
	strength := p.parseOptionalDriveStrength()
	packed := p.parseOptionalRange()
	delay := p.parseOptionalDelay()

	type declared struct {
		name     string
		nameSpan source.Span
		unpacked []ast.UnpackedDim
		init     ast.ExprID
	}
	var vars []declared
	for {
		name, nameSpan, ok := p.ident()
		if !ok {
			return nil, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a variable name")
		}
		unpacked := p.parseUnpackedDims()
		init := ast.NoExprID
		if p.lit("=") {
			init, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		vars = append(vars, declared{name, nameSpan, unpacked, init})
		if !p.lit(",") {
			break
		}
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	span := source.Span{Start: start, End: p.pos}
	ids := make([]ast.ItemID, 0, len(vars))
	for _, v := range vars {
		ids = append(ids, p.b.NewItem(ast.ModuleItem{
			Kind:     ast.ItemVarDecl,
			Span:     span,
			Name:     v.name,
			NameSpan: v.nameSpan,
			DataType: dataType,
			Signing:  signing,
			Strength: strength,
			Delay:    delay,
			Packed:   packed,
			Unpacked: v.unpacked,
			Init:     v.init,
		}))
	}
	return ids, nil
}

// parseDataType accepts a union/struct composite, a type keyword, or a
// user type name. Composite members are recognized but not modeled;
// the declaration keeps "union" or "struct" as its type.
func (p *Parser) parseDataType() (string, error) {
	for _, composite := range []string{"union", "struct"} {
		if !p.word(composite) {
			continue
		}
		p.word("packed")
		if err := p.expect("{"); err != nil {
			return "", err
		}
		seen := 0
		for {
			snap := p.save()
			if err := p.parseCompositeMember(); err != nil {
				p.restore(snap)
				break
			}
			seen++
		}
		if seen == 0 {
			return "", p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a member declaration")
		}
		if err := p.expect("}"); err != nil {
			return "", err
		}
		return composite, nil
	}
	if t, ok := p.typeKeyword(); ok {
		return t, nil
	}
	if name, _, ok := p.ident(); ok {
		return name, nil
	}
	return "", p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a data type")
}

// type [range] name;
func (p *Parser) parseCompositeMember() error {
	if _, ok := p.typeKeyword(); !ok {
		if _, _, ok := p.ident(); !ok {
			return p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a member type")
		}
	}
	p.parseOptionalRange()
	if _, _, ok := p.ident(); !ok {
		return p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a member name")
	}
	return p.expect(";")
}

func (p *Parser) parseOptionalDriveStrength() *ast.DriveStrength {
	snap := p.save()
	if !p.lit("(") {
		return nil
	}
	s0, ok := p.strengthKeyword()
	if !ok {
		p.restore(snap)
		return nil
	}
	if !p.lit(",") {
		p.restore(snap)
		return nil
	}
	s1, ok := p.strengthKeyword()
	if !ok {
		p.restore(snap)
		return nil
	}
	if !p.lit(")") {
		p.restore(snap)
		return nil
	}
	return &ast.DriveStrength{Strength0: s0, Strength1: s1}
}

func (p *Parser) strengthKeyword() (string, bool) {
	for _, s := range strengthKeywords {
		if p.word(s) {
			return s, true
		}
	}
	return "", false
}

// parseOptionalRange parses a packed range like [7:0]. Bounds are
// numbers or identifiers, kept as text.
func (p *Parser) parseOptionalRange() *ast.Range {
	snap := p.save()
	if !p.lit("[") {
		return nil
	}
	msb, ok := p.rangeBound()
	if !ok {
		p.restore(snap)
		return nil
	}
	if !p.lit(":") {
		p.restore(snap)
		return nil
	}
	lsb, ok := p.rangeBound()
	if !ok {
		p.restore(snap)
		return nil
	}
	if !p.lit("]") {
		p.restore(snap)
		return nil
	}
	return &ast.Range{MSB: msb, LSB: lsb}
}

func (p *Parser) rangeBound() (string, bool) {
	if n, _, ok := p.number(); ok {
		return n, true
	}
	if name, _, ok := p.ident(); ok {
		return name, true
	}
	return "", false
}

// parseUnpackedDims parses [], [N], and [m:l] suffixes after a name.
func (p *Parser) parseUnpackedDims() []ast.UnpackedDim {
	var dims []ast.UnpackedDim
	for {
		snap := p.save()
		if !p.lit("[") {
			return dims
		}
		if p.lit("]") {
			dims = append(dims, ast.UnpackedDim{Kind: ast.UnpackedDynamic})
			continue
		}
		bound, ok := p.rangeBound()
		if !ok {
			p.restore(snap)
			return dims
		}
		if p.lit(":") {
			lsb, ok := p.rangeBound()
			if ok && p.lit("]") {
				dims = append(dims, ast.UnpackedDim{
					Kind:  ast.UnpackedRange,
					Range: ast.Range{MSB: bound, LSB: lsb},
				})
				continue
			}
			p.restore(snap)
			return dims
		}
		if !p.lit("]") {
			p.restore(snap)
			return dims
		}
		dims = append(dims, ast.UnpackedDim{Kind: ast.UnpackedSize, Size: bound})
	}
}

// #number delay annotation.
func (p *Parser) parseOptionalDelay() *ast.Delay {
	snap := p.save()
	if !p.lit("#") {
		return nil
	}
	value, _, ok := p.number()
	if !ok {
		p.restore(snap)
		return nil
	}
	return &ast.Delay{Value: value}
}

// assign [#delay] target = expr;
func (p *Parser) parseContinuousAssign() (ast.ItemID, error) {
	p.skipWS()
	start := p.pos
	if !p.word("assign") {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected 'assign'")
	}
	delay := p.parseOptionalDelay()
	target, err := p.parseExpr()
	if err != nil {
		return ast.NoItemID, err
	}
	if err := p.expect("="); err != nil {
		return ast.NoItemID, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return ast.NoItemID, err
	}
	if err := p.expect(";"); err != nil {
		return ast.NoItemID, err
	}
	return p.b.NewItem(ast.ModuleItem{
		Kind:   ast.ItemAssign,
		Span:   source.Span{Start: start, End: p.pos},
		Delay:  delay,
		Target: target,
		Value:  value,
	}), nil
}

// initial|always|always_comb|always_ff|final [@(...)] body
func (p *Parser) parseProcBlock() (ast.ItemID, error) {
	p.skipWS()
	start := p.pos
	var kind ast.ProcBlockKind
	switch {
	case p.word("always_comb"):
		kind = ast.BlockAlwaysComb
	case p.word("always_ff"):
		kind = ast.BlockAlwaysFF
	case p.word("always"):
		kind = ast.BlockAlways
	case p.word("initial"):
		kind = ast.BlockInitial
	case p.word("final"):
		kind = ast.BlockFinal
	default:
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected a procedural block")
	}
	event, err := p.parseOptionalEventControl()
	if err != nil {
		return ast.NoItemID, err
	}
	var stmts []ast.StmtID
	if p.word("begin") {
		stmts = p.parseStmtList()
		if !p.word("end") {
			return ast.NoItemID, p.choiceError("expected 'end'")
		}
	} else {
		stmt, err := p.parseStmt()
		if err != nil {
			return ast.NoItemID, err
		}
		stmts = []ast.StmtID{stmt}
	}
	return p.b.NewItem(ast.ModuleItem{
		Kind:      ast.ItemProcBlock,
		Span:      source.Span{Start: start, End: p.pos},
		BlockKind: kind,
		EventText: event,
		Stmts:     stmts,
	}), nil
}

// parseConcurrentAssertion parses an assert-property item at module or
// top-level scope. Property expressions using sequence operators the
// expression grammar cannot model fall back to an opaque capture of
// everything up to the semicolon.
func (p *Parser) parseConcurrentAssertion() (ast.ItemID, error) {
	p.skipWS()
	start := p.pos
	snap := p.save()
	if stmt, err := p.parseAssertPropertyStmt(); err == nil {
		return p.b.NewItem(ast.ModuleItem{
			Kind: ast.ItemAssertion,
			Span: source.Span{Start: start, End: p.pos},
			Stmt: stmt,
		}), nil
	}
	p.restore(snap)
	if !p.word("assert") {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected 'assert'")
	}
	if !p.word("property") {
		return ast.NoItemID, p.errorAt(diag.SynExpectedToken, p.hereSpan(), "expected 'property'")
	}
	p.skipWS()
	rawStart := p.pos
	for !p.eof() && p.src[p.pos] != ';' {
		p.pos++
	}
	if p.eof() {
		return ast.NoItemID, p.unexpectedEOF("';'")
	}
	raw := strings.TrimSpace(string(p.src[rawStart:p.pos]))
	rawSpan := source.Span{Start: rawStart, End: p.pos}
	p.pos++
	prop := p.b.NewExpr(ast.Expr{Kind: ast.ExprIdent, Span: rawSpan, Text: raw})
	stmt := p.b.NewStmt(ast.Stmt{
		Kind:  ast.StmtAssertProperty,
		Span:  source.Span{Start: start, End: p.pos},
		Value: prop,
	})
	return p.b.NewItem(ast.ModuleItem{
		Kind: ast.ItemAssertion,
		Span: source.Span{Start: start, End: p.pos},
		Stmt: stmt,
	}), nil
}

// parseOptionalEventControl captures @(...) as raw text, empty when
// absent.
func (p *Parser) parseOptionalEventControl() (string, error) {
	if !p.lit("@") {
		return "", nil
	}
	if err := p.expect("("); err != nil {
		return "", err
	}
	start := p.pos
	for {
		if p.eof() {
			return "", p.unexpectedEOF("')'")
		}
		if p.src[p.pos] == ')' {
			break
		}
		p.pos++
	}
	body := strings.TrimSpace(string(p.src[start:p.pos]))
	p.pos++
	return "@(" + body + ")", nil
}
