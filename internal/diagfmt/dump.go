package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
)

// Dump writes an indented tree of the parsed unit. The output is meant for
// humans debugging the parser, not for machine consumption; verbose batch
// runs print it after a successful parse.
func Dump(w io.Writer, u *ast.SourceUnit) {
	d := dumper{w: w, u: u}
	fmt.Fprintf(w, "SourceUnit (%d items)\n", len(u.Items))
	for _, id := range u.Items {
		d.item(id, 1)
	}
}

type dumper struct {
	w io.Writer
	u *ast.SourceUnit
}

func (d *dumper) printf(depth int, format string, args ...any) {
	fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (d *dumper) item(id ast.ItemID, depth int) {
	it := d.u.Item(id)
	if it == nil {
		return
	}
	switch it.Kind {
	case ast.ItemModule:
		d.printf(depth, "Module %q [%s]", it.Name, it.Span)
		for _, p := range it.Ports {
			d.printf(depth+1, "Port %s%s", portPrefix(p), p.Name)
		}
		for _, child := range it.Items {
			d.item(child, depth+1)
		}
	case ast.ItemPortDecl:
		d.printf(depth, "PortDecl %s %s %q", it.Direction, it.PortType, it.Name)
	case ast.ItemVarDecl:
		d.printf(depth, "VarDecl %s %q%s", varType(it), it.Name, initSuffix(d.u, it.Init))
	case ast.ItemAssign:
		d.printf(depth, "Assign %s = %s", d.expr(it.Target), d.expr(it.Value))
	case ast.ItemProcBlock:
		ev := ""
		if it.EventText != "" {
			ev = " " + it.EventText
		}
		d.printf(depth, "ProcBlock %s%s", it.BlockKind, ev)
		for _, s := range it.Stmts {
			d.stmt(s, depth+1)
		}
	case ast.ItemDefine:
		d.printf(depth, "Define %q -> %q", it.Name, it.Replacement)
	case ast.ItemInclude:
		d.printf(depth, "Include %q", it.Path)
	case ast.ItemClass:
		ext := ""
		if it.Extends != "" {
			ext = " extends " + it.Extends
		}
		d.printf(depth, "Class %q%s", it.Name, ext)
		for _, ci := range it.ClassItems {
			d.classItem(ci, depth+1)
		}
	case ast.ItemAssertion:
		d.printf(depth, "Assertion")
		d.stmt(it.Stmt, depth+1)
	case ast.ItemGlobalClocking:
		d.printf(depth, "GlobalClocking %q %s", it.Name, d.expr(it.ClockingEvent))
	}
}

func (d *dumper) classItem(ci ast.ClassItem, depth int) {
	switch ci.Kind {
	case ast.ClassProperty:
		qual := ""
		if q := ci.Qualifier.String(); q != "" {
			qual = q + " "
		}
		d.printf(depth, "Property %s%s %q%s", qual, ci.DataType, ci.Name, initSuffix(d.u, ci.Init))
	case ast.ClassMethod:
		kind := "Function"
		if ci.IsTask {
			kind = "Task"
		}
		d.printf(depth, "%s %q(%s) -> %s", kind, ci.Name, strings.Join(ci.Params, ", "), ci.DataType)
		for _, s := range ci.Body {
			d.stmt(s, depth+1)
		}
	}
}

func (d *dumper) stmt(id ast.StmtID, depth int) {
	s := d.u.Stmt(id)
	if s == nil {
		return
	}
	switch s.Kind {
	case ast.StmtAssign:
		d.printf(depth, "Assign %s %s %s", d.expr(s.Target), s.AssignOp, d.expr(s.Value))
	case ast.StmtSystemCall:
		d.printf(depth, "SystemCall $%s(%s)", s.Name, d.exprList(s.Args))
	case ast.StmtCase:
		mod := ""
		if s.CaseModifier != "" {
			mod = s.CaseModifier + " "
		}
		d.printf(depth, "Case %s%s (%s)", mod, s.CaseKind, d.expr(s.Value))
	case ast.StmtExpr:
		d.printf(depth, "ExprStmt %s", d.expr(s.Value))
	case ast.StmtAssertProperty:
		d.printf(depth, "AssertProperty %s", d.expr(s.Value))
		if s.Action != 0 {
			d.stmt(s.Action, depth+1)
		}
	case ast.StmtVarDecl:
		d.printf(depth, "VarDecl %s %q%s", s.DataType, s.Name, initSuffix(d.u, s.Value))
	}
}

func (d *dumper) exprList(ids []ast.ExprID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = d.expr(id)
	}
	return strings.Join(parts, ", ")
}

// expr renders an expression back to a compact source-like form.
func (d *dumper) expr(id ast.ExprID) string {
	e := d.u.Expr(id)
	if e == nil {
		return "<none>"
	}
	switch e.Kind {
	case ast.ExprIdent, ast.ExprNumber:
		return e.Text
	case ast.ExprString:
		return fmt.Sprintf("%q", e.Text)
	case ast.ExprBinary:
		return fmt.Sprintf("(%s %s %s)", d.expr(e.Left), e.BinOp, d.expr(e.Right))
	case ast.ExprUnary:
		return fmt.Sprintf("%s%s", e.UnOp, d.expr(e.Left))
	case ast.ExprMacroUsage:
		if len(e.Args) > 0 {
			return fmt.Sprintf("`%s(%s)", e.Text, d.exprList(e.Args))
		}
		return "`" + e.Text
	case ast.ExprSystemCall:
		return fmt.Sprintf("$%s(%s)", e.Text, d.exprList(e.Args))
	case ast.ExprNew:
		if len(e.Args) > 0 {
			return fmt.Sprintf("new(%s)", d.exprList(e.Args))
		}
		return "new"
	case ast.ExprMember:
		return fmt.Sprintf("%s.%s", d.expr(e.Left), e.Text)
	case ast.ExprCall:
		return fmt.Sprintf("%s(%s)", d.expr(e.Left), d.exprList(e.Args))
	}
	return "<?>"
}

func portPrefix(p ast.Port) string {
	var sb strings.Builder
	if dir := p.Direction.String(); dir != "" {
		sb.WriteString(dir)
		sb.WriteByte(' ')
	}
	if p.PortType != "" {
		sb.WriteString(p.PortType)
		sb.WriteByte(' ')
	}
	if p.Range != nil {
		fmt.Fprintf(&sb, "[%s:%s] ", p.Range.MSB, p.Range.LSB)
	}
	return sb.String()
}

func varType(it *ast.ModuleItem) string {
	var sb strings.Builder
	sb.WriteString(it.DataType)
	if it.Signing != "" {
		sb.WriteByte(' ')
		sb.WriteString(it.Signing)
	}
	if it.Packed != nil {
		fmt.Fprintf(&sb, " [%s:%s]", it.Packed.MSB, it.Packed.LSB)
	}
	return sb.String()
}

func initSuffix(u *ast.SourceUnit, id ast.ExprID) string {
	if id == 0 {
		return ""
	}
	d := dumper{u: u}
	return " = " + d.expr(id)
}
