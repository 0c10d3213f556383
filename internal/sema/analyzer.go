// Package sema validates a parsed unit beyond syntax. Errors are
// collected into a bag; analysis never aborts.
package sema

import (
	"fmt"

	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/diag"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

type analyzer struct {
	unit *ast.SourceUnit
	bag  *diag.Bag
}

// Analyze walks every container of unit and returns the collected
// diagnostics.
func Analyze(unit *ast.SourceUnit) *diag.Bag {
	bag := diag.NewBag(0)
	AnalyzeInto(unit, bag)
	return bag
}

// AnalyzeInto appends unit's diagnostics to an existing bag.
func AnalyzeInto(unit *ast.SourceUnit, bag *diag.Bag) {
	a := &analyzer{unit: unit, bag: bag}
	for _, id := range unit.Items {
		a.item(id)
	}
}

func (a *analyzer) item(id ast.ItemID) {
	it := a.unit.Item(id)
	if it == nil {
		return
	}
	switch it.Kind {
	case ast.ItemModule:
		for _, child := range it.Items {
			a.item(child)
		}
	case ast.ItemProcBlock:
		for _, s := range it.Stmts {
			a.stmt(s)
		}
	case ast.ItemVarDecl:
		a.expr(it.Init)
	case ast.ItemAssign:
		a.expr(it.Target)
		a.expr(it.Value)
	case ast.ItemAssertion:
		a.stmt(it.Stmt)
	case ast.ItemClass:
		for i := range it.ClassItems {
			a.classItem(&it.ClassItems[i])
		}
	}
}

func (a *analyzer) classItem(it *ast.ClassItem) {
	switch it.Kind {
	case ast.ClassProperty:
		a.expr(it.Init)
	case ast.ClassMethod:
		for _, s := range it.Body {
			a.stmt(s)
		}
	}
}

func (a *analyzer) stmt(id ast.StmtID) {
	s := a.unit.Stmt(id)
	if s == nil {
		return
	}
	switch s.Kind {
	case ast.StmtAssign:
		a.expr(s.Target)
		a.expr(s.Value)
	case ast.StmtSystemCall:
		if !IsSystemTask(s.Name) {
			a.report(s.Span, fmt.Sprintf("Unknown system task: $%s", s.Name))
		}
		for _, arg := range s.Args {
			a.expr(arg)
		}
	case ast.StmtCase:
		a.expr(s.Value)
	case ast.StmtExpr:
		a.expr(s.Value)
	case ast.StmtAssertProperty:
		a.expr(s.Value)
		a.stmt(s.Action)
	case ast.StmtVarDecl:
		a.expr(s.Value)
	}
}

func (a *analyzer) expr(id ast.ExprID) {
	e := a.unit.Expr(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprSystemCall:
		if !IsSystemFunction(e.Text) {
			a.report(e.Span, fmt.Sprintf("Unknown system function: $%s", e.Text))
		}
		for _, arg := range e.Args {
			a.expr(arg)
		}
	case ast.ExprBinary:
		a.expr(e.Left)
		a.expr(e.Right)
	case ast.ExprUnary:
		a.expr(e.Left)
	case ast.ExprMember:
		a.expr(e.Left)
	case ast.ExprCall:
		a.expr(e.Left)
		for _, arg := range e.Args {
			a.expr(arg)
		}
	case ast.ExprMacroUsage, ast.ExprNew:
		for _, arg := range e.Args {
			a.expr(arg)
		}
	}
}

func (a *analyzer) report(span source.Span, msg string) {
	a.bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemUnknownSystemFunction,
		Message:  msg,
		Primary:  span,
	})
}
