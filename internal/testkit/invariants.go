// Package testkit holds structural checks shared by parser and driver
// tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// CheckUnitInvariants validates a parsed unit:
// 1) every span lies within the text bounds
// 2) every name span reproduces the name it covers
// 3) every child reference points strictly backwards in its arena
func CheckUnitInvariants(u *ast.SourceUnit) error {
	if u == nil || u.Text == nil {
		return fmt.Errorf("nil unit or text")
	}
	limit, err := safecast.Conv[uint32](len(u.Text.Content))
	if err != nil {
		return fmt.Errorf("text length overflow: %w", err)
	}

	for i, e := range u.Exprs.Slice() {
		id := ast.ExprID(i + 1)
		if err := checkSpan(e.Span, limit); err != nil {
			return fmt.Errorf("expr %d: %w", id, err)
		}
		if err := checkExprChildren(id, &e); err != nil {
			return err
		}
	}
	for i, s := range u.Stmts.Slice() {
		id := ast.StmtID(i + 1)
		if err := checkSpan(s.Span, limit); err != nil {
			return fmt.Errorf("stmt %d: %w", id, err)
		}
		for _, child := range []ast.ExprID{s.Target, s.Value} {
			if child != ast.NoExprID && uint32(child) > u.Exprs.Len() {
				return fmt.Errorf("stmt %d: dangling expr ref %d", id, child)
			}
		}
		if s.Action != ast.NoStmtID && s.Action >= id {
			return fmt.Errorf("stmt %d: action ref %d is not a prior node", id, s.Action)
		}
	}
	for i, it := range u.ModItems.Slice() {
		id := ast.ItemID(i + 1)
		if err := checkSpan(it.Span, limit); err != nil {
			return fmt.Errorf("item %d: %w", id, err)
		}
		if it.Name != "" && !it.NameSpan.Empty() {
			got := string(u.Text.Slice(it.NameSpan))
			if got != it.Name {
				return fmt.Errorf("item %d: name span reads %q, want %q", id, got, it.Name)
			}
		}
		for _, child := range it.Items {
			if child >= id {
				return fmt.Errorf("item %d: child ref %d is not a prior node", id, child)
			}
		}
		if !it.NameSpan.Empty() && !it.Span.Empty() && !it.NameSpan.Within(it.Span) {
			return fmt.Errorf("item %d: name span %v outside item span %v", id, it.NameSpan, it.Span)
		}
	}
	for _, root := range u.Items {
		if root == ast.NoItemID || uint32(root) > u.ModItems.Len() {
			return fmt.Errorf("root ref %d out of range", root)
		}
	}
	return nil
}

func checkSpan(sp source.Span, limit uint32) error {
	if sp.End < sp.Start {
		return fmt.Errorf("inverted span %v", sp)
	}
	if sp.End > limit {
		return fmt.Errorf("span %v beyond content end %d", sp, limit)
	}
	return nil
}

func checkExprChildren(id ast.ExprID, e *ast.Expr) error {
	for _, child := range append([]ast.ExprID{e.Left, e.Right}, e.Args...) {
		if child == ast.NoExprID {
			continue
		}
		if child >= id {
			return fmt.Errorf("expr %d: child ref %d is not a prior node", id, child)
		}
	}
	return nil
}
