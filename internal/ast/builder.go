package ast

import (
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// Builder owns the three arenas while a file is being parsed. Parsers
// allocate children first, so child indices are always smaller than the
// parent's; the arenas never see a forward reference.
type Builder struct {
	Exprs *Arena[Expr]
	Stmts *Arena[Stmt]
	Items *Arena[ModuleItem]
	roots []ItemID
}

// NewBuilder preallocates arenas using capHint per category.
func NewBuilder(capHint uint) *Builder {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Builder{
		Exprs: NewArena[Expr](capHint),
		Stmts: NewArena[Stmt](capHint),
		Items: NewArena[ModuleItem](capHint),
		roots: make([]ItemID, 0, 4),
	}
}

func (b *Builder) NewExpr(e Expr) ExprID {
	return ExprID(b.Exprs.Allocate(e))
}

func (b *Builder) NewStmt(s Stmt) StmtID {
	return StmtID(b.Stmts.Allocate(s))
}

func (b *Builder) NewItem(it ModuleItem) ItemID {
	return ItemID(b.Items.Allocate(it))
}

// PushRoot records a top-level item in source order.
func (b *Builder) PushRoot(id ItemID) {
	b.roots = append(b.roots, id)
}

// Finish seals the builder into an immutable SourceUnit bound to the
// preprocessed text its spans refer to.
func (b *Builder) Finish(text *source.Text) *SourceUnit {
	return &SourceUnit{
		Text:     text,
		Items:    b.roots,
		Exprs:    b.Exprs,
		Stmts:    b.Stmts,
		ModItems: b.Items,
	}
}

// SourceUnit is the parse result for one file: root item refs plus the
// arenas every reference indexes into. Immutable after Finish.
type SourceUnit struct {
	Text     *source.Text
	Items    []ItemID
	Exprs    *Arena[Expr]
	Stmts    *Arena[Stmt]
	ModItems *Arena[ModuleItem]
}

func (u *SourceUnit) Expr(id ExprID) *Expr {
	return u.Exprs.Get(uint32(id))
}

func (u *SourceUnit) Stmt(id StmtID) *Stmt {
	return u.Stmts.Get(uint32(id))
}

func (u *SourceUnit) Item(id ItemID) *ModuleItem {
	return u.ModItems.Get(uint32(id))
}
