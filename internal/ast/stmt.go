package ast

import (
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

type StmtKind uint8

const (
	StmtAssign StmtKind = iota
	StmtSystemCall
	StmtCase
	StmtExpr
	StmtAssertProperty
	StmtVarDecl
)

// Stmt is a tagged statement node inside a procedural block, a method body,
// or an assertion.
type Stmt struct {
	Kind StmtKind
	Span source.Span

	// Assign: Target op Value. Value doubles as the variable initializer,
	// the expression of an expression statement, the case subject, and the
	// asserted property expression.
	Target   ExprID
	AssignOp AssignOp
	Value    ExprID

	// SystemCall and VarDecl share Name/NameSpan.
	Name     string
	NameSpan source.Span
	Args     []ExprID

	// Case
	CaseModifier string // "", "unique", "unique0", "priority"
	CaseKind     string // "case", "casex", "casez"

	// AssertProperty else-action, usually a system call.
	Action StmtID

	// VarDecl
	DataType string
}

type AssignOp uint8

const (
	AssignPlain AssignOp = iota // =
	AssignAdd                   // +=
	AssignSub                   // -=
	AssignMul                   // *=
	AssignDiv                   // /=
	AssignMod                   // %=
	AssignAnd                   // &=
	AssignOr                    // |=
	AssignXor                   // ^=
	AssignShl                   // <<=
	AssignShr                   // >>=
	AssignAShl                  // <<<=
	AssignAShr                  // >>>=
)

var assignOpNames = map[AssignOp]string{
	AssignPlain: "=", AssignAdd: "+=", AssignSub: "-=", AssignMul: "*=",
	AssignDiv: "/=", AssignMod: "%=", AssignAnd: "&=", AssignOr: "|=",
	AssignXor: "^=", AssignShl: "<<=", AssignShr: ">>=",
	AssignAShl: "<<<=", AssignAShr: ">>>=",
}

func (op AssignOp) String() string {
	if s, ok := assignOpNames[op]; ok {
		return s
	}
	return "?"
}
