package ast

import (
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprNumber
	ExprString
	ExprBinary
	ExprUnary
	ExprMacroUsage
	ExprSystemCall
	ExprNew
	ExprMember
	ExprCall
)

// Expr is a tagged expression node. Child references are arena indices that
// are always strictly smaller than the node's own index.
type Expr struct {
	Kind ExprKind
	Span source.Span

	// Text holds the identifier, literal text, macro name, system function
	// name, or member name depending on Kind.
	Text string
	// NameSpan covers just the name for member access and macro usage.
	NameSpan source.Span

	BinOp BinaryOp
	UnOp  UnaryOp

	// Left is the left operand (binary), operand (unary), object (member
	// access), or callee (call). Right is only used by binary nodes.
	Left  ExprID
	Right ExprID

	// Args holds call, system call, new, and macro arguments.
	Args []ExprID
}

type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPower
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitXnor
	OpLogAnd
	OpLogOr
	OpLogImpl  // ->
	OpLogEquiv // <->
	OpEq
	OpNe
	OpCaseEq // ===
	OpCaseNe // !==
	OpWildEq // ==?
	OpWildNe // !=?
	OpLt
	OpGt
	OpLe
	OpGe
	OpShl
	OpShr
	OpAShl // <<<
	OpAShr // >>>
)

var binaryOpNames = map[BinaryOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpPower: "**", OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^",
	OpBitXnor: "~^", OpLogAnd: "&&", OpLogOr: "||", OpLogImpl: "->",
	OpLogEquiv: "<->", OpEq: "==", OpNe: "!=", OpCaseEq: "===",
	OpCaseNe: "!==", OpWildEq: "==?", OpWildNe: "!=?", OpLt: "<",
	OpGt: ">", OpLe: "<=", OpGe: ">=", OpShl: "<<", OpShr: ">>",
	OpAShl: "<<<", OpAShr: ">>>",
}

func (op BinaryOp) String() string {
	if s, ok := binaryOpNames[op]; ok {
		return s
	}
	return "?"
}

type UnaryOp uint8

const (
	OpUnaryPlus UnaryOp = iota
	OpUnaryMinus
	OpNot    // ~
	OpLogNot // !
	OpRedAnd
	OpRedOr
	OpRedXor
	OpRedNand // ~&
	OpRedNor  // ~|
	OpRedXnor // ~^
)

var unaryOpNames = map[UnaryOp]string{
	OpUnaryPlus: "+", OpUnaryMinus: "-", OpNot: "~", OpLogNot: "!",
	OpRedAnd: "&", OpRedOr: "|", OpRedXor: "^", OpRedNand: "~&",
	OpRedNor: "~|", OpRedXnor: "~^",
}

func (op UnaryOp) String() string {
	if s, ok := unaryOpNames[op]; ok {
		return s
	}
	return "?"
}
