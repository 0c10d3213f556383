package ast

import (
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

type ItemKind uint8

const (
	ItemModule ItemKind = iota
	ItemPortDecl
	ItemVarDecl
	ItemAssign
	ItemProcBlock
	ItemDefine
	ItemInclude
	ItemClass
	ItemAssertion
	ItemGlobalClocking
)

// ModuleItem is a tagged top-level or module-scope construct.
type ModuleItem struct {
	Kind ItemKind
	Span source.Span

	// Name of the module, class, port, variable, macro, or clocking block.
	Name     string
	NameSpan source.Span

	// Module
	Ports []Port
	Items []ItemID

	// PortDecl
	Direction PortDirection
	PortType  string

	// VarDecl
	DataType string
	Signing  string // "", "signed", "unsigned"
	Strength *DriveStrength
	Delay    *Delay
	Packed   *Range
	Unpacked []UnpackedDim
	Init     ExprID

	// Assign (continuous). Delay above is shared.
	Target ExprID
	Value  ExprID

	// ProcBlock
	BlockKind ProcBlockKind
	EventText string // raw @(...) control, empty when absent
	Stmts     []StmtID

	// Define
	Params      []string
	Replacement string

	// Include
	Path         string
	ResolvedPath string // absolute path when resolution succeeded

	// Class
	Extends    string
	ClassItems []ClassItem

	// Assertion
	Stmt StmtID

	// GlobalClocking
	ClockingEvent ExprID
	EndLabel      string
}

type PortDirection uint8

const (
	DirNone PortDirection = iota
	DirInput
	DirOutput
	DirInout
)

func (d PortDirection) String() string {
	switch d {
	case DirInput:
		return "input"
	case DirOutput:
		return "output"
	case DirInout:
		return "inout"
	default:
		return ""
	}
}

// Port is one entry of a module header port list.
type Port struct {
	Name      string
	NameSpan  source.Span
	Direction PortDirection
	PortType  string
	Range     *Range
	Span      source.Span
}

// Range is a packed dimension like [7:0]. Bounds keep their source text so
// symbolic bounds (parameters) survive untouched.
type Range struct {
	MSB string
	LSB string
}

type UnpackedDimKind uint8

const (
	UnpackedDynamic UnpackedDimKind = iota // []
	UnpackedSize                           // [N]
	UnpackedRange                          // [m:l]
)

type UnpackedDim struct {
	Kind  UnpackedDimKind
	Size  string
	Range Range
}

// Delay is a #number or #(expression) annotation, kept as text.
type Delay struct {
	Value string
}

type DriveStrength struct {
	Strength0 string
	Strength1 string
}

type ProcBlockKind uint8

const (
	BlockInitial ProcBlockKind = iota
	BlockFinal
	BlockAlways
	BlockAlwaysComb
	BlockAlwaysFF
)

func (k ProcBlockKind) String() string {
	switch k {
	case BlockInitial:
		return "initial"
	case BlockFinal:
		return "final"
	case BlockAlways:
		return "always"
	case BlockAlwaysComb:
		return "always_comb"
	case BlockAlwaysFF:
		return "always_ff"
	default:
		return "?"
	}
}

type ClassItemKind uint8

const (
	ClassProperty ClassItemKind = iota
	ClassMethod
)

type ClassQualifier uint8

const (
	QualNone ClassQualifier = iota
	QualLocal
	QualProtected
)

func (q ClassQualifier) String() string {
	switch q {
	case QualLocal:
		return "local"
	case QualProtected:
		return "protected"
	default:
		return ""
	}
}

// ClassItem is a property or method inside a class body.
type ClassItem struct {
	Kind      ClassItemKind
	Span      source.Span
	Qualifier ClassQualifier
	// DataType is the property type or method return type ("" for none).
	DataType string
	Name     string
	NameSpan source.Span
	Unpacked []UnpackedDim
	Init     ExprID
	// Method only.
	Params []string
	Body   []StmtID
	IsTask bool
}
