package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Numeric ranges group codes by phase:
// 1xxx preprocessor, 2xxx parser, 3xxx semantic analysis.
type Code uint16

const (
	UnknownCode Code = 0

	// Preprocessor
	PreFileRead         Code = 1001
	PreEmptyDefine      Code = 1002
	PreMissingInclude   Code = 1003
	PreEmptyIncludePath Code = 1004

	// Parser
	SynUnexpectedToken    Code = 2001
	SynExpectedToken      Code = 2002
	SynUnexpectedEOF      Code = 2003
	SynInvalidSyntax      Code = 2004
	SynUnsupportedFeature Code = 2005

	// Semantic
	SemUnknownSystemFunction Code = 3001
	SemUndeclaredIdentifier  Code = 3002
	SemTypeMismatch          Code = 3003
	SemInvalidOperation      Code = 3004
)

func (c Code) String() string {
	switch c {
	case PreFileRead:
		return "PRE1001"
	case PreEmptyDefine:
		return "PRE1002"
	case PreMissingInclude:
		return "PRE1003"
	case PreEmptyIncludePath:
		return "PRE1004"
	case SynUnexpectedToken:
		return "SYN2001"
	case SynExpectedToken:
		return "SYN2002"
	case SynUnexpectedEOF:
		return "SYN2003"
	case SynInvalidSyntax:
		return "SYN2004"
	case SynUnsupportedFeature:
		return "SYN2005"
	case SemUnknownSystemFunction:
		return "SEM3001"
	case SemUndeclaredIdentifier:
		return "SEM3002"
	case SemTypeMismatch:
		return "SEM3003"
	case SemInvalidOperation:
		return "SEM3004"
	default:
		return fmt.Sprintf("DIAG%04d", uint16(c))
	}
}

// Phase reports which pipeline stage owns the code.
func (c Code) Phase() Phase {
	switch {
	case c >= 1000 && c < 2000:
		return PhasePreprocessor
	case c >= 2000 && c < 3000:
		return PhaseParser
	case c >= 3000 && c < 4000:
		return PhaseSemantic
	default:
		return PhaseUnknown
	}
}

// Phase names a pipeline stage that can emit diagnostics.
type Phase uint8

const (
	PhaseUnknown Phase = iota
	PhasePreprocessor
	PhaseParser
	PhaseSemantic
)

func (p Phase) String() string {
	switch p {
	case PhasePreprocessor:
		return "preprocessor"
	case PhaseParser:
		return "parser"
	case PhaseSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}
