package driver

import (
	"fmt"
	"strings"
)

// ParsedArgs is the result of splitting a VCS-style argument list into
// files, include directories, and macro defines.
type ParsedArgs struct {
	Files       []string
	IncludeDirs []string
	// Defines keeps the raw "NAME" or "NAME=value" strings in order.
	Defines []string
	// Warnings lists unsupported +option arguments that were skipped.
	Warnings []string

	Verbose    bool
	SyntaxOnly bool
	FailFast   bool
}

// DefineMap splits the raw defines into name/value pairs. A define without
// "=" maps to the empty string.
func (a ParsedArgs) DefineMap() map[string]string {
	m := make(map[string]string, len(a.Defines))
	for _, d := range a.Defines {
		if eq := strings.IndexByte(d, '='); eq >= 0 {
			m[d[:eq]] = d[eq+1:]
		} else {
			m[d] = ""
		}
	}
	return m
}

// ParseVCSArgs interprets positional arguments the way VCS does:
// +incdir+<path> adds an include directory, +define+<macro>[=<value>]
// defines a macro, anything else without a leading sign is a file.
// Double-dash and single-dash flags are assumed to have been consumed by
// the CLI layer already and are skipped when recognized.
func ParseVCSArgs(args []string, verbose, syntaxOnly, failFast bool) (ParsedArgs, error) {
	out := ParsedArgs{Verbose: verbose, SyntaxOnly: syntaxOnly, FailFast: failFast}
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "+incdir+"):
			path := arg[len("+incdir+"):]
			if path == "" {
				return ParsedArgs{}, fmt.Errorf("Empty path in +incdir+ directive")
			}
			out.IncludeDirs = append(out.IncludeDirs, path)
		case strings.HasPrefix(arg, "+define+"):
			def := arg[len("+define+"):]
			if def == "" {
				return ParsedArgs{}, fmt.Errorf("Empty define in +define+ directive")
			}
			out.Defines = append(out.Defines, def)
		case strings.HasPrefix(arg, "+"):
			out.Warnings = append(out.Warnings, fmt.Sprintf("Unsupported VCS option ignored: %s", arg))
		case arg == "-v" || arg == "--verbose":
			out.Verbose = true
		case arg == "-s" || arg == "--syntax-only":
			out.SyntaxOnly = true
		case arg == "--fail-fast":
			out.FailFast = true
		case strings.HasPrefix(arg, "-"):
			return ParsedArgs{}, fmt.Errorf("Unknown option: %s", arg)
		default:
			out.Files = append(out.Files, arg)
		}
	}
	if len(out.Files) == 0 {
		return ParsedArgs{}, fmt.Errorf("No input files specified")
	}
	return out, nil
}
