// Package preproc turns raw SystemVerilog source into an expanded text
// stream the parser can consume without understanding ` -directives.
package preproc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SeanMcLoughlin/very-sub000/internal/diag"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// Config seeds the preprocessor from +incdir+ and +define+ arguments.
type Config struct {
	IncludeDirs []string
	Defines     map[string]string
}

// Preprocessor handles `define registration, `include inlining with cycle
// detection, and textual macro expansion. One instance processes one
// top-level file; defines accumulate across its includes.
type Preprocessor struct {
	includeDirs []string
	macros      map[string]Macro
	// stack holds canonical paths currently being expanded. An include
	// naming a file already on the stack expands to nothing.
	stack []string
}

// Macro is one `define entry. Params is nil for object-like macros.
type Macro struct {
	Params []string
	Body   string
}

func New(cfg Config) *Preprocessor {
	p := &Preprocessor{
		includeDirs: cfg.IncludeDirs,
		macros:      make(map[string]Macro, len(cfg.Defines)),
	}
	for name, body := range cfg.Defines {
		p.macros[name] = Macro{Body: body}
	}
	return p
}

// ExpandFile reads path and expands it. The resulting text is what the
// parser sees; all spans downstream refer to it.
func (p *Preprocessor) ExpandFile(path string) (string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the caller
	if err != nil {
		return "", diag.NewError(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.PreFileRead,
			Message:  fmt.Sprintf("Failed to read file %s: %v", path, err),
		}, nil)
	}

	canonical := canonicalPath(path)
	p.stack = append(p.stack, canonical)
	defer func() { p.stack = p.stack[:len(p.stack)-1] }()

	return p.Expand(string(content), path)
}

// Expand processes content line by line. origin is the path of the file the
// content came from ("" for anonymous buffers); it anchors relative
// include resolution.
func (p *Preprocessor) Expand(content, origin string) (string, error) {
	content = normalizeNewlines(content)

	var out strings.Builder
	out.Grow(len(content))

	lines := strings.Split(content, "\n")
	// A trailing newline yields one empty trailing element; dropping it
	// keeps expansion idempotent (every emitted line is newline-terminated).
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for lineNum, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "`") {
			directive := trimmed[1:]
			switch {
			case strings.HasPrefix(directive, "define"):
				if err := p.handleDefine(strings.TrimPrefix(directive, "define"), lineNum+1); err != nil {
					return "", err
				}
				continue
			case strings.HasPrefix(directive, "include"):
				expanded, err := p.handleInclude(strings.TrimPrefix(directive, "include"), origin, lineNum+1)
				if err != nil {
					return "", err
				}
				out.WriteString(expanded)
				continue
			case strings.HasPrefix(directive, "ifdef"),
				strings.HasPrefix(directive, "ifndef"),
				directive == "else",
				directive == "endif":
				// Conditional compilation is pass-through: the directive
				// lines are dropped and both branch bodies are emitted.
				continue
			}
		}

		out.WriteString(p.expandLine(line))
		out.WriteByte('\n')
	}

	return out.String(), nil
}

// ResolveInclude maps an include name to an absolute path using the
// configured search order: fromDir first, then each include directory.
func (p *Preprocessor) ResolveInclude(name, fromDir string) (string, bool) {
	if name == "" {
		return "", false
	}
	if fromDir != "" {
		candidate := filepath.Join(fromDir, name)
		if fileExists(candidate) {
			return canonicalPath(candidate), true
		}
	}
	for _, dir := range p.includeDirs {
		candidate := filepath.Join(dir, name)
		if fileExists(candidate) {
			return canonicalPath(candidate), true
		}
	}
	return "", false
}

func (p *Preprocessor) handleDefine(rest string, line int) error {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return lineError(diag.PreEmptyDefine, "Empty define directive", line)
	}

	name := rest
	var tail string
	if idx := strings.IndexFunc(rest, func(r rune) bool {
		return !isIdentRune(r)
	}); idx >= 0 {
		name, tail = rest[:idx], rest[idx:]
	}
	if name == "" {
		return lineError(diag.PreEmptyDefine, "Empty define directive", line)
	}

	macro := Macro{}
	// A parameter list only counts when the paren hugs the name:
	// `define MAX(a,b) ... versus `define PI (3.14).
	if strings.HasPrefix(tail, "(") {
		close := strings.IndexByte(tail, ')')
		if close > 0 {
			for _, param := range strings.Split(tail[1:close], ",") {
				if param = strings.TrimSpace(param); param != "" {
					macro.Params = append(macro.Params, param)
				}
			}
			tail = tail[close+1:]
		}
	}
	macro.Body = strings.TrimSpace(tail)
	p.macros[name] = macro
	return nil
}

func (p *Preprocessor) handleInclude(rest string, origin string, line int) (string, error) {
	name := strings.TrimSpace(rest)
	switch {
	case strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) && len(name) >= 2:
		name = name[1 : len(name)-1]
	case strings.HasPrefix(name, "<") && strings.HasSuffix(name, ">") && len(name) >= 2:
		name = name[1 : len(name)-1]
	}
	if name == "" {
		return "", lineError(diag.PreEmptyIncludePath, "Empty include path", line)
	}

	fromDir := ""
	if origin != "" {
		fromDir = filepath.Dir(origin)
	}
	resolved, ok := p.ResolveInclude(name, fromDir)
	if !ok {
		return "", lineError(diag.PreMissingInclude, fmt.Sprintf("Include file '%s' not found", name), line)
	}

	// Circular include: the file is already being expanded somewhere up
	// the stack, so this occurrence contributes nothing.
	for _, active := range p.stack {
		if active == resolved {
			return "", nil
		}
	}
	return p.ExpandFile(resolved)
}

func lineError(code diag.Code, msg string, line int) *diag.Error {
	return &diag.Error{
		Diag: diag.Diagnostic{Severity: diag.SevError, Code: code, Message: msg},
		Pos:  source.LineCol{Line: uint32(line), Col: 1},
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
