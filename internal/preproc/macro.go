package preproc

import (
	"strings"
)

// expandLine substitutes every `NAME occurrence on one emitted line.
// Unknown macros are left untouched so the parser can still represent them
// as macro-usage expressions.
func (p *Preprocessor) expandLine(line string) string {
	if !strings.ContainsRune(line, '`') {
		return line
	}

	var out strings.Builder
	out.Grow(len(line))

	i := 0
	for i < len(line) {
		if line[i] != '`' {
			out.WriteByte(line[i])
			i++
			continue
		}
		start := i
		i++
		nameStart := i
		for i < len(line) && isIdentRune(rune(line[i])) {
			i++
		}
		name := line[nameStart:i]
		macro, ok := p.macros[name]
		if !ok || name == "" {
			out.WriteString(line[start:i])
			continue
		}
		if macro.Params == nil {
			out.WriteString(macro.Body)
			continue
		}
		args, next, ok := scanMacroArgs(line, i)
		if !ok {
			// Parameterized macro used without arguments: emit the body
			// as-is, best-effort.
			out.WriteString(macro.Body)
			continue
		}
		i = next
		out.WriteString(substituteParams(macro, args))
	}
	return out.String()
}

// scanMacroArgs reads a parenthesized argument list starting at pos,
// splitting on top-level commas only.
func scanMacroArgs(line string, pos int) (args []string, next int, ok bool) {
	if pos >= len(line) || line[pos] != '(' {
		return nil, pos, false
	}
	depth := 0
	argStart := pos + 1
	for i := pos; i < len(line); i++ {
		switch line[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				args = append(args, strings.TrimSpace(line[argStart:i]))
				return args, i + 1, true
			}
		case ',':
			if depth == 1 {
				args = append(args, strings.TrimSpace(line[argStart:i]))
				argStart = i + 1
			}
		}
	}
	return nil, pos, false
}

// substituteParams performs textual parameter replacement on whole-word
// occurrences inside the macro body.
func substituteParams(m Macro, args []string) string {
	body := m.Body
	var out strings.Builder
	out.Grow(len(body))

	i := 0
	for i < len(body) {
		if !isIdentRune(rune(body[i])) {
			out.WriteByte(body[i])
			i++
			continue
		}
		wordStart := i
		for i < len(body) && isIdentRune(rune(body[i])) {
			i++
		}
		word := body[wordStart:i]
		replaced := false
		for pi, param := range m.Params {
			if word == param && pi < len(args) {
				out.WriteString(args[pi])
				replaced = true
				break
			}
		}
		if !replaced {
			out.WriteString(word)
		}
	}
	return out.String()
}
