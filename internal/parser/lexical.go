package parser

import (
	"fmt"
	"sort"

	"github.com/SeanMcLoughlin/very-sub000/internal/diag"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// Reserved words that can never be identifiers.
var keywords = map[string]struct{}{
	"module": {}, "endmodule": {},
	"input": {}, "output": {}, "inout": {},
	"wire": {}, "assign": {},
	"initial": {}, "always": {}, "always_comb": {}, "always_ff": {}, "final": {},
	"begin": {}, "end": {},
	"if": {}, "else": {},
	"case": {}, "casex": {}, "casez": {}, "endcase": {},
	"int": {}, "logic": {}, "bit": {}, "byte": {}, "reg": {},
	"signed": {}, "unsigned": {},
	"integer": {}, "time": {}, "shortint": {}, "longint": {},
	"class": {}, "endclass": {}, "extends": {},
	"function": {}, "endfunction": {},
	"task": {}, "endtask": {},
	"local": {}, "protected": {}, "new": {},
	"assert": {}, "property": {},
	"unique": {}, "unique0": {}, "priority": {},
	"global": {}, "clocking": {}, "endclocking": {},
	"struct": {}, "union": {}, "packed": {},
	"soft": {}, "tagged": {},
	"supply0": {}, "supply1": {},
	"tri": {}, "triand": {}, "trior": {},
}

// Keywords returns the reserved words in sorted order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || b == '$' || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (p *Parser) eof() bool { return p.pos >= uint32(len(p.src)) }

// at returns the byte off positions past the cursor, 0 past the end.
func (p *Parser) at(off uint32) byte {
	i := p.pos + off
	if i >= uint32(len(p.src)) {
		return 0
	}
	return p.src[i]
}

// skipWS consumes whitespace and both comment forms. An unterminated
// block comment swallows the rest of the file.
func (p *Parser) skipWS() {
	for !p.eof() {
		switch b := p.src[p.pos]; {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v':
			p.pos++
		case b == '/' && p.at(1) == '/':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		case b == '/' && p.at(1) == '*':
			p.pos += 2
			for !p.eof() {
				if p.src[p.pos] == '*' && p.at(1) == '/' {
					p.pos += 2
					break
				}
				p.pos++
			}
		default:
			return
		}
	}
}

// lit consumes the literal s after leading whitespace. The whitespace
// stays consumed on failure, which is harmless.
func (p *Parser) lit(s string) bool {
	p.skipWS()
	if p.pos+uint32(len(s)) > uint32(len(p.src)) {
		return false
	}
	if string(p.src[p.pos:p.pos+uint32(len(s))]) != s {
		return false
	}
	p.pos += uint32(len(s))
	return true
}

// word consumes s only when it ends on an identifier boundary.
func (p *Parser) word(s string) bool {
	p.skipWS()
	end := p.pos + uint32(len(s))
	if end > uint32(len(p.src)) {
		return false
	}
	if string(p.src[p.pos:end]) != s {
		return false
	}
	if end < uint32(len(p.src)) && isIdentByte(p.src[end]) {
		return false
	}
	p.pos = end
	return true
}

// expect consumes the literal s or fails with an expected-token error.
func (p *Parser) expect(s string) error {
	if p.lit(s) {
		return nil
	}
	if p.eof() {
		return p.unexpectedEOF(fmt.Sprintf("'%s'", s))
	}
	return p.errorAt(diag.SynExpectedToken, p.hereSpan(), fmt.Sprintf("expected '%s'", s))
}

// identOrKeyword scans [a-zA-Z_][a-zA-Z0-9_$]* without the keyword check.
func (p *Parser) identOrKeyword() (string, source.Span, bool) {
	p.skipWS()
	if p.eof() || !isIdentStart(p.src[p.pos]) {
		return "", source.Span{}, false
	}
	start := p.pos
	for !p.eof() && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	sp := source.Span{Start: start, End: p.pos}
	return string(p.src[start:p.pos]), sp, true
}

// ident scans an identifier, rejecting reserved words.
func (p *Parser) ident() (string, source.Span, bool) {
	save := p.pos
	name, sp, ok := p.identOrKeyword()
	if !ok {
		return "", source.Span{}, false
	}
	if _, reserved := keywords[name]; reserved {
		p.pos = save
		return "", source.Span{}, false
	}
	return name, sp, true
}

// number scans a sized literal like 8'b1101z001 or a plain decimal.
// Underscores are digit separators in both forms.
func (p *Parser) number() (string, source.Span, bool) {
	p.skipWS()
	if p.eof() || !isDigit(p.src[p.pos]) {
		return "", source.Span{}, false
	}
	start := p.pos
	for !p.eof() && (isDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
		p.pos++
	}
	if p.at(0) == '\'' && isBaseChar(p.at(1)) && isValueByte(p.at(2)) {
		p.pos += 2
		for !p.eof() && isValueByte(p.src[p.pos]) {
			p.pos++
		}
	}
	sp := source.Span{Start: start, End: p.pos}
	return string(p.src[start:p.pos]), sp, true
}

func isBaseChar(b byte) bool {
	switch b {
	case 'b', 'B', 'd', 'D', 'h', 'H', 'o', 'O':
		return true
	}
	return false
}

// Value bytes cover every base plus x/z bits and separators.
func isValueByte(b byte) bool {
	return b == '_' || isDigit(b) ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// stringLit scans "..." honoring backslash escapes. The returned text
// keeps escapes unprocessed, minus the quotes.
func (p *Parser) stringLit() (string, source.Span, bool) {
	p.skipWS()
	if p.eof() || p.src[p.pos] != '"' {
		return "", source.Span{}, false
	}
	start := p.pos
	p.pos++
	for !p.eof() {
		switch p.src[p.pos] {
		case '"':
			p.pos++
			sp := source.Span{Start: start, End: p.pos}
			return string(p.src[start+1 : p.pos-1]), sp, true
		case '\\':
			p.pos += 2
		default:
			p.pos++
		}
	}
	p.pos = start
	return "", source.Span{}, false
}
