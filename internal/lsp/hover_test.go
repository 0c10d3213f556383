package lsp

import (
	"strings"
	"testing"

	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/parser"
)

func parseUnit(t *testing.T, src string) *ast.SourceUnit {
	t.Helper()
	unit, err := parser.Parse(src, parser.Options{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return unit
}

// offsetOf points one byte into the first occurrence of needle.
func offsetOf(t *testing.T, src, needle string) uint32 {
	t.Helper()
	idx := strings.Index(src, needle)
	if idx < 0 {
		t.Fatalf("%q not found in source", needle)
	}
	return uint32(idx) + 1
}

const hoverSrc = "module top;\n" +
	"  logic [3:0] n;\n" +
	"  assign n = $clog2(16);\n" +
	"  initial begin\n" +
	"    $display(\"hi\");\n" +
	"  end\n" +
	"endmodule\n"

func TestHoverSystemFunctionExpr(t *testing.T) {
	unit := parseUnit(t, hoverSrc)
	value, span, ok := hoverAt(unit, offsetOf(t, hoverSrc, "$clog2"))
	if !ok {
		t.Fatal("no hover for $clog2")
	}
	if !strings.Contains(value, "$clog2") || !strings.Contains(value, "system function") {
		t.Errorf("hover = %q", value)
	}
	if got := unit.Text.Slice(span); got != "$clog2" {
		t.Errorf("hover span reads %q", got)
	}
}

func TestHoverSystemTaskStmt(t *testing.T) {
	unit := parseUnit(t, hoverSrc)
	value, span, ok := hoverAt(unit, offsetOf(t, hoverSrc, "$display"))
	if !ok {
		t.Fatal("no hover for $display")
	}
	if !strings.Contains(value, "$display") || !strings.Contains(value, "system task") {
		t.Errorf("hover = %q", value)
	}
	if got := unit.Text.Slice(span); got != "$display" {
		t.Errorf("hover span reads %q", got)
	}
}

func TestHoverModuleName(t *testing.T) {
	unit := parseUnit(t, hoverSrc)
	value, _, ok := hoverAt(unit, offsetOf(t, hoverSrc, "top"))
	if !ok {
		t.Fatal("no hover for module name")
	}
	if value != "module `top`" {
		t.Errorf("hover = %q", value)
	}
}

func TestHoverPlainIdentHasNone(t *testing.T) {
	unit := parseUnit(t, hoverSrc)
	if _, _, ok := hoverAt(unit, uint32(strings.Index(hoverSrc, "n = $clog2"))); ok {
		t.Error("unexpected hover on a plain identifier")
	}
}

func TestHoverUnknownSystemCall(t *testing.T) {
	src := "module m;\n  assign x = $frobnicate(1);\nendmodule\n"
	unit := parseUnit(t, src)
	value, _, ok := hoverAt(unit, offsetOf(t, src, "$frobnicate"))
	if !ok {
		t.Fatal("no hover for unknown system call")
	}
	if !strings.Contains(value, "unknown system function or task") {
		t.Errorf("hover = %q", value)
	}
}

func TestHoverUnresolvedInclude(t *testing.T) {
	src := "`include \"missing.svh\"\nmodule m;\nendmodule\n"
	unit := parseUnit(t, src)
	value, _, ok := hoverAt(unit, offsetOf(t, src, "missing.svh"))
	if !ok {
		t.Fatal("no hover for include path")
	}
	if !strings.Contains(value, "missing.svh") || !strings.Contains(value, "not found on the include path") {
		t.Errorf("hover = %q", value)
	}
}

func TestHoverResolvedInclude(t *testing.T) {
	src := "`include \"defs.svh\"\nmodule m;\nendmodule\n"
	unit, err := parser.Parse(src, parser.Options{
		IncludeResolver: func(path string) (string, bool) {
			return "/work/include/" + path, true
		},
	})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	value, _, ok := hoverAt(unit, offsetOf(t, src, "defs.svh"))
	if !ok {
		t.Fatal("no hover for include path")
	}
	if !strings.Contains(value, "/work/include/defs.svh") {
		t.Errorf("hover = %q", value)
	}
}

func TestHoverClassName(t *testing.T) {
	src := "class Packet extends Base;\n  int size;\nendclass\n"
	unit := parseUnit(t, src)
	value, _, ok := hoverAt(unit, offsetOf(t, src, "Packet"))
	if !ok {
		t.Fatal("no hover for class name")
	}
	if value != "class `Packet` extends `Base`" {
		t.Errorf("hover = %q", value)
	}
}
