package parser

import (
	"testing"

	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
)

// exprOf parses "module t; assign x = <src>; endmodule" and returns the
// value expression.
func exprOf(t *testing.T, src string) (*ast.SourceUnit, *ast.Expr) {
	t.Helper()
	u := parseOK(t, "module t; assign x = "+src+"; endmodule")
	mod := rootItem(t, u, 0, ast.ItemModule)
	as := u.Item(mod.Items[0])
	if as.Kind != ast.ItemAssign {
		t.Fatalf("body kind = %v", as.Kind)
	}
	return u, u.Expr(as.Value)
}

func TestParseSizedNumber(t *testing.T) {
	u := parseOK(t, "module t; assign c = a != 8'b1101z001; endmodule")
	mod := rootItem(t, u, 0, ast.ItemModule)
	as := u.Item(mod.Items[0])
	val := u.Expr(as.Value)
	if val.Kind != ast.ExprBinary || val.BinOp != ast.OpNe {
		t.Fatalf("value = %+v", val)
	}
	if left := u.Expr(val.Left); left.Kind != ast.ExprIdent || left.Text != "a" {
		t.Errorf("left = %+v", left)
	}
	right := u.Expr(val.Right)
	if right.Kind != ast.ExprNumber || right.Text != "8'b1101z001" {
		t.Errorf("right = %+v", right)
	}
	if got := string(u.Text.Slice(right.Span)); got != "8'b1101z001" {
		t.Errorf("number span reads %q", got)
	}
}

func TestParseBinaryOperators(t *testing.T) {
	tests := []struct {
		src string
		op  ast.BinaryOp
	}{
		{"a + b", ast.OpAdd},
		{"a - b", ast.OpSub},
		{"a ** b", ast.OpPower},
		{"a === b", ast.OpCaseEq},
		{"a !== b", ast.OpCaseNe},
		{"a ==? b", ast.OpWildEq},
		{"a !=? b", ast.OpWildNe},
		{"a <-> b", ast.OpLogEquiv},
		{"a -> b", ast.OpLogImpl},
		{"a <<< b", ast.OpAShl},
		{"a >>> b", ast.OpAShr},
		{"a << b", ast.OpShl},
		{"a <= b", ast.OpLe},
		{"a ~^ b", ast.OpBitXnor},
		{"a && b", ast.OpLogAnd},
		{"a % b", ast.OpMod},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, e := exprOf(t, tt.src)
			if e.Kind != ast.ExprBinary || e.BinOp != tt.op {
				t.Errorf("expr = %+v, want binary %v", e, tt.op)
			}
		})
	}
}

func TestParseBinaryLeftFold(t *testing.T) {
	u, e := exprOf(t, "a + b + c")
	if e.Kind != ast.ExprBinary || e.BinOp != ast.OpAdd {
		t.Fatalf("top = %+v", e)
	}
	left := u.Expr(e.Left)
	if left.Kind != ast.ExprBinary || left.BinOp != ast.OpAdd {
		t.Fatalf("left = %+v, want nested binary", left)
	}
	if u.Expr(left.Left).Text != "a" || u.Expr(left.Right).Text != "b" {
		t.Error("inner operands not a and b")
	}
	if u.Expr(e.Right).Text != "c" {
		t.Error("outer right operand not c")
	}
}

func TestParseUnaryOperators(t *testing.T) {
	tests := []struct {
		src string
		op  ast.UnaryOp
	}{
		{"!a", ast.OpLogNot},
		{"~a", ast.OpNot},
		{"-a", ast.OpUnaryMinus},
		{"&a", ast.OpRedAnd},
		{"~&a", ast.OpRedNand},
		{"~|a", ast.OpRedNor},
		{"~^a", ast.OpRedXnor},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			u, e := exprOf(t, tt.src)
			if e.Kind != ast.ExprUnary || e.UnOp != tt.op {
				t.Fatalf("expr = %+v, want unary %v", e, tt.op)
			}
			if operand := u.Expr(e.Left); operand.Kind != ast.ExprIdent || operand.Text != "a" {
				t.Errorf("operand = %+v", operand)
			}
		})
	}
}

func TestParseMemberAccessChain(t *testing.T) {
	u, e := exprOf(t, "pkt.header.len")
	if e.Kind != ast.ExprMember || e.Text != "len" {
		t.Fatalf("outer = %+v", e)
	}
	mid := u.Expr(e.Left)
	if mid.Kind != ast.ExprMember || mid.Text != "header" {
		t.Fatalf("middle = %+v", mid)
	}
	if obj := u.Expr(mid.Left); obj.Kind != ast.ExprIdent || obj.Text != "pkt" {
		t.Errorf("object = %+v", obj)
	}
	if got := string(u.Text.Slice(e.NameSpan)); got != "len" {
		t.Errorf("member name span reads %q", got)
	}
}

func TestParseCallForms(t *testing.T) {
	t.Run("method call", func(t *testing.T) {
		u, e := exprOf(t, "pkt.size(1, x)")
		if e.Kind != ast.ExprCall || len(e.Args) != 2 {
			t.Fatalf("expr = %+v", e)
		}
		callee := u.Expr(e.Left)
		if callee.Kind != ast.ExprMember || callee.Text != "size" {
			t.Errorf("callee = %+v", callee)
		}
	})
	t.Run("bare call", func(t *testing.T) {
		u, e := exprOf(t, "compute()")
		if e.Kind != ast.ExprCall || len(e.Args) != 0 {
			t.Fatalf("expr = %+v", e)
		}
		if callee := u.Expr(e.Left); callee.Kind != ast.ExprIdent || callee.Text != "compute" {
			t.Errorf("callee = %+v", callee)
		}
	})
}

func TestParseSystemFunctionExpr(t *testing.T) {
	u, e := exprOf(t, "$clog2(depth)")
	if e.Kind != ast.ExprSystemCall || e.Text != "clog2" {
		t.Fatalf("expr = %+v", e)
	}
	if len(e.Args) != 1 {
		t.Fatalf("arg count = %d", len(e.Args))
	}
	if got := string(u.Text.Slice(e.NameSpan)); got != "$clog2" {
		t.Errorf("name span reads %q", got)
	}
}

func TestParseNewExpr(t *testing.T) {
	_, bare := exprOf(t, "new")
	if bare.Kind != ast.ExprNew || len(bare.Args) != 0 {
		t.Fatalf("bare new = %+v", bare)
	}
	_, with := exprOf(t, "new(8, init)")
	if with.Kind != ast.ExprNew || len(with.Args) != 2 {
		t.Fatalf("new with args = %+v", with)
	}
}

func TestParseStringLiteralEscapes(t *testing.T) {
	_, e := exprOf(t, `"a \"quoted\" word"`)
	if e.Kind != ast.ExprString {
		t.Fatalf("expr = %+v", e)
	}
	if e.Text != `a \"quoted\" word` {
		t.Errorf("text = %q", e.Text)
	}
}

func TestParseMacroUsageExpr(t *testing.T) {
	u, e := exprOf(t, "`MAX(a, b)")
	if e.Kind != ast.ExprMacroUsage || e.Text != "MAX" {
		t.Fatalf("expr = %+v", e)
	}
	if len(e.Args) != 2 {
		t.Fatalf("arg count = %d", len(e.Args))
	}
	if got := string(u.Text.Slice(e.NameSpan)); got != "`MAX" {
		t.Errorf("name span reads %q", got)
	}
}

func TestParseParenthesizedGrouping(t *testing.T) {
	u, e := exprOf(t, "(a | b) & c")
	if e.Kind != ast.ExprBinary || e.BinOp != ast.OpBitAnd {
		t.Fatalf("top = %+v", e)
	}
	if inner := u.Expr(e.Left); inner.Kind != ast.ExprBinary || inner.BinOp != ast.OpBitOr {
		t.Errorf("grouped = %+v", inner)
	}
}
