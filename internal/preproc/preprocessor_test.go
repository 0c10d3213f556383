package preproc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SeanMcLoughlin/very-sub000/internal/diag"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefineAndExpand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "object macro",
			input: "`define WIDTH 8\nwire [`WIDTH:0] w;\n",
			want:  "wire [8:0] w;\n",
		},
		{
			name:  "macro defined with empty body",
			input: "`define DEBUG\nwire `DEBUG w;\n",
			want:  "wire  w;\n",
		},
		{
			name:  "parameterized macro",
			input: "`define MAX(a,b) ((a) > (b) ? (a) : (b))\nassign y = `MAX(p, q);\n",
			want:  "assign y = ((p) > (q) ? (p) : (q));\n",
		},
		{
			name:  "unknown macro kept",
			input: "assign y = `MYSTERY;\n",
			want:  "assign y = `MYSTERY;\n",
		},
		{
			name:  "conditional directives pass through both branches",
			input: "`ifdef X\nwire a;\n`else\nwire b;\n`endif\n",
			want:  "wire a;\nwire b;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(Config{})
			got, err := p.Expand(tt.input, "")
			if err != nil {
				t.Fatalf("Expand: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expand = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeededDefines(t *testing.T) {
	p := New(Config{Defines: map[string]string{"WIDTH": "16"}})
	got, err := p.Expand("wire [`WIDTH-1:0] bus;\n", "")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "wire [16-1:0] bus;\n" {
		t.Errorf("Expand = %q", got)
	}
}

func TestExpandIsIdempotentWithoutDirectives(t *testing.T) {
	content := "module m;\n\nassign a = b;\nendmodule\n"
	p := New(Config{})
	once, err := p.Expand(content, "")
	if err != nil {
		t.Fatalf("first Expand: %v", err)
	}
	twice, err := New(Config{}).Expand(once, "")
	if err != nil {
		t.Fatalf("second Expand: %v", err)
	}
	if once != twice {
		t.Errorf("expansion not idempotent:\nonce  = %q\ntwice = %q", once, twice)
	}
}

func TestIncludeRelativeToIncludingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "inc.svh", "wire included;\n")
	main := writeFile(t, dir, "main.sv", "`include \"inc.svh\"\nmodule m; endmodule\n")

	p := New(Config{})
	got, err := p.ExpandFile(main)
	if err != nil {
		t.Fatalf("ExpandFile: %v", err)
	}
	if !strings.Contains(got, "wire included;") {
		t.Errorf("include not expanded: %q", got)
	}
}

func TestIncludeSearchOrder(t *testing.T) {
	fileDir := t.TempDir()
	incDir := t.TempDir()
	writeFile(t, fileDir, "def.svh", "wire local_wins;\n")
	writeFile(t, incDir, "def.svh", "wire incdir_loses;\n")
	main := writeFile(t, fileDir, "top.sv", "`include \"def.svh\"\n")

	p := New(Config{IncludeDirs: []string{incDir}})
	got, err := p.ExpandFile(main)
	if err != nil {
		t.Fatalf("ExpandFile: %v", err)
	}
	if !strings.Contains(got, "local_wins") || strings.Contains(got, "incdir_loses") {
		t.Errorf("resolution order wrong: %q", got)
	}
}

func TestIncludeFromIncdir(t *testing.T) {
	fileDir := t.TempDir()
	incDir := t.TempDir()
	writeFile(t, incDir, "only.svh", "wire from_incdir;\n")
	main := writeFile(t, fileDir, "top.sv", "`include <only.svh>\n")

	p := New(Config{IncludeDirs: []string{incDir}})
	got, err := p.ExpandFile(main)
	if err != nil {
		t.Fatalf("ExpandFile: %v", err)
	}
	if !strings.Contains(got, "from_incdir") {
		t.Errorf("angle-bracket include not resolved: %q", got)
	}
}

func TestMissingInclude(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "top.sv", "`include \"nope.svh\"\n")

	_, err := New(Config{}).ExpandFile(main)
	var derr *diag.Error
	if !errors.As(err, &derr) {
		t.Fatalf("expected *diag.Error, got %v", err)
	}
	if derr.Code() != diag.PreMissingInclude {
		t.Errorf("code = %v, want PreMissingInclude", derr.Code())
	}
	if !strings.Contains(derr.Error(), "nope.svh") {
		t.Errorf("message should carry the literal filename: %q", derr.Error())
	}
}

func TestEmptyDefine(t *testing.T) {
	_, err := New(Config{}).Expand("`define\n", "")
	var derr *diag.Error
	if !errors.As(err, &derr) || derr.Code() != diag.PreEmptyDefine {
		t.Fatalf("expected PreEmptyDefine, got %v", err)
	}
}

func TestCircularIncludeNoOps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sv", "`include \"b.sv\"\nmodule A; endmodule\n")
	writeFile(t, dir, "b.sv", "`include \"a.sv\"\nmodule B; endmodule\n")

	p := New(Config{})
	got, err := p.ExpandFile(filepath.Join(dir, "a.sv"))
	if err != nil {
		t.Fatalf("ExpandFile: %v", err)
	}
	if strings.Count(got, "module A") != 1 || strings.Count(got, "module B") != 1 {
		t.Errorf("each module must appear exactly once:\n%s", got)
	}
}

func TestRepeatedIncludeReExpands(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "leaf.svh", "module leaf; endmodule\n")
	main := writeFile(t, dir, "top.sv", "`include \"leaf.svh\"\n`include \"leaf.svh\"\n")

	got, err := New(Config{}).ExpandFile(main)
	if err != nil {
		t.Fatalf("ExpandFile: %v", err)
	}
	if strings.Count(got, "module leaf") != 2 {
		t.Errorf("non-circular repeat include should re-expand:\n%s", got)
	}
}

func TestDefinesCrossIncludeBoundary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "defs.svh", "`define W 4\n")
	main := writeFile(t, dir, "top.sv", "`include \"defs.svh\"\nwire [`W:0] w;\n")

	got, err := New(Config{}).ExpandFile(main)
	if err != nil {
		t.Fatalf("ExpandFile: %v", err)
	}
	if !strings.Contains(got, "wire [4:0] w;") {
		t.Errorf("macro from include not visible: %q", got)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := New(Config{}).ExpandFile(filepath.Join(t.TempDir(), "ghost.sv"))
	var derr *diag.Error
	if !errors.As(err, &derr) || derr.Code() != diag.PreFileRead {
		t.Fatalf("expected PreFileRead, got %v", err)
	}
}
