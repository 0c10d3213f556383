package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // clamp for the seed corpus

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addInlineSeeds(f)
}

// addTestdataSeeds feeds every checked-in .sv fixture to the corpus.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "driver", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".sv" && ext != ".svh" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func addInlineSeeds(f *testing.F) {
	seeds := []string{
		"",
		"module m; endmodule\n",
		"module m(input clk, output logic [7:0] q);\n  always_ff @(posedge clk) q <= q + 1;\nendmodule\n",
		"`define WIDTH 8\n`include \"defs.svh\"\nmodule m; logic [`WIDTH-1:0] bus; endmodule\n",
		"class C extends B;\n  local int n = 0;\n  function int get(); n = n + 1; endfunction\nendclass\n",
		"module m;\n  initial begin\n    unique case (sel) 2'b00: a = 1; default: a = 0; endcase\n  end\nendmodule\n",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
