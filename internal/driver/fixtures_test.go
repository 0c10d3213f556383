package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SeanMcLoughlin/very-sub000/internal/parser"
	"github.com/SeanMcLoughlin/very-sub000/internal/preproc"
	"github.com/SeanMcLoughlin/very-sub000/internal/sema"
	"github.com/SeanMcLoughlin/very-sub000/internal/testkit"
)

func fixturePaths(t *testing.T, subdir string) []string {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join("testdata", subdir, "*.sv"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixtures under testdata/%s", subdir)
	}
	return paths
}

func TestFixturesParseClean(t *testing.T) {
	for _, path := range fixturePaths(t, "ok") {
		t.Run(filepath.Base(path), func(t *testing.T) {
			pp := preproc.New(preproc.Config{})
			text, err := pp.ExpandFile(path)
			if err != nil {
				t.Fatalf("preprocess: %v", err)
			}
			unit, err := parser.Parse(text, parser.Options{})
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if err := testkit.CheckUnitInvariants(unit); err != nil {
				t.Errorf("invariants: %v", err)
			}
			if bag := sema.Analyze(unit); bag.HasErrors() {
				t.Errorf("unexpected semantic errors: %+v", bag.Items())
			}
		})
	}
}

func TestFixturesParseFail(t *testing.T) {
	for _, path := range fixturePaths(t, "errors") {
		t.Run(filepath.Base(path), func(t *testing.T) {
			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if _, err := parser.Parse(string(content), parser.Options{}); err == nil {
				t.Error("expected a parse error")
			}
		})
	}
}
