package lsp

import (
	"sort"
	"strings"
	"testing"
)

func findItem(items []completionItem, label string) *completionItem {
	for i := range items {
		if items[i].Label == label {
			return &items[i]
		}
	}
	return nil
}

func TestCompletionsSystemCalls(t *testing.T) {
	items := completionsFor("$dis")
	if len(items) == 0 {
		t.Fatal("no completions for $dis")
	}
	for _, item := range items {
		if !strings.HasPrefix(item.Label, "$dis") {
			t.Errorf("item %q does not match prefix", item.Label)
		}
		if item.Kind != completionKindFunction {
			t.Errorf("item %q kind = %d", item.Label, item.Kind)
		}
	}
	display := findItem(items, "$display")
	if display == nil {
		t.Fatal("$display missing")
	}
	if display.Detail != "system task" {
		t.Errorf("$display detail = %q", display.Detail)
	}
	if display.Documentation == "" {
		t.Error("$display has no documentation")
	}
	if !sort.SliceIsSorted(items, func(i, j int) bool { return items[i].Label < items[j].Label }) {
		t.Error("completions not sorted")
	}
}

func TestCompletionsSystemFunctionDetail(t *testing.T) {
	items := completionsFor("$clog")
	clog2 := findItem(items, "$clog2")
	if clog2 == nil {
		t.Fatal("$clog2 missing")
	}
	if clog2.Detail != "system function" {
		t.Errorf("$clog2 detail = %q", clog2.Detail)
	}
}

func TestCompletionsBareDollarListsAll(t *testing.T) {
	items := completionsFor("$")
	if len(items) < 20 {
		t.Fatalf("only %d completions for bare $", len(items))
	}
}

func TestCompletionsKeywords(t *testing.T) {
	items := completionsFor("mod")
	if findItem(items, "module") == nil {
		t.Fatalf("module keyword missing from %v", items)
	}
	for _, item := range items {
		if item.Kind != completionKindKeyword {
			t.Errorf("item %q kind = %d", item.Label, item.Kind)
		}
	}
	if findItem(items, "always_ff") != nil {
		t.Error("non-matching keyword returned")
	}
}

func TestWordBefore(t *testing.T) {
	tests := []struct {
		text   string
		offset int
		want   string
	}{
		{"assign x = $dis", 15, "$dis"},
		{"  mod", 5, "mod"},
		{"a + b", 5, "b"},
		{"a + ", 4, ""},
		{"$", 1, "$"},
		{"", 0, ""},
		{"short", 99, "short"},
	}
	for _, tt := range tests {
		if got := wordBefore(tt.text, tt.offset); got != tt.want {
			t.Errorf("wordBefore(%q, %d) = %q, want %q", tt.text, tt.offset, got, tt.want)
		}
	}
}
