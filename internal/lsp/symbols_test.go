package lsp

import (
	"encoding/json"
	"testing"
)

const symbolSrc = "`define WIDTH 8\n" +
	"module counter(input clk, output logic [7:0] count);\n" +
	"  logic [7:0] next;\n" +
	"endmodule\n" +
	"class Packet extends Base;\n" +
	"  int size;\n" +
	"  function int get_size();\n" +
	"    size = size + 1;\n" +
	"  endfunction\n" +
	"endclass\n"

func TestBuildDocumentSymbols(t *testing.T) {
	unit := parseUnit(t, symbolSrc)
	syms := buildDocumentSymbols(unit)
	if len(syms) != 3 {
		t.Fatalf("top-level symbols = %d, want 3", len(syms))
	}

	define := syms[0]
	if define.Name != "WIDTH" || define.Kind != symbolKindProperty || define.Detail != "8" {
		t.Errorf("define symbol = %+v", define)
	}

	mod := syms[1]
	if mod.Name != "counter" || mod.Kind != symbolKindModule {
		t.Fatalf("module symbol = %+v", mod)
	}
	if len(mod.Children) != 3 {
		t.Fatalf("module children = %d, want 2 ports and 1 var", len(mod.Children))
	}
	if mod.Children[0].Name != "clk" || mod.Children[0].Detail != "input" {
		t.Errorf("port symbol = %+v", mod.Children[0])
	}
	if mod.Children[1].Name != "count" || mod.Children[1].Detail != "output logic" {
		t.Errorf("port symbol = %+v", mod.Children[1])
	}
	if mod.Children[2].Name != "next" || mod.Children[2].Kind != symbolKindVariable {
		t.Errorf("var symbol = %+v", mod.Children[2])
	}

	cls := syms[2]
	if cls.Name != "Packet" || cls.Kind != symbolKindClass || cls.Detail != "extends Base" {
		t.Fatalf("class symbol = %+v", cls)
	}
	if len(cls.Children) != 2 {
		t.Fatalf("class children = %d, want 2", len(cls.Children))
	}
	if cls.Children[0].Name != "size" || cls.Children[0].Kind != symbolKindField {
		t.Errorf("property symbol = %+v", cls.Children[0])
	}
	if cls.Children[1].Name != "get_size" || cls.Children[1].Kind != symbolKindMethod {
		t.Errorf("method symbol = %+v", cls.Children[1])
	}
}

func TestFlattenSymbols(t *testing.T) {
	unit := parseUnit(t, symbolSrc)
	flat := flattenSymbols("file:///work/a.sv", buildDocumentSymbols(unit))

	byName := map[string]symbolInformation{}
	for _, sym := range flat {
		byName[sym.Name] = sym
	}
	if len(flat) != 8 {
		t.Fatalf("flattened count = %d, want 8", len(flat))
	}
	if byName["counter"].ContainerName != "" {
		t.Errorf("counter container = %q", byName["counter"].ContainerName)
	}
	if byName["next"].ContainerName != "counter" {
		t.Errorf("next container = %q", byName["next"].ContainerName)
	}
	if byName["get_size"].ContainerName != "Packet" {
		t.Errorf("get_size container = %q", byName["get_size"].ContainerName)
	}
	if byName["size"].Location.URI != "file:///work/a.sv" {
		t.Errorf("location = %+v", byName["size"].Location)
	}
}

func seedIndex(s *Server, uri string, src string, t *testing.T) {
	t.Helper()
	unit := parseUnit(t, src)
	s.mu.Lock()
	s.index[uri] = flattenSymbols(uri, buildDocumentSymbols(unit))
	s.mu.Unlock()
}

func TestWorkspaceSymbolQuery(t *testing.T) {
	s, out := newTestServer(t)
	seedIndex(s, "file:///work/b.sv", "module uart_tx;\nendmodule\n", t)
	seedIndex(s, "file:///work/a.sv", "module uart_rx;\nendmodule\nmodule spi;\nendmodule\n", t)

	query := func(q string) []symbolInformation {
		t.Helper()
		out.Reset()
		msg := &rpcMessage{ID: json.RawMessage("1"), Method: "workspace/symbol",
			Params: json.RawMessage(`{"query":` + string(mustJSON(t, q)) + `}`)}
		if err := s.handleWorkspaceSymbol(msg); err != nil {
			t.Fatalf("handleWorkspaceSymbol: %v", err)
		}
		resp := responseByID(drainMessages(t, out), "1")
		if resp == nil {
			t.Fatal("no response")
		}
		var syms []symbolInformation
		if err := json.Unmarshal(resp.Result, &syms); err != nil {
			t.Fatal(err)
		}
		return syms
	}

	got := query("uart")
	if len(got) != 2 {
		t.Fatalf("uart matches = %+v, want 2", got)
	}
	// URIs sort before symbol order, so a.sv's match comes first.
	if got[0].Name != "uart_rx" || got[1].Name != "uart_tx" {
		t.Errorf("match order = %s, %s", got[0].Name, got[1].Name)
	}

	if got := query("UART_RX"); len(got) != 1 {
		t.Errorf("case-insensitive matches = %+v, want 1", got)
	}
	if got := query(""); len(got) != 3 {
		t.Errorf("empty query matches = %d, want all 3", len(got))
	}
	if got := query("fifo"); len(got) != 0 {
		t.Errorf("fifo matches = %+v, want none", got)
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
