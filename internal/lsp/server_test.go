package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

// frameRequests encodes a batch of JSON-RPC payloads with LSP framing.
func frameRequests(t *testing.T, payloads ...string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	for _, p := range payloads {
		if err := writeMessage(&buf, []byte(p)); err != nil {
			t.Fatalf("frame request: %v", err)
		}
	}
	return &buf
}

// drainMessages decodes every framed message the server wrote.
func drainMessages(t *testing.T, out *bytes.Buffer) []rpcMessage {
	t.Helper()
	r := bufio.NewReader(bytes.NewReader(out.Bytes()))
	var msgs []rpcMessage
	for {
		payload, err := readMessage(r)
		if errors.Is(err, io.EOF) {
			return msgs
		}
		if err != nil {
			t.Fatalf("drain: %v", err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode %q: %v", payload, err)
		}
		msgs = append(msgs, msg)
	}
}

func responseByID(msgs []rpcMessage, id string) *rpcMessage {
	for i := range msgs {
		if string(msgs[i].ID) == id && msgs[i].Method == "" {
			return &msgs[i]
		}
	}
	return nil
}

func notificationsByMethod(msgs []rpcMessage, method string) []rpcMessage {
	var out []rpcMessage
	for _, m := range msgs {
		if m.Method == method {
			out = append(out, m)
		}
	}
	return out
}

func TestServerLifecycle(t *testing.T) {
	root := t.TempDir()
	uri := pathToURI(root + "/top.sv")
	docText := "module top;\n  logic clk;\nendmodule\n"
	openParams, err := json.Marshal(didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, LanguageID: "systemverilog", Version: 1, Text: docText},
	})
	if err != nil {
		t.Fatal(err)
	}

	in := frameRequests(t,
		fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"rootUri":%q}}`, pathToURI(root)),
		`{"jsonrpc":"2.0","method":"initialized"}`,
		fmt.Sprintf(`{"jsonrpc":"2.0","method":"textDocument/didOpen","params":%s}`, openParams),
		`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	)
	var out bytes.Buffer
	s := NewServer(in, &out, ServerOptions{Version: "0.0.1-test"})

	err = s.Run(context.Background())
	if !errors.Is(err, ErrExit) {
		t.Fatalf("Run = %v, want ErrExit", err)
	}

	msgs := drainMessages(t, &out)

	initResp := responseByID(msgs, "1")
	if initResp == nil {
		t.Fatal("no initialize response")
	}
	var result initializeResult
	if err := json.Unmarshal(initResp.Result, &result); err != nil {
		t.Fatalf("decode initialize result: %v", err)
	}
	if !result.Capabilities.HoverProvider || !result.Capabilities.DocumentSymbolProvider {
		t.Errorf("capabilities = %+v", result.Capabilities)
	}
	if result.Capabilities.TextDocumentSync.Change != 1 {
		t.Errorf("sync kind = %d, want 1", result.Capabilities.TextDocumentSync.Change)
	}
	if result.ServerInfo == nil || result.ServerInfo.Name != "very-language-server" {
		t.Errorf("server info = %+v", result.ServerInfo)
	}

	pubs := notificationsByMethod(msgs, "textDocument/publishDiagnostics")
	if len(pubs) != 1 {
		t.Fatalf("publishDiagnostics count = %d, want 1", len(pubs))
	}
	var pub publishDiagnosticsParams
	if err := json.Unmarshal(pubs[0].Params, &pub); err != nil {
		t.Fatal(err)
	}
	if pub.URI != uri || len(pub.Diagnostics) != 0 {
		t.Errorf("publish = %+v, want clean %s", pub, uri)
	}

	if resp := responseByID(msgs, "2"); resp == nil {
		t.Error("no shutdown response")
	}
}

func TestServerExitWithoutShutdown(t *testing.T) {
	in := frameRequests(t, `{"jsonrpc":"2.0","method":"exit"}`)
	var out bytes.Buffer
	s := NewServer(in, &out, ServerOptions{})
	if err := s.Run(context.Background()); !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("Run = %v, want ErrExitWithoutShutdown", err)
	}
}

func TestServerStopsOnEOF(t *testing.T) {
	var out bytes.Buffer
	s := NewServer(strings.NewReader(""), &out, ServerOptions{})
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run = %v, want nil on EOF", err)
	}
}

func TestServerUnknownMethod(t *testing.T) {
	in := frameRequests(t,
		`{"jsonrpc":"2.0","id":7,"method":"textDocument/definition","params":{}}`,
		`{"jsonrpc":"2.0","id":8,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	)
	var out bytes.Buffer
	s := NewServer(in, &out, ServerOptions{})
	if err := s.Run(context.Background()); !errors.Is(err, ErrExit) {
		t.Fatalf("Run = %v", err)
	}
	resp := responseByID(drainMessages(t, &out), "7")
	if resp == nil || resp.Error == nil || resp.Error.Code != -32601 {
		t.Errorf("response = %+v, want method not found", resp)
	}
}

func TestServerDidCloseClearsDiagnostics(t *testing.T) {
	root := t.TempDir()
	uri := pathToURI(root + "/bad.sv")
	openParams, err := json.Marshal(didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, Version: 1, Text: "module m;\ninitial $displai(1);\nendmodule\n"},
	})
	if err != nil {
		t.Fatal(err)
	}
	closeParams, err := json.Marshal(didCloseTextDocumentParams{
		TextDocument: textDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatal(err)
	}

	in := frameRequests(t,
		fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"rootUri":%q}}`, pathToURI(root)),
		fmt.Sprintf(`{"jsonrpc":"2.0","method":"textDocument/didOpen","params":%s}`, openParams),
		fmt.Sprintf(`{"jsonrpc":"2.0","method":"textDocument/didClose","params":%s}`, closeParams),
		`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	)
	var out bytes.Buffer
	s := NewServer(in, &out, ServerOptions{})
	if err := s.Run(context.Background()); !errors.Is(err, ErrExit) {
		t.Fatalf("Run = %v", err)
	}

	pubs := notificationsByMethod(drainMessages(t, &out), "textDocument/publishDiagnostics")
	if len(pubs) != 2 {
		t.Fatalf("publish count = %d, want 2", len(pubs))
	}
	var first, last publishDiagnosticsParams
	if err := json.Unmarshal(pubs[0].Params, &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(pubs[1].Params, &last); err != nil {
		t.Fatal(err)
	}
	if len(first.Diagnostics) == 0 {
		t.Error("expected diagnostics for unknown system task")
	}
	if len(last.Diagnostics) != 0 {
		t.Errorf("close published %d diagnostics, want 0", len(last.Diagnostics))
	}
}
