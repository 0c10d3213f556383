package lsp

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/SeanMcLoughlin/very-sub000/internal/parser"
	"github.com/SeanMcLoughlin/very-sub000/internal/sema"
)

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	doc := s.getDocument(canonicalURI(params.TextDocument.URI))
	if doc == nil {
		return s.sendResponse(msg.ID, []completionItem{})
	}
	s.mu.Lock()
	text := doc.text
	s.mu.Unlock()

	offset := offsetForPositionInText(text, params.Position)
	prefix := wordBefore(string(text.Content), int(offset))
	items := completionsFor(prefix)
	return s.sendResponse(msg.ID, items)
}

// completionsFor proposes the system call vocabulary after "$" and the
// keyword set otherwise, both filtered by the typed prefix.
func completionsFor(prefix string) []completionItem {
	if strings.HasPrefix(prefix, "$") {
		return systemCompletions(prefix[1:])
	}
	items := make([]completionItem, 0, 32)
	for _, kw := range parser.Keywords() {
		if strings.HasPrefix(kw, prefix) {
			items = append(items, completionItem{
				Label: kw,
				Kind:  completionKindKeyword,
			})
		}
	}
	return items
}

func systemCompletions(prefix string) []completionItem {
	items := make([]completionItem, 0, len(sema.SystemFunctions)+len(sema.SystemTasks))
	for name, desc := range sema.SystemFunctions {
		if strings.HasPrefix(name, prefix) {
			items = append(items, completionItem{
				Label:         "$" + name,
				Kind:          completionKindFunction,
				Detail:        "system function",
				Documentation: desc,
			})
		}
	}
	for name, desc := range sema.SystemTasks {
		if strings.HasPrefix(name, prefix) {
			items = append(items, completionItem{
				Label:         "$" + name,
				Kind:          completionKindFunction,
				Detail:        "system task",
				Documentation: desc,
			})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items
}

// wordBefore returns the identifier (with an optional leading "$")
// immediately preceding the offset.
func wordBefore(text string, offset int) string {
	if offset > len(text) {
		offset = len(text)
	}
	start := offset
	for start > 0 {
		c := text[start-1]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			start--
			continue
		}
		if c == '$' {
			start--
		}
		break
	}
	return text[start:offset]
}
