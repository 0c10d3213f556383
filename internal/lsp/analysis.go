package lsp

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/diag"
	"github.com/SeanMcLoughlin/very-sub000/internal/parser"
	"github.com/SeanMcLoughlin/very-sub000/internal/preproc"
	"github.com/SeanMcLoughlin/very-sub000/internal/sema"
	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

// updateDocument reparses the new content, refreshes the symbol index,
// and publishes diagnostics. On a parse failure the previous unit is kept
// so hover and symbols stay available while the user types.
func (s *Server) updateDocument(uri, content string, version int) error {
	text := source.NewTextString(content)
	unit, parseErr := parser.Parse(content, s.parserOptions(uri))

	var diags []lspDiagnostic
	s.mu.Lock()
	doc := s.documents[uri]
	if doc == nil {
		doc = &document{}
		s.documents[uri] = doc
	}
	doc.text = text
	doc.version = version
	if parseErr == nil {
		doc.unit = unit
		doc.stale = false
		doc.symbols = buildDocumentSymbols(unit)
		s.index[uri] = flattenSymbols(uri, doc.symbols)
		diags = semanticDiagnostics(unit)
	} else {
		doc.stale = doc.unit != nil
		diags = []lspDiagnostic{parseDiagnostic(parseErr, text)}
	}
	s.mu.Unlock()

	return s.sendPublish(uri, version, diags)
}

// parserOptions builds parse options with include resolution rooted at the
// document's directory plus the configured include directories.
func (s *Server) parserOptions(uri string) parser.Options {
	s.mu.Lock()
	settings := s.settings
	root := s.workspaceRoot
	s.mu.Unlock()

	pp := preproc.New(preproc.Config{
		IncludeDirs: settings.includeDirs(root),
		Defines:     settings.Defines,
	})
	fromDir := filepath.Dir(uriToPath(uri))
	return parser.Options{
		IncludeResolver: func(name string) (string, bool) {
			return pp.ResolveInclude(name, fromDir)
		},
	}
}

func semanticDiagnostics(unit *ast.SourceUnit) []lspDiagnostic {
	bag := sema.Analyze(unit)
	bag.Sort()
	out := make([]lspDiagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, lspDiagnostic{
			Range:    rangeForSpan(unit.Text, d.Primary),
			Severity: severityFor(d.Severity),
			Code:     d.Code.String(),
			Source:   "very",
			Message:  d.Message,
		})
	}
	return out
}

func parseDiagnostic(err error, text *source.Text) lspDiagnostic {
	var perr *diag.Error
	if !errors.As(err, &perr) {
		return lspDiagnostic{
			Range:    lspRange{End: position{Character: 1}},
			Severity: diagSeverityError,
			Source:   "very",
			Message:  err.Error(),
		}
	}
	severity := diagSeverityError
	if perr.Diag.Code == diag.SynUnsupportedFeature {
		severity = diagSeverityWarning
	}
	msg := perr.Diag.Message
	if len(perr.Diag.Suggestions) > 0 {
		var sb strings.Builder
		sb.WriteString(msg)
		sb.WriteString("\n\nSuggestions:\n")
		for _, sug := range perr.Diag.Suggestions {
			sb.WriteString("  - ")
			sb.WriteString(sug)
			sb.WriteString("\n")
		}
		msg = strings.TrimRight(sb.String(), "\n")
	}
	span := perr.Diag.Primary
	if span.Empty() && span.End < text.Len() {
		span.End = span.Start + 1
	}
	return lspDiagnostic{
		Range:    rangeForSpan(text, span),
		Severity: severity,
		Code:     perr.Diag.Code.String(),
		Source:   "very",
		Message:  msg,
	}
}

func severityFor(sev diag.Severity) int {
	if sev >= diag.SevError {
		return diagSeverityError
	}
	return diagSeverityWarning
}

// indexWorkspace scans the configured source directories for .sv files and
// seeds the workspace symbol index. Open documents always win over the
// on-disk index because updateDocument overwrites their entry.
func (s *Server) indexWorkspace() {
	s.mu.Lock()
	settings := s.settings
	root := s.workspaceRoot
	s.mu.Unlock()

	dirs := settings.sourceDirs(root)
	if len(dirs) == 0 {
		return
	}

	var files []string
	for _, dir := range dirs {
		_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			ext := filepath.Ext(path)
			if ext == ".sv" || ext == ".svh" {
				files = append(files, path)
			}
			return nil
		})
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for _, file := range files {
		file := file
		g.Go(func() error {
			content, err := os.ReadFile(file) // #nosec G304 -- enumerated from configured dirs
			if err != nil {
				return nil
			}
			uri := pathToURI(file)
			unit, err := parser.Parse(string(content), s.parserOptions(uri))
			if err != nil {
				return nil
			}
			flat := flattenSymbols(uri, buildDocumentSymbols(unit))
			s.mu.Lock()
			if _, open := s.documents[uri]; !open {
				s.index[uri] = flat
			}
			s.mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}
