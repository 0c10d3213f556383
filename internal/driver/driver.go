// Package driver runs the batch frontend pipeline: preprocess, parse, and
// analyze each input file, reporting results the way the parse command
// prints them.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/SeanMcLoughlin/very-sub000/internal/ast"
	"github.com/SeanMcLoughlin/very-sub000/internal/diagfmt"
	"github.com/SeanMcLoughlin/very-sub000/internal/parser"
	"github.com/SeanMcLoughlin/very-sub000/internal/preproc"
	"github.com/SeanMcLoughlin/very-sub000/internal/sema"
)

// ErrReported signals that at least one file failed and the messages were
// already printed. Callers map it to a non-zero exit without re-printing.
var ErrReported = errors.New("errors were reported")

// Config carries batch settings resolved from the command line.
type Config struct {
	IncludeDirs []string
	Defines     map[string]string

	Verbose    bool
	SyntaxOnly bool
	FailFast   bool
	Color      bool

	// Cache, when non-nil, lets clean unchanged files skip re-parsing.
	Cache *DiskCache

	// Progress receives per-file events for interactive UIs. May be nil.
	Progress ProgressSink

	// Stdout and Stderr default to the process streams when nil.
	Stdout io.Writer
	Stderr io.Writer
}

func (cfg *Config) stdout() io.Writer {
	if cfg.Stdout != nil {
		return cfg.Stdout
	}
	return os.Stdout
}

func (cfg *Config) stderr() io.Writer {
	if cfg.Stderr != nil {
		return cfg.Stderr
	}
	return os.Stderr
}

// Run processes files in order. Every failure is printed as it happens;
// the returned error is ErrReported when any file failed, nil when the
// whole batch was clean.
func Run(cfg Config, files []string) error {
	if cfg.Verbose {
		if len(cfg.IncludeDirs) > 0 {
			fmt.Fprintf(cfg.stderr(), "Include directories: %v\n", cfg.IncludeDirs)
		}
		if len(cfg.Defines) > 0 {
			fmt.Fprintf(cfg.stderr(), "Macro defines: %v\n", cfg.Defines)
		}
		fmt.Fprintf(cfg.stderr(), "Files to parse: %v\n", files)
	}

	for _, file := range files {
		emit(cfg.Progress, file, StagePreprocess, StatusQueued, nil)
	}

	hadErrors := false
	for _, file := range files {
		ok := runFile(cfg, file, len(files))
		if !ok {
			hadErrors = true
			if cfg.FailFast {
				return ErrReported
			}
		}
	}
	if hadErrors {
		return ErrReported
	}
	return nil
}

func runFile(cfg Config, file string, total int) bool {
	if cfg.Verbose {
		fmt.Fprintf(cfg.stderr(), "Parsing file: %s\n", file)
	}

	// Defines accumulate per file, not across files, so every file gets a
	// fresh preprocessor seeded from the command line.
	pp := preproc.New(preproc.Config{
		IncludeDirs: cfg.IncludeDirs,
		Defines:     cfg.Defines,
	})

	emit(cfg.Progress, file, StagePreprocess, StatusWorking, nil)
	text, err := pp.ExpandFile(file)
	if err != nil {
		fmt.Fprintf(cfg.stderr(), "Error parsing %s: %v\n", file, err)
		emit(cfg.Progress, file, StagePreprocess, StatusError, err)
		return false
	}

	key := HashText(text)
	if cfg.Cache != nil {
		var payload CachePayload
		if hit, _ := cfg.Cache.Get(key, &payload); hit && payload.Clean {
			if cfg.Verbose {
				fmt.Fprintf(cfg.stderr(), "Cache hit for %s\n", file)
			}
			emit(cfg.Progress, file, StageParse, StatusCached, nil)
			if total > 1 {
				fmt.Fprintf(cfg.stdout(), "%s: OK\n", file)
			}
			return true
		}
	}

	emit(cfg.Progress, file, StageParse, StatusWorking, nil)
	fromDir := filepath.Dir(file)
	unit, err := parser.Parse(text, parser.Options{
		IncludeResolver: func(name string) (string, bool) {
			return pp.ResolveInclude(name, fromDir)
		},
	})
	if err != nil {
		fmt.Fprintf(cfg.stderr(), "Error parsing %s: %v\n", file, err)
		emit(cfg.Progress, file, StageParse, StatusError, err)
		return false
	}

	diagCount := 0
	if !cfg.SyntaxOnly {
		emit(cfg.Progress, file, StageAnalyze, StatusWorking, nil)
		bag := sema.Analyze(unit)
		bag.Sort()
		diagCount = bag.Len()
		if bag.HasErrors() {
			diagfmt.Semantic(cfg.stderr(), file, bag, diagfmt.Options{Color: cfg.Color})
			if cfg.Verbose {
				diagfmt.Pretty(cfg.stderr(), bag, unit.Text, file, diagfmt.Options{Color: cfg.Color})
			}
			emit(cfg.Progress, file, StageAnalyze, StatusError, ErrReported)
			storeResult(cfg.Cache, key, unit, diagCount, false)
			return false
		}
	}

	emit(cfg.Progress, file, StageAnalyze, StatusDone, nil)
	storeResult(cfg.Cache, key, unit, diagCount, true)

	if cfg.Verbose {
		fmt.Fprintf(cfg.stdout(), "Successfully parsed %s\n", file)
		fmt.Fprintln(cfg.stdout(), "AST:")
		diagfmt.Dump(cfg.stdout(), unit)
	} else if total > 1 {
		fmt.Fprintf(cfg.stdout(), "%s: OK\n", file)
	}
	return true
}

func storeResult(cache *DiskCache, key Digest, unit *ast.SourceUnit, diagCount int, clean bool) {
	if cache == nil {
		return
	}
	payload := CachePayload{
		Schema:    diskCacheSchemaVersion,
		Modules:   moduleNames(unit),
		DiagCount: diagCount,
		Clean:     clean,
	}
	// A write failure only costs a future cache hit.
	_ = cache.Put(key, &payload)
}

func moduleNames(unit *ast.SourceUnit) []string {
	var names []string
	for _, id := range unit.Items {
		if it := unit.Item(id); it != nil && it.Kind == ast.ItemModule {
			names = append(names, it.Name)
		}
	}
	return names
}
