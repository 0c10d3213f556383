package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeanMcLoughlin/very-sub000/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [+incdir+<dir>] [+define+<macro>[=<value>]] <files...>",
	Short: "Parse SystemVerilog source files and report diagnostics",
	Long: `Parse preprocesses, parses, and analyzes the given SystemVerilog files.
VCS-style +incdir+ and +define+ arguments are accepted alongside plain
file paths.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runParse,
}

func init() {
	parseCmd.Flags().BoolP("verbose", "v", false, "print per-file progress and the parsed AST")
	parseCmd.Flags().BoolP("syntax-only", "s", false, "skip semantic analysis")
	parseCmd.Flags().Bool("fail-fast", false, "stop at the first file with errors")
	parseCmd.Flags().Bool("cache", false, "skip unchanged files via the disk cache")
	parseCmd.Flags().String("ui", "auto", "progress display (auto|tui|plain)")
}

func runParse(cmd *cobra.Command, args []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	syntaxOnly, err := cmd.Flags().GetBool("syntax-only")
	if err != nil {
		return fmt.Errorf("failed to get syntax-only flag: %w", err)
	}
	failFast, err := cmd.Flags().GetBool("fail-fast")
	if err != nil {
		return fmt.Errorf("failed to get fail-fast flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	parsed, err := driver.ParseVCSArgs(args, verbose, syntaxOnly, failFast)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	for _, warning := range parsed.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	cfg := driver.Config{
		IncludeDirs: parsed.IncludeDirs,
		Defines:     parsed.DefineMap(),
		Verbose:     parsed.Verbose,
		SyntaxOnly:  parsed.SyntaxOnly,
		FailFast:    parsed.FailFast,
		Color:       useColorOutput(cmd, os.Stderr),
	}
	if useCache {
		cache, cacheErr := driver.OpenDiskCache("very")
		if cacheErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: disk cache unavailable: %v\n", cacheErr)
		} else {
			cfg.Cache = cache
		}
	}

	// The TUI owns stdout, so verbose AST dumps stay on the plain path.
	if shouldUseTUI(mode, len(parsed.Files)) && !parsed.Verbose {
		return runBatchWithUI(cfg, parsed.Files)
	}
	return driver.Run(cfg, parsed.Files)
}
