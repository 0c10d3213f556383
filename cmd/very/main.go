package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/SeanMcLoughlin/very-sub000/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "very",
	Short: "SystemVerilog frontend and language tooling",
	Long:  `Very parses, preprocesses, and analyzes SystemVerilog sources and serves editors over LSP`,
}

// main registers subcommands and persistent flags, then executes the root
// command. A command error exits with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColorOutput resolves the persistent --color flag against the stream
// the output will land on.
func useColorOutput(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
