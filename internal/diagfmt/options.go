package diagfmt

// Options controls rendering of diagnostics and AST dumps.
type Options struct {
	// Color enables ANSI coloring of severity labels.
	Color bool
}
