// Package fuzztests houses Go fuzz harnesses that exercise the frontend
// pipeline (source -> preprocessor -> parser -> analyzer). Its goal is to
// smoke test robustness and guard against panics or allocator explosions
// on arbitrary inputs.
package fuzztests
