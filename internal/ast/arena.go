package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is flat append-only storage for nodes of one kind. Indices are
// 1-based; index 0 is the "no node" sentinel.
type Arena[T any] struct {
	data []T
}

// NewArena creates an arena whose backing slice is preallocated to capHint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}

// Get returns the node at index, or nil for the sentinel index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || index > uint32(len(a.data)) {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage. Read-only.
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}

// Truncate discards every node allocated after the first n. Indices at
// or below n stay valid.
func (a *Arena[T]) Truncate(n uint32) {
	if n < uint32(len(a.data)) {
		a.data = a.data[:n]
	}
}
