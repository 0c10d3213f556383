package ast

import "testing"

func TestArenaIndicesAreOneBased(t *testing.T) {
	a := NewArena[int](4)
	first := a.Allocate(10)
	second := a.Allocate(20)
	if first != 1 || second != 2 {
		t.Fatalf("indices = %d, %d, want 1, 2", first, second)
	}
	if a.Get(0) != nil {
		t.Error("index 0 must be the nil sentinel")
	}
	if got := *a.Get(first); got != 10 {
		t.Errorf("Get(1) = %d, want 10", got)
	}
	if a.Get(3) != nil {
		t.Error("out-of-range index must return nil")
	}
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2", a.Len())
	}
}

func TestBuilderRootsKeepOrder(t *testing.T) {
	b := NewBuilder(0)
	i1 := b.NewItem(ModuleItem{Kind: ItemModule, Name: "a"})
	i2 := b.NewItem(ModuleItem{Kind: ItemModule, Name: "b"})
	b.PushRoot(i1)
	b.PushRoot(i2)

	unit := b.Finish(nil)
	if len(unit.Items) != 2 {
		t.Fatalf("roots = %d, want 2", len(unit.Items))
	}
	if unit.Item(unit.Items[0]).Name != "a" || unit.Item(unit.Items[1]).Name != "b" {
		t.Error("roots must keep source order")
	}
}
