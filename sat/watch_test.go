package sat

import "testing"

func TestWatches_WatchRegistersBinaryClause(t *testing.T) {
	a := NewArena(64)
	cref := a.Alloc([]Literal{PositiveLiteral(0), NegativeLiteral(1)}, false)

	w := newWatches(4)
	w.watch(a, cref)

	l0, l1 := PositiveLiteral(0), NegativeLiteral(1)
	if got := len(w.binary[l0.Opposite()]); got != 1 {
		t.Fatalf("len(binary[%v]) = %d, want 1", l0.Opposite(), got)
	}
	if got := len(w.binary[l1.Opposite()]); got != 1 {
		t.Fatalf("len(binary[%v]) = %d, want 1", l1.Opposite(), got)
	}
	if got := len(w.long[l0.Opposite()]); got != 0 {
		t.Errorf("len(long[%v]) = %d, want 0", l0.Opposite(), got)
	}
}

func TestWatches_WatchRegistersLongClause(t *testing.T) {
	a := NewArena(64)
	cref := a.Alloc([]Literal{PositiveLiteral(0), NegativeLiteral(1), PositiveLiteral(2)}, false)

	w := newWatches(6)
	w.watch(a, cref)

	l0, l1 := PositiveLiteral(0), NegativeLiteral(1)
	if got := len(w.long[l0.Opposite()]); got != 1 {
		t.Fatalf("len(long[%v]) = %d, want 1", l0.Opposite(), got)
	}
	if got := len(w.long[l1.Opposite()]); got != 1 {
		t.Fatalf("len(long[%v]) = %d, want 1", l1.Opposite(), got)
	}
}

func TestWatches_Unwatch(t *testing.T) {
	a := NewArena(64)
	cref := a.Alloc([]Literal{PositiveLiteral(0), NegativeLiteral(1)}, false)

	w := newWatches(4)
	w.watch(a, cref)
	w.unwatch(a, cref)

	l0, l1 := PositiveLiteral(0), NegativeLiteral(1)
	if got := len(w.binary[l0.Opposite()]); got != 0 {
		t.Errorf("len(binary[%v]) after unwatch = %d, want 0", l0.Opposite(), got)
	}
	if got := len(w.binary[l1.Opposite()]); got != 0 {
		t.Errorf("len(binary[%v]) after unwatch = %d, want 0", l1.Opposite(), got)
	}
}

func TestWatches_RewriteDropsUnmappedAndRenamesMapped(t *testing.T) {
	a := NewArena(64)
	kept := a.Alloc([]Literal{PositiveLiteral(0), NegativeLiteral(1)}, false)
	dropped := a.Alloc([]Literal{PositiveLiteral(0), PositiveLiteral(2)}, false)

	w := newWatches(6)
	w.watch(a, kept)
	w.watch(a, dropped)

	remap := map[Cref]Cref{kept: 999}
	w.rewrite(remap)

	l0 := PositiveLiteral(0)
	list := w.binary[l0.Opposite()]
	if got, want := len(list), 1; got != want {
		t.Fatalf("len(binary[%v]) = %d, want %d", l0.Opposite(), got, want)
	}
	if list[0].cref != 999 {
		t.Errorf("surviving watcher cref = %d, want 999", list[0].cref)
	}
}
