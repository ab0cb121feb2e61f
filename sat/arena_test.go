package sat

import "testing"

func TestArena_AllocAndRead(t *testing.T) {
	a := NewArena(64)
	lits := []Literal{PositiveLiteral(0), NegativeLiteral(1), PositiveLiteral(2)}

	cref := a.Alloc(lits, false)
	c := a.Clause(cref)

	if got, want := c.Size(), 3; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
	if c.Learnt() {
		t.Errorf("Learnt() = true, want false")
	}
	for i, want := range lits {
		if got := c.Lit(i); got != want {
			t.Errorf("Lit(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestArena_LearntClauseCarriesLBDAndActivity(t *testing.T) {
	a := NewArena(64)
	lits := []Literal{PositiveLiteral(0), NegativeLiteral(1)}

	cref := a.Alloc(lits, true)
	c := a.Clause(cref)

	if !c.Learnt() {
		t.Fatalf("Learnt() = false, want true")
	}

	c.SetLBD(3)
	c.SetActivity(1.5)

	if got, want := c.LBD(), 3; got != want {
		t.Errorf("LBD() = %d, want %d", got, want)
	}
	if got, want := c.Activity(), float32(1.5); got != want {
		t.Errorf("Activity() = %v, want %v", got, want)
	}
}

func TestClauseRef_Swap(t *testing.T) {
	a := NewArena(64)
	lits := []Literal{PositiveLiteral(0), NegativeLiteral(1), PositiveLiteral(2)}
	cref := a.Alloc(lits, false)
	c := a.Clause(cref)

	c.Swap(0, 2)

	want := []Literal{PositiveLiteral(2), NegativeLiteral(1), PositiveLiteral(0)}
	for i, w := range want {
		if got := c.Lit(i); got != w {
			t.Errorf("Lit(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestArena_ShrinkLowersSizeAndTracksWaste(t *testing.T) {
	a := NewArena(64)
	lits := []Literal{PositiveLiteral(0), NegativeLiteral(1), PositiveLiteral(2), NegativeLiteral(3)}
	cref := a.Alloc(lits, false)

	a.shrink(cref, 2)

	c := a.Clause(cref)
	if got, want := c.Size(), 2; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
	if got, want := a.wasted, 2; got != want {
		t.Errorf("wasted = %d, want %d", got, want)
	}
}

func TestArena_MarkIncreasesWaste(t *testing.T) {
	a := NewArena(64)
	lits := []Literal{PositiveLiteral(0), NegativeLiteral(1)}
	cref := a.Alloc(lits, false)

	if a.GarbageRatio() != 0 {
		t.Fatalf("GarbageRatio() = %v before marking, want 0", a.GarbageRatio())
	}

	a.Clause(cref).Mark()

	if !a.Clause(cref).Marked() {
		t.Errorf("Marked() = false after Mark(), want true")
	}
	if a.GarbageRatio() <= 0 {
		t.Errorf("GarbageRatio() = %v after Mark(), want > 0", a.GarbageRatio())
	}
}

func TestArena_CompactDropsMarkedClauses(t *testing.T) {
	a := NewArena(64)

	keep := a.Alloc([]Literal{PositiveLiteral(0), NegativeLiteral(1)}, false)
	drop := a.Alloc([]Literal{PositiveLiteral(2), NegativeLiteral(3)}, false)

	a.Clause(drop).Mark()

	newArena, remap := a.Compact([]Cref{keep, drop}, nil)

	if _, ok := remap[drop]; ok {
		t.Errorf("remap contains dropped clause %d", drop)
	}
	newKeep, ok := remap[keep]
	if !ok {
		t.Fatalf("remap missing kept clause %d", keep)
	}

	c := newArena.Clause(newKeep)
	if got, want := c.Size(), 2; got != want {
		t.Fatalf("Size() after compact = %d, want %d", got, want)
	}
	if got, want := c.Lit(0), PositiveLiteral(0); got != want {
		t.Errorf("Lit(0) after compact = %v, want %v", got, want)
	}
}
