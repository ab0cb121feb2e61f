package sat

import "math"

// Cref is an opaque, stable reference to a clause stored in an arena. It
// is a word offset, not a pointer, so that the arena can be compacted and
// every outstanding reference rewritten in one pass (see Arena.Compact).
type Cref uint32

// CrefNone is the sentinel meaning "no clause".
const CrefNone Cref = math.MaxUint32

// Word layout of a clause inside the arena, all in units of uint32:
//
//	[0] header: size (29 bits) | learnt (1 bit) | deleted (1 bit) | protected (1 bit)
//	[1] lbd
//	[2] activity bits (float32), present only when learnt
//	[2 or 3 ..] literals, one word each
//
// Clauses of size < 2 are never stored (spec §3): unit facts are
// enqueued directly and empty clauses make add_clause report
// trivial-unsat without touching the arena.
const (
	headerWord   = 0
	lbdWord      = 1
	activityWord = 2 // only valid when learnt

	sizeBits     = 29
	sizeMask     = 1<<sizeBits - 1
	learntBit    = 1 << 29
	deletedBit   = 1 << 30
	protectedBit = 1 << 31
)

// Arena is a contiguous, compacting, bump-allocated store of clauses.
// Clauses are addressed by Cref, a 32-bit word offset, rather than by
// pointer: this keeps clauses cache-local and makes deletion (mark, then
// reclaim at the next Compact) a cheap, uniform operation instead of a
// pointer-graph walk.
type Arena struct {
	words []uint32

	// wasted counts words belonging to deleted clauses still resident in
	// the arena; used to compute the garbage ratio that triggers Compact.
	wasted int
}

// NewArena returns an empty arena with capacity for roughly capWords
// words pre-allocated.
func NewArena(capWords int) *Arena {
	return &Arena{words: make([]uint32, 0, capWords)}
}

func headerWords(learnt bool) int {
	if learnt {
		return 3
	}
	return 2
}

// Alloc reserves space for a new clause of the given literals and returns
// its Cref. Size must be >= 2.
func (a *Arena) Alloc(lits []Literal, learnt bool) Cref {
	if len(lits) < 2 {
		panic("sat: clause arena allocation requires at least two literals")
	}

	cref := Cref(len(a.words))

	header := uint32(len(lits)) & sizeMask
	if learnt {
		header |= learntBit
	}

	a.words = append(a.words, header) // header word
	a.words = append(a.words, 0)      // lbd word
	if learnt {
		a.words = append(a.words, 0) // activity word
	}
	for _, l := range lits {
		a.words = append(a.words, uint32(l))
	}

	return cref
}

// Clause returns a handle to the clause at cref. The handle is a thin
// view into the arena's backing slice; it becomes invalid across a call
// to Compact.
func (a *Arena) Clause(cref Cref) ClauseRef {
	return ClauseRef{a: a, cref: cref}
}

// ClauseRef is a lightweight handle onto a clause stored in an Arena.
type ClauseRef struct {
	a    *Arena
	cref Cref
}

// Cref returns the reference this handle was created from.
func (c ClauseRef) Cref() Cref { return c.cref }

func (c ClauseRef) header() uint32 { return c.a.words[uint32(c.cref)+headerWord] }

// Size returns the number of literals in the clause.
func (c ClauseRef) Size() int { return int(c.header() & sizeMask) }

// Learnt reports whether the clause was learnt by conflict analysis
// rather than supplied by the caller.
func (c ClauseRef) Learnt() bool { return c.header()&learntBit != 0 }

// Marked reports whether the clause has been marked for deletion. Space
// is only reclaimed at the next Compact.
func (c ClauseRef) Marked() bool { return c.header()&deletedBit != 0 }

// Mark flags the clause as deleted. Callers must have already unwatched
// it (Arena has no knowledge of watch lists).
func (c ClauseRef) Mark() {
	idx := uint32(c.cref) + headerWord
	c.a.words[idx] |= deletedBit
	c.a.wasted += headerWords(c.Learnt()) + c.Size()
}

// Protected reports whether the clause is shielded from the next
// reduceDB pass regardless of its LBD or activity (spec §4.9,
// lbd_freeze_clause). Mirrors the statusProtected flag of the
// teacher's pointer-based Clause (sat/clauses.go), folded into the
// arena's header word instead of a separate status byte.
func (c ClauseRef) Protected() bool { return c.header()&protectedBit != 0 }

// SetProtected raises the protected flag.
func (c ClauseRef) SetProtected() {
	idx := uint32(c.cref) + headerWord
	c.a.words[idx] |= protectedBit
}

// ClearProtected lowers the protected flag, so the clause is judged on
// LBD/locked status alone at the next reduceDB pass: the freeze is a
// one-cycle reprieve, not permanent immunity.
func (c ClauseRef) ClearProtected() {
	idx := uint32(c.cref) + headerWord
	c.a.words[idx] &^= protectedBit
}

// shrink lowers a clause's recorded size to newSize (<= current size),
// used by top-level simplification once the literals not falsified at
// level 0 have been compacted to the front of the clause's literal words. The
// freed trailing words become garbage, counted against the ratio that
// triggers the next Compact.
func (a *Arena) shrink(cref Cref, newSize int) {
	old := a.Clause(cref).Size()
	if newSize == old {
		return
	}
	idx := uint32(cref) + headerWord
	header := a.words[idx] &^ sizeMask
	a.words[idx] = header | (uint32(newSize) & sizeMask)
	a.wasted += old - newSize
}

// LBD returns the clause's literal-block-distance score.
func (c ClauseRef) LBD() int { return int(c.a.words[uint32(c.cref)+lbdWord]) }

// SetLBD updates the clause's LBD score.
func (c ClauseRef) SetLBD(v int) { c.a.words[uint32(c.cref)+lbdWord] = uint32(v) }

// Activity returns the clause's activity; only meaningful for learnt
// clauses.
func (c ClauseRef) Activity() float32 {
	bits := c.a.words[uint32(c.cref)+activityWord]
	return math.Float32frombits(bits)
}

// SetActivity updates the clause's activity.
func (c ClauseRef) SetActivity(v float32) {
	c.a.words[uint32(c.cref)+activityWord] = math.Float32bits(v)
}

func (c ClauseRef) litsOffset() uint32 {
	return uint32(c.cref) + uint32(headerWords(c.Learnt()))
}

// Lit returns the i-th literal of the clause.
func (c ClauseRef) Lit(i int) Literal {
	return Literal(c.a.words[c.litsOffset()+uint32(i)])
}

// SetLit overwrites the i-th literal of the clause.
func (c ClauseRef) SetLit(i int, l Literal) {
	c.a.words[c.litsOffset()+uint32(i)] = uint32(l)
}

// Swap exchanges the literals at positions i and j.
func (c ClauseRef) Swap(i, j int) {
	li, lj := c.Lit(i), c.Lit(j)
	c.SetLit(i, lj)
	c.SetLit(j, li)
}

// Literals returns a freshly allocated copy of the clause's literals.
// Used by conflict analysis and tests; hot paths should prefer Lit(i).
func (c ClauseRef) Literals() []Literal {
	n := c.Size()
	out := make([]Literal, n)
	for i := 0; i < n; i++ {
		out[i] = c.Lit(i)
	}
	return out
}

// GarbageRatio returns the fraction of arena words occupied by clauses
// marked for deletion but not yet reclaimed.
func (a *Arena) GarbageRatio() float64 {
	if len(a.words) == 0 {
		return 0
	}
	return float64(a.wasted) / float64(len(a.words))
}

// Compact copies every live (unmarked) clause referenced by originals or
// learnts into a fresh arena, in order, and returns a remapping from old
// Cref to new Cref for every clause that survived. Callers are
// responsible for rewriting watch lists, reasons, and the
// originals/learnts slices using the returned map (see Solver.compact).
func (a *Arena) Compact(originals, learnts []Cref) (newArena *Arena, remap map[Cref]Cref) {
	newArena = NewArena(len(a.words) - a.wasted)
	remap = make(map[Cref]Cref, len(originals)+len(learnts))

	copyOne := func(cref Cref) {
		if cref == CrefNone {
			return
		}
		if _, ok := remap[cref]; ok {
			return
		}
		c := a.Clause(cref)
		if c.Marked() {
			return
		}
		hw := headerWords(c.Learnt())
		n := c.Size()
		total := hw + n
		start := uint32(cref)
		newCref := Cref(len(newArena.words))
		newArena.words = append(newArena.words, a.words[start:start+uint32(total)]...)
		remap[cref] = newCref
	}

	for _, cr := range originals {
		copyOne(cr)
	}
	for _, cr := range learnts {
		copyOne(cr)
	}

	return newArena, remap
}
