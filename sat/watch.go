package sat

// watcher is an entry on a literal's watch list: a clause that must be
// woken up when that literal becomes true, together with a blocker
// literal used as a fast true/false check before the clause itself is
// dereferenced from the arena.
type watcher struct {
	cref    Cref
	blocker Literal
}

// watches holds the two disjoint watch-list tables spec §3/§4.3
// describe: one for binary clauses, where propagation never needs to
// touch the arena, and one for clauses of size >= 3.
type watches struct {
	binary [][]watcher
	long   [][]watcher
}

func newWatches(nLits int) *watches {
	return &watches{
		binary: make([][]watcher, nLits),
		long:   make([][]watcher, nLits),
	}
}

func (w *watches) grow() {
	w.binary = append(w.binary, nil, nil)
	w.long = append(w.long, nil, nil)
}

// watch registers cref on the watch lists of the negations of its two
// watched literals (positions 0 and 1), choosing the binary or long
// table based on clause size.
func (w *watches) watch(a *Arena, cref Cref) {
	c := a.Clause(cref)
	l0, l1 := c.Lit(0), c.Lit(1)
	table := w.long
	if c.Size() == 2 {
		table = w.binary
	}
	table[l0.Opposite()] = append(table[l0.Opposite()], watcher{cref: cref, blocker: l1})
	table[l1.Opposite()] = append(table[l1.Opposite()], watcher{cref: cref, blocker: l0})
}

// unwatchOne removes cref from the watch list of lit by linear scan,
// swapping the last entry into its place. Watch lists are short on
// average, so this is cheaper in practice than preserving order.
func unwatchOne(list []watcher, cref Cref) []watcher {
	for i, w := range list {
		if w.cref == cref {
			last := len(list) - 1
			list[i] = list[last]
			return list[:last]
		}
	}
	return list
}

// unwatch removes cref from the watch lists of the negations of its two
// watched literals. Must be called before Arena.Mark (§4.1 deletion
// protocol: unwatch, then mark).
func (w *watches) unwatch(a *Arena, cref Cref) {
	c := a.Clause(cref)
	l0, l1 := c.Lit(0), c.Lit(1)
	table := w.long
	if c.Size() == 2 {
		table = w.binary
	}
	table[l0.Opposite()] = unwatchOne(table[l0.Opposite()], cref)
	table[l1.Opposite()] = unwatchOne(table[l1.Opposite()], cref)
}

// rewrite applies an old->new Cref remapping (produced by Arena.Compact)
// to every watch list in place, dropping any watcher whose clause did
// not survive compaction (i.e. was marked for deletion).
func (w *watches) rewrite(remap map[Cref]Cref) {
	rewriteTable := func(table [][]watcher) {
		for i, list := range table {
			j := 0
			for _, wt := range list {
				if nc, ok := remap[wt.cref]; ok {
					list[j] = watcher{cref: nc, blocker: wt.blocker}
					j++
				}
			}
			table[i] = list[:j]
		}
	}
	rewriteTable(w.binary)
	rewriteTable(w.long)
}
