package sat

// propagate advances qhead through the trail, applying unit propagation
// over the watch lists until either the trail is exhausted or a conflict
// is found. It returns CrefNone on success, or the conflicting clause's
// Cref (spec §4.4).
func (s *Solver) propagate() Cref {
	for s.trail.qhead < len(s.trail.lits) {
		p := s.trail.lits[s.trail.qhead]
		s.trail.qhead++
		s.nPropagations++

		if conflict := s.propagateBinary(p); conflict != CrefNone {
			return conflict
		}
		if conflict := s.propagateLong(p); conflict != CrefNone {
			return conflict
		}
	}
	return CrefNone
}

// propagateBinary handles the binary-clause watch table, which needs no
// arena access: the blocker literal of a binary watcher *is* the clause's
// other literal, so the blocker test alone decides conflict / propagate
// / satisfied.
func (s *Solver) propagateBinary(p Literal) Cref {
	list := s.watches.binary[p]
	for _, w := range list {
		s.nInspects++
		switch s.trail.litValue(w.blocker) {
		case False:
			return w.cref
		case Unknown:
			// Conflict analysis assumes a reason clause's position 0
			// holds the literal it justifies (the convention long
			// clauses maintain via propagateLong); binary clauses don't
			// get that for free from watch bookkeeping alone, so fix it
			// up here before handing the clause out as a reason.
			c := s.arena.Clause(w.cref)
			if c.Lit(0) != w.blocker {
				c.Swap(0, 1)
			}
			s.trail.enqueue(w.blocker, w.cref)
		}
	}
	return CrefNone
}

// propagateLong handles clauses of size >= 3, rewriting the watch list
// of p in place (swap-and-remove / retarget to the new watched literal)
// as described in spec §4.4.
func (s *Solver) propagateLong(p Literal) Cref {
	list := s.watches.long[p]

	j := 0
	var conflict Cref = CrefNone

	for i := 0; i < len(list); i++ {
		w := list[i]
		s.nInspects++

		if s.trail.litValue(w.blocker) == True {
			list[j] = w
			j++
			continue
		}

		c := s.arena.Clause(w.cref)

		// Make sure position 0 holds the literal that was NOT just woken
		// up, so that c.Lit(0) is the fallback candidate for unit
		// propagation below.
		if c.Lit(0) == p.Opposite() {
			c.Swap(0, 1)
		}

		if s.trail.litValue(c.Lit(0)) == True {
			list[j] = watcher{cref: w.cref, blocker: c.Lit(0)}
			j++
			continue
		}

		moved := false
		for k := 2; k < c.Size(); k++ {
			if s.trail.litValue(c.Lit(k)) != False {
				c.Swap(1, k)
				s.watches.long[c.Lit(1).Opposite()] = append(
					s.watches.long[c.Lit(1).Opposite()],
					watcher{cref: w.cref, blocker: c.Lit(0)},
				)
				moved = true
				break
			}
		}
		if moved {
			continue
		}

		// Position 0 is the only remaining candidate.
		list[j] = w
		j++
		if s.trail.litValue(c.Lit(0)) == False {
			// Conflict: keep the remaining (unscanned) watchers as-is
			// and stop, per spec §4.4.
			for k := i + 1; k < len(list); k++ {
				list[j] = list[k]
				j++
			}
			conflict = w.cref
			break
		}
		s.trail.enqueue(c.Lit(0), w.cref)
	}

	s.watches.long[p] = list[:j]
	return conflict
}
