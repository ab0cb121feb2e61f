package sat

// clauseActivityCeiling bounds learnt clause activities before a global
// rescale, mirroring the variable-activity rescale (spec §4.2, applied
// by §4.9 to clause activities too).
const clauseActivityCeiling = 1e30

// addClauseLits normalizes a candidate clause in place: duplicate
// literals are removed, a clause containing a literal and its negation
// is a tautology and dropped, and literals already false at level 0 are
// discarded. It returns the normalized literal slice and whether the
// clause is not trivially true (false means: drop the clause, it is
// satisfied and contributes nothing).
//
// Mirrors the teacher's NewClause literal-normalization loop
// (internal/sat/clauses.go) but leaves storage to the caller, since
// storage is now an arena allocation rather than a slice on a *Clause.
func (s *Solver) addClauseLits(lits []Literal) (out []Literal, ok bool) {
	seen := map[Literal]struct{}{}
	size := len(lits)

	for i := size - 1; i >= 0; i-- {
		if _, isTautology := seen[lits[i].Opposite()]; isTautology {
			return nil, false
		}
		if _, dup := seen[lits[i]]; dup {
			size--
			lits[i], lits[size] = lits[size], lits[i]
			continue
		}
		seen[lits[i]] = struct{}{}

		switch s.trail.litValue(lits[i]) {
		case True:
			return nil, false // clause satisfied at level 0
		case False:
			size--
			lits[i], lits[size] = lits[size], lits[i]
		}
	}

	return lits[:size], true
}

// newClause allocates a clause of size >= 2 in the arena, picks its two
// watched literals, and registers it on the watch lists. For learnt
// clauses, the second watched literal is chosen as the literal with the
// highest decision level among lits[1:] so that backtracking to the
// backjump level immediately makes it the one to re-propagate (mirrors
// the teacher's NewClause learnt-clause watch selection).
func (s *Solver) newClause(lits []Literal, learnt bool) Cref {
	if learnt && len(lits) > 2 {
		maxLevel, maxAt := -1, 1
		for i := 1; i < len(lits); i++ {
			if lvl := int(s.trail.level[lits[i].Var()]); lvl > maxLevel {
				maxLevel, maxAt = lvl, i
			}
		}
		lits[1], lits[maxAt] = lits[maxAt], lits[1]
	}

	cref := s.arena.Alloc(lits, learnt)
	s.watches.watch(s.arena, cref)
	return cref
}

// bumpClauseActivity increases a learnt clause's activity by the
// current clause increment, rescaling all learnt-clause activities if
// the ceiling is crossed (spec §4.9).
func (s *Solver) bumpClauseActivity(c ClauseRef) {
	if !c.Learnt() {
		return
	}
	newAct := c.Activity() + float32(s.clauseInc)
	c.SetActivity(newAct)
	if newAct > clauseActivityCeiling {
		s.rescaleClauseActivities()
	}
}

func (s *Solver) rescaleClauseActivities() {
	const factor = 1e-30
	s.clauseInc *= factor
	for _, cref := range s.learnts {
		c := s.arena.Clause(cref)
		c.SetActivity(c.Activity() * factor)
	}
}

// decayClauseActivity scales the clause activity increment, applied once
// per conflict (spec §4.2, §4.7).
func (s *Solver) decayClauseActivity() {
	s.clauseInc /= s.opts.ClauseDecay
}

// simplifyClause removes literals that are false at level 0 from cref's
// literal list, compacting it in place, and reports whether the clause
// is now satisfied (and can be removed entirely). Used by top-level
// simplification (spec §4.7 step 1).
func (s *Solver) simplifyClause(cref Cref) (satisfied bool) {
	c := s.arena.Clause(cref)
	n := c.Size()
	j := 0
	for i := 0; i < n; i++ {
		switch s.trail.litValue(c.Lit(i)) {
		case True:
			return true
		case False:
			// drop
		default:
			if j != i {
				c.SetLit(j, c.Lit(i))
			}
			j++
		}
	}
	// Clauses shrink in the arena by overwriting the header's size field;
	// trailing literal words become unreachable garbage reclaimed at the
	// next compaction.
	s.arena.shrink(cref, j)
	return false
}
