package sat

import "sort"

// reduceDB thins the learnt-clause database down to roughly
// learnt_ratio of its current size, keeping clauses that are
// "protected": currently used as a reason (locked), with an LBD of 2 or
// less, or frozen by a recent LBD improvement to at or below
// lbd_freeze_clause (spec §4.9, §6; conventional Glucose policy noted
// as an open question in spec §9 and adopted here). The remaining
// clauses are ordered by (LBD desc, activity asc) before the worst ones
// are dropped. The freeze is a one-cycle reprieve: every clause that
// survives this pass has its protected flag cleared, so it must earn
// protection again (via a fresh LBD improvement in explain) to survive
// the next one; record only protects clauses as they are created.
func (s *Solver) reduceDB() {
	sort.Slice(s.learnts, func(i, j int) bool {
		ci, cj := s.arena.Clause(s.learnts[i]), s.arena.Clause(s.learnts[j])
		if ci.LBD() != cj.LBD() {
			return ci.LBD() > cj.LBD()
		}
		return ci.Activity() < cj.Activity()
	})

	targetKept := int(float64(len(s.learnts)) * s.opts.LearntRatio)
	deleteBudget := len(s.learnts) - targetKept
	if deleteBudget < 0 {
		deleteBudget = 0
	}

	kept := s.learnts[:0]
	for _, cref := range s.learnts {
		c := s.arena.Clause(cref)
		protected := c.LBD() <= 2 || s.locked(cref) || c.Protected()
		if !protected && deleteBudget > 0 {
			s.deleteClause(cref)
			deleteBudget--
			continue
		}
		c.ClearProtected()
		kept = append(kept, cref)
	}
	s.learnts = kept

	s.nReduces++
	if s.arena.GarbageRatio() > s.opts.GarbageMaxRatio {
		s.compact()
	}
}

// locked reports whether cref is currently the reason for its first
// literal's assignment, meaning it cannot be deleted without breaking
// the trail's justification (spec §4.1: "clause is locked").
func (s *Solver) locked(cref Cref) bool {
	c := s.arena.Clause(cref)
	v := c.Lit(0).Var()
	return s.trail.value(v) != Unknown && s.trail.reason[v] == cref
}

// deleteClause unwatches and marks cref for deletion. The arena does not
// reclaim the space until the next compaction.
func (s *Solver) deleteClause(cref Cref) {
	s.watches.unwatch(s.arena, cref)
	s.arena.Clause(cref).Mark()
}

// compact rewrites every outstanding Cref (watch lists, reasons,
// constraints/learnts) after asking the arena to copy forward all live
// clauses, reclaiming the space occupied by deleted ones.
func (s *Solver) compact() {
	newArena, remap := s.arena.Compact(s.constraints, s.learnts)
	s.arena = newArena

	s.watches.rewrite(remap)

	for v := range s.trail.reason {
		if s.trail.reason[v] == CrefNone {
			continue
		}
		if nc, ok := remap[s.trail.reason[v]]; ok {
			s.trail.reason[v] = nc
		} else {
			s.trail.reason[v] = CrefNone
		}
	}

	rewriteList := func(list []Cref) []Cref {
		out := list[:0]
		for _, cr := range list {
			if nc, ok := remap[cr]; ok {
				out = append(out, nc)
			}
		}
		return out
	}
	s.constraints = rewriteList(s.constraints)
	s.learnts = rewriteList(s.learnts)

	s.nCompactions++
}
