package sat

// analysisResult is the output of analyze: a learned clause (position 0
// is the asserting literal) and the level to backjump to.
type analysisResult struct {
	lits          []Literal
	backjumpLevel int
	lbd           int
}

// analyze performs first-UIP conflict analysis (spec §4.5): starting
// from the conflicting clause, it walks the trail backwards resolving
// away literals assigned at the current decision level until exactly one
// remains (the first UIP), collecting every lower-level literal it met
// along the way into the learned clause.
func (s *Solver) analyze(conflict Cref) analysisResult {
	s.seen.Clear()

	pathCount := 0
	learnt := append(s.tmpLearnt[:0], Literal(-1)) // slot 0 reserved for the FUIP
	nextIdx := len(s.trail.lits) - 1
	backjump := 0

	p := Literal(-1) // -1 marks "resolve the conflict clause itself"
	reasonCref := conflict

	for {
		lits := s.explain(reasonCref, p)
		for _, q := range lits {
			v := q.Var()
			if s.seen.Contains(int(v)) {
				continue
			}
			s.seen.Add(int(v))
			s.order.bump(v)

			lvl := int(s.trail.level[v])
			if lvl == s.trail.decisionLevel() {
				pathCount++
				continue
			}
			learnt = append(learnt, q.Opposite())
			if lvl > backjump {
				backjump = lvl
			}
		}

		// Find the next seen literal walking the trail backwards.
		var v Var
		for {
			p = s.trail.lits[nextIdx]
			nextIdx--
			v = p.Var()
			if s.seen.Contains(int(v)) {
				break
			}
		}
		reasonCref = s.trail.reason[v]
		pathCount--
		if pathCount <= 0 {
			break
		}
	}

	learnt[0] = p.Opposite()
	s.tmpLearnt = learnt

	minimized := s.minimize(learnt)
	lbd := s.computeLBD(minimized)

	return analysisResult{lits: minimized, backjumpLevel: backjump, lbd: lbd}
}

// explain returns the literals that imply l (or, when l is the sentinel
// -1, the literals of the conflicting clause itself), each already
// negated the way resolution needs: a reason clause [p, r1, r2, ...]
// implying p contributes ¬r1, ¬r2, ... when resolved against the
// clause that made ¬p true.
func (s *Solver) explain(cref Cref, l Literal) []Literal {
	c := s.arena.Clause(cref)
	if c.Learnt() {
		s.bumpClauseActivity(c)

		// A learnt clause resolved into the analysis is being re-examined
		// against the current trail, so its LBD may have genuinely
		// improved since it was recorded. An improvement at or below
		// lbd_freeze_clause earns the clause a one-cycle reprieve from
		// the next reduceDB pass (spec §6 lbd_freeze_clause, conventional
		// Glucose/satoko policy).
		if newLBD := s.computeLBDClause(c); newLBD < c.LBD() {
			c.SetLBD(newLBD)
			if float64(newLBD) <= s.opts.LBDFreezeClause {
				c.SetProtected()
			}
		}
	}

	out := s.tmpReason[:0]
	start := 0
	if l != -1 {
		start = 1 // skip the implied literal itself
	}
	for i := start; i < c.Size(); i++ {
		out = append(out, c.Lit(i).Opposite())
	}
	s.tmpReason = out
	return out
}

// minimize removes literals from the learned clause whose negation is
// redundant: every literal of its reason clause is itself already in the
// learned clause or transitively redundant (spec §4.5). Decision
// literals (reason == CrefNone) are never redundant. A small stack with
// a tagged visited set avoids recursion and guarantees termination.
func (s *Solver) minimize(learnt []Literal) []Literal {
	s.minimizeSeen.Clear()
	for _, l := range learnt {
		s.minimizeSeen.Add(int(l.Var()))
	}

	out := learnt[:1] // the asserting literal is always kept
	for _, l := range learnt[1:] {
		if s.litRedundant(l) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// litRedundant reports whether ¬l's assignment is implied entirely by
// literals already in the learned clause (tracked via minimizeSeen),
// following reason chains iteratively with an explicit stack. Marks made
// during a call that fails are undone before it returns.
func (s *Solver) litRedundant(l Literal) bool {
	v := l.Var()
	reason := s.trail.reason[v]
	if reason == CrefNone {
		return false // decision literal: never redundant
	}

	stack := s.minimizeStack[:0]
	stack = append(stack, v)

	var marked []Var // marked by this call; unmarked again on failure
	fail := func() bool {
		for _, m := range marked {
			s.minimizeSeen.stampedAt[m] = 0
		}
		s.minimizeStack = stack
		return false
	}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		reason := s.trail.reason[cur]
		if reason == CrefNone {
			return fail()
		}

		c := s.arena.Clause(reason)
		for i := 1; i < c.Size(); i++ {
			q := c.Lit(i).Opposite()
			qv := q.Var()
			if s.minimizeSeen.Contains(int(qv)) {
				continue
			}
			if s.trail.level[qv] == 0 {
				// Level-0 literals are always implied; mark seen so we
				// do not revisit them.
				s.minimizeSeen.Add(int(qv))
				continue
			}
			if s.trail.reason[qv] == CrefNone {
				return fail()
			}
			s.minimizeSeen.Add(int(qv))
			marked = append(marked, qv)
			stack = append(stack, qv)
		}
	}

	s.minimizeStack = stack
	return true
}

// computeLBD returns the number of distinct decision levels among the
// clause's literals, using a monotone stamp counter so no per-call
// O(n) clear is needed (spec §4.5, §9).
func (s *Solver) computeLBD(lits []Literal) int {
	s.lbdStamp.Clear()
	n := 0
	for _, l := range lits {
		lvl := int(s.trail.level[l.Var()])
		if !s.lbdStamp.Contains(lvl) {
			s.lbdStamp.Add(lvl)
			n++
		}
	}
	return n
}

// computeLBDClause is computeLBD specialized to a stored clause, reading
// literals directly off the arena instead of a freshly allocated slice
// (c.Literals() is for cold paths; explain runs once per resolution step).
func (s *Solver) computeLBDClause(c ClauseRef) int {
	s.lbdStamp.Clear()
	n := 0
	for i := 0; i < c.Size(); i++ {
		lvl := int(s.trail.level[c.Lit(i).Var()])
		if !s.lbdStamp.Contains(lvl) {
			s.lbdStamp.Add(lvl)
			n++
		}
	}
	return n
}
