package sat

// trail is the assignment stack together with the per-variable state
// spec §3 describes: current value, decision level, and reason. A
// parallel `trailLim` slice marks where each decision level begins, so
// the decision level is always `len(trailLim)`.
type trail struct {
	assigns []LBool // per variable
	level   []int32 // per variable, -1 while unassigned
	reason  []Cref  // per variable, CrefNone for a decision or no reason

	lits     []Literal // the trail itself, in assignment order
	trailLim []int32   // trail index at which each decision level begins
	qhead    int       // next trail index to propagate
}

func newTrail() *trail {
	return &trail{}
}

func (t *trail) addVar() {
	t.assigns = append(t.assigns, Unknown)
	t.level = append(t.level, -1)
	t.reason = append(t.reason, CrefNone)
}

func (t *trail) numVars() int { return len(t.assigns) }

func (t *trail) decisionLevel() int { return len(t.trailLim) }

// value returns the current value of variable v.
func (t *trail) value(v Var) LBool { return t.assigns[v] }

// litValue returns the current value of literal l, accounting for its
// sign. Implemented as an explicit three-way switch rather than the
// `sign xor assigns[v]` arithmetic the original satoko-style encoding
// uses, per spec §9's open question: that formula only works because the
// unassigned sentinel is never fed into it in a boolean context, which
// is a coincidence this implementation does not rely on.
func (t *trail) litValue(l Literal) LBool {
	v := t.assigns[l.Var()]
	if v == Unknown {
		return Unknown
	}
	if l.IsPositive() {
		return v
	}
	return v.Opposite()
}

// newDecisionLevel opens a new decision level at the current trail
// length.
func (t *trail) newDecisionLevel() {
	t.trailLim = append(t.trailLim, int32(len(t.lits)))
}

// enqueue records l as true with the given reason (CrefNone for a
// decision). Returns false if l's variable is already assigned to the
// opposite value (a conflict), true otherwise (including when l was
// already assigned true).
func (t *trail) enqueue(l Literal, reason Cref) bool {
	v := l.Var()
	cur := t.litValue(l)
	switch cur {
	case False:
		return false
	case True:
		return true
	}

	val := True
	if !l.IsPositive() {
		val = False
	}
	t.assigns[v] = val
	t.level[v] = int32(t.decisionLevel())
	t.reason[v] = reason
	t.lits = append(t.lits, l)
	return true
}

// undoLast pops the most recent trail entry, unassigning its variable,
// and reports the literal and variable that were undone so the caller
// can save polarity / reinsert into the variable order.
func (t *trail) undoLast() (l Literal, v Var) {
	l = t.lits[len(t.lits)-1]
	v = l.Var()
	t.lits = t.lits[:len(t.lits)-1]
	t.assigns[v] = Unknown
	t.level[v] = -1
	t.reason[v] = CrefNone
	return l, v
}

// truncateLevel pops the decision-level boundary stack down to level and
// resets qhead to the new trail length. Callers must have already
// undone the corresponding trail entries.
func (t *trail) truncateLevel(level int) {
	t.trailLim = t.trailLim[:level]
	t.qhead = len(t.lits)
}
