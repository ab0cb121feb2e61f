package sat

import "testing"

func litSet(lits []Literal) map[Literal]bool {
	m := make(map[Literal]bool, len(lits))
	for _, l := range lits {
		m[l] = true
	}
	return m
}

func TestSolver_AddClauseLitsDropsTautology(t *testing.T) {
	s := newTestSolver(2)
	_, ok := s.addClauseLits([]Literal{PositiveLiteral(0), NegativeLiteral(0), PositiveLiteral(1)})
	if ok {
		t.Errorf("addClauseLits(tautology) ok = true, want false")
	}
}

func TestSolver_AddClauseLitsRemovesDuplicates(t *testing.T) {
	s := newTestSolver(2)
	out, ok := s.addClauseLits([]Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(0)})
	if !ok {
		t.Fatalf("addClauseLits ok = false, want true")
	}
	want := litSet([]Literal{PositiveLiteral(0), PositiveLiteral(1)})
	got := litSet(out)
	if len(got) != len(want) {
		t.Fatalf("addClauseLits = %v, want %v", out, want)
	}
	for l := range want {
		if !got[l] {
			t.Errorf("addClauseLits missing literal %v", l)
		}
	}
}

func TestSolver_AddClauseLitsDropsLevelZeroFalseLiterals(t *testing.T) {
	s := newTestSolver(2)
	s.trail.enqueue(NegativeLiteral(0), CrefNone) // x0 forced false at level 0

	out, ok := s.addClauseLits([]Literal{PositiveLiteral(0), PositiveLiteral(1)})
	if !ok {
		t.Fatalf("addClauseLits ok = false, want true")
	}
	if len(out) != 1 || out[0] != PositiveLiteral(1) {
		t.Errorf("addClauseLits = %v, want [%v]", out, PositiveLiteral(1))
	}
}

func TestSolver_AddClauseLitsDropsSatisfiedClause(t *testing.T) {
	s := newTestSolver(2)
	s.trail.enqueue(PositiveLiteral(0), CrefNone) // x0 true at level 0

	_, ok := s.addClauseLits([]Literal{PositiveLiteral(0), PositiveLiteral(1)})
	if ok {
		t.Errorf("addClauseLits(satisfied clause) ok = true, want false")
	}
}

func TestSolver_BumpClauseActivityIgnoresNonLearnt(t *testing.T) {
	s := newTestSolver(2)
	cref := s.newClause([]Literal{PositiveLiteral(0), PositiveLiteral(1)}, false)
	c := s.arena.Clause(cref)

	s.bumpClauseActivity(c)
	if got := c.Activity(); got != 0 {
		t.Errorf("Activity() after bump on non-learnt clause = %v, want 0", got)
	}
}

func TestSolver_BumpClauseActivityIncreasesLearnt(t *testing.T) {
	s := newTestSolver(2)
	cref := s.newClause([]Literal{PositiveLiteral(0), PositiveLiteral(1)}, true)
	c := s.arena.Clause(cref)

	s.bumpClauseActivity(c)
	if got := c.Activity(); got <= 0 {
		t.Errorf("Activity() after bump on learnt clause = %v, want > 0", got)
	}
}
