package sat

import "testing"

func TestSolver_PropagateBinaryReasonPutsImpliedLiteralFirst(t *testing.T) {
	s := newTestSolver(2)
	cref := s.newClause([]Literal{NegativeLiteral(0), PositiveLiteral(1)}, false) // x0 -> x1

	s.trail.newDecisionLevel()
	s.trail.enqueue(PositiveLiteral(0), CrefNone)

	if conflict := s.propagate(); conflict != CrefNone {
		t.Fatalf("propagate() found a spurious conflict %d", conflict)
	}

	if got := s.trail.value(1); got != True {
		t.Fatalf("value(x1) = %v, want True (forced by x0 -> x1)", got)
	}
	if got := s.trail.reason[1]; got != cref {
		t.Fatalf("reason[x1] = %d, want %d", got, cref)
	}

	// Conflict analysis's explain() relies on position 0 of a reason
	// clause holding the literal it justifies.
	c := s.arena.Clause(cref)
	if got, want := c.Lit(0), PositiveLiteral(1); got != want {
		t.Errorf("reason clause Lit(0) = %v, want %v (the implied literal)", got, want)
	}
}

func TestSolver_PropagateBinaryDetectsConflict(t *testing.T) {
	s := newTestSolver(2)
	s.newClause([]Literal{NegativeLiteral(0), PositiveLiteral(1)}, false) // x0 -> x1

	s.trail.newDecisionLevel()
	s.trail.enqueue(PositiveLiteral(0), CrefNone)
	s.trail.enqueue(NegativeLiteral(1), CrefNone) // contradicts the implication once propagated

	if conflict := s.propagate(); conflict == CrefNone {
		t.Fatalf("propagate() = CrefNone, want a conflicting clause")
	}
}

func TestSolver_PropagateLongRetargetsWatchToUnassignedLiteral(t *testing.T) {
	s := newTestSolver(3)
	s.newClause([]Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)}, false)

	s.trail.newDecisionLevel()
	s.trail.enqueue(NegativeLiteral(0), CrefNone)

	if conflict := s.propagate(); conflict != CrefNone {
		t.Fatalf("propagate() found a spurious conflict %d", conflict)
	}
	// No unit forced yet: the clause should have retargeted its watch from
	// x0 to one of x1/x2 rather than propagating anything.
	if s.trail.value(1) != Unknown || s.trail.value(2) != Unknown {
		t.Errorf("propagate() forced an assignment too early: x1=%v x2=%v", s.trail.value(1), s.trail.value(2))
	}
}

func TestSolver_PropagateLongUnitPropagatesLastLiteral(t *testing.T) {
	s := newTestSolver(3)
	s.newClause([]Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)}, false)

	s.trail.newDecisionLevel()
	s.trail.enqueue(NegativeLiteral(0), CrefNone)
	s.propagate()
	s.trail.enqueue(NegativeLiteral(1), CrefNone)

	if conflict := s.propagate(); conflict != CrefNone {
		t.Fatalf("propagate() found a spurious conflict %d", conflict)
	}
	if got := s.trail.value(2); got != True {
		t.Errorf("value(x2) = %v, want True (last literal of (x0 v x1 v x2) forced)", got)
	}
}

// TestSolver_PropagateLongDetectsConflictAcrossTwoClauses exercises the
// realistic way a long clause's unit propagation turns into a conflict: two
// independent clauses force the same variable to opposite values in the same
// propagation wave. The clause resolved second must discover its own forced
// literal is already assigned the other way and report a conflict, rather
// than silently re-asserting it.
func TestSolver_PropagateLongDetectsConflictAcrossTwoClauses(t *testing.T) {
	s := newTestSolver(5) // p=0, q=1, x=2, r=3, t=4

	s.newClause([]Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)}, false)  // p v q v x
	s.newClause([]Literal{PositiveLiteral(3), PositiveLiteral(4), NegativeLiteral(2)}, false)   // r v t v -x

	s.trail.newDecisionLevel()
	s.trail.enqueue(NegativeLiteral(0), CrefNone) // p false
	s.trail.enqueue(NegativeLiteral(1), CrefNone) // q false
	s.trail.enqueue(NegativeLiteral(3), CrefNone) // r false
	s.trail.enqueue(NegativeLiteral(4), CrefNone) // t false

	// Propagating now must force x true (from the first clause) and then,
	// scanning the second clause for -x, discover x is already true while
	// the clause needs it false.
	if conflict := s.propagate(); conflict == CrefNone {
		t.Fatalf("propagate() = CrefNone, want a conflicting clause")
	}
}
