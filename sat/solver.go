package sat

import (
	"fmt"
	"time"
)

// Status is the result of a Solve call (spec §6).
type Status int8

const (
	Undetermined Status = iota
	Satisfiable
	Unsatisfiable
)

func (st Status) String() string {
	switch st {
	case Satisfiable:
		return "SAT"
	case Unsatisfiable:
		return "UNSAT"
	default:
		return "UNDETERMINED"
	}
}

// Solver is a single-threaded, synchronous CDCL SAT solver (spec §5).
// All of its state — the clause arena, watch lists, trail, and variable
// order — is owned exclusively by this instance; concurrent use of one
// Solver from multiple goroutines is not supported, though independent
// Solver instances share no mutable state and may be used freely in
// parallel.
type Solver struct {
	opts Options

	arena       *Arena
	constraints []Cref
	learnts     []Cref
	clauseInc   float64

	watches *watches
	trail   *trail
	order   *varOrder

	// Working buffers reused across calls to avoid per-conflict
	// allocation, mirroring the teacher's tmpWatchers/tmpLearnts/tmpReason
	// fields (internal/sat/solver.go).
	seen          stampSet
	minimizeSeen  stampSet
	minimizeStack []Var
	lbdStamp      stampSet
	tmpLearnt     []Literal
	tmpReason     []Literal

	finalSeen    []bool
	finalTouched []Var

	assumptions  []Literal
	assumeCursor int

	unsat         bool
	finalConflict []Literal

	restarts    *restartTracker
	reduceSched *reduceSchedule

	totalConflicts  int64
	totalRestarts   int64
	totalDecisions  int64
	totalIterations int64
	nPropagations   int64
	nInspects       int64
	nReduces        int64
	nCompactions    int64
	nRescales       int64

	startTime time.Time
	model     []bool
}

// NewSolver returns a Solver configured with the given options.
func NewSolver(opts Options) *Solver {
	opts = opts.withDefaultsFilled()
	s := &Solver{
		opts:      opts,
		arena:     NewArena(1 << 16),
		watches:   newWatches(0),
		trail:     newTrail(),
		order:     newVarOrder(opts.VarDecay, opts.RandomVarFreq, opts.RandomSeed),
		clauseInc: 1,
		// lbdStamp is indexed by decision level, not by variable, and the
		// decision level can reach numVars (one per variable, in the
		// degenerate all-decisions case) while seen/minimizeSeen only ever
		// need to be indexed by variable. Reserve the level-0 slot up
		// front so the per-AddVariable Grow calls below keep it one
		// element ahead of the others.
		lbdStamp: stampSet{stampedAt: make([]uint32, 1)},
		restarts: newRestartTracker(
			opts.LBDQueueSize,
			opts.TrailQueueSize,
			opts.FastRestartFactor,
			opts.SlowRestartFactor,
			opts.FirstBlockRestart,
		),
		reduceSched: newReduceSchedule(opts.FirstReduceConflicts, opts.ReduceIncrement, opts.ReduceSpecialFactor),
	}
	return s
}

// NewDefaultSolver returns a Solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// NumVariables returns the number of variables declared so far.
func (s *Solver) NumVariables() int { return s.trail.numVars() }

// NumAssigns returns the number of currently assigned variables.
func (s *Solver) NumAssigns() int { return len(s.trail.lits) }

// NumConstraints returns the number of original (non-learnt) clauses.
func (s *Solver) NumConstraints() int { return len(s.constraints) }

// NumLearnts returns the number of currently retained learnt clauses.
func (s *Solver) NumLearnts() int { return len(s.learnts) }

func (s *Solver) decisionLevel() int { return s.trail.decisionLevel() }

// VarValue returns the current value of variable v.
func (s *Solver) VarValue(v Var) LBool { return s.trail.value(v) }

// LitValue returns the current value of literal l.
func (s *Solver) LitValue(l Literal) LBool { return s.trail.litValue(l) }

// AddVariable declares a new Boolean variable with the given initial
// saved polarity (used the first time the variable is decided) and
// returns its ID (spec §6 `add_variable`).
func (s *Solver) AddVariable(initialPolarity bool) Var {
	v := Var(s.trail.numVars())

	s.trail.addVar()
	s.watches.grow()
	s.order.addVar()
	s.order.polarity[v] = Lift(initialPolarity)
	s.seen.Grow()
	s.minimizeSeen.Grow()
	s.lbdStamp.Grow()
	s.finalSeen = append(s.finalSeen, false)

	return v
}

// AddClause adds a clause (in the encoded literal form of spec §3) to
// the problem. Duplicate literals are removed and tautologies dropped;
// a unit clause is enqueued directly at level 0 and propagated. Returns
// false if the clause makes the solver trivially unsatisfiable (spec §7
// "trivial unsat on add"), in which case the solver enters a sticky
// UNSAT state and every subsequent Solve call returns Unsatisfiable
// immediately.
func (s *Solver) AddClause(lits []Literal) bool {
	if s.unsat {
		return false
	}
	if s.decisionLevel() != 0 {
		panic("sat: AddClause called below the root decision level")
	}

	normalized, keep := s.addClauseLits(lits)
	if !keep {
		return true // clause satisfied or tautological: nothing to add
	}

	switch len(normalized) {
	case 0:
		s.unsat = true
		return false
	case 1:
		if !s.trail.enqueue(normalized[0], CrefNone) {
			s.unsat = true
			return false
		}
		if s.propagate() != CrefNone {
			s.unsat = true
			return false
		}
		return true
	default:
		cref := s.newClause(normalized, false)
		s.constraints = append(s.constraints, cref)
		return true
	}
}

// Assume appends literals to be treated as forced decisions at the
// start of the next Solve call (spec §6 `assume`). Assumptions persist
// across Solve calls, and later calls to Assume add to them; only
// ClearAssumptions removes them.
func (s *Solver) Assume(lits ...Literal) {
	s.assumptions = append(s.assumptions, lits...)
}

// ClearAssumptions discards any pending assumptions.
func (s *Solver) ClearAssumptions() {
	s.assumptions = s.assumptions[:0]
	s.assumeCursor = 0
}

// ReadModel returns variable v's value in the last model found. Only
// meaningful after Solve returned Satisfiable.
func (s *Solver) ReadModel(v Var) bool {
	return s.model[v]
}

// FinalConflict returns the subset of assumption literals whose
// negations form an unsatisfiable core (spec §3, §6). Only valid after
// Solve returned Unsatisfiable while assumptions were set.
func (s *Solver) FinalConflict() []Literal {
	return s.finalConflict
}

// Solve runs the search to completion or to a configured limit (spec
// §4.7, §6). It calls search once, with no per-call conflict budget:
// restarts happen inside that loop, driven by the bounded-queue
// heuristics of spec §4.8, and reduce-DB passes follow the
// conflict-count threshold kept by reduceSchedule.
func (s *Solver) Solve() Status {
	if s.unsat {
		return Unsatisfiable
	}

	s.startTime = time.Now()
	s.assumeCursor = 0

	status := s.search()

	s.cancelUntil(0)
	return status
}

func (s *Solver) cancelUntil(level int) {
	for s.decisionLevel() > level {
		l, v := s.trail.undoLast()
		if s.opts.PhaseSaving {
			s.order.savePolarity(v, Lift(l.IsPositive()))
		}
		s.order.insert(v)
	}
	s.trail.truncateLevel(level)
	if s.assumeCursor > level {
		s.assumeCursor = level
	}
}

// search is the outer loop described in spec §4.7.
func (s *Solver) search() Status {
	for {
		s.totalIterations++

		if s.opts.Verbose && s.totalIterations%10000 == 0 {
			s.printStats()
		}

		if exceeded := s.limitsExceeded(); exceeded {
			return Undetermined
		}

		if conflict := s.propagate(); conflict != CrefNone {
			s.totalConflicts++

			if s.decisionLevel() == 0 {
				s.unsat = true
				return Unsatisfiable
			}

			result := s.analyze(conflict)
			s.cancelUntil(result.backjumpLevel)
			s.record(result.lits, result.lbd)

			s.restarts.observeConflict(result.lbd, s.NumAssigns(), s.totalConflicts)

			s.order.decayInc()
			s.decayClauseActivity()

			continue
		}

		// No conflict.

		if s.decisionLevel() == 0 && !s.opts.NoSimplify {
			if !s.Simplify() {
				return Unsatisfiable
			}
		}

		if s.restarts.shouldRestart() {
			s.totalRestarts++
			s.cancelUntil(s.assumeCursor) // back to the assumption prefix already committed
			s.restarts.trailWindow.Clear()
			continue
		}

		if s.reduceSched.due(s.totalConflicts) && len(s.learnts) > 0 {
			s.reduceDB()
			s.reduceSched.advance(s.totalConflicts)
		}

		if decided, status, done := s.decide(); done {
			return status
		} else if decided {
			continue
		}
	}
}

// decide performs one decision step: consuming the next unassigned
// assumption if any remain, otherwise picking the highest-activity
// unassigned variable (spec §4.7 step 3). It returns done=true with a
// final status when the search has concluded (SAT, or UNSAT via a
// falsified assumption).
func (s *Solver) decide() (decided bool, status Status, done bool) {
	// Every assumption consumes exactly one decision level, even if it is
	// already implied true by an earlier one: this keeps "decision level"
	// and "number of assumptions committed" in lockstep, which is what
	// makes cancelUntil's assumeCursor bookkeeping (and the restart-to-
	// assumption-level step below) simple and exact rather than having to
	// reconstruct which assumption a given level corresponds to.
	if s.assumeCursor < len(s.assumptions) {
		lit := s.assumptions[s.assumeCursor]
		if s.trail.litValue(lit) == False {
			s.finalConflict = s.computeFinalConflict(lit)
			return false, Unsatisfiable, true
		}
		s.trail.newDecisionLevel()
		s.trail.enqueue(lit, CrefNone)
		s.assumeCursor++
		s.totalDecisions++
		return true, Undetermined, false
	}

	if s.NumAssigns() == s.NumVariables() {
		s.saveModel()
		return false, Satisfiable, true
	}

	v, ok := s.order.pop(func(v Var) bool { return s.trail.value(v) != Unknown })
	if !ok {
		// No unassigned variable left, but NumAssigns didn't match:
		// should not happen if invariant 7 holds.
		s.saveModel()
		return false, Satisfiable, true
	}

	lit := s.order.decideLiteral(v)
	s.trail.newDecisionLevel()
	s.trail.enqueue(lit, CrefNone)
	s.totalDecisions++
	return true, Undetermined, false
}

// record allocates the learnt clause in the arena (or enqueues it
// directly if it is a unit) and returns its Cref (CrefNone for units). A
// freshly learnt clause already at or below lbd_freeze_clause is marked
// protected immediately, so it survives reduceDB even before conflict
// analysis ever resolves it again (spec §6 lbd_freeze_clause).
func (s *Solver) record(lits []Literal, lbd int) Cref {
	if len(lits) == 1 {
		s.trail.enqueue(lits[0], CrefNone)
		return CrefNone
	}

	cref := s.newClause(lits, true)
	c := s.arena.Clause(cref)
	c.SetLBD(lbd)
	if float64(lbd) <= s.opts.LBDFreezeClause {
		c.SetProtected()
	}
	s.trail.enqueue(lits[0], cref)
	s.learnts = append(s.learnts, cref)
	return cref
}

// Simplify removes clauses satisfied at level 0 from both the learnt and
// original databases, and propagates any remaining level-0 units (spec
// §4.7 step 1, §4.1 "Simplify"). Must only be called at decision level
// 0. Returns false if propagation found a conflict (the problem is
// UNSAT).
func (s *Solver) Simplify() bool {
	if s.decisionLevel() != 0 {
		panic("sat: Simplify called below the root decision level")
	}
	if s.unsat {
		return false
	}
	if s.propagate() != CrefNone {
		s.unsat = true
		return false
	}

	s.simplifyList(&s.learnts)
	s.simplifyList(&s.constraints)
	return true
}

func (s *Solver) simplifyList(list *[]Cref) {
	crefs := *list
	j := 0
	for _, cref := range crefs {
		if s.locked(cref) {
			crefs[j] = cref
			j++
			continue
		}
		if s.simplifyClause(cref) {
			s.deleteClause(cref)
			continue
		}
		crefs[j] = cref
		j++
	}
	*list = crefs[:j]
}

func (s *Solver) saveModel() {
	model := make([]bool, s.NumVariables())
	for v := range model {
		lb := s.trail.value(Var(v))
		if lb == Unknown {
			panic("sat: saveModel called on a partial assignment")
		}
		model[v] = lb == True
	}
	s.model = model
}

// limitsExceeded reports whether the configured conflict/propagation
// budgets have been hit (spec §5, §6 conf_limit/prop_limit; 0 means
// unlimited).
func (s *Solver) limitsExceeded() bool {
	if s.opts.ConflictLimit > 0 && s.totalConflicts >= s.opts.ConflictLimit {
		return true
	}
	if s.opts.PropagationLimit > 0 && s.nPropagations >= s.opts.PropagationLimit {
		return true
	}
	return false
}

// computeFinalConflict implements the analyzeFinal-style trace (spec §3
// Final conflict, SPEC_FULL §11): starting from the assumption literal
// that was found falsified, it walks the implication chain backwards,
// resolving through reasons, and collects every decision-level literal
// reached whose own reason is "decision" (i.e. every earlier assumption
// that contributed to the contradiction). Those decision literals are
// exactly the original assumption literals, since assumptions are
// enqueued verbatim as decisions.
func (s *Solver) computeFinalConflict(failedAssumption Literal) []Literal {
	result := []Literal{failedAssumption}
	s.finalTouched = s.finalTouched[:0]

	if s.decisionLevel() == 0 {
		return result
	}

	mark := func(v Var) {
		if !s.finalSeen[v] {
			s.finalSeen[v] = true
			s.finalTouched = append(s.finalTouched, v)
		}
	}
	unmarkAll := func() {
		for _, v := range s.finalTouched {
			s.finalSeen[v] = false
		}
		s.finalTouched = s.finalTouched[:0]
	}

	seedVar := failedAssumption.Opposite().Var()
	mark(seedVar)

	for i := len(s.trail.lits) - 1; i >= 0; i-- {
		l := s.trail.lits[i]
		v := l.Var()
		if !s.finalSeen[v] {
			continue
		}
		reason := s.trail.reason[v]
		if reason == CrefNone {
			if s.trail.level[v] > 0 {
				result = append(result, l)
			}
		} else {
			c := s.arena.Clause(reason)
			for j := 1; j < c.Size(); j++ {
				q := c.Lit(j).Opposite()
				if s.trail.level[q.Var()] > 0 {
					mark(q.Var())
				}
			}
		}
	}

	unmarkAll()
	return result
}

func (s *Solver) printStats() {
	fmt.Fprintf(
		s.opts.Output,
		"c %14.3fs %14d %14d %14d %14d\n",
		time.Since(s.startTime).Seconds(),
		s.totalIterations,
		s.totalConflicts,
		s.totalRestarts,
		len(s.learnts),
	)
}
