package sat

// Stats is a point-in-time snapshot of the solver's search counters
// (spec §6 `stats`). Returned by value so callers can hold on to it
// without aliasing solver-internal state.
type Stats struct {
	TotalConflicts  int64
	TotalRestarts   int64
	TotalDecisions  int64
	TotalIterations int64

	NumPropagations int64
	NumInspects     int64

	NumOriginalClauses int
	NumLearntClauses   int

	NumReduces     int64
	NumCompactions int64
	NumRescales    int64
}

// Stats returns a snapshot of the solver's search statistics.
func (s *Solver) Stats() Stats {
	return Stats{
		TotalConflicts:     s.totalConflicts,
		TotalRestarts:      s.totalRestarts,
		TotalDecisions:     s.totalDecisions,
		TotalIterations:    s.totalIterations,
		NumPropagations:    s.nPropagations,
		NumInspects:        s.nInspects,
		NumOriginalClauses: len(s.constraints),
		NumLearntClauses:   len(s.learnts),
		NumReduces:         s.nReduces,
		NumCompactions:     s.nCompactions,
		NumRescales:        s.nRescales,
	}
}
