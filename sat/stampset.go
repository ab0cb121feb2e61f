package sat

// stampSet represents a set of integers in [0, N) that can be cleared in
// O(1) by bumping a monotonically increasing stamp instead of zeroing a
// "seen" array between calls (spec §9 design notes: "stamping with a
// monotone counter replaces clearing a seen array between analyses").
// Three independent instances are used by the solver: one for the "seen"
// marks in conflict analysis, one for the visited set of learned-clause
// minimization, and one for counting distinct decision levels when
// computing a clause's LBD.
type stampSet struct {
	stampedAt []uint32
	stamp     uint32
}

// Contains reports whether v is currently in the set.
func (s *stampSet) Contains(v int) bool {
	return s.stampedAt[v] == s.stamp
}

// Add puts v in the set.
func (s *stampSet) Add(v int) {
	s.stampedAt[v] = s.stamp
}

// Clear empties the set in O(1), except on the rare wraparound of the
// stamp counter where it falls back to an O(n) reset.
func (s *stampSet) Clear() {
	s.stamp++
	if s.stamp == 0 { // wrapped around
		s.stamp = 1
		for i := range s.stampedAt {
			s.stampedAt[i] = 0
		}
	}
}

// Grow extends the set's domain by one element (added as "not in set").
func (s *stampSet) Grow() {
	if s.stamp == 0 {
		s.stamp = 1 // new elements start at 0, which must not match the stamp
	}
	s.stampedAt = append(s.stampedAt, 0)
}
