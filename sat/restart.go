package sat

// restartTracker holds the two bounded windows spec §4.8 describes and
// decides, after each conflict, whether a restart is due.
type restartTracker struct {
	lbdWindow   *boundedQueue // bq_lbd: recent learnt-clause LBDs
	trailWindow *boundedQueue // bq_trail: recent trail length at conflict time

	lbdSum   float64 // running sum of every LBD ever observed
	lbdCount int64   // count backing the global LBD average

	fastFactor  float64 // K
	slowFactor  float64 // R
	blockAfter  int64   // fst_block_rst: min conflicts before block-restarts engage
}

func newRestartTracker(lbdWindowSize, trailWindowSize int, fastFactor, slowFactor float64, blockAfter int64) *restartTracker {
	return &restartTracker{
		lbdWindow:   newBoundedQueue(lbdWindowSize),
		trailWindow: newBoundedQueue(trailWindowSize),
		fastFactor:  fastFactor,
		slowFactor:  slowFactor,
		blockAfter:  blockAfter,
	}
}

// observeConflict records the LBD of the clause just learnt and the
// trail length at the time of the conflict.
func (r *restartTracker) observeConflict(lbd int, trailLen int, totalConflicts int64) {
	r.lbdWindow.Push(float64(lbd))
	r.lbdSum += float64(lbd)
	r.lbdCount++

	if totalConflicts >= r.blockAfter {
		r.trailWindow.Push(float64(trailLen))
	}
}

// shouldRestart reports whether the Glucose-style restart condition
// holds: the LBD window is full and its (recent) moving-average LBD
// exceeds `fastFactor` times the all-time global average (spec §4.8).
// The restart is blocked when the trail window is also full and its
// average, scaled by `slowFactor`, exceeds the recent LBD average.
func (r *restartTracker) shouldRestart() bool {
	if !r.lbdWindow.Full() {
		return false
	}
	globalAvg := r.lbdSum / float64(r.lbdCount)
	if r.lbdWindow.Avg() <= r.fastFactor*globalAvg {
		return false
	}
	if r.trailWindow.Full() && r.trailWindow.Avg()*r.slowFactor > r.lbdWindow.Avg() {
		// Current trail is unusually long relative to recent LBDs:
		// block the restart, it is likely still making progress.
		return false
	}
	return true
}

// reduceSchedule tracks the conflict-count threshold for the next
// reduce-DB pass (spec §4.8: "n_confl_bfr_reduce").
type reduceSchedule struct {
	next          int64
	increment     int64 // RC1
	geometricStep int64 // RC2 contribution, grown geometrically below
	factor        float64
}

func newReduceSchedule(initial, increment int64, factor float64) *reduceSchedule {
	return &reduceSchedule{next: initial, increment: increment, geometricStep: increment, factor: factor}
}

// due reports whether total conflicts have crossed the next reduction
// threshold.
func (rs *reduceSchedule) due(totalConflicts int64) bool {
	return totalConflicts >= rs.next
}

// advance grows the threshold linearly by RC1 + RC2*geometric_factor
// after a reduction just ran (spec §4.8).
func (rs *reduceSchedule) advance(totalConflicts int64) {
	rs.geometricStep = int64(float64(rs.geometricStep) * rs.factor)
	if rs.geometricStep < rs.increment {
		rs.geometricStep = rs.increment
	}
	rs.next = totalConflicts + rs.increment + rs.geometricStep
}
