package sat

import (
	"github.com/rhartert/yagh"
)

// varOrder is the activity-ordered max-heap of unassigned variables
// (spec §4.2). Rather than re-sorting on every activity bump, it scales
// the *increment* and keeps an imperative indexed heap so that bump,
// decay, and extract-max are all O(log n) (spec §9 design notes).
//
// The heap itself is github.com/rhartert/yagh's IntMap: a priority map
// keyed by variable ID supporting O(log n) decrease-key (Put) and O(1)
// membership (Contains), which is exactly the "imperative max-heap with
// positional indices" the design notes ask for. Since IntMap pops the
// minimum, activities are stored negated so that Pop returns the
// variable with the highest activity.
type varOrder struct {
	heap *yagh.IntMap[float64]

	activity []float64 // in [0, activityCeiling)
	inc      float64   // in (0, activityCeiling)
	decay    float64   // in (0, 1]

	polarity    []LBool // sticky last-assigned polarity per variable
	randomFreq  float64 // probability in [0,1] of a random decision
	rng         *rngState
}

// activityCeiling is the threshold past which activities are rescaled to
// avoid float overflow (spec §4.2).
const activityCeiling = 1e100

func newVarOrder(decay float64, randomFreq float64, seed uint64) *varOrder {
	return &varOrder{
		heap:       yagh.New[float64](0),
		inc:        1,
		decay:      decay,
		randomFreq: randomFreq,
		rng:        newRNG(seed),
	}
}

// addVar registers a newly declared variable with a starting activity of
// zero and an undetermined saved polarity.
func (vo *varOrder) addVar() {
	v := len(vo.activity)
	vo.activity = append(vo.activity, 0)
	vo.polarity = append(vo.polarity, Unknown)
	vo.heap.GrowBy(1)
	vo.heap.Put(v, 0)
}

// contains reports whether v is currently a candidate for extraction.
func (vo *varOrder) contains(v Var) bool {
	return vo.heap.Contains(int(v))
}

// insert re-admits v as a decision candidate, e.g. after a backtrack
// unassigns it (spec invariant 7).
func (vo *varOrder) insert(v Var) {
	if !vo.heap.Contains(int(v)) {
		vo.heap.Put(int(v), -vo.activity[v])
	}
}

// savePolarity records the value v had right before being unassigned, so
// that it can be reused as the default next time v is decided (spec §9:
// "polarity saving").
func (vo *varOrder) savePolarity(v Var, val LBool) {
	vo.polarity[v] = val
}

// bump increases v's activity by the current increment, rescaling all
// activities (and the increment) if the ceiling is crossed. Relative
// ordering between variables is preserved by the rescale (spec
// invariant 5).
func (vo *varOrder) bump(v Var) {
	vo.activity[v] += vo.inc
	if vo.heap.Contains(int(v)) {
		vo.heap.Put(int(v), -vo.activity[v])
	}
	if vo.activity[v] > activityCeiling {
		vo.rescale()
	}
}

// decayInc scales the increment rather than every activity (spec §9).
func (vo *varOrder) decayInc() {
	vo.inc /= vo.decay
	if vo.inc > activityCeiling {
		vo.rescale()
	}
}

func (vo *varOrder) rescale() {
	const factor = 1e-100
	vo.inc *= factor
	for v := range vo.activity {
		vo.activity[v] *= factor
		if vo.heap.Contains(v) {
			vo.heap.Put(v, -vo.activity[v])
		}
	}
}

// pop removes and returns the unassigned variable with the highest
// activity, or false if no candidate remains. Variables can linger in
// the heap after being assigned (they are lazily filtered here rather
// than eagerly removed on assignment, spec §4.2).
func (vo *varOrder) pop(isAssigned func(Var) bool) (Var, bool) {
	for {
		item, ok := vo.heap.Pop()
		if !ok {
			return 0, false
		}
		v := Var(item.Elem)
		if isAssigned(v) {
			continue
		}
		return v, true
	}
}

// decideLiteral picks the polarity for v: its saved polarity if phase
// saving has one, a uniformly random polarity with probability
// randomFreq, and the positive literal otherwise.
func (vo *varOrder) decideLiteral(v Var) Literal {
	if vo.randomFreq > 0 && vo.rng.float64() < vo.randomFreq {
		if vo.rng.float64() < 0.5 {
			return PositiveLiteral(v)
		}
		return NegativeLiteral(v)
	}
	switch vo.polarity[v] {
	case False:
		return NegativeLiteral(v)
	default:
		return PositiveLiteral(v)
	}
}
