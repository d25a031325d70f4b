package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// MaxLabel is the largest transition label, the last unicode code point.
const MaxLabel = 0x10FFFF

// Automaton Represents an automaton and all its states and transitions. States are integers and must be
// created using CreateState. Mark a state as an accept state using SetAccept. Add transitions using
// AddTransition. Each state must have all of its transitions added at once. State 0 is always the
// initial state. Once a state is finished, either because you've starting adding transitions to another
// state or you call FinishState, then that states transitions are sorted (first by min, then max, then
// dest) and reduced (transitions with adjacent labels going to the same dest are combined).
type Automaton struct {
	// Where we next write to in transitions; this increments by 3 for each added transition because
	// we pack dest, min, max in sequence.
	nextTransition int

	// Current state we are adding transitions to; the caller must add all transitions for this state
	// before moving onto another state.
	curState int

	// Index in the transitions array, where this states leaving transitions are stored, or -1
	// if this state has not added any transitions yet, followed by number of transitions.
	states []int

	isAccept *bitset.BitSet

	// Holds toState, min, max for each transition.
	transitions []int

	// True if no state has two transitions leaving with the same label.
	deterministic bool
}

func NewAutomaton() *Automaton {
	return NewAutomatonV1(2, 2)
}

func NewAutomatonV1(numStates, numTransitions int) *Automaton {
	return &Automaton{
		curState:      -1,
		deterministic: true,
		states:        make([]int, 0, numStates*2),
		isAccept:      bitset.New(uint(numStates)),
		transitions:   make([]int, 0, numTransitions*3),
	}
}

// CreateState Create a new state.
func (a *Automaton) CreateState() int {
	state := len(a.states) / 2
	a.states = append(a.states, -1, 0)
	return state
}

// SetAccept Set or clear this state as an accept state.
func (a *Automaton) SetAccept(state int, accept bool) {
	a.isAccept.SetTo(uint(state), accept)
}

// Returns accept states. If the bit is set then that state is an accept state.
func (a *Automaton) getAcceptStates() *bitset.BitSet {
	return a.isAccept
}

// IsAccept Returns true if this state is an accept state.
func (a *Automaton) IsAccept(state int) bool {
	return a.isAccept.Test(uint(state))
}

// AddTransitionLabel Add a new transition with min = max = label.
func (a *Automaton) AddTransitionLabel(source, dest, label int) error {
	return a.AddTransition(source, dest, label, label)
}

// AddTransition Add a new transition with the specified source, dest, min, max.
func (a *Automaton) AddTransition(source, dest, min, max int) error {
	numStates := a.GetNumStates()
	if source < 0 || source >= numStates {
		return errors.Wrapf(ErrStateOutOfRange, "source state %d (have %d states)", source, numStates)
	}
	if dest < 0 || dest >= numStates {
		return errors.Wrapf(ErrStateOutOfRange, "dest state %d (have %d states)", dest, numStates)
	}
	if min < 0 || min > max || max > MaxLabel {
		return errors.Wrapf(ErrInvalidRange, "[%d, %d]", min, max)
	}

	if a.curState != source {
		if a.curState != -1 {
			a.finishCurrentState()
		}

		// Move to next source:
		a.curState = source
		if a.states[2*a.curState] != -1 {
			a.curState = -1
			return errors.Wrapf(ErrStateFinished, "from state %d", source)
		}
		a.states[2*a.curState] = a.nextTransition
	}

	a.growTransitions()
	a.transitions[a.nextTransition] = dest
	a.nextTransition++
	a.transitions[a.nextTransition] = min
	a.nextTransition++
	a.transitions[a.nextTransition] = max
	a.nextTransition++

	// Increment transition count for this state
	a.states[2*a.curState+1]++
	return nil
}

// Freezes the last state, sorting and reducing the transitions.
func (a *Automaton) finishCurrentState() {
	numTransitions := a.states[2*a.curState+1]

	offset := a.states[2*a.curState]
	start := offset / 3

	sort.Sort(&destMinMaxSorter{
		from:      start,
		to:        start + numTransitions,
		Automaton: a,
	})

	// Reduce any "adjacent" transitions:
	upto := 0
	minValue := -1
	maxValue := -1
	dest := -1

	for i := 0; i < numTransitions; i++ {
		tDest := a.transitions[offset+3*i]
		tMin := a.transitions[offset+3*i+1]
		tMax := a.transitions[offset+3*i+2]

		if dest == tDest {
			if tMin <= maxValue+1 {
				if tMax > maxValue {
					maxValue = tMax
				}
			} else {
				if dest != -1 {
					a.transitions[offset+3*upto] = dest
					a.transitions[offset+3*upto+1] = minValue
					a.transitions[offset+3*upto+2] = maxValue
					upto++
				}
				minValue = tMin
				maxValue = tMax
			}
		} else {
			if dest != -1 {
				a.transitions[offset+3*upto] = dest
				a.transitions[offset+3*upto+1] = minValue
				a.transitions[offset+3*upto+2] = maxValue
				upto++
			}
			dest = tDest
			minValue = tMin
			maxValue = tMax
		}
	}

	if dest != -1 {
		// Last transition
		a.transitions[offset+3*upto] = dest
		a.transitions[offset+3*upto+1] = minValue
		a.transitions[offset+3*upto+2] = maxValue
		upto++
	}

	a.nextTransition -= (numTransitions - upto) * 3
	a.states[2*a.curState+1] = upto

	// Sort transitions by minValue/maxValue/dest:
	sort.Sort(&minMaxDestSorter{
		from:      start,
		to:        start + upto,
		Automaton: a,
	})

	if a.deterministic && upto > 1 {
		lastMax := a.transitions[offset+2]
		for i := 1; i < upto; i++ {
			minValue = a.transitions[offset+3*i+1]
			if minValue <= lastMax {
				a.deterministic = false
				break
			}
			lastMax = a.transitions[offset+3*i+2]
		}
	}
}

// IsDeterministic Returns true if this automaton is deterministic (for ever state there is only one
// transition for each label).
func (a *Automaton) IsDeterministic() bool {
	return a.deterministic
}

// FinishState
// Finishes the current state; call this once you are done adding transitions for a state.
// This is automatically called if you start adding transitions to a new source state,
// but for the last state you add you need to this method yourself.
func (a *Automaton) FinishState() {
	if a.curState != -1 {
		a.finishCurrentState()
		a.curState = -1
	}
}

// GetNumStates How many states this automaton has.
func (a *Automaton) GetNumStates() int {
	return len(a.states) / 2
}

// GetNumTransitions How many transitions this automaton has.
func (a *Automaton) GetNumTransitions() int {
	return a.nextTransition / 3
}

// GetNumTransitionsWithState How many transitions this state has.
func (a *Automaton) GetNumTransitionsWithState(state int) int {
	return a.states[2*state+1]
}

func (a *Automaton) growTransitions() {
	if a.nextTransition+3 > len(a.transitions) {
		a.transitions = grow(a.transitions, a.nextTransition+3)
	}
}

// Sorts transitions by dest, ascending, then min label ascending, then max label ascending
type destMinMaxSorter struct {
	from, to int
	*Automaton
}

func (r *destMinMaxSorter) Len() int {
	return r.to - r.from
}

func (r *destMinMaxSorter) Less(i, j int) bool {
	iStart := 3 * (r.from + i)
	jStart := 3 * (r.from + j)

	// First dest:
	iDest := r.transitions[iStart]
	jDest := r.transitions[jStart]
	if iDest != jDest {
		return iDest < jDest
	}

	// Then min:
	iMin := r.transitions[iStart+1]
	jMin := r.transitions[jStart+1]
	if iMin != jMin {
		return iMin < jMin
	}

	// Then max:
	return r.transitions[iStart+2] < r.transitions[jStart+2]
}

func (r *destMinMaxSorter) Swap(i, j int) {
	swapTransitions(r.transitions, r.from+i, r.from+j)
}

// Sorts transitions by min label, ascending, then max label ascending, then dest ascending
type minMaxDestSorter struct {
	from, to int
	*Automaton
}

func (r *minMaxDestSorter) Len() int {
	return r.to - r.from
}

func (r *minMaxDestSorter) Less(i, j int) bool {
	iStart := 3 * (r.from + i)
	jStart := 3 * (r.from + j)

	// First min:
	iMin := r.transitions[iStart+1]
	jMin := r.transitions[jStart+1]
	if iMin != jMin {
		return iMin < jMin
	}

	// Then max:
	iMax := r.transitions[iStart+2]
	jMax := r.transitions[jStart+2]
	if iMax != jMax {
		return iMax < jMax
	}

	// Then dest:
	return r.transitions[iStart] < r.transitions[jStart]
}

func (r *minMaxDestSorter) Swap(i, j int) {
	swapTransitions(r.transitions, r.from+i, r.from+j)
}

func swapTransitions(transitions []int, i, j int) {
	iStart, jStart := 3*i, 3*j
	for k := 0; k < 3; k++ {
		transitions[iStart+k], transitions[jStart+k] = transitions[jStart+k], transitions[iStart+k]
	}
}

// InitTransition Initialize the provided Transition to iterate through all transitions leaving the specified
// state. You must call GetNextTransition to get each transition. Returns the number of transitions leaving
// this state.
func (a *Automaton) InitTransition(state int, t *Transition) int {
	t.Source = state
	t.TransitionUpto = a.states[2*state]
	return a.GetNumTransitionsWithState(state)
}

// GetNextTransition Iterate to the next transition after the provided one
func (a *Automaton) GetNextTransition(t *Transition) {
	t.Dest = a.transitions[t.TransitionUpto]
	t.TransitionUpto++
	t.Min = a.transitions[t.TransitionUpto]
	t.TransitionUpto++
	t.Max = a.transitions[t.TransitionUpto]
	t.TransitionUpto++
}

// GetStartPoints Returns sorted array of all interval start points. Labels between two consecutive
// points behave identically in every state, so the points serve as the alphabet for minimization.
func (a *Automaton) GetStartPoints() []int {
	pointset := make(map[int]struct{})
	pointset[0] = struct{}{}

	for s := 0; s < len(a.states); s += 2 {
		trans := a.states[s]
		limit := trans + 3*a.states[s+1]
		for trans < limit {
			minTrans := a.transitions[trans+1]
			maxTrans := a.transitions[trans+2]
			pointset[minTrans] = struct{}{}
			if maxTrans < MaxLabel {
				pointset[maxTrans+1] = struct{}{}
			}
			trans += 3
		}
	}

	points := make([]int, 0, len(pointset))
	for k := range pointset {
		points = append(points, k)
	}
	sort.Ints(points)
	return points
}

// Step Performs lookup in transitions, assuming determinism.
// Returns the destination state, -1 if no matching outgoing transition
func (a *Automaton) Step(state, label int) int {
	return a.next(state, 0, label, nil)
}

// Next
// Looks for the transition leaving transition.Source that matches the provided label, assuming
// determinism, and fills transition with it; Dest is set to -1 if there is no match.
//
// Returns: The destination state; or -1 if no matching outgoing transition.
func (a *Automaton) Next(transition *Transition, label int) int {
	return a.next(transition.Source, 0, label, transition)
}

// Looks for the next transition that matches the provided label, assuming determinism.
// fromTransitionIndex: The transition index to start the lookup from (inclusive); negative interpreted as 0.
func (a *Automaton) next(state, fromTransitionIndex, label int, transition *Transition) int {
	stateIndex := 2 * state
	firstTransitionIndex := a.states[stateIndex]
	numTransitions := a.states[stateIndex+1]

	// Since transitions are sorted,
	// binary search the transition for which label is within [minLabel, maxLabel].
	low := max(fromTransitionIndex, 0)
	high := numTransitions - 1

	for low <= high {
		mid := (low + high) >> 1
		transitionIndex := firstTransitionIndex + 3*mid
		minLabel := a.transitions[transitionIndex+1]
		if minLabel > label {
			high = mid - 1
		} else {
			maxLabel := a.transitions[transitionIndex+2]
			if maxLabel < label {
				low = mid + 1
			} else {
				destState := a.transitions[transitionIndex]
				if transition != nil {
					transition.Dest = destState
					transition.Min = minLabel
					transition.Max = maxLabel
					transition.TransitionUpto = mid
				}
				return destState
			}
		}
	}

	destState := -1
	if transition != nil {
		transition.Dest = destState
		transition.TransitionUpto = low
	}
	return destState
}

func (a *Automaton) String() string {
	var sb strings.Builder
	t := NewTransition()
	for s := 0; s < a.GetNumStates(); s++ {
		marker := ""
		if a.IsAccept(s) {
			marker = " [accept]"
		}
		fmt.Fprintf(&sb, "state %d%s\n", s, marker)
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			fmt.Fprintf(&sb, "  %s\n", t)
		}
	}
	return sb.String()
}
