package automaton

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// IsEmptyAutomaton
// Returns true if the given automaton accepts no strings.
func IsEmptyAutomaton(a *Automaton) bool {
	if a.GetNumStates() == 0 {
		// Common case: no states
		return true
	}

	if !a.IsAccept(0) && a.GetNumTransitionsWithState(0) == 0 {
		// Common case: just one initial state
		return true
	}
	if a.IsAccept(0) {
		// Apparently common case: it accepts the empty string
		return false
	}

	return getLiveStatesFromInitial(a).Intersection(a.getAcceptStates()).None()
}

// totalize
// Returns a copy of a with one extra non-accepting state that receives every label a state
// had no transition for, so that each state has a transition for every label.
func totalize(a *Automaton) (*Automaton, error) {
	numStates := a.GetNumStates()
	result := NewAutomatonV1(numStates+1, a.GetNumTransitions()+numStates+1)
	for i := 0; i < numStates; i++ {
		result.CreateState()
		result.SetAccept(i, a.IsAccept(i))
	}

	deadState := result.CreateState()
	if err := result.AddTransition(deadState, deadState, 0, MaxLabel); err != nil {
		return nil, err
	}

	t := NewTransition()
	for i := 0; i < numStates; i++ {
		maxi := 0
		count := a.InitTransition(i, t)
		for j := 0; j < count; j++ {
			a.GetNextTransition(t)
			if err := result.AddTransition(i, t.Dest, t.Min, t.Max); err != nil {
				return nil, err
			}
			if t.Min > maxi {
				if err := result.AddTransition(i, deadState, maxi, t.Min-1); err != nil {
					return nil, err
				}
			}
			if t.Max+1 > maxi {
				maxi = t.Max + 1
			}
		}

		if maxi <= MaxLabel {
			if err := result.AddTransition(i, deadState, maxi, MaxLabel); err != nil {
				return nil, err
			}
		}
	}

	result.FinishState()
	return result, nil
}

// removeDeadStates
// Returns a copy of a without the states that are unreachable from the initial state or
// cannot reach an accept state. State numbering order is preserved. If the initial state
// itself is dead the result is the empty automaton.
func removeDeadStates(a *Automaton) (*Automaton, error) {
	numStates := a.GetNumStates()
	liveSet := getLiveStates(a)
	if numStates == 0 || !liveSet.Test(0) {
		return defaultAutomata.MakeEmpty(), nil
	}

	mp := make([]int, numStates)
	result := NewAutomatonV1(int(liveSet.Count()), a.GetNumTransitions())
	for i := 0; i < numStates; i++ {
		if liveSet.Test(uint(i)) {
			mp[i] = result.CreateState()
			result.SetAccept(mp[i], a.IsAccept(i))
		}
	}

	t := NewTransition()
	for i := 0; i < numStates; i++ {
		if !liveSet.Test(uint(i)) {
			continue
		}
		numTransitions := a.InitTransition(i, t)
		// filter out transitions to dead states:
		for j := 0; j < numTransitions; j++ {
			a.GetNextTransition(t)
			if liveSet.Test(uint(t.Dest)) {
				if err := result.AddTransition(mp[i], mp[t.Dest], t.Min, t.Max); err != nil {
					return nil, errors.Wrap(err, "remove dead states")
				}
			}
		}
	}

	result.FinishState()
	return result, nil
}

// getLiveStates returns the states that are both reachable from the initial state and able
// to reach an accept state.
func getLiveStates(a *Automaton) *bitset.BitSet {
	live := getLiveStatesFromInitial(a)
	live.InPlaceIntersection(getLiveStatesToAccept(a))
	return live
}

func getLiveStatesFromInitial(a *Automaton) *bitset.BitSet {
	numStates := a.GetNumStates()
	live := bitset.New(uint(numStates))
	if numStates == 0 {
		return live
	}
	workList := []int{0}
	live.Set(0)

	t := NewTransition()
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if !live.Test(uint(t.Dest)) {
				live.Set(uint(t.Dest))
				workList = append(workList, t.Dest)
			}
		}
	}

	return live
}

// getLiveStatesToAccept walks the label-free inverse relation backwards from the accept states.
func getLiveStatesToAccept(a *Automaton) *bitset.BitSet {
	numStates := a.GetNumStates()
	inverse := NewInverseMap[int, struct{}]()
	t := NewTransition()
	for s := 0; s < numStates; s++ {
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			inverse.Add(struct{}{}, s, t.Dest)
		}
	}

	live := bitset.New(uint(numStates))
	workList := make([]int, 0)
	for s, ok := a.getAcceptStates().NextSet(0); ok && s < uint(numStates); s, ok = a.getAcceptStates().NextSet(s + 1) {
		live.Set(s)
		workList = append(workList, int(s))
	}

	for len(workList) > 0 {
		s := workList[len(workList)-1]
		workList = workList[:len(workList)-1]
		for _, p := range inverse.Predecessors(struct{}{}, s) {
			if !live.Test(uint(p)) {
				live.Set(uint(p))
				workList = append(workList, p)
			}
		}
	}
	return live
}
