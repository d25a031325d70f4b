package automaton

import "github.com/pkg/errors"

// MinimizeAutomaton
// Minimizes the given deterministic automaton using Hopcroft's algorithm. The result has
// no dead states; its initial state is state 0. An automaton with the empty language
// minimizes to an automaton without states. The state universe is always all states of
// a, so a WithStates option is overridden.
func MinimizeAutomaton(a *Automaton, opts ...Option[int]) (*Automaton, error) {
	if a.GetNumStates() == 0 || (!a.IsAccept(0) && a.GetNumTransitionsWithState(0) == 0) {
		// Fastmatch for common case
		return NewAutomaton(), nil
	}
	if !a.IsDeterministic() {
		return nil, ErrNotDeterministic
	}

	total, err := totalize(a)
	if err != nil {
		return nil, errors.Wrap(err, "totalize")
	}

	numStates := total.GetNumStates()
	states := make([]int, numStates)
	accepting := make([]int, 0, numStates)
	for s := range states {
		states[s] = s
		if total.IsAccept(s) {
			accepting = append(accepting, s)
		}
	}

	inverse, points := InverseAutomaton(total)
	opts = append(append([]Option[int](nil), opts...), WithStates(states...))
	p := Minimize[int, int](accepting, points, inverse, opts...)

	quotient, err := quotientAutomaton(total, p)
	if err != nil {
		return nil, errors.Wrap(err, "quotient")
	}
	return removeDeadStates(quotient)
}

// quotientAutomaton collapses every block of p into one state. The block of the
// initial state becomes state 0 and the other blocks keep their order.
func quotientAutomaton(a *Automaton, p *Partition[int]) (*Automaton, error) {
	initial, ok := p.BlockOf(0)
	if !ok {
		return nil, errors.Wrap(ErrPartitionMissing, "initial state")
	}
	ids := make([]int, p.Len())
	next := 1
	for i := range ids {
		if i == initial {
			continue
		}
		ids[i] = next
		next++
	}

	result := NewAutomatonV1(p.Len(), a.GetNumTransitions())
	for i := 0; i < p.Len(); i++ {
		result.CreateState()
	}
	for i := 0; i < p.Len(); i++ {
		result.SetAccept(ids[i], a.IsAccept(p.Block(i)[0]))
	}

	t := NewTransition()
	for i := 0; i < p.Len(); i++ {
		rep := p.Block(i)[0]
		count := a.InitTransition(rep, t)
		for j := 0; j < count; j++ {
			a.GetNextTransition(t)
			dest, ok := p.BlockOf(t.Dest)
			if !ok {
				return nil, errors.Wrapf(ErrPartitionMissing, "state %d", t.Dest)
			}
			if err := result.AddTransition(ids[i], ids[dest], t.Min, t.Max); err != nil {
				return nil, err
			}
		}
	}
	result.FinishState()
	return result, nil
}
