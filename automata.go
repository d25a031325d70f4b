package automaton

import "github.com/pkg/errors"

// Automata builds small deterministic automata.
type Automata struct {
}

var defaultAutomata = &Automata{}

// MakeEmpty
// Returns a new (deterministic) automaton with the empty language.
func (*Automata) MakeEmpty() *Automaton {
	a := NewAutomaton()
	a.FinishState()
	return a
}

// MakeEmptyString
// Returns a new (deterministic) automaton that accepts only the empty string.
func (*Automata) MakeEmptyString() *Automaton {
	a := NewAutomaton()
	a.CreateState()
	a.SetAccept(0, true)
	return a
}

// MakeAnyString
// Returns a new (deterministic) automaton that accepts all strings.
func (*Automata) MakeAnyString() (*Automaton, error) {
	a := NewAutomaton()
	s := a.CreateState()
	a.SetAccept(s, true)
	if err := a.AddTransition(s, s, 0, MaxLabel); err != nil {
		return nil, err
	}
	a.FinishState()
	return a, nil
}

// MakeChar
// Returns a new (deterministic) automaton that accepts a single code point of the given value.
func (r *Automata) MakeChar(c int) (*Automaton, error) {
	return r.MakeCharRange(c, c)
}

// MakeCharRange
// Returns a new (deterministic) automaton that accepts a single code point whose value is in
// the given interval (including both end points).
func (r *Automata) MakeCharRange(min, max int) (*Automaton, error) {
	if min > max {
		return r.MakeEmpty(), nil
	}
	a := NewAutomaton()
	s1 := a.CreateState()
	s2 := a.CreateState()
	a.SetAccept(s2, true)
	if err := a.AddTransition(s1, s2, min, max); err != nil {
		return nil, errors.Wrap(err, "make char range")
	}
	a.FinishState()
	return a, nil
}

// MakeString
// Returns a new (deterministic) automaton that accepts the single given string.
func (*Automata) MakeString(s string) (*Automaton, error) {
	a := NewAutomaton()
	lastState := a.CreateState()
	for _, c := range s {
		state := a.CreateState()
		if err := a.AddTransitionLabel(lastState, state, int(c)); err != nil {
			return nil, errors.Wrapf(err, "make string %q", s)
		}
		lastState = state
	}
	a.SetAccept(lastState, true)
	a.FinishState()
	return a, nil
}
