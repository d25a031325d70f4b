package automaton

import "fmt"

// Transition holds one transition while iterating over the transitions leaving a
// state; see Automaton.InitTransition.
type Transition struct {
	Source int
	Dest   int
	Min    int
	Max    int

	// Position of the next transition to read in Automaton.transitions.
	TransitionUpto int
}

func NewTransition() *Transition {
	return &Transition{TransitionUpto: -1}
}

func (t *Transition) String() string {
	return fmt.Sprintf("%d --[%d-%d]--> %d", t.Source, t.Min, t.Max, t.Dest)
}
