package automaton

// InverseAutomaton builds the inverse transition relation of a deterministic automaton.
// Symbols are the automaton's start points: each stands for the interval of labels up to
// the next start point, which every state treats alike. All states are registered, so
// States lists 0..n-1 in order.
func InverseAutomaton(a *Automaton) (*InverseMap[int, int], []int) {
	points := a.GetStartPoints()
	numStates := a.GetNumStates()
	inverse := NewInverseMap[int, int]()
	for s := 0; s < numStates; s++ {
		inverse.AddState(s)
	}

	t := NewTransition()
	for s := 0; s < numStates; s++ {
		t.Source = s
		for _, point := range points {
			if dest := a.Next(t, point); dest != -1 {
				inverse.Add(point, s, dest)
			}
		}
	}
	return inverse, points
}
