package automaton

// Predecessors is the inverse transition relation consumed by Minimize.
// Predecessors returns every state with a transition on symbol into state. A pair
// that was never defined returns nil. The relation must answer the same way every
// time it is asked about the same pair; Minimize does not check this.
type Predecessors[S comparable, A comparable] interface {
	Predecessors(symbol A, state S) []S
}

// StateLister is implemented by relations that know their own state set.
type StateLister[S comparable] interface {
	States() []S
}

// PredecessorsFunc adapts a plain function, e.g. a lazily computed relation.
type PredecessorsFunc[S comparable, A comparable] func(symbol A, state S) []S

func (f PredecessorsFunc[S, A]) Predecessors(symbol A, state S) []S {
	return f(symbol, state)
}

type inverseKey[S comparable, A comparable] struct {
	symbol A
	state  S
}

var _ Predecessors[int, int] = &InverseMap[int, int]{}
var _ StateLister[int] = &InverseMap[int, int]{}

// InverseMap is a precomputed inverse transition relation keyed by (symbol, target).
// Every state it has seen, as a target or as a predecessor, is reported by States
// in the order it was first seen.
type InverseMap[S comparable, A comparable] struct {
	preds  map[inverseKey[S, A]][]S
	seen   map[S]struct{}
	states []S
}

func NewInverseMap[S comparable, A comparable]() *InverseMap[S, A] {
	return &InverseMap[S, A]{
		preds: make(map[inverseKey[S, A]][]S),
		seen:  make(map[S]struct{}),
	}
}

// AddState registers a state without any transition.
func (m *InverseMap[S, A]) AddState(state S) {
	if _, ok := m.seen[state]; ok {
		return
	}
	m.seen[state] = struct{}{}
	m.states = append(m.states, state)
}

// Add records the transition pred --symbol--> target.
func (m *InverseMap[S, A]) Add(symbol A, pred, target S) {
	m.AddState(target)
	m.AddState(pred)
	key := inverseKey[S, A]{symbol: symbol, state: target}
	m.preds[key] = append(m.preds[key], pred)
}

// Set replaces the predecessor set of (symbol, target). An empty preds still
// registers target.
func (m *InverseMap[S, A]) Set(symbol A, target S, preds ...S) {
	m.AddState(target)
	for _, p := range preds {
		m.AddState(p)
	}
	key := inverseKey[S, A]{symbol: symbol, state: target}
	if len(preds) == 0 {
		delete(m.preds, key)
		return
	}
	m.preds[key] = append([]S(nil), preds...)
}

func (m *InverseMap[S, A]) Predecessors(symbol A, state S) []S {
	return m.preds[inverseKey[S, A]{symbol: symbol, state: state}]
}

func (m *InverseMap[S, A]) States() []S {
	return m.states
}

// Len returns the number of (symbol, target) pairs with at least one predecessor.
func (m *InverseMap[S, A]) Len() int {
	return len(m.preds)
}
