package automaton

import "github.com/pkg/errors"

// Table is a deterministic automaton given by its forward transition function. Missing
// transitions are allowed. States and symbols keep the order they were declared in.
type Table[S comparable, A comparable] struct {
	start    S
	states   []S
	alphabet []A
	accept   map[S]bool
	symbols  map[A]struct{}
	delta    map[S]map[A]S
}

// NewTable returns a table holding only the (non-accepting) start state.
func NewTable[S comparable, A comparable](start S) *Table[S, A] {
	t := &Table[S, A]{
		start:   start,
		accept:  make(map[S]bool),
		symbols: make(map[A]struct{}),
		delta:   make(map[S]map[A]S),
	}
	t.AddState(start, false)
	return t
}

// AddState declares s, or updates whether it accepts.
func (t *Table[S, A]) AddState(s S, accept bool) {
	if _, ok := t.accept[s]; !ok {
		t.states = append(t.states, s)
	}
	t.accept[s] = accept
}

func (t *Table[S, A]) AddSymbol(a A) {
	if _, ok := t.symbols[a]; ok {
		return
	}
	t.symbols[a] = struct{}{}
	t.alphabet = append(t.alphabet, a)
}

// SetTransition defines from --symbol--> to. Both states and the symbol must be declared.
// Redefining a transition with a different target is an error.
func (t *Table[S, A]) SetTransition(from S, symbol A, to S) error {
	if _, ok := t.accept[from]; !ok {
		return errors.Wrapf(ErrUnknownState, "%v", from)
	}
	if _, ok := t.accept[to]; !ok {
		return errors.Wrapf(ErrUnknownState, "%v", to)
	}
	if _, ok := t.symbols[symbol]; !ok {
		return errors.Wrapf(ErrUnknownSymbol, "%v", symbol)
	}

	row, ok := t.delta[from]
	if !ok {
		row = make(map[A]S)
		t.delta[from] = row
	}
	if prev, ok := row[symbol]; ok && prev != to {
		return errors.Wrapf(ErrNondeterministic, "%v on %v goes to %v and %v", from, symbol, prev, to)
	}
	row[symbol] = to
	return nil
}

func (t *Table[S, A]) Start() S {
	return t.start
}

func (t *Table[S, A]) States() []S {
	return t.states
}

func (t *Table[S, A]) Alphabet() []A {
	return t.alphabet
}

func (t *Table[S, A]) IsAccept(s S) bool {
	return t.accept[s]
}

// Accepting returns the accepting states in declaration order.
func (t *Table[S, A]) Accepting() []S {
	result := make([]S, 0)
	for _, s := range t.states {
		if t.accept[s] {
			result = append(result, s)
		}
	}
	return result
}

// Target returns the state reached from s on symbol.
func (t *Table[S, A]) Target(s S, symbol A) (S, bool) {
	to, ok := t.delta[s][symbol]
	return to, ok
}

// Inverse builds the inverse transition relation; every declared state is registered.
func (t *Table[S, A]) Inverse() *InverseMap[S, A] {
	inverse := NewInverseMap[S, A]()
	for _, s := range t.states {
		inverse.AddState(s)
	}
	for _, s := range t.states {
		for _, a := range t.alphabet {
			if to, ok := t.delta[s][a]; ok {
				inverse.Add(a, s, to)
			}
		}
	}
	return inverse
}

// Minimize partitions the declared states of t.
func (t *Table[S, A]) Minimize(opts ...Option[S]) *Partition[S] {
	opts = append([]Option[S]{WithStates(t.states...)}, opts...)
	return Minimize(t.Accepting(), t.alphabet, t.Inverse(), opts...)
}

// Quotient collapses each block of p into one state named by the block index. The
// start state is the block of t's start state.
func (t *Table[S, A]) Quotient(p *Partition[S]) (*Table[int, A], error) {
	start, ok := p.BlockOf(t.start)
	if !ok {
		return nil, errors.Wrapf(ErrPartitionMissing, "start state %v", t.start)
	}

	q := NewTable[int, A](start)
	for i := 0; i < p.Len(); i++ {
		q.AddState(i, t.accept[p.Block(i)[0]])
	}
	for _, a := range t.alphabet {
		q.AddSymbol(a)
	}

	for i := 0; i < p.Len(); i++ {
		rep := p.Block(i)[0]
		for _, a := range t.alphabet {
			to, ok := t.delta[rep][a]
			if !ok {
				continue
			}
			j, ok := p.BlockOf(to)
			if !ok {
				return nil, errors.Wrapf(ErrPartitionMissing, "state %v", to)
			}
			if err := q.SetTransition(i, a, j); err != nil {
				return nil, err
			}
		}
	}
	return q, nil
}
