package automaton

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// randomTable builds a total DFA over states 0..n-1 and symbols 0..k-1.
func randomTable(n, k int, seed int64) *Table[int, int] {
	rng := rand.New(rand.NewSource(seed))
	t := NewTable[int, int](0)
	for s := 0; s < n; s++ {
		t.AddState(s, rng.Intn(3) == 0)
	}
	for a := 0; a < k; a++ {
		t.AddSymbol(a)
	}
	for s := 0; s < n; s++ {
		for a := 0; a < k; a++ {
			if err := t.SetTransition(s, a, rng.Intn(n)); err != nil {
				panic(err)
			}
		}
	}
	return t
}

// distinguishable fills the classic pair table until no pair changes.
func distinguishable(t *Table[int, int]) [][]bool {
	n := len(t.States())
	dist := make([][]bool, n)
	for i := range dist {
		dist[i] = make([]bool, n)
		for j := range dist[i] {
			dist[i][j] = t.IsAccept(i) != t.IsAccept(j)
		}
	}
	for changed := true; changed; {
		changed = false
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if dist[i][j] {
					continue
				}
				for _, a := range t.Alphabet() {
					ti, _ := t.Target(i, a)
					tj, _ := t.Target(j, a)
					if dist[ti][tj] {
						dist[i][j] = true
						changed = true
						break
					}
				}
			}
		}
	}
	return dist
}

func randomAutomaton(n int, seed int64) *Automaton {
	rng := rand.New(rand.NewSource(seed))
	a := NewAutomaton()
	for s := 0; s < n; s++ {
		a.CreateState()
		a.SetAccept(s, rng.Intn(3) == 0)
	}
	for s := 0; s < n; s++ {
		for label := 'a'; label <= 'c'; label++ {
			if rng.Intn(4) == 0 {
				continue
			}
			if err := a.AddTransitionLabel(s, rng.Intn(n), int(label)); err != nil {
				panic(err)
			}
		}
	}
	a.FinishState()
	return a
}

// words returns every string over alphabet of length at most n.
func words(alphabet string, n int) []string {
	result := []string{""}
	last := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range last {
			for _, c := range alphabet {
				next = append(next, w+string(c))
			}
		}
		result = append(result, next...)
		last = next
	}
	return result
}

func TestMinimizeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("equivalent exactly when indistinguishable", prop.ForAll(
		func(n, k int, seed int64) bool {
			table := randomTable(n, k, seed)
			p := table.Minimize()
			dist := distinguishable(table)
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					if p.Equivalent(i, j) == dist[i][j] {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 16), gen.IntRange(0, 3), gen.Int64(),
	))

	properties.Property("blocks are stable", prop.ForAll(
		func(n, k int, seed int64) bool {
			table := randomTable(n, k, seed)
			p := table.Minimize()
			for _, blk := range p.Blocks() {
				for _, s := range blk {
					if table.IsAccept(s) != table.IsAccept(blk[0]) {
						return false
					}
					for _, a := range table.Alphabet() {
						ts, _ := table.Target(s, a)
						t0, _ := table.Target(blk[0], a)
						if !p.Equivalent(ts, t0) {
							return false
						}
					}
				}
			}
			return true
		},
		gen.IntRange(1, 16), gen.IntRange(0, 3), gen.Int64(),
	))

	properties.Property("input order does not matter", prop.ForAll(
		func(n, k int, seed int64) bool {
			table := randomTable(n, k, seed)
			rng := rand.New(rand.NewSource(seed ^ 0x5eed))

			states := append([]int(nil), table.States()...)
			rng.Shuffle(len(states), func(i, j int) { states[i], states[j] = states[j], states[i] })
			alphabet := append([]int(nil), table.Alphabet()...)
			rng.Shuffle(len(alphabet), func(i, j int) { alphabet[i], alphabet[j] = alphabet[j], alphabet[i] })

			shuffled := Minimize(table.Accepting(), alphabet, table.Inverse(), WithStates(states...))
			return shuffled.Equal(table.Minimize())
		},
		gen.IntRange(1, 16), gen.IntRange(0, 3), gen.Int64(),
	))

	properties.Property("quotient is already minimal", prop.ForAll(
		func(n, k int, seed int64) bool {
			table := randomTable(n, k, seed)
			p := table.Minimize()
			q, err := table.Quotient(p)
			if err != nil {
				return false
			}
			again := q.Minimize()
			return again.Len() == p.Len() && again.Len() == again.NumStates()
		},
		gen.IntRange(1, 16), gen.IntRange(0, 3), gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestMinimizeAutomatonProperties(t *testing.T) {
	all := words("abcd", 4)
	properties := gopter.NewProperties(nil)

	properties.Property("language is preserved", prop.ForAll(
		func(n int, seed int64) bool {
			a := randomAutomaton(n, seed)
			m, err := MinimizeAutomaton(a)
			if err != nil {
				return false
			}
			for _, w := range all {
				if accepts(a, w) != accepts(m, w) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 10), gen.Int64(),
	))

	properties.Property("minimizing twice changes nothing", prop.ForAll(
		func(n int, seed int64) bool {
			m, err := MinimizeAutomaton(randomAutomaton(n, seed))
			if err != nil {
				return false
			}
			again, err := MinimizeAutomaton(m)
			if err != nil {
				return false
			}
			return again.GetNumStates() == m.GetNumStates() &&
				again.GetNumTransitions() == m.GetNumTransitions()
		},
		gen.IntRange(1, 10), gen.Int64(),
	))

	properties.TestingRun(t)
}
