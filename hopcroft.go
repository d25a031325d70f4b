package automaton

import (
	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"
)

// Minimize partitions the states of a deterministic automaton into classes of
// indistinguishable states using Hopcroft's algorithm.
//
// The automaton is given by its accepting states, its alphabet and its inverse
// transition relation. Unless WithStates is used, the state universe is every
// accepting state, every state the relation lists (when it implements
// StateLister), and everything reachable backwards from those through the
// relation. Pairs the relation does not define contribute no predecessors.
//
// Worst case complexity: O(|alphabet| * n * log n) predecessor visits.
func Minimize[S comparable, A comparable](accepting []S, alphabet []A, inverse Predecessors[S, A], opts ...Option[S]) *Partition[S] {
	options := newMinimizeOptions(opts...)
	logger := options.logger

	symbols := distinct(alphabet)
	u := discover(accepting, symbols, inverse, options)
	n := u.size()

	accept := bitset.New(uint(n))
	for _, s := range accepting {
		if i, ok := u.index[s]; ok {
			accept.Set(uint(i))
		}
	}

	r := newRefinable(n, accept)
	var stats Stats
	if r.numBlocks() < 2 || len(symbols) == 0 {
		logger.Debug("nothing to refine",
			zap.Int("states", n),
			zap.Int("blocks", r.numBlocks()),
			zap.Int("symbols", len(symbols)))
		return freeze(r, u, stats)
	}

	w := newWorklist(len(symbols), n)
	first := r.smaller(0, 1)
	for c := range symbols {
		w.push(c, first)
	}

	var (
		members []int
		touched []int
	)
	for {
		e, ok := w.pop()
		if !ok {
			break
		}
		stats.Pops++

		// marking reorders elems inside the splitter too
		members = append(members[:0], r.members(e.block)...)
		for _, t := range members {
			for _, p := range inverse.Predecessors(symbols[e.symbol], u.states[t]) {
				q, ok := u.index[p]
				if !ok {
					continue
				}
				b := r.owner[q]
				if r.mark(q) && r.blocks[b].marked == 1 {
					touched = append(touched, b)
				}
			}
		}

		for _, b := range touched {
			nb, ok := r.split(b)
			if !ok {
				continue
			}
			stats.Splits++
			if ce := logger.Check(zap.DebugLevel, "split block"); ce != nil {
				ce.Write(
					zap.Int("symbol", e.symbol),
					zap.Int("splitter", e.block),
					zap.Int("block", b),
					zap.Int("new", nb),
					zap.Int("kept", r.size(b)),
					zap.Int("moved", r.size(nb)))
			}
			for c := range symbols {
				if w.contains(c, b) {
					w.push(c, nb)
				} else {
					w.push(c, r.smaller(b, nb))
				}
			}
		}
		touched = touched[:0]
	}

	stats.Pushes = w.pushes
	logger.Debug("minimized",
		zap.Int("states", n),
		zap.Int("symbols", len(symbols)),
		zap.Int("blocks", r.numBlocks()),
		zap.Int("pops", stats.Pops),
		zap.Int("splits", stats.Splits))
	return freeze(r, u, stats)
}

// discover builds the state universe.
func discover[S comparable, A comparable](accepting []S, symbols []A, inverse Predecessors[S, A], options *minimizeOptions[S]) *universe[S] {
	if options.explicit {
		u := newUniverse[S](len(options.states))
		for _, s := range options.states {
			u.add(s)
		}
		if options.compare != nil {
			u.sort(options.compare)
		}
		return u
	}

	var listed []S
	if lister, ok := inverse.(StateLister[S]); ok {
		listed = lister.States()
	}
	u := newUniverse[S](len(accepting) + len(listed))
	for _, s := range accepting {
		u.add(s)
	}
	for _, s := range listed {
		u.add(s)
	}
	// u.states grows while it is scanned
	for i := 0; i < len(u.states); i++ {
		s := u.states[i]
		for _, a := range symbols {
			for _, p := range inverse.Predecessors(a, s) {
				u.add(p)
			}
		}
	}
	if options.compare != nil {
		u.sort(options.compare)
	}
	return u
}
