package automaton

import "github.com/bits-and-blooms/bitset"

// splitter is a pending (symbol, block) obligation. Both are indices: symbol into
// the deduplicated alphabet, block into refinable.blocks.
type splitter struct {
	symbol int
	block  int
}

// worklist is a LIFO of splitters with O(1) membership by (symbol, block).
type worklist struct {
	entries []splitter
	pending []*bitset.BitSet
	pushes  int
}

func newWorklist(numSymbols, numBlocks int) *worklist {
	w := &worklist{
		pending: make([]*bitset.BitSet, numSymbols),
	}
	for i := range w.pending {
		w.pending[i] = bitset.New(uint(numBlocks))
	}
	return w
}

func (w *worklist) push(symbol, block int) {
	if w.pending[symbol].Test(uint(block)) {
		return
	}
	w.pending[symbol].Set(uint(block))
	w.entries = append(w.entries, splitter{symbol: symbol, block: block})
	w.pushes++
}

func (w *worklist) pop() (splitter, bool) {
	if len(w.entries) == 0 {
		return splitter{}, false
	}
	last := len(w.entries) - 1
	e := w.entries[last]
	w.entries = w.entries[:last]
	w.pending[e.symbol].Clear(uint(e.block))
	return e, true
}

func (w *worklist) contains(symbol, block int) bool {
	return w.pending[symbol].Test(uint(block))
}

func (w *worklist) len() int {
	return len(w.entries)
}
