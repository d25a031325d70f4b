package automaton

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// universe interns states to dense indices.
type universe[S comparable] struct {
	states []S
	index  map[S]int
}

func newUniverse[S comparable](capacity int) *universe[S] {
	return &universe[S]{
		states: make([]S, 0, capacity),
		index:  make(map[S]int, capacity),
	}
}

func (u *universe[S]) add(s S) {
	if _, ok := u.index[s]; ok {
		return
	}
	u.index[s] = len(u.states)
	u.states = append(u.states, s)
}

func (u *universe[S]) sort(compare func(a, b S) int) {
	slices.SortFunc(u.states, compare)
	for i, s := range u.states {
		u.index[s] = i
	}
}

func (u *universe[S]) size() int {
	return len(u.states)
}

// block is a range of refinable.elems. The first marked elements of the range
// are the ones hit by the current splitter.
type block struct {
	start, end int
	marked     int
}

func (b *block) size() int {
	return b.end - b.start
}

// refinable is a partition of 0..n-1 that can only be split. Block ids are
// stable handles: a split keeps the id for one half and allocates a new id for
// the other.
type refinable struct {
	elems  []int
	loc    []int
	owner  []int
	blocks []block
}

// newRefinable builds the initial acceptance bipartition, dropping an empty side.
// Accepting states come first.
func newRefinable(n int, accept *bitset.BitSet) *refinable {
	r := &refinable{
		elems: make([]int, 0, n),
		loc:   make([]int, n),
		owner: make([]int, n),
	}

	for pass := 0; pass < 2; pass++ {
		start := len(r.elems)
		for s := 0; s < n; s++ {
			if accept.Test(uint(s)) != (pass == 0) {
				continue
			}
			r.loc[s] = len(r.elems)
			r.owner[s] = len(r.blocks)
			r.elems = append(r.elems, s)
		}
		if len(r.elems) > start {
			r.blocks = append(r.blocks, block{start: start, end: len(r.elems)})
		}
	}
	return r
}

func (r *refinable) numBlocks() int {
	return len(r.blocks)
}

func (r *refinable) size(b int) int {
	return r.blocks[b].size()
}

func (r *refinable) members(b int) []int {
	blk := &r.blocks[b]
	return r.elems[blk.start:blk.end]
}

// mark moves s into the marked prefix of its block. It returns false when s was
// already marked.
func (r *refinable) mark(s int) bool {
	blk := &r.blocks[r.owner[s]]
	pos := r.loc[s]
	boundary := blk.start + blk.marked
	if pos < boundary {
		return false
	}
	other := r.elems[boundary]
	r.elems[boundary], r.elems[pos] = s, other
	r.loc[s], r.loc[other] = boundary, pos
	blk.marked++
	return true
}

// split separates the marked prefix of b from the rest. The marked part gets a
// new block id, the unmarked part keeps b. Nothing happens when all or none of b
// is marked.
func (r *refinable) split(b int) (int, bool) {
	blk := &r.blocks[b]
	marked := blk.marked
	blk.marked = 0
	if marked == 0 || marked == blk.size() {
		return -1, false
	}

	nb := len(r.blocks)
	r.blocks = append(r.blocks, block{start: blk.start, end: blk.start + marked})
	// append may have moved the slice
	blk = &r.blocks[b]
	blk.start += marked
	for _, s := range r.elems[r.blocks[nb].start:r.blocks[nb].end] {
		r.owner[s] = nb
	}
	return nb, true
}

// smaller returns whichever of b1, b2 has fewer states. On a tie the block
// holding the lowest state index wins.
func (r *refinable) smaller(b1, b2 int) int {
	s1, s2 := r.size(b1), r.size(b2)
	switch {
	case s1 < s2:
		return b1
	case s2 < s1:
		return b2
	}
	if slices.Min(r.members(b2)) < slices.Min(r.members(b1)) {
		return b2
	}
	return b1
}

// freeze converts r into a Partition. Blocks are ordered by their lowest state
// index and members follow universe order.
func freeze[S comparable](r *refinable, u *universe[S], stats Stats) *Partition[S] {
	p := &Partition[S]{
		blocks: make([][]S, 0, r.numBlocks()),
		index:  make(map[S]int, u.size()),
		stats:  stats,
	}
	order := make([]int, r.numBlocks())
	for i := range order {
		order[i] = -1
	}
	for s, state := range u.states {
		b := r.owner[s]
		if order[b] == -1 {
			order[b] = len(p.blocks)
			p.blocks = append(p.blocks, make([]S, 0, r.size(b)))
		}
		i := order[b]
		p.blocks[i] = append(p.blocks[i], state)
		p.index[state] = i
	}
	return p
}

// Stats counts the work done by one Minimize call.
type Stats struct {
	Pops   int // worklist entries processed
	Pushes int // worklist entries added, including the initial ones
	Splits int // blocks divided
}

// Partition is the result of Minimize: non-empty, pairwise disjoint blocks of
// equivalent states covering the state universe. A Partition is never modified
// after it is returned.
type Partition[S comparable] struct {
	blocks [][]S
	index  map[S]int
	stats  Stats
}

// Len returns the number of blocks.
func (p *Partition[S]) Len() int {
	return len(p.blocks)
}

// NumStates returns the size of the state universe.
func (p *Partition[S]) NumStates() int {
	return len(p.index)
}

// Blocks returns all blocks. The slices must not be modified.
func (p *Partition[S]) Blocks() [][]S {
	return p.blocks
}

func (p *Partition[S]) Block(i int) []S {
	return p.blocks[i]
}

// BlockOf returns the index of the block holding s.
func (p *Partition[S]) BlockOf(s S) (int, bool) {
	i, ok := p.index[s]
	return i, ok
}

// Equivalent reports whether a and b are both in the universe and share a block.
func (p *Partition[S]) Equivalent(a, b S) bool {
	ia, ok := p.index[a]
	if !ok {
		return false
	}
	ib, ok := p.index[b]
	return ok && ia == ib
}

// Equal compares two partitions as sets of sets.
func (p *Partition[S]) Equal(other *Partition[S]) bool {
	if p.Len() != other.Len() || p.NumStates() != other.NumStates() {
		return false
	}
	for _, blk := range p.blocks {
		j, ok := other.index[blk[0]]
		if !ok || len(other.blocks[j]) != len(blk) {
			return false
		}
		for _, s := range blk[1:] {
			if k, ok := other.index[s]; !ok || k != j {
				return false
			}
		}
	}
	return true
}

func (p *Partition[S]) Stats() Stats {
	return p.stats
}

func (p *Partition[S]) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, blk := range p.blocks {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("{")
		for j, s := range blk {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprint(&sb, s)
		}
		sb.WriteString("}")
	}
	sb.WriteString("}")
	return sb.String()
}
