// Package render prints partitions and transition tables for people and for Graphviz.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	automaton "github.com/geange/dfamin"
)

// Partition writes one line per block.
func Partition[S comparable](w io.Writer, p *automaton.Partition[S]) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d blocks over %d states\n", p.Len(), p.NumStates())
	for i, blk := range p.Blocks() {
		names := make([]string, len(blk))
		for j, s := range blk {
			names[j] = fmt.Sprint(s)
		}
		fmt.Fprintf(&sb, "  [%d] %s\n", i, strings.Join(names, ", "))
	}
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "write partition")
}

// Table writes the transition table, one line per state.
func Table[S comparable, A comparable](w io.Writer, t *automaton.Table[S, A]) error {
	var sb strings.Builder
	for _, s := range t.States() {
		var flags []string
		if s == t.Start() {
			flags = append(flags, "start")
		}
		if t.IsAccept(s) {
			flags = append(flags, "accept")
		}
		fmt.Fprintf(&sb, "%v", s)
		if len(flags) > 0 {
			fmt.Fprintf(&sb, " (%s)", strings.Join(flags, ", "))
		}
		sb.WriteString(":")
		for _, a := range t.Alphabet() {
			if to, ok := t.Target(s, a); ok {
				fmt.Fprintf(&sb, " %v->%v", a, to)
			}
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "write table")
}

type edge struct {
	from, to string
}

// Dot writes t as a Graphviz digraph. Parallel transitions share one edge labelled
// with all their symbols.
func Dot[S comparable, A comparable](w io.Writer, name string, t *automaton.Table[S, A]) error {
	if name == "" {
		name = "dfa"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %q {\n", name)
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n")
	sb.WriteString("\n")

	// Add invisible start node pointing to initial state
	sb.WriteString("  start [shape=point];\n")
	fmt.Fprintf(&sb, "  start -> %q;\n", fmt.Sprint(t.Start()))
	sb.WriteString("\n")

	for _, s := range t.States() {
		if t.IsAccept(s) {
			fmt.Fprintf(&sb, "  %q [shape=doublecircle];\n", fmt.Sprint(s))
		} else {
			fmt.Fprintf(&sb, "  %q;\n", fmt.Sprint(s))
		}
	}
	sb.WriteString("\n")

	var order []edge
	labels := make(map[edge][]string)
	for _, s := range t.States() {
		for _, a := range t.Alphabet() {
			to, ok := t.Target(s, a)
			if !ok {
				continue
			}
			e := edge{from: fmt.Sprint(s), to: fmt.Sprint(to)}
			if _, ok := labels[e]; !ok {
				order = append(order, e)
			}
			labels[e] = append(labels[e], fmt.Sprint(a))
		}
	}
	for _, e := range order {
		fmt.Fprintf(&sb, "  %q -> %q [label=%q];\n", e.from, e.to, strings.Join(labels[e], ","))
	}

	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "write dot")
}
