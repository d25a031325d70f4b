// Package dfafile reads and writes YAML descriptions of deterministic automata:
//
//	name: ends-with-b
//	start: q0
//	states: [q0, q1]
//	alphabet: [a, b]
//	accepting: [q1]
//	transitions:
//	  q0: {a: q0, b: q1}
//	  q1: {a: q0, b: q1}
//
// Transitions may be left out; a missing transition leads nowhere.
package dfafile

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	automaton "github.com/geange/dfamin"
)

var ErrInvalid = errors.New("invalid automaton description")

type Description struct {
	Name        string                       `yaml:"name,omitempty"`
	Start       string                       `yaml:"start"`
	States      []string                     `yaml:"states"`
	Alphabet    []string                     `yaml:"alphabet"`
	Accepting   []string                     `yaml:"accepting,omitempty"`
	Transitions map[string]map[string]string `yaml:"transitions,omitempty"`
}

func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read description")
	}
	d, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return d, nil
}

// Parse decodes a description. Unknown fields are rejected.
func Parse(data []byte) (*Description, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	d := &Description{}
	if err := dec.Decode(d); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalid, err)
	}
	return d, nil
}

// Table validates d and builds its transition table.
func (d *Description) Table() (*automaton.Table[string, string], error) {
	if d.Start == "" {
		return nil, errors.Wrap(ErrInvalid, "missing start state")
	}
	if !slices.Contains(d.States, d.Start) {
		return nil, errors.Wrapf(ErrInvalid, "start state %q is not declared", d.Start)
	}

	accepting := make(map[string]bool, len(d.Accepting))
	for _, s := range d.Accepting {
		if !slices.Contains(d.States, s) {
			return nil, errors.Wrapf(ErrInvalid, "accepting state %q is not declared", s)
		}
		accepting[s] = true
	}

	t := automaton.NewTable[string, string](d.Start)
	for _, s := range d.States {
		t.AddState(s, accepting[s])
	}
	for _, a := range d.Alphabet {
		t.AddSymbol(a)
	}

	// walk the map in sorted order so errors are reproducible
	froms := make([]string, 0, len(d.Transitions))
	for from := range d.Transitions {
		froms = append(froms, from)
	}
	slices.Sort(froms)
	for _, from := range froms {
		row := d.Transitions[from]
		symbols := make([]string, 0, len(row))
		for symbol := range row {
			symbols = append(symbols, symbol)
		}
		slices.Sort(symbols)
		for _, symbol := range symbols {
			if err := t.SetTransition(from, symbol, row[symbol]); err != nil {
				return nil, fmt.Errorf("%w: transition %s --%s--> %s: %w", ErrInvalid, from, symbol, row[symbol], err)
			}
		}
	}
	return t, nil
}

// FromTable describes t, naming states and symbols with fmt's default format.
func FromTable[S comparable, A comparable](name string, t *automaton.Table[S, A]) *Description {
	d := &Description{
		Name:  name,
		Start: fmt.Sprint(t.Start()),
	}
	for _, s := range t.States() {
		d.States = append(d.States, fmt.Sprint(s))
		if t.IsAccept(s) {
			d.Accepting = append(d.Accepting, fmt.Sprint(s))
		}
	}
	for _, a := range t.Alphabet() {
		d.Alphabet = append(d.Alphabet, fmt.Sprint(a))
	}
	for _, s := range t.States() {
		for _, a := range t.Alphabet() {
			to, ok := t.Target(s, a)
			if !ok {
				continue
			}
			if d.Transitions == nil {
				d.Transitions = make(map[string]map[string]string)
			}
			from := fmt.Sprint(s)
			if d.Transitions[from] == nil {
				d.Transitions[from] = make(map[string]string)
			}
			d.Transitions[from][fmt.Sprint(a)] = fmt.Sprint(to)
		}
	}
	return d
}

func (d *Description) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, errors.Wrap(err, "encode description")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encode description")
	}
	return buf.Bytes(), nil
}
