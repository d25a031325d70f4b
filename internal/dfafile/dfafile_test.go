package dfafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	automaton "github.com/geange/dfamin"
)

const endsWithB = `
name: ends-with-b
start: q0
states: [q0, q1, q2]
alphabet: [a, b]
accepting: [q1, q2]
transitions:
  q0: {a: q0, b: q1}
  q1: {a: q0, b: q2}
  q2: {a: q0, b: q1}
`

func TestParseTable(t *testing.T) {
	d, err := Parse([]byte(endsWithB))
	require.NoError(t, err)
	assert.Equal(t, "ends-with-b", d.Name)

	table, err := d.Table()
	require.NoError(t, err)
	assert.Equal(t, "q0", table.Start())
	assert.Equal(t, []string{"q0", "q1", "q2"}, table.States())
	assert.Equal(t, []string{"a", "b"}, table.Alphabet())
	assert.Equal(t, []string{"q1", "q2"}, table.Accepting())

	to, ok := table.Target("q1", "b")
	assert.True(t, ok)
	assert.Equal(t, "q2", to)

	p := table.Minimize()
	assert.Equal(t, 2, p.Len())
	assert.True(t, p.Equivalent("q1", "q2"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dfa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(endsWithB), 0o600))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, d.States, 3)

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		cause error
	}{
		{name: "unknown field", doc: "start: q0\nstates: [q0]\ncolour: red\n"},
		{name: "missing start", doc: "states: [q0]\n"},
		{name: "undeclared start", doc: "start: x\nstates: [q0]\n"},
		{name: "undeclared accepting", doc: "start: q0\nstates: [q0]\naccepting: [q9]\n"},
		{name: "undeclared target", doc: "start: q0\nstates: [q0]\nalphabet: [a]\ntransitions:\n  q0: {a: q9}\n", cause: automaton.ErrUnknownState},
		{name: "undeclared symbol", doc: "start: q0\nstates: [q0]\nalphabet: [a]\ntransitions:\n  q0: {z: q0}\n", cause: automaton.ErrUnknownSymbol},
		{name: "undeclared source", doc: "start: q0\nstates: [q0]\nalphabet: [a]\ntransitions:\n  q7: {a: q0}\n", cause: automaton.ErrUnknownState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(tt.doc))
			if err == nil {
				_, err = d.Table()
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), err.Error())
			if tt.cause != nil {
				assert.True(t, errors.Is(err, tt.cause), err.Error())
			}
		})
	}
}

func TestFromTableRoundTrip(t *testing.T) {
	d, err := Parse([]byte(endsWithB))
	require.NoError(t, err)
	table, err := d.Table()
	require.NoError(t, err)

	q, err := table.Quotient(table.Minimize())
	require.NoError(t, err)

	out, err := FromTable("minimal", q).Marshal()
	require.NoError(t, err)

	back, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "minimal", back.Name)
	assert.Equal(t, "0", back.Start)
	assert.Equal(t, []string{"0", "1"}, back.States)
	assert.Equal(t, []string{"1"}, back.Accepting)
	assert.Equal(t, map[string]map[string]string{
		"0": {"a": "0", "b": "1"},
		"1": {"a": "0", "b": "1"},
	}, back.Transitions)

	rebuilt, err := back.Table()
	require.NoError(t, err)
	assert.Equal(t, 2, rebuilt.Minimize().Len())
}

func TestFromTablePartial(t *testing.T) {
	table := automaton.NewTable[int, rune](0)
	table.AddState(1, true)
	table.AddSymbol('x')
	require.NoError(t, table.SetTransition(0, 'x', 1))

	d := FromTable("", table)
	assert.Equal(t, []string{"0", "1"}, d.States)
	assert.Equal(t, []string{"120"}, d.Alphabet)
	assert.Equal(t, map[string]map[string]string{"0": {"120": "1"}}, d.Transitions)
}
