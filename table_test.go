package automaton

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mod3 reads binary numbers and accepts multiples of three; r3 duplicates r0.
func mod3(t *testing.T) *Table[string, rune] {
	t.Helper()
	table := NewTable[string, rune]("r0")
	table.AddState("r0", true)
	table.AddState("r1", false)
	table.AddState("r2", false)
	table.AddState("r3", true)
	table.AddSymbol('0')
	table.AddSymbol('1')
	for _, tr := range []struct {
		from string
		on   rune
		to   string
	}{
		{"r0", '0', "r3"}, {"r0", '1', "r1"},
		{"r1", '0', "r2"}, {"r1", '1', "r0"},
		{"r2", '0', "r1"}, {"r2", '1', "r2"},
		{"r3", '0', "r0"}, {"r3", '1', "r1"},
	} {
		require.NoError(t, table.SetTransition(tr.from, tr.on, tr.to))
	}
	return table
}

func TestTable(t *testing.T) {
	table := mod3(t)
	assert.Equal(t, "r0", table.Start())
	assert.Equal(t, []string{"r0", "r1", "r2", "r3"}, table.States())
	assert.Equal(t, []rune{'0', '1'}, table.Alphabet())
	assert.Equal(t, []string{"r0", "r3"}, table.Accepting())

	table.AddSymbol('0')
	assert.Len(t, table.Alphabet(), 2)

	to, ok := table.Target("r1", '1')
	assert.True(t, ok)
	assert.Equal(t, "r0", to)
	_, ok = table.Target("r1", 'x')
	assert.False(t, ok)

	inverse := table.Inverse()
	assert.Equal(t, []string{"r0", "r1", "r2", "r3"}, inverse.States())
	assert.Equal(t, []string{"r0", "r3"}, inverse.Predecessors('1', "r1"))
	assert.Equal(t, []string{"r3"}, inverse.Predecessors('0', "r0"))
}

func TestTable_SetTransition(t *testing.T) {
	table := mod3(t)
	tests := []struct {
		name     string
		from, to string
		on       rune
		want     error
	}{
		{"unknown source", "r9", "r0", '0', ErrUnknownState},
		{"unknown target", "r0", "r9", '0', ErrUnknownState},
		{"unknown symbol", "r0", "r0", '2', ErrUnknownSymbol},
		{"conflict", "r0", "r0", '0', ErrNondeterministic},
		{"same again", "r0", "r3", '0', nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := table.SetTransition(tt.from, tt.on, tt.to)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestTable_Minimize(t *testing.T) {
	table := mod3(t)
	p := table.Minimize()
	assert.Equal(t, [][]string{{"r0", "r3"}, {"r1"}, {"r2"}}, p.Blocks())

	q, err := table.Quotient(p)
	require.NoError(t, err)
	assert.Equal(t, 0, q.Start())
	assert.Equal(t, []int{0, 1, 2}, q.States())
	assert.Equal(t, []int{0}, q.Accepting())
	for _, tt := range []struct {
		from int
		on   rune
		to   int
	}{
		{0, '0', 0}, {0, '1', 1},
		{1, '0', 2}, {1, '1', 0},
		{2, '0', 1}, {2, '1', 2},
	} {
		to, ok := q.Target(tt.from, tt.on)
		require.True(t, ok)
		assert.Equal(t, tt.to, to, "%d on %c", tt.from, tt.on)
	}

	assert.Equal(t, 3, q.Minimize().Len())
}

func TestTable_PartialMinimize(t *testing.T) {
	// p and q both accept and stop; s reaches them on different symbols
	table := NewTable[string, string]("s")
	table.AddState("p", true)
	table.AddState("q", true)
	table.AddSymbol("a")
	table.AddSymbol("b")
	require.NoError(t, table.SetTransition("s", "a", "p"))
	require.NoError(t, table.SetTransition("s", "b", "q"))

	p := table.Minimize()
	assert.True(t, p.Equivalent("p", "q"))

	quotient, err := table.Quotient(p)
	require.NoError(t, err)
	assert.Len(t, quotient.States(), 2)
	to, ok := quotient.Target(quotient.Start(), "b")
	require.True(t, ok)
	assert.True(t, quotient.IsAccept(to))
}

func TestTable_QuotientMissing(t *testing.T) {
	table := mod3(t)
	p := Minimize(table.Accepting(), table.Alphabet(), table.Inverse(), WithStates("r1", "r2"))
	_, err := table.Quotient(p)
	assert.True(t, errors.Is(err, ErrPartitionMissing), "got %v", err)
}
