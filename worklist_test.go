package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorklist(t *testing.T) {
	w := newWorklist(2, 4)
	_, ok := w.pop()
	assert.False(t, ok)

	w.push(0, 1)
	w.push(1, 1)
	w.push(0, 1)
	// block ids beyond the initial size are fine
	w.push(1, 70)
	assert.Equal(t, 3, w.len())
	assert.Equal(t, 3, w.pushes)

	assert.True(t, w.contains(0, 1))
	assert.True(t, w.contains(1, 70))
	assert.False(t, w.contains(0, 70))
	assert.False(t, w.contains(1, 200))

	e, ok := w.pop()
	require.True(t, ok)
	assert.Equal(t, splitter{symbol: 1, block: 70}, e)
	assert.False(t, w.contains(1, 70))

	// a popped entry can be pushed again
	w.push(1, 70)
	assert.True(t, w.contains(1, 70))

	var popped []splitter
	for {
		e, ok := w.pop()
		if !ok {
			break
		}
		popped = append(popped, e)
	}
	assert.Equal(t, []splitter{{1, 70}, {1, 1}, {0, 1}}, popped)
	assert.Equal(t, 0, w.len())
}
