package dilemma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPayoffMatrix(t *testing.T) {
	m := DefaultPayoffMatrix()

	cases := []struct {
		row, col       Action
		rowPay, colPay float64
	}{
		{ACTION_COOPERATE, ACTION_COOPERATE, 3, 3},
		{ACTION_COOPERATE, ACTION_DEFECT, 0, 5},
		{ACTION_DEFECT, ACTION_COOPERATE, 5, 0},
		{ACTION_DEFECT, ACTION_DEFECT, 1, 1},
	}
	for _, c := range cases {
		r, col := m.Payoffs(c.row, c.col)
		assert.Equal(t, c.rowPay, r, "%s/%s", c.row, c.col)
		assert.Equal(t, c.colPay, col, "%s/%s", c.row, c.col)

		// swapping roles swaps payoffs
		r2, c2 := m.Payoffs(c.col, c.row)
		assert.Equal(t, col, r2)
		assert.Equal(t, r, c2)
		assert.Equal(t, r, m.Payoff(c.row, c.col))
	}
}

func TestNewPayoffMatrixRejectsNonDilemma(t *testing.T) {
	_, err := NewPayoffMatrix(3, 5, 1, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)

	m, err := NewPayoffMatrix(10, 6, 2, -1)
	require.NoError(t, err)
	r, c := m.Payoffs(ACTION_COOPERATE, ACTION_DEFECT)
	assert.Equal(t, -1.0, r)
	assert.Equal(t, 10.0, c)
}

func TestStateAndActionConversions(t *testing.T) {
	assert.Equal(t, STATE_COOPERATE, StateOf(ACTION_COOPERATE))
	assert.Equal(t, STATE_DEFECT, StateOf(ACTION_DEFECT))

	_, ok := STATE_NONE.Action()
	assert.False(t, ok)
	a, ok := STATE_DEFECT.Action()
	assert.True(t, ok)
	assert.Equal(t, ACTION_DEFECT, a)

	assert.Equal(t, "None", STATE_NONE.String())
	assert.Equal(t, "Cooperate", ACTION_COOPERATE.String())

	parsed, err := ParseAction("Defect")
	require.NoError(t, err)
	assert.Equal(t, ACTION_DEFECT, parsed)
	_, err = ParseAction("Betray")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var u Action
	require.NoError(t, u.UnmarshalText([]byte("Defect")))
	text, err := u.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Defect", string(text))
}
