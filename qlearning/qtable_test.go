package qlearning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipd-go/dilemma"
)

func newTable() *QTable {
	return NewQTable(dilemma.Actions, dilemma.States)
}

func TestFreshTableIsZero(t *testing.T) {
	table := newTable()
	for _, s := range dilemma.States {
		for _, a := range dilemma.Actions {
			assert.Equal(t, 0.0, table.Get(s, a))
		}
	}
	assert.Equal(t, dilemma.States, table.States())
}

func TestGetCreatesUnseenRow(t *testing.T) {
	table := NewQTable(dilemma.Actions, nil)
	require.Empty(t, table.States())

	assert.Equal(t, 0.0, table.Get(dilemma.STATE_DEFECT, dilemma.ACTION_COOPERATE))
	assert.Equal(t, []dilemma.State{dilemma.STATE_DEFECT}, table.States())
	snap := table.Snapshot()
	assert.Equal(t, map[string]float64{"Cooperate": 0, "Defect": 0}, snap["Defect"])
}

func TestSingleUpdateFromZero(t *testing.T) {
	table := newTable()
	table.Update(dilemma.STATE_COOPERATE, dilemma.ACTION_DEFECT, 0.1, 5, 0.9, dilemma.STATE_DEFECT)
	assert.Equal(t, 0.1*5, table.Get(dilemma.STATE_COOPERATE, dilemma.ACTION_DEFECT))
}

func TestUpdateWithUnseenNextState(t *testing.T) {
	table := NewQTable(dilemma.Actions, nil)
	table.Update(dilemma.STATE_NONE, dilemma.ACTION_COOPERATE, 0.5, 3, 0.9, dilemma.STATE_DEFECT)

	assert.Equal(t, 1.5, table.Get(dilemma.STATE_NONE, dilemma.ACTION_COOPERATE))
	assert.ElementsMatch(t, []dilemma.State{dilemma.STATE_NONE, dilemma.STATE_DEFECT}, table.States())
}

func TestUpdateUsesMaxOfNextState(t *testing.T) {
	table := newTable()
	table.Set(dilemma.STATE_DEFECT, dilemma.ACTION_COOPERATE, 2)
	table.Set(dilemma.STATE_DEFECT, dilemma.ACTION_DEFECT, 4)

	table.Update(dilemma.STATE_COOPERATE, dilemma.ACTION_COOPERATE, 0.5, 1, 0.5, dilemma.STATE_DEFECT)
	// 0 + 0.5 * (1 + 0.5*4 - 0)
	assert.InDelta(t, 1.5, table.Get(dilemma.STATE_COOPERATE, dilemma.ACTION_COOPERATE), 1e-12)
}

func TestRepeatedUpdatesConverge(t *testing.T) {
	table := newTable()
	prev := 0.0
	prevDelta := 0.0
	for i := range 5 {
		table.Update(dilemma.STATE_COOPERATE, dilemma.ACTION_DEFECT, 0.1, 5, 0, dilemma.STATE_DEFECT)
		v := table.Get(dilemma.STATE_COOPERATE, dilemma.ACTION_DEFECT)
		delta := v - prev
		require.Greater(t, delta, 0.0)
		if i > 0 {
			assert.Less(t, delta, prevDelta)
		}
		prev, prevDelta = v, delta
	}
}

func TestBestReturnsAllTies(t *testing.T) {
	table := newTable()
	assert.Equal(t, dilemma.Actions, table.Best(dilemma.STATE_NONE))

	table.Set(dilemma.STATE_NONE, dilemma.ACTION_DEFECT, 0.3)
	assert.Equal(t, []dilemma.Action{dilemma.ACTION_DEFECT}, table.Best(dilemma.STATE_NONE))
	assert.Equal(t, 0.3, table.Max(dilemma.STATE_NONE))

	table.Set(dilemma.STATE_COOPERATE, dilemma.ACTION_COOPERATE, -1)
	table.Set(dilemma.STATE_COOPERATE, dilemma.ACTION_DEFECT, -2)
	assert.Equal(t, -1.0, table.Max(dilemma.STATE_COOPERATE))
}
