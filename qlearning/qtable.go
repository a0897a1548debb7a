package qlearning

import (
	"slices"

	"ipd-go/common/defaultmap"
	"ipd-go/dilemma"
)

type Defaultmap[K comparable, V any] = defaultmap.DefaultMap[K, V]

type actionValues = map[dilemma.Action]float64

// QTable holds action-value estimates for a single opponent.
// Rows are created on first touch with every action at 0.0.
type QTable struct {
	actions []dilemma.Action
	rows    Defaultmap[dilemma.State, actionValues]
}

func NewQTable(actions []dilemma.Action, states []dilemma.State) *QTable {
	h := &QTable{
		actions: slices.Clone(actions),
	}
	h.rows = defaultmap.New[dilemma.State](func() actionValues {
		row := make(actionValues, len(h.actions))
		for _, a := range h.actions {
			row[a] = 0.0
		}
		return row
	})
	for _, s := range states {
		h.rows.Get(s)
	}
	return h
}

func (h *QTable) Get(state dilemma.State, action dilemma.Action) float64 {
	return h.rows.Get(state)[action]
}

func (h *QTable) Set(state dilemma.State, action dilemma.Action, value float64) {
	h.rows.Get(state)[action] = value
}

// Max is max over actions of Q(state, .)
func (h *QTable) Max(state dilemma.State) float64 {
	row := h.rows.Get(state)
	best := row[h.actions[0]]
	for _, a := range h.actions[1:] {
		if row[a] > best {
			best = row[a]
		}
	}
	return best
}

// Best returns every action whose value equals the row maximum, in table order
func (h *QTable) Best(state dilemma.State) []dilemma.Action {
	maxV := h.Max(state)
	row := h.rows.Get(state)
	best := make([]dilemma.Action, 0, len(h.actions))
	for _, a := range h.actions {
		if row[a] == maxV {
			best = append(best, a)
		}
	}
	return best
}

// Update applies Q(s,a) <- Q(s,a) + lr * (reward + discount * max Q(s',.) - Q(s,a)).
// Both rows exist before anything is read, so an unseen nextState contributes 0.
func (h *QTable) Update(state dilemma.State, action dilemma.Action, learningRate, reward, discountFactor float64, nextState dilemma.State) {
	row := h.rows.Get(state)
	h.rows.Get(nextState)

	current := row[action]
	maxFuture := h.Max(nextState)
	row[action] = current + learningRate*(reward+discountFactor*maxFuture-current)
}

func (h *QTable) Actions() []dilemma.Action {
	return slices.Clone(h.actions)
}

func (h *QTable) States() []dilemma.State {
	return h.rows.Keys()
}

// Snapshot copies the table keyed by state and action names
func (h *QTable) Snapshot() map[string]map[string]float64 {
	r := make(map[string]map[string]float64, h.rows.Count())
	h.rows.Foreach(func(s dilemma.State, row actionValues) bool {
		values := make(map[string]float64, len(row))
		for a, v := range row {
			values[a.String()] = v
		}
		r[s.String()] = values
		return true
	})
	return r
}
