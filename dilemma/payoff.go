package dilemma

import "fmt"

// PayoffMatrix maps an (row, column) action pair to both players' rewards
type PayoffMatrix struct {
	cells [2][2][2]float64
}

// NewPayoffMatrix builds a symmetric matrix from the classic values.
// A prisoner's dilemma needs temptation > reward > punishment > sucker.
func NewPayoffMatrix(temptation, reward, punishment, sucker float64) (*PayoffMatrix, error) {
	if !(temptation > reward && reward > punishment && punishment > sucker) {
		return nil, fmt.Errorf("payoffs T=%v R=%v P=%v S=%v do not form a dilemma: %w",
			temptation, reward, punishment, sucker, ErrInvalidArgument)
	}
	m := &PayoffMatrix{}
	m.set(ACTION_COOPERATE, ACTION_COOPERATE, reward, reward)
	m.set(ACTION_COOPERATE, ACTION_DEFECT, sucker, temptation)
	m.set(ACTION_DEFECT, ACTION_COOPERATE, temptation, sucker)
	m.set(ACTION_DEFECT, ACTION_DEFECT, punishment, punishment)
	return m, nil
}

// DefaultPayoffMatrix is (C,C)=(3,3) (C,D)=(0,5) (D,C)=(5,0) (D,D)=(1,1)
func DefaultPayoffMatrix() *PayoffMatrix {
	m, _ := NewPayoffMatrix(5, 3, 1, 0)
	return m
}

func (m *PayoffMatrix) set(row, col Action, rowPayoff, colPayoff float64) {
	m.cells[row][col] = [2]float64{rowPayoff, colPayoff}
}

// Payoffs returns (row payoff, column payoff)
func (m *PayoffMatrix) Payoffs(row, col Action) (float64, float64) {
	c := m.cells[row][col]
	return c[0], c[1]
}

// Payoff is the row player's reward
func (m *PayoffMatrix) Payoff(mine, theirs Action) float64 {
	return m.cells[mine][theirs][0]
}
