package tournament

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ipd-go/dilemma"
)

type MatchSimulatorConfig struct {
	Payoffs *dilemma.PayoffMatrix // nil means the default matrix
	Metrics *Metrics
	Logger  *zerolog.Logger
}

// MatchSimulator plays repeated simultaneous turns between two bots
type MatchSimulator struct {
	payoffs *dilemma.PayoffMatrix
	metrics *Metrics
	logger  zerolog.Logger

	lastResult *MatchResult
}

func NewMatchSimulator(cfg MatchSimulatorConfig) *MatchSimulator {
	h := &MatchSimulator{
		payoffs: cfg.Payoffs,
		metrics: cfg.Metrics,
		logger:  zerolog.Nop(),
	}
	if h.payoffs == nil {
		h.payoffs = dilemma.DefaultPayoffMatrix()
	}
	if cfg.Logger != nil {
		h.logger = *cfg.Logger
	}
	return h
}

func (h *MatchSimulator) Payoffs() *dilemma.PayoffMatrix {
	return h.payoffs
}

// SimulateMatch plays turnsPerMatch turns. Each bot only sees the opponent's
// move from the previous turn; on the first turn it sees STATE_NONE.
func (h *MatchSimulator) SimulateMatch(botA, botB dilemma.Bot, roundNumber int, turnsPerMatch int) (*MatchResult, error) {
	if turnsPerMatch <= 0 {
		return nil, fmt.Errorf("turns per match must be positive, got %d: %w", turnsPerMatch, dilemma.ErrInvalidArgument)
	}
	nameA, nameB := botA.Name(), botB.Name()
	if nameA == nameB {
		return nil, fmt.Errorf("both bots are named %q: %w", nameA, dilemma.ErrInvalidArgument)
	}

	matchID := uuid.New()
	if aware, ok := botA.(dilemma.OpponentAware); ok {
		aware.SetOpponent(nameB)
	}
	if aware, ok := botB.(dilemma.OpponentAware); ok {
		aware.SetOpponent(nameA)
	}
	observerA, _ := botA.(dilemma.TurnObserver)
	observerB, _ := botB.(dilemma.TurnObserver)

	actionsA := make([]dilemma.Action, 0, turnsPerMatch)
	actionsB := make([]dilemma.Action, 0, turnsPerMatch)
	totalA, totalB := 0.0, 0.0
	lastA, lastB := dilemma.STATE_NONE, dilemma.STATE_NONE

	for turn := 1; turn <= turnsPerMatch; turn++ {
		// Both decide on the same snapshot
		actA := botA.ChooseAction(lastB)
		actB := botB.ChooseAction(lastA)

		payA, payB := h.payoffs.Payoffs(actA, actB)
		totalA += payA
		totalB += payB
		actionsA = append(actionsA, actA)
		actionsB = append(actionsB, actB)

		if observerA != nil {
			observerA.NotifyTurnResult(dilemma.TurnResult{
				MatchID: matchID, Round: roundNumber, Turn: turn, OpponentName: nameB,
				MyAction: actA, OpponentAction: actB, Reward: payA,
			})
		}
		if observerB != nil {
			observerB.NotifyTurnResult(dilemma.TurnResult{
				MatchID: matchID, Round: roundNumber, Turn: turn, OpponentName: nameA,
				MyAction: actB, OpponentAction: actA, Reward: payB,
			})
		}
		lastA, lastB = dilemma.StateOf(actA), dilemma.StateOf(actB)
	}

	result := &MatchResult{
		ID:    matchID,
		Round: roundNumber,
		Turns: turnsPerMatch,
		Actions: map[string][]dilemma.Action{
			nameA: actionsA,
			nameB: actionsB,
		},
		Payoffs: map[string]float64{
			nameA: totalA,
			nameB: totalB,
		},
	}
	h.lastResult = result
	h.metrics.observeMatch(result)

	h.logger.Debug().
		Str("match", matchID.String()).
		Int("round", roundNumber).
		Str("a", nameA).Float64("a_payoff", totalA).
		Str("b", nameB).Float64("b_payoff", totalB).
		Msg("match finished")
	return result.clone(), nil
}

// LastResult is the most recent match, ErrNoResult before the first one
func (h *MatchSimulator) LastResult() (*MatchResult, error) {
	if h.lastResult == nil {
		return nil, ErrNoResult
	}
	return h.lastResult.clone(), nil
}
