package qlearning

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/rs/zerolog"

	"ipd-go/common/defaultmap"
	"ipd-go/common/random"
	"ipd-go/dilemma"
)

const (
	LEARNING_RATE            = 0.1
	DISCOUNT_FACTOR          = 0.9
	DEFAULT_EXPLORATION_RATE = 1.0
	DECAY_RATE               = 0.99
)

type AgentConfig struct {
	LearningRate    float64
	DiscountFactor  float64
	ExplorationRate float64 // initial rate for every new opponent
	Logger          *zerolog.Logger
}

func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		LearningRate:    LEARNING_RATE,
		DiscountFactor:  DISCOUNT_FACTOR,
		ExplorationRate: DEFAULT_EXPLORATION_RATE,
	}
}

func (c AgentConfig) validate() error {
	if !(c.LearningRate > 0 && c.LearningRate <= 1) {
		return fmt.Errorf("learning rate %v outside (0,1]: %w", c.LearningRate, dilemma.ErrInvalidArgument)
	}
	if !(c.DiscountFactor >= 0 && c.DiscountFactor <= 1) {
		return fmt.Errorf("discount factor %v outside [0,1]: %w", c.DiscountFactor, dilemma.ErrInvalidArgument)
	}
	if !(c.ExplorationRate >= 0 && c.ExplorationRate <= 1) {
		return fmt.Errorf("exploration rate %v outside [0,1]: %w", c.ExplorationRate, dilemma.ErrInvalidArgument)
	}
	return nil
}

// Everything the agent knows about one opponent
type opponentModel struct {
	table           *QTable
	explorationRate float64
}

// Agent is a tabular Q-learner with an independent table and exploration
// rate per opponent. It outlives matches and tournaments.
type Agent struct {
	learningRate    float64
	discountFactor  float64
	explorationRate float64

	actions   []dilemma.Action
	opponents Defaultmap[string, *opponentModel]

	rng    *rand.Rand
	logger zerolog.Logger
}

func NewAgent(rng *rand.Rand, cfg AgentConfig) (*Agent, error) {
	if rng == nil {
		return nil, fmt.Errorf("nil random source: %w", dilemma.ErrInvalidArgument)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	h := &Agent{
		learningRate:    cfg.LearningRate,
		discountFactor:  cfg.DiscountFactor,
		explorationRate: cfg.ExplorationRate,
		actions:         slices.Clone(dilemma.Actions),
		rng:             rng,
		logger:          zerolog.Nop(),
	}
	if cfg.Logger != nil {
		h.logger = *cfg.Logger
	}
	h.opponents = defaultmap.New[string](func() *opponentModel {
		return &opponentModel{
			table:           NewQTable(h.actions, dilemma.States),
			explorationRate: h.explorationRate,
		}
	})
	return h, nil
}

// opponent returns the model for name, creating it on first contact
func (h *Agent) opponent(name string) *opponentModel {
	if !h.opponents.Has(name) {
		h.logger.Debug().Str("opponent", name).Msg("tracking new opponent")
	}
	return h.opponents.Get(name)
}

// SetOpponent starts tracking name. Known opponents keep what was learned.
func (h *Agent) SetOpponent(name string) {
	h.opponent(name)
}

// ChooseAction is epsilon-greedy; ties between best actions are broken at random
func (h *Agent) ChooseAction(opponentName string, state dilemma.State) dilemma.Action {
	m := h.opponent(opponentName)
	if h.rng.Float64() < m.explorationRate {
		return random.Choice(h.rng, h.actions)
	}
	best := m.table.Best(state)
	if len(best) == 1 {
		return best[0]
	}
	return random.Choice(h.rng, best)
}

func (h *Agent) UpdateQValue(opponentName string, state dilemma.State, action dilemma.Action, reward float64, nextState dilemma.State) {
	h.opponent(opponentName).table.Update(state, action, h.learningRate, reward, h.discountFactor, nextState)
}

// DecayExplorationRate multiplies the opponent's rate by decayRate in (0,1]
func (h *Agent) DecayExplorationRate(opponentName string, decayRate float64) error {
	if !(decayRate > 0 && decayRate <= 1) {
		return fmt.Errorf("decay rate %v outside (0,1]: %w", decayRate, dilemma.ErrInvalidArgument)
	}
	m := h.opponent(opponentName)
	m.explorationRate *= decayRate
	return nil
}

func (h *Agent) SetExplorationRate(opponentName string, rate float64) error {
	if !(rate >= 0 && rate <= 1) {
		return fmt.Errorf("exploration rate %v outside [0,1]: %w", rate, dilemma.ErrInvalidArgument)
	}
	h.opponent(opponentName).explorationRate = rate
	return nil
}

func (h *Agent) ExplorationRate(opponentName string) float64 {
	return h.opponent(opponentName).explorationRate
}

func (h *Agent) QValue(opponentName string, state dilemma.State, action dilemma.Action) float64 {
	return h.opponent(opponentName).table.Get(state, action)
}

func (h *Agent) QTable(opponentName string) *QTable {
	return h.opponent(opponentName).table
}

// Opponents in first-contact order
func (h *Agent) Opponents() []string {
	return h.opponents.Keys()
}

func (h *Agent) Knows(opponentName string) bool {
	return h.opponents.Has(opponentName)
}

func (h *Agent) LearningRate() float64   { return h.learningRate }
func (h *Agent) DiscountFactor() float64 { return h.discountFactor }
