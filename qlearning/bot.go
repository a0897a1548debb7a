package qlearning

import (
	"fmt"

	"github.com/rs/zerolog"

	"ipd-go/dilemma"
)

type BotConfig struct {
	DecayRate    float64 // applied to the opponent's exploration rate after every turn
	Interactions *InteractionLog
	Logger       *zerolog.Logger
}

func DefaultBotConfig() BotConfig {
	return BotConfig{
		DecayRate: DECAY_RATE,
	}
}

// Bot lets an Agent take part in tournaments. Match state lives here,
// learned state lives in the agent and survives Reset.
type Bot struct {
	name         string
	agent        *Agent
	decayRate    float64
	interactions *InteractionLog
	logger       zerolog.Logger

	opponent   string
	lastState  dilemma.State
	lastAction dilemma.Action
	pending    bool

	// opponent's first move of its latest match
	firstMoves map[string]dilemma.Action
}

var (
	_ dilemma.Bot           = (*Bot)(nil)
	_ dilemma.OpponentAware = (*Bot)(nil)
	_ dilemma.TurnObserver  = (*Bot)(nil)
)

func NewBot(name string, agent *Agent, cfg BotConfig) (*Bot, error) {
	if name == "" {
		return nil, fmt.Errorf("empty bot name: %w", dilemma.ErrInvalidArgument)
	}
	if agent == nil {
		return nil, fmt.Errorf("nil agent: %w", dilemma.ErrInvalidArgument)
	}
	if !(cfg.DecayRate > 0 && cfg.DecayRate <= 1) {
		return nil, fmt.Errorf("decay rate %v outside (0,1]: %w", cfg.DecayRate, dilemma.ErrInvalidArgument)
	}
	h := &Bot{
		name:         name,
		agent:        agent,
		decayRate:    cfg.DecayRate,
		interactions: cfg.Interactions,
		logger:       zerolog.Nop(),
		lastState:    dilemma.STATE_NONE,
		firstMoves:   make(map[string]dilemma.Action),
	}
	if cfg.Logger != nil {
		h.logger = cfg.Logger.With().Str("bot", name).Logger()
	}
	return h, nil
}

func (h *Bot) Name() string { return h.name }

func (h *Bot) Agent() *Agent { return h.agent }

func (h *Bot) Opponent() string { return h.opponent }

// SetOpponent starts a new match against name
func (h *Bot) SetOpponent(name string) {
	h.opponent = name
	h.lastState = dilemma.STATE_NONE
	h.pending = false
	h.agent.SetOpponent(name)
}

// ChooseAction keeps STATE_NONE as its own state instead of folding it into cooperation.
// Without a known opponent there is no table to consult, so it cooperates.
func (h *Bot) ChooseAction(opponentLast dilemma.State) dilemma.Action {
	action := dilemma.ACTION_COOPERATE
	if h.opponent != "" {
		action = h.agent.ChooseAction(h.opponent, opponentLast)
	} else {
		h.logger.Warn().Msg("choosing without an opponent")
	}
	h.lastState = opponentLast
	h.lastAction = action
	h.pending = true
	return action
}

// NotifyTurnResult learns from the finished turn and decays exploration for this opponent
func (h *Bot) NotifyTurnResult(result dilemma.TurnResult) {
	if !h.pending {
		h.logger.Warn().Int("turn", result.Turn).Msg("turn result without a pending action")
		return
	}
	h.pending = false

	if h.opponent == "" {
		h.opponent = result.OpponentName
		h.agent.SetOpponent(h.opponent)
	}
	opponent := h.opponent
	if h.lastState == dilemma.STATE_NONE {
		h.firstMoves[opponent] = result.OpponentAction
	}

	table := h.agent.QTable(opponent)
	entry := &Interaction{
		Round:           result.Round,
		MatchID:         result.MatchID,
		Turn:            result.Turn,
		Agent:           h.name,
		Opponent:        opponent,
		State:           h.lastState,
		Action:          result.MyAction,
		Reward:          result.Reward,
		QCooperate:      table.Get(h.lastState, dilemma.ACTION_COOPERATE),
		QDefect:         table.Get(h.lastState, dilemma.ACTION_DEFECT),
		ExplorationRate: h.agent.ExplorationRate(opponent),
	}

	h.agent.UpdateQValue(opponent, h.lastState, result.MyAction, result.Reward, dilemma.StateOf(result.OpponentAction))
	if err := h.agent.DecayExplorationRate(opponent, h.decayRate); err != nil {
		h.logger.Error().Err(err).Msg("decay exploration rate")
	}
	h.lastState = dilemma.StateOf(result.OpponentAction)

	if h.interactions != nil {
		h.interactions.Add(entry)
	}
}

// OpponentFirstAction is the opening move the opponent played in its latest match with this bot
func (h *Bot) OpponentFirstAction(opponent string) (dilemma.Action, bool) {
	a, ex := h.firstMoves[opponent]
	return a, ex
}

// Reset drops match state only; the agent keeps its tables and exploration rates
func (h *Bot) Reset() {
	h.opponent = ""
	h.lastState = dilemma.STATE_NONE
	h.pending = false
}
