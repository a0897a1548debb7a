package tournament

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"ipd-go/dilemma"
)

const (
	MATCHES_PER_PAIR = 10
	TURNS_PER_MATCH  = 100
)

// Simulator plays one match
type Simulator interface {
	SimulateMatch(botA, botB dilemma.Bot, roundNumber int, turnsPerMatch int) (*MatchResult, error)
}

type TournamentConfig struct {
	MatchesPerPair int
	TurnsPerMatch  int
	Index          int // tournament number inside a series, for logs
	Logger         *zerolog.Logger
}

func DefaultTournamentConfig() TournamentConfig {
	return TournamentConfig{
		MatchesPerPair: MATCHES_PER_PAIR,
		TurnsPerMatch:  TURNS_PER_MATCH,
	}
}

// Tournament is a round robin over all unordered pairs of participants
type Tournament struct {
	participants []dilemma.Bot
	rounds       int
	simulator    Simulator
	results      *ResultManager
	config       TournamentConfig
	logger       zerolog.Logger
}

func New(participants []dilemma.Bot, rounds int, simulator Simulator, results *ResultManager, cfg TournamentConfig) (*Tournament, error) {
	if rounds < 0 {
		return nil, fmt.Errorf("negative rounds %d: %w", rounds, dilemma.ErrInvalidArgument)
	}
	if cfg.MatchesPerPair < 0 {
		return nil, fmt.Errorf("negative matches per pair %d: %w", cfg.MatchesPerPair, dilemma.ErrInvalidArgument)
	}
	if cfg.TurnsPerMatch <= 0 {
		return nil, fmt.Errorf("turns per match must be positive, got %d: %w", cfg.TurnsPerMatch, dilemma.ErrInvalidArgument)
	}
	if simulator == nil || results == nil {
		return nil, fmt.Errorf("simulator and result manager are required: %w", dilemma.ErrInvalidArgument)
	}
	h := &Tournament{
		participants: participants,
		rounds:       rounds,
		simulator:    simulator,
		results:      results,
		config:       cfg,
		logger:       zerolog.Nop(),
	}
	if cfg.Logger != nil {
		h.logger = cfg.Logger.With().Int("tournament", cfg.Index).Logger()
	}
	return h, nil
}

func (h *Tournament) Participants() []dilemma.Bot   { return h.participants }
func (h *Tournament) Rounds() int                   { return h.rounds }
func (h *Tournament) Simulator() Simulator          { return h.simulator }
func (h *Tournament) ResultManager() *ResultManager { return h.results }

// Run plays rounds 1..N, resetting every participant after each round
func (h *Tournament) Run(ctx context.Context) error {
	for round := 1; round <= h.rounds; round++ {
		if _, err := h.PlayRound(ctx, round); err != nil {
			return err
		}
		for _, bot := range h.participants {
			bot.Reset()
		}
		h.logger.Info().Int("round", round).Int("results", h.results.Len()).Msg("round finished")
	}
	return nil
}

// PlayRound plays MatchesPerPair matches for every unordered pair and records them
func (h *Tournament) PlayRound(ctx context.Context, roundNumber int) ([]*MatchResult, error) {
	played := make([]*MatchResult, 0)
	for i := 0; i < len(h.participants); i++ {
		for j := i + 1; j < len(h.participants); j++ {
			botA, botB := h.participants[i], h.participants[j]
			for range h.config.MatchesPerPair {
				if err := ctx.Err(); err != nil {
					return played, err
				}
				result, err := h.simulator.SimulateMatch(botA, botB, roundNumber, h.config.TurnsPerMatch)
				if err != nil {
					return played, fmt.Errorf("round %d, %s vs %s: %w", roundNumber, botA.Name(), botB.Name(), err)
				}
				if err := h.results.RecordResult(result); err != nil {
					return played, fmt.Errorf("round %d, %s vs %s: %w", roundNumber, botA.Name(), botB.Name(), err)
				}
				played = append(played, result)
			}
		}
	}
	return played, nil
}

// Results is the full result log
func (h *Tournament) Results() []*MatchResult {
	return h.results.AllResults()
}
