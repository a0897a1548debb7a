package tournament

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"ipd-go/common/linq"
	"ipd-go/dilemma"
)

const (
	NUM_TOURNAMENTS = 100
	NUM_ROUNDS      = 10
)

// ParticipantsFunc returns the field for tournament index (1-based).
// Returning the same learning bots every time lets learning carry over.
type ParticipantsFunc func(index int) []dilemma.Bot

type SeriesConfig struct {
	Tournaments int
	Rounds      int
	Tournament  TournamentConfig
	// OnTournamentStart runs before each tournament, e.g. to stamp interaction logs
	OnTournamentStart func(index int)
	// OnTournamentDone runs after each tournament with its aggregate stats
	OnTournamentDone func(index int, stats map[string]*AggregateStats)
	Logger           *zerolog.Logger
}

func DefaultSeriesConfig() SeriesConfig {
	return SeriesConfig{
		Tournaments: NUM_TOURNAMENTS,
		Rounds:      NUM_ROUNDS,
		Tournament:  DefaultTournamentConfig(),
	}
}

// Series runs consecutive tournaments, each with a fresh result log
type Series struct {
	simulator    Simulator
	participants ParticipantsFunc
	config       SeriesConfig
	logger       zerolog.Logger
}

type BotAverage struct {
	Name            string
	AveragePayoff   float64 // per tournament
	AverageMatches  float64 // per tournament
	CooperationRate float64 // over every action in the series
}

type SeriesSummary struct {
	Tournaments   int
	PerTournament []map[string]*AggregateStats
	Totals        map[string]*AggregateStats
}

func NewSeries(simulator Simulator, participants ParticipantsFunc, cfg SeriesConfig) (*Series, error) {
	if cfg.Tournaments < 0 || cfg.Rounds < 0 {
		return nil, fmt.Errorf("negative tournaments %d or rounds %d: %w", cfg.Tournaments, cfg.Rounds, dilemma.ErrInvalidArgument)
	}
	if simulator == nil || participants == nil {
		return nil, fmt.Errorf("simulator and participants are required: %w", dilemma.ErrInvalidArgument)
	}
	h := &Series{
		simulator:    simulator,
		participants: participants,
		config:       cfg,
		logger:       zerolog.Nop(),
	}
	if cfg.Logger != nil {
		h.logger = *cfg.Logger
	}
	return h, nil
}

func (h *Series) Run(ctx context.Context) (*SeriesSummary, error) {
	summary := &SeriesSummary{
		PerTournament: make([]map[string]*AggregateStats, 0, h.config.Tournaments),
		Totals:        make(map[string]*AggregateStats),
	}
	for index := 1; index <= h.config.Tournaments; index++ {
		if h.config.OnTournamentStart != nil {
			h.config.OnTournamentStart(index)
		}
		tcfg := h.config.Tournament
		tcfg.Index = index
		if tcfg.Logger == nil {
			tcfg.Logger = h.config.Logger
		}
		results := NewResultManager(h.config.Logger)
		t, err := New(h.participants(index), h.config.Rounds, h.simulator, results, tcfg)
		if err != nil {
			return summary, err
		}
		if err := t.Run(ctx); err != nil {
			return summary, fmt.Errorf("tournament %d: %w", index, err)
		}

		stats := results.AggregateResults()
		summary.PerTournament = append(summary.PerTournament, stats)
		summary.Tournaments++
		for name, s := range stats {
			total, ex := summary.Totals[name]
			if !ex {
				total = &AggregateStats{}
				summary.Totals[name] = total
			}
			total.Add(s)
		}
		h.logger.Info().Int("tournament", index).Int("matches", results.Len()).Msg("tournament finished")
		if h.config.OnTournamentDone != nil {
			h.config.OnTournamentDone(index, stats)
		}
	}
	return summary, nil
}

// Averages per bot, best average payoff first
func (s *SeriesSummary) Averages() []BotAverage {
	n := float64(max(s.Tournaments, 1))
	r := linq.ToList(s.Totals, func(name string, st *AggregateStats) BotAverage {
		return BotAverage{
			Name:            name,
			AveragePayoff:   st.TotalPayoff / n,
			AverageMatches:  float64(st.MatchesPlayed) / n,
			CooperationRate: st.CooperationRate(),
		}
	})
	sort.Slice(r, func(i, j int) bool {
		if r[i].AveragePayoff != r[j].AveragePayoff {
			return r[i].AveragePayoff > r[j].AveragePayoff
		}
		return r[i].Name < r[j].Name
	})
	return r
}
