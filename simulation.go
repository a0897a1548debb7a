package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"ipd-go/appconfig"
	"ipd-go/common/bench"
	"ipd-go/dilemma"
	"ipd-go/qlearning"
	"ipd-go/report"
	"ipd-go/tournament"
)

const INTERACTIONS_PRUNE_RATIO = 0.05

// field holds the learners that live for the whole series
type field struct {
	rng       *rand.Rand
	learners  []*qlearning.Bot
	randomBot bool
}

func newField(cfg *appconfig.AppConfig, rng *rand.Rand, interactions *qlearning.InteractionLog, logger *zerolog.Logger) (*field, error) {
	f := &field{
		rng:       rng,
		learners:  make([]*qlearning.Bot, 0, cfg.Learners),
		randomBot: cfg.RandomBot,
	}
	for i := 1; i <= cfg.Learners; i++ {
		agent, err := qlearning.NewAgent(rng, qlearning.AgentConfig{
			LearningRate:    cfg.LearningRate,
			DiscountFactor:  cfg.DiscountFactor,
			ExplorationRate: cfg.ExplorationRate,
			Logger:          logger,
		})
		if err != nil {
			return nil, err
		}
		bot, err := qlearning.NewBot(fmt.Sprintf("QLearningBot%d", i), agent, qlearning.BotConfig{
			DecayRate:    cfg.DecayRate,
			Interactions: interactions,
			Logger:       logger,
		})
		if err != nil {
			return nil, err
		}
		f.learners = append(f.learners, bot)
	}
	return f, nil
}

// participants returns the learners plus fresh fixed bots
func (f *field) participants(_ int) []dilemma.Bot {
	bots := make([]dilemma.Bot, 0, len(f.learners)+6)
	for _, l := range f.learners {
		bots = append(bots, l)
	}
	bots = append(bots,
		dilemma.NewTFTBot(),
		dilemma.NewGrimBot(),
		dilemma.NewTFT90Bot(f.rng),
		dilemma.NewDefectBot(),
		dilemma.NewCooperateBot(),
	)
	if f.randomBot {
		// probability 0.5 is always valid
		random, _ := dilemma.NewRandomBot(f.rng, 0.5)
		bots = append(bots, random)
	}
	return bots
}

func (f *field) agents() map[string]*qlearning.Agent {
	r := make(map[string]*qlearning.Agent, len(f.learners))
	for _, l := range f.learners {
		r[l.Name()] = l.Agent()
	}
	return r
}

func runSeries(ctx context.Context, cfg *appconfig.AppConfig, logger *zerolog.Logger, out io.Writer) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	payoffs, err := cfg.PayoffMatrix()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics, err := tournament.NewMetrics(registry)
	if err != nil {
		return err
	}

	var interactions *qlearning.InteractionLog
	if cfg.Output.InteractionsPath != "" {
		interactions = qlearning.NewInteractionLog(cfg.Output.MaxInteractions, INTERACTIONS_PRUNE_RATIO)
	}
	f, err := newField(cfg, rng, interactions, logger)
	if err != nil {
		return err
	}

	simulator := tournament.NewMatchSimulator(tournament.MatchSimulatorConfig{
		Payoffs: payoffs,
		Metrics: metrics,
		Logger:  logger,
	})
	bar := progressbar.NewOptions(cfg.Tournaments,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("tournaments"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	series, err := tournament.NewSeries(simulator, f.participants, tournament.SeriesConfig{
		Tournaments: cfg.Tournaments,
		Rounds:      cfg.Rounds,
		Tournament: tournament.TournamentConfig{
			MatchesPerPair: cfg.MatchesPerPair,
			TurnsPerMatch:  cfg.TurnsPerMatch,
		},
		OnTournamentStart: func(index int) {
			if interactions != nil {
				interactions.SetTournament(index)
			}
		},
		OnTournamentDone: func(int, map[string]*tournament.AggregateStats) {
			bar.Add(1)
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	var summary *tournament.SeriesSummary
	elapsed, err := bench.MeasureExec(func() error {
		var err error
		summary, err = series.Run(ctx)
		return err
	})
	bar.Finish()
	if err != nil {
		return err
	}
	logger.Info().
		Str("elapsed", elapsed.Round(time.Millisecond).String()).
		Str("matches", humanize.Comma(int64(matchesPlayed(summary)))).
		Msg("series finished")

	printSummary(out, summary)
	return export(cfg, summary, f, interactions, registry, logger)
}

func matchesPlayed(summary *tournament.SeriesSummary) int {
	// every match is counted once per side
	n := 0
	for _, s := range summary.Totals {
		n += s.MatchesPlayed
	}
	return n / 2
}

func printSummary(out io.Writer, summary *tournament.SeriesSummary) {
	fmt.Fprintf(out, "\nAveraged statistics over %s tournaments:\n", humanize.Comma(int64(summary.Tournaments)))
	for _, avg := range summary.Averages() {
		fmt.Fprintf(out, "\n%s:\n", avg.Name)
		fmt.Fprintf(out, "Average Payoff per Tournament: %.2f\n", avg.AveragePayoff)
		fmt.Fprintf(out, "Average Matches per Tournament: %.2f\n", avg.AverageMatches)
		fmt.Fprintf(out, "Overall Cooperation Rate: %.2f%%\n", avg.CooperationRate*100)
	}
}

func export(cfg *appconfig.AppConfig, summary *tournament.SeriesSummary, f *field, interactions *qlearning.InteractionLog, registry *prometheus.Registry, logger *zerolog.Logger) error {
	if path := cfg.Output.StatsPath; path != "" {
		err := report.WriteFile(path, func(w io.Writer) error {
			return report.WriteTournamentStats(w, summary)
		})
		if err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("tournament stats exported")
	}
	if path := cfg.Output.InteractionsPath; path != "" && interactions != nil {
		err := report.WriteFile(path, func(w io.Writer) error {
			return report.WriteInteractions(w, interactions.Entries())
		})
		if err != nil {
			return err
		}
		logger.Info().
			Str("path", path).
			Str("rows", humanize.Comma(int64(interactions.Count()))).
			Int("pruned", interactions.Pruned()).
			Msg("interactions exported")
	}
	if path := cfg.Output.QTablesPath; path != "" {
		err := report.WriteFile(path, func(w io.Writer) error {
			return report.WriteQTables(w, f.agents())
		})
		if err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("q-tables exported")
	}
	if path := cfg.Output.MetricsPath; path != "" {
		if err := prometheus.WriteToTextfile(path, registry); err != nil {
			return fmt.Errorf("write metrics %s: %w", path, err)
		}
		logger.Info().Str("path", path).Msg("metrics exported")
	}
	return nil
}
