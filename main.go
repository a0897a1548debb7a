package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ipd-go/appconfig"
)

var (
	rootCmd = &cobra.Command{
		Use:   "ipd",
		Short: "Iterated prisoner's dilemma tournaments with Q-learning bots",
	}
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Runs a series of round robin tournaments and exports the statistics",
		Args:  cobra.NoArgs,
		RunE:  runTournaments,
	}
	configPath string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file, environment variables override it")

	f := runCmd.Flags()
	f.Int64("seed", 0, "random seed")
	f.Int("tournaments", 0, "tournaments in the series")
	f.Int("rounds", 0, "rounds per tournament")
	f.Int("matches-per-pair", 0, "matches per pair and round")
	f.Int("turns", 0, "turns per match")
	f.Int("learners", 0, "Q-learning bots in the field")
	f.Bool("random-bot", false, "add a RandomBot to the field")
	f.String("log-level", "", "zerolog level")
	f.String("stats", "", "tournament statistics CSV path")
	f.String("interactions", "", "Q-learning interaction log CSV path")
	f.String("qtables", "", "learned Q-tables YAML path")
	f.String("metrics", "", "prometheus textfile path")
	rootCmd.AddCommand(runCmd)
}

func loadConfig(cmd *cobra.Command) (*appconfig.AppConfig, error) {
	var (
		cfg *appconfig.AppConfig
		err error
	)
	if configPath != "" {
		cfg, err = appconfig.LoadAppConfigFile(configPath)
	} else {
		cfg, err = appconfig.LoadAppConfig()
	}
	if err != nil {
		return nil, err
	}

	// Flags win only when given
	f := cmd.Flags()
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetInt64("seed")
	}
	for name, dst := range map[string]*int{
		"tournaments":      &cfg.Tournaments,
		"rounds":           &cfg.Rounds,
		"matches-per-pair": &cfg.MatchesPerPair,
		"turns":            &cfg.TurnsPerMatch,
		"learners":         &cfg.Learners,
	} {
		if f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}
	for name, dst := range map[string]*string{
		"log-level":    &cfg.LogLevel,
		"stats":        &cfg.Output.StatsPath,
		"interactions": &cfg.Output.InteractionsPath,
		"qtables":      &cfg.Output.QTablesPath,
		"metrics":      &cfg.Output.MetricsPath,
	} {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	if f.Changed("random-bot") {
		cfg.RandomBot, _ = f.GetBool("random-bot")
	}
	return cfg, cfg.Validate()
}

func runTournaments(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return runSeries(ctx, cfg, &logger, cmd.OutOrStdout())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
