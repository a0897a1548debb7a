package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"ipd-go/appconfig"
	"ipd-go/report"
)

func smallConfig(t *testing.T) *appconfig.AppConfig {
	cfg, err := appconfig.LoadAppConfig()
	require.NoError(t, err)
	dir := t.TempDir()
	cfg.Tournaments = 2
	cfg.Rounds = 2
	cfg.MatchesPerPair = 1
	cfg.TurnsPerMatch = 10
	cfg.Output.StatsPath = filepath.Join(dir, "stats.csv")
	cfg.Output.InteractionsPath = filepath.Join(dir, "interactions.csv")
	cfg.Output.QTablesPath = filepath.Join(dir, "qtables.yaml")
	cfg.Output.MetricsPath = filepath.Join(dir, "metrics.prom")
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRunSeriesExportsEverything(t *testing.T) {
	cfg := smallConfig(t)
	logger := zerolog.Nop()
	var out bytes.Buffer

	require.NoError(t, runSeries(context.Background(), cfg, &logger, &out))

	assert.Contains(t, out.String(), "Averaged statistics over 2 tournaments")
	assert.Contains(t, out.String(), "QLearningBot1:")
	assert.Contains(t, out.String(), "QLearningBot2:")
	assert.Contains(t, out.String(), "GrimBot:")

	stats, err := os.ReadFile(cfg.Output.StatsPath)
	require.NoError(t, err)
	assert.Contains(t, string(stats), "TOURNAMENT AVERAGES")

	interactions, err := os.ReadFile(cfg.Output.InteractionsPath)
	require.NoError(t, err)
	// 7 bots: each learner plays 6 opponents, 1 match, 10 turns, 2 rounds, 2 tournaments
	lines := strings.Split(strings.TrimSpace(string(interactions)), "\n")
	assert.Len(t, lines, 1+2*6*10*2*2)

	data, err := os.ReadFile(cfg.Output.QTablesPath)
	require.NoError(t, err)
	var tables map[string]report.QTableSnapshot
	require.NoError(t, yaml.Unmarshal(data, &tables))
	assert.Len(t, tables, 2)
	assert.Len(t, tables["QLearningBot1"], 6)

	metrics, err := os.ReadFile(cfg.Output.MetricsPath)
	require.NoError(t, err)
	// 21 pairs, 2 rounds, 2 tournaments
	assert.Contains(t, string(metrics), "ipd_matches_total 84")
}

func TestRunSeriesIsReproducible(t *testing.T) {
	logger := zerolog.Nop()
	run := func() string {
		cfg := smallConfig(t)
		cfg.Output = appconfig.OutputConfig{}
		cfg.RandomBot = true
		var out bytes.Buffer
		require.NoError(t, runSeries(context.Background(), cfg, &logger, &out))
		return out.String()
	}
	assert.Equal(t, run(), run())
}

func TestRunSeriesStopsOnCancel(t *testing.T) {
	cfg := smallConfig(t)
	logger := zerolog.Nop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runSeries(ctx, cfg, &logger, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(cfg.Output.StatsPath)
	assert.True(t, os.IsNotExist(statErr))
}
