package report

import (
	"bytes"
	"encoding/csv"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"ipd-go/dilemma"
	"ipd-go/qlearning"
	"ipd-go/tournament"
)

func readCSV(t *testing.T, data string) [][]string {
	r := csv.NewReader(strings.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteTournamentStats(t *testing.T) {
	summary := &tournament.SeriesSummary{
		Tournaments: 2,
		PerTournament: []map[string]*tournament.AggregateStats{
			{
				"TFTBot":  {TotalPayoff: 30, MatchesPlayed: 2, CooperateCount: 3, DefectCount: 1},
				"GrimBot": {TotalPayoff: 10.5, MatchesPlayed: 2, CooperateCount: 4},
			},
			{
				"TFTBot":  {TotalPayoff: 20, MatchesPlayed: 2, CooperateCount: 1, DefectCount: 3},
				"GrimBot": {TotalPayoff: 11.5, MatchesPlayed: 2, DefectCount: 4},
			},
		},
		Totals: map[string]*tournament.AggregateStats{
			"TFTBot":  {TotalPayoff: 50, MatchesPlayed: 4, CooperateCount: 4, DefectCount: 4},
			"GrimBot": {TotalPayoff: 22, MatchesPlayed: 4, CooperateCount: 4, DefectCount: 4},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTournamentStats(&buf, summary))

	rows := readCSV(t, buf.String())
	require.Len(t, rows, 1+4+1+1+2)
	assert.Equal(t, []string{"Tournament", "Bot Name", "Total Payoff", "Matches Played", "Cooperation Rate"}, rows[0])
	assert.Equal(t, []string{"Tournament 1", "GrimBot", "10.50", "2", "100.00%"}, rows[1])
	assert.Equal(t, []string{"Tournament 1", "TFTBot", "30.00", "2", "75.00%"}, rows[2])
	assert.Equal(t, []string{"Tournament 2", "GrimBot", "11.50", "2", "0.00%"}, rows[3])
	assert.Equal(t, []string{"", "", "", "", ""}, rows[5])
	assert.Equal(t, "TOURNAMENT AVERAGES", rows[6][0])
	assert.Equal(t, []string{"Average", "TFTBot", "25.00", "2.00", "50.00%"}, rows[7])
	assert.Equal(t, []string{"Average", "GrimBot", "11.00", "2.00", "50.00%"}, rows[8])
}

func TestWriteInteractions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInteractions(&buf, nil))
	rows := readCSV(t, buf.String())
	require.Len(t, rows, 1)
	assert.Equal(t, interactionsHeader, rows[0])

	id := uuid.New()
	entries := []*qlearning.Interaction{{
		Timestamp:       time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		Tournament:      2,
		Round:           3,
		MatchID:         id,
		Turn:            1,
		Agent:           "QLearningBot1",
		Opponent:        "TFTBot",
		State:           dilemma.STATE_NONE,
		Action:          dilemma.ACTION_DEFECT,
		Reward:          5,
		QCooperate:      0.25,
		QDefect:         0,
		ExplorationRate: 0.99,
	}}
	buf.Reset()
	require.NoError(t, WriteInteractions(&buf, entries))
	rows = readCSV(t, buf.String())
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"2024-03-01 12:30:00", "2", "3", id.String(), "1",
		"QLearningBot1", "TFTBot", "None", "Defect", "5",
		"0.25", "0", "0.99",
	}, rows[1])
}

func TestWriteQTables(t *testing.T) {
	agent, err := qlearning.NewAgent(rand.New(rand.NewSource(1)), qlearning.DefaultAgentConfig())
	require.NoError(t, err)
	agent.SetOpponent("TFTBot")
	agent.UpdateQValue("TFTBot", dilemma.STATE_COOPERATE, dilemma.ACTION_DEFECT, 5, dilemma.STATE_DEFECT)

	var buf bytes.Buffer
	require.NoError(t, WriteQTables(&buf, map[string]*qlearning.Agent{"QLearningBot1": agent}))

	var doc map[string]QTableSnapshot
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	table := doc["QLearningBot1"]["TFTBot"]
	require.NotNil(t, table)
	assert.InDelta(t, 0.5, table["Cooperate"]["Defect"], 1e-12)
	assert.Equal(t, 0.0, table["Cooperate"]["Cooperate"])
	assert.Contains(t, table, "None")
	assert.Contains(t, table, "Defect")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		return WriteInteractions(w, nil)
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "timestamp,"))

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "out.csv"), func(io.Writer) error { return nil })
	assert.Error(t, err)
}
