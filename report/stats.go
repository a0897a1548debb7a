package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"ipd-go/common/linq"
	"ipd-go/tournament"
)

var statsHeader = []string{"Tournament", "Bot Name", "Total Payoff", "Matches Played", "Cooperation Rate"}

// WriteTournamentStats writes one block per tournament, a blank row, then the series averages
func WriteTournamentStats(w io.Writer, summary *tournament.SeriesSummary) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(statsHeader); err != nil {
		return err
	}
	for i, stats := range summary.PerTournament {
		label := fmt.Sprintf("Tournament %d", i+1)
		for _, name := range linq.SortedKeys(stats) {
			s := stats[name]
			row := []string{
				label,
				name,
				fmt.Sprintf("%.2f", s.TotalPayoff),
				fmt.Sprintf("%d", s.MatchesPlayed),
				percent(s.CooperationRate()),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	if err := writer.Write(make([]string, len(statsHeader))); err != nil {
		return err
	}
	if err := writer.Write([]string{"TOURNAMENT AVERAGES", "", "", "", ""}); err != nil {
		return err
	}
	for _, avg := range summary.Averages() {
		row := []string{
			"Average",
			avg.Name,
			fmt.Sprintf("%.2f", avg.AveragePayoff),
			fmt.Sprintf("%.2f", avg.AverageMatches),
			percent(avg.CooperationRate),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func percent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// WriteFile creates path and hands it to write
func WriteFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
