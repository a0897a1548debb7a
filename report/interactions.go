package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"ipd-go/qlearning"
)

var interactionsHeader = []string{
	"timestamp", "tournament_num", "round_num", "match_id", "turn_num",
	"agent_name", "opponent_name", "state", "action_taken", "reward",
	"q_value_cooperate", "q_value_defect", "exploration_rate",
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteInteractions writes the header and one row per interaction
func WriteInteractions(w io.Writer, interactions []*qlearning.Interaction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(interactionsHeader); err != nil {
		return err
	}
	for _, e := range interactions {
		row := []string{
			e.Timestamp.Format(time.DateTime),
			strconv.Itoa(e.Tournament),
			strconv.Itoa(e.Round),
			e.MatchID.String(),
			strconv.Itoa(e.Turn),
			e.Agent,
			e.Opponent,
			e.State.String(),
			e.Action.String(),
			formatFloat(e.Reward),
			formatFloat(e.QCooperate),
			formatFloat(e.QDefect),
			formatFloat(e.ExplorationRate),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
