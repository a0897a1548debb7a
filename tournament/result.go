package tournament

import (
	"slices"

	"github.com/google/uuid"

	"ipd-go/common/linq"
	"ipd-go/dilemma"
)

// MatchResult is the record of one match. Actions and Payoffs are keyed by bot name.
type MatchResult struct {
	ID      uuid.UUID                   `json:"id" yaml:"id"`
	Round   int                         `json:"round_number" yaml:"round_number"`
	Turns   int                         `json:"rounds_played" yaml:"rounds_played"`
	Actions map[string][]dilemma.Action `json:"actions" yaml:"actions"`
	Payoffs map[string]float64          `json:"total_payoffs" yaml:"total_payoffs"`
}

// BotNames in sorted order
func (r *MatchResult) BotNames() []string {
	return linq.SortedKeys(r.Actions)
}

func (r *MatchResult) clone() *MatchResult {
	c := &MatchResult{
		ID:      r.ID,
		Round:   r.Round,
		Turns:   r.Turns,
		Actions: make(map[string][]dilemma.Action, len(r.Actions)),
		Payoffs: linq.CopyMap(r.Payoffs),
	}
	for name, actions := range r.Actions {
		c.Actions[name] = slices.Clone(actions)
	}
	return c
}

type AggregateStats struct {
	TotalPayoff    float64 `json:"total_payoff" yaml:"total_payoff"`
	MatchesPlayed  int     `json:"matches_played" yaml:"matches_played"`
	CooperateCount int     `json:"cooperate_count" yaml:"cooperate_count"`
	DefectCount    int     `json:"defect_count" yaml:"defect_count"`
}

// CooperationRate is cooperate / (cooperate + defect), 0 without actions
func (s *AggregateStats) CooperationRate() float64 {
	total := s.CooperateCount + s.DefectCount
	if total == 0 {
		return 0
	}
	return float64(s.CooperateCount) / float64(total)
}

func (s *AggregateStats) Add(o *AggregateStats) {
	s.TotalPayoff += o.TotalPayoff
	s.MatchesPlayed += o.MatchesPlayed
	s.CooperateCount += o.CooperateCount
	s.DefectCount += o.DefectCount
}

// AsMap exposes the stats under their stable key names
func (s *AggregateStats) AsMap() map[string]float64 {
	return map[string]float64{
		"total_payoff":     s.TotalPayoff,
		"matches_played":   float64(s.MatchesPlayed),
		"cooperate_count":  float64(s.CooperateCount),
		"defect_count":     float64(s.DefectCount),
		"cooperation_rate": s.CooperationRate(),
	}
}

// addMatch folds one bot's side of a match into s
func (s *AggregateStats) addMatch(payoff float64, actions []dilemma.Action) {
	s.TotalPayoff += payoff
	s.MatchesPlayed++
	coop := linq.Count(actions, func(a dilemma.Action) bool { return a == dilemma.ACTION_COOPERATE })
	s.CooperateCount += coop
	s.DefectCount += len(actions) - coop
}
