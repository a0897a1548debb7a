package tournament

import (
	"fmt"

	"github.com/rs/zerolog"

	"ipd-go/common/linq"
)

// ResultManager is the ordered log of recorded matches
type ResultManager struct {
	results []*MatchResult
	logger  zerolog.Logger
}

func NewResultManager(logger *zerolog.Logger) *ResultManager {
	h := &ResultManager{
		results: make([]*MatchResult, 0),
		logger:  zerolog.Nop(),
	}
	if logger != nil {
		h.logger = *logger
	}
	return h
}

func validateResult(result *MatchResult) error {
	if result == nil {
		return fmt.Errorf("nil result: %w", ErrMalformedResult)
	}
	if result.Round < 1 {
		return fmt.Errorf("missing round number: %w", ErrMalformedResult)
	}
	if len(result.Actions) == 0 {
		return fmt.Errorf("no bots in result: %w", ErrMalformedResult)
	}
	if !linq.SameKeys(result.Actions, result.Payoffs) {
		return fmt.Errorf("bots with actions %v and with payoffs %v differ: %w",
			linq.SortedKeys(result.Actions), linq.SortedKeys(result.Payoffs), ErrMalformedResult)
	}
	return nil
}

// RecordResult appends a copy of result after validating its shape
func (h *ResultManager) RecordResult(result *MatchResult) error {
	if err := validateResult(result); err != nil {
		h.logger.Warn().Err(err).Msg("rejected match result")
		return err
	}
	h.results = append(h.results, result.clone())
	return nil
}

// AllResults in insertion order
func (h *ResultManager) AllResults() []*MatchResult {
	r := make([]*MatchResult, len(h.results))
	for i, res := range h.results {
		r[i] = res.clone()
	}
	return r
}

func (h *ResultManager) Len() int {
	return len(h.results)
}

func (h *ResultManager) AggregateResults() map[string]*AggregateStats {
	stats := make(map[string]*AggregateStats)
	for _, res := range h.results {
		for _, name := range res.BotNames() {
			s, ex := stats[name]
			if !ex {
				s = &AggregateStats{}
				stats[name] = s
			}
			s.addMatch(res.Payoffs[name], res.Actions[name])
		}
	}
	return stats
}

func (h *ResultManager) BotStatistics(name string) (*AggregateStats, error) {
	var s *AggregateStats
	for _, res := range h.results {
		actions, ex := res.Actions[name]
		if !ex {
			continue
		}
		if s == nil {
			s = &AggregateStats{}
		}
		s.addMatch(res.Payoffs[name], actions)
	}
	if s == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrBotNotFound)
	}
	return s, nil
}

// BotNames of every bot seen, sorted
func (h *ResultManager) BotNames() []string {
	return linq.SortedKeys(h.AggregateResults())
}

func (h *ResultManager) ClearResults() {
	h.results = h.results[:0]
}
