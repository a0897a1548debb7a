package tournament

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts simulated play. A nil *Metrics records nothing.
type Metrics struct {
	matches prometheus.Counter
	turns   prometheus.Counter
	actions *prometheus.CounterVec
	payoff  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		matches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ipd_matches_total",
			Help: "Matches simulated.",
		}),
		turns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ipd_turns_total",
			Help: "Turns simulated across all matches.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ipd_actions_total",
			Help: "Actions taken, by bot and action.",
		}, []string{"bot", "action"}),
		payoff: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ipd_payoff_total",
			Help: "Payoff accumulated, by bot.",
		}, []string{"bot"}),
	}
	for _, c := range []prometheus.Collector{m.matches, m.turns, m.actions, m.payoff} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeMatch(result *MatchResult) {
	if m == nil {
		return
	}
	m.matches.Inc()
	m.turns.Add(float64(result.Turns))
	for name, actions := range result.Actions {
		for _, a := range actions {
			m.actions.WithLabelValues(name, a.String()).Inc()
		}
		// counters reject negative adds, custom matrices may pay below zero
		if p := result.Payoffs[name]; p > 0 {
			m.payoff.WithLabelValues(name).Add(p)
		}
	}
}
