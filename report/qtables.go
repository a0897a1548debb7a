package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"ipd-go/qlearning"
)

// QTableSnapshot is opponent -> state -> action -> value
type QTableSnapshot map[string]map[string]map[string]float64

// SnapshotQTables copies every opponent table of agent
func SnapshotQTables(agent *qlearning.Agent) QTableSnapshot {
	r := make(QTableSnapshot)
	for _, opponent := range agent.Opponents() {
		r[opponent] = agent.QTable(opponent).Snapshot()
	}
	return r
}

// WriteQTables writes the agents' tables keyed by learner name
func WriteQTables(w io.Writer, agents map[string]*qlearning.Agent) error {
	doc := make(map[string]QTableSnapshot, len(agents))
	for name, agent := range agents {
		doc[name] = SnapshotQTables(agent)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
