package qlearning

import (
	"time"

	"github.com/google/uuid"

	"ipd-go/dilemma"
)

// Interaction is one learning step of a Bot
type Interaction struct {
	Timestamp       time.Time
	Tournament      int
	Round           int
	MatchID         uuid.UUID
	Turn            int
	Agent           string
	Opponent        string
	State           dilemma.State
	Action          dilemma.Action
	Reward          float64
	QCooperate      float64 // values of State before the update
	QDefect         float64
	ExplorationRate float64 // rate in effect when Action was chosen
}

// InteractionLog keeps the most recent interactions of every learner that writes to it.
// When it grows past maxEntries the oldest pruneRatio share is dropped.
type InteractionLog struct {
	entries    []*Interaction
	maxEntries int
	pruneRatio float64
	tournament int
	pruned     int
}

// maxEntries <= 0 keeps everything
func NewInteractionLog(maxEntries int, pruneRatio float64) *InteractionLog {
	if !(pruneRatio > 0 && pruneRatio <= 1) {
		pruneRatio = 0.05
	}
	return &InteractionLog{
		entries:    make([]*Interaction, 0),
		maxEntries: maxEntries,
		pruneRatio: pruneRatio,
	}
}

// SetTournament stamps subsequent entries with the tournament index
func (m *InteractionLog) SetTournament(index int) {
	m.tournament = index
}

func (m *InteractionLog) Add(entry *Interaction) {
	entry.Tournament = m.tournament
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	m.entries = append(m.entries, entry)

	if m.maxEntries > 0 && len(m.entries) > m.maxEntries {
		m.pruneOldEntries()
	}
}

// pruneOldEntries drops the oldest share of entries, at least one
func (m *InteractionLog) pruneOldEntries() {
	removeCount := int(float64(len(m.entries)) * m.pruneRatio)
	if removeCount < 1 {
		removeCount = 1
	}
	m.entries = append(m.entries[:0:0], m.entries[removeCount:]...)
	m.pruned += removeCount
}

func (m *InteractionLog) Entries() []*Interaction {
	r := make([]*Interaction, len(m.entries))
	copy(r, m.entries)
	return r
}

func (m *InteractionLog) ForMatch(matchID uuid.UUID) []*Interaction {
	r := make([]*Interaction, 0)
	for _, e := range m.entries {
		if e.MatchID == matchID {
			r = append(r, e)
		}
	}
	return r
}

func (m *InteractionLog) Count() int {
	return len(m.entries)
}

// Pruned is the number of entries dropped so far
func (m *InteractionLog) Pruned() int {
	return m.pruned
}

func (m *InteractionLog) Clear() {
	m.entries = m.entries[:0]
	m.pruned = 0
}
