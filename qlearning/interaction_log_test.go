package qlearning

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestInteractionLogPrunesOldest(t *testing.T) {
	log := NewInteractionLog(10, 0.5)
	for i := 1; i <= 11; i++ {
		log.Add(&Interaction{Turn: i})
	}

	// 11 entries > 10, half of them dropped
	assert.Equal(t, 6, log.Count())
	assert.Equal(t, 5, log.Pruned())
	assert.Equal(t, 6, log.Entries()[0].Turn)

	log.Clear()
	assert.Equal(t, 0, log.Count())
	assert.Equal(t, 0, log.Pruned())
}

func TestInteractionLogForMatch(t *testing.T) {
	log := NewInteractionLog(0, 0)
	a, b := uuid.New(), uuid.New()
	log.Add(&Interaction{MatchID: a, Turn: 1})
	log.Add(&Interaction{MatchID: b, Turn: 1})
	log.Add(&Interaction{MatchID: a, Turn: 2})

	got := log.ForMatch(a)
	assert.Len(t, got, 2)
	assert.Equal(t, 2, got[1].Turn)
	assert.Empty(t, log.ForMatch(uuid.New()))
}
