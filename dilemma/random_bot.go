package dilemma

import (
	"fmt"
	"math/rand"

	"ipd-go/common/random"
)

// RandomBot ignores history and cooperates with a fixed probability
type RandomBot struct {
	rng           *rand.Rand
	cooperateProb float64
}

func NewRandomBot(rng *rand.Rand, cooperateProb float64) (*RandomBot, error) {
	if !(cooperateProb >= 0 && cooperateProb <= 1) {
		return nil, fmt.Errorf("cooperate probability %v outside [0,1]: %w", cooperateProb, ErrInvalidArgument)
	}
	h := &RandomBot{
		rng:           rng,
		cooperateProb: cooperateProb,
	}
	return h, nil
}

func (h *RandomBot) Name() string { return "RandomBot" }

func (h *RandomBot) ChooseAction(_ State) Action {
	act, err := random.Sample(h.rng, Actions, []float64{h.cooperateProb, 1 - h.cooperateProb})
	if err != nil {
		// unreachable, the distribution is validated in the constructor
		return ACTION_COOPERATE
	}
	return act
}

func (h *RandomBot) Reset() {}
