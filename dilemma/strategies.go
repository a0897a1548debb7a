package dilemma

import (
	"math/rand"

	"ipd-go/common/random"
)

const TFT90_RETALIATION_PROB = 0.9

// CooperateBot always cooperates
type CooperateBot struct{}

func NewCooperateBot() *CooperateBot { return &CooperateBot{} }

func (h *CooperateBot) Name() string                { return "CooperateBot" }
func (h *CooperateBot) ChooseAction(_ State) Action { return ACTION_COOPERATE }
func (h *CooperateBot) Reset()                      {}

// DefectBot always defects
type DefectBot struct{}

func NewDefectBot() *DefectBot { return &DefectBot{} }

func (h *DefectBot) Name() string                { return "DefectBot" }
func (h *DefectBot) ChooseAction(_ State) Action { return ACTION_DEFECT }
func (h *DefectBot) Reset()                      {}

// TFTBot opens with cooperation, then copies the opponent's last move
type TFTBot struct{}

func NewTFTBot() *TFTBot { return &TFTBot{} }

func (h *TFTBot) Name() string { return "TFTBot" }

func (h *TFTBot) ChooseAction(opponentLast State) Action {
	if a, ok := opponentLast.Action(); ok {
		return a
	}
	return ACTION_COOPERATE
}

func (h *TFTBot) Reset() {}

// TFT90Bot is tit-for-tat that forgives a defection 10% of the time
type TFT90Bot struct {
	rng *rand.Rand
}

func NewTFT90Bot(rng *rand.Rand) *TFT90Bot {
	return &TFT90Bot{rng: rng}
}

func (h *TFT90Bot) Name() string { return "TFT90Bot" }

func (h *TFT90Bot) ChooseAction(opponentLast State) Action {
	if opponentLast != STATE_DEFECT {
		return ACTION_COOPERATE
	}
	if random.Roll(h.rng, TFT90_RETALIATION_PROB) {
		return ACTION_DEFECT
	}
	return ACTION_COOPERATE
}

func (h *TFT90Bot) Reset() {}

// GrimBot cooperates until an opponent defects once, then defects until Reset.
// Every match still opens with cooperation.
type GrimBot struct {
	triggered bool
}

func NewGrimBot() *GrimBot { return &GrimBot{} }

func (h *GrimBot) Name() string { return "GrimBot" }

func (h *GrimBot) ChooseAction(opponentLast State) Action {
	if opponentLast == STATE_NONE {
		return ACTION_COOPERATE
	}
	if opponentLast == STATE_DEFECT {
		h.triggered = true
	}
	if h.triggered {
		return ACTION_DEFECT
	}
	return ACTION_COOPERATE
}

func (h *GrimBot) Reset() {
	h.triggered = false
}
