package dilemma

import "github.com/google/uuid"

// Bot is a tournament participant
type Bot interface {
	Name() string
	// ChooseAction decides from the opponent's previous move only
	ChooseAction(opponentLast State) Action
	// Reset clears per-round sticky state. Learned models survive.
	Reset()
}

// OpponentAware bots are told who they face before the first turn
type OpponentAware interface {
	SetOpponent(name string)
}

type TurnResult struct {
	MatchID        uuid.UUID
	Round          int
	Turn           int
	OpponentName   string
	MyAction       Action
	OpponentAction Action
	Reward         float64
}

// TurnObserver bots are notified after both actions of a turn are known
type TurnObserver interface {
	NotifyTurnResult(result TurnResult)
}
