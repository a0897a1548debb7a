package dilemma

import (
	"errors"
	"fmt"
)

var ErrInvalidArgument = errors.New("invalid argument")

type Action int8

const (
	ACTION_COOPERATE = Action(0)
	ACTION_DEFECT    = Action(1)
)

// Actions in table order
var Actions = []Action{ACTION_COOPERATE, ACTION_DEFECT}

var Action2string = map[Action]string{
	ACTION_COOPERATE: "Cooperate",
	ACTION_DEFECT:    "Defect",
}

func (a Action) String() string {
	if s, ex := Action2string[a]; ex {
		return s
	}
	return fmt.Sprintf("Action(%d)", int8(a))
}

func ParseAction(s string) (Action, error) {
	for a, name := range Action2string {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q: %w", s, ErrInvalidArgument)
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	v, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// State is what a bot conditions on: the opponent's previous action,
// or STATE_NONE on the first turn of a match.
type State int8

const (
	STATE_NONE      = State(-1)
	STATE_COOPERATE = State(ACTION_COOPERATE)
	STATE_DEFECT    = State(ACTION_DEFECT)
)

var States = []State{STATE_NONE, STATE_COOPERATE, STATE_DEFECT}

var State2string = map[State]string{
	STATE_NONE:      "None",
	STATE_COOPERATE: "Cooperate",
	STATE_DEFECT:    "Defect",
}

func StateOf(a Action) State {
	return State(a)
}

// Action returns the action behind the state; false for STATE_NONE
func (s State) Action() (Action, bool) {
	if s == STATE_NONE {
		return 0, false
	}
	return Action(s), true
}

func (s State) String() string {
	if v, ex := State2string[s]; ex {
		return v
	}
	return fmt.Sprintf("State(%d)", int8(s))
}
