package table

import "encoding/json"

// Street represents one betting phase of a hand
type Street int

// constants for Street
const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	}

	return ""
}

// MarshalJSON encodes JSON
func (s Street) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Stage represents the table lifecycle state
type Stage int

// constants for Stage
const (
	StageWaitingForPlayers Stage = iota
	StageHandInProgress
)

func (s Stage) String() string {
	switch s {
	case StageWaitingForPlayers:
		return "waiting"
	case StageHandInProgress:
		return "hand-in-progress"
	}

	return ""
}

// MarshalJSON encodes JSON
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
