package table

import "fmt"

// PlayerError is an error caused by a player request. Its message is safe to
// echo back to the offending client.
type PlayerError string

func (p PlayerError) Error() string {
	return string(p)
}

func newPlayerError(format string, a ...interface{}) PlayerError {
	return PlayerError(fmt.Sprintf(format, a...))
}

// ErrNotYourTurn is an error when a player acts out of turn
var ErrNotYourTurn = PlayerError("it is not your turn")

// ErrUnknownPlayer is an error when a player is not seated at the table
var ErrUnknownPlayer = PlayerError("you are not seated at this table")

// ErrTableFull is an error when all seats are taken
var ErrTableFull = PlayerError("the table is full")

// ErrInsufficientPlayers is an error when a hand is started with fewer than two funded seats
var ErrInsufficientPlayers = PlayerError("at least two players with chips are required")

// ErrHandInProgress is an error when a hand is already being played
var ErrHandInProgress = PlayerError("a hand is already in progress")

// ErrNoHandInProgress is an error when an action arrives outside a hand
var ErrNoHandInProgress = PlayerError("no hand is in progress")
