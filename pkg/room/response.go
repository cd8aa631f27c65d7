package room

import (
	"fmt"

	"cardroom-server/pkg/table"
)

// response type constants
const (
	ResponseGameState    = "gameState"
	ResponsePlayers      = "players"
	ResponsePrivateState = "privateState"
	ResponseHandComplete = "handComplete"
	ResponseNotification = "notification"
	ResponseGameReset    = "gameReset"
	ResponseError        = "error"
)

// Response is an outbound message to one or more clients
type Response struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// joinAck is sent to a player after they are seated. The token allows the
// player to resume their identity on a new connection.
type joinAck struct {
	PlayerID string              `json:"playerId"`
	Token    string              `json:"token"`
	State    *table.PublicState  `json:"state"`
	Private  *table.PrivateState `json:"private"`
}

// playerInfo is one entry in the public seat list
type playerInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Stack       int    `json:"stackSize"`
	IsConnected bool   `json:"isConnected"`
}

// NewErrorResponse wraps an error for the offending connection
func NewErrorResponse(err error) *Response {
	return &Response{
		Type:    ResponseError,
		Payload: err.Error(),
	}
}

func newNotification(format string, a ...interface{}) *Response {
	return &Response{
		Type:    ResponseNotification,
		Payload: fmt.Sprintf(format, a...),
	}
}
