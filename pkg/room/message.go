package room

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
)

// ErrMalformedMessage is returned when an inbound payload cannot be decoded
// into one of the known message types
var ErrMalformedMessage = PlayerMessageError("malformed message")

// PlayerMessageError is a decode error safe to echo back to the client
type PlayerMessageError string

func (p PlayerMessageError) Error() string {
	return string(p)
}

// message type constants
const (
	MessageJoin      = "join"
	MessageAction    = "action"
	MessageStartGame = "startGame"
	MessageRestart   = "restart"
	MessageLeave     = "leave"
)

// Message is a decoded client payload. Exactly one payload field is non-nil,
// matching Type; startGame, restart, and leave carry no payload.
type Message struct {
	Type   string
	Join   *JoinPayload
	Action *ActionPayload
}

// JoinPayload seats a player. BuyIn is accepted from the wire for
// compatibility but never honored; the configured buy-in is authoritative.
type JoinPayload struct {
	PlayerID string `mapstructure:"playerId"`
	Name     string `mapstructure:"name"`
	BuyIn    int    `mapstructure:"buyIn"`
}

// ActionPayload applies a betting action
type ActionPayload struct {
	PlayerID string `mapstructure:"playerId"`
	Action   string `mapstructure:"action"`
	Amount   int    `mapstructure:"amount"`
}

// ParseMessage decodes a raw client payload into a Message. Anything outside
// the closed set of message types is rejected as malformed rather than
// interpreted best-effort.
func ParseMessage(data []byte) (*Message, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrMalformedMessage
	}

	msgType, _ := raw["type"].(string)

	msg := &Message{Type: msgType}
	switch msgType {
	case MessageJoin:
		msg.Join = &JoinPayload{}
		if err := mapstructure.Decode(raw, msg.Join); err != nil {
			return nil, ErrMalformedMessage
		}
	case MessageAction:
		msg.Action = &ActionPayload{}
		if err := mapstructure.Decode(raw, msg.Action); err != nil {
			return nil, ErrMalformedMessage
		}
	case MessageStartGame, MessageRestart, MessageLeave:
	default:
		return nil, ErrMalformedMessage
	}

	return msg, nil
}
