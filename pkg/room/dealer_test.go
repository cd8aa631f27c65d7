package room

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardroom-server/internal/jwt"
	"cardroom-server/pkg/table"
)

func init() {
	jwt.SetSigningKey("dealer-test-secret")
}

func testDealer() *Dealer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	d := NewDealer(nil, logger, "test-room", table.Options{
		SmallBlind: 5,
		BigBlind:   10,
		BuyIn:      1000,
		MaxSeats:   9,
	})
	d.StartShift()

	return d
}

func connect(d *Dealer) *Client {
	c := NewClient(nil, "test-room", "")
	d.AddClient(c)
	return c
}

// nextResponse drains the client's queue until a message of the wanted type
// arrives
func nextResponse(t *testing.T, c *Client, msgType string) *Response {
	t.Helper()

	timeout := time.After(time.Second * 2)
	for {
		select {
		case msg := <-c.SendChan():
			if msg.Type == msgType {
				return msg
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", msgType)
			return nil
		}
	}
}

// waitForNotification drains the client's queue until a notification
// containing the substring arrives
func waitForNotification(t *testing.T, c *Client, substr string) {
	t.Helper()

	timeout := time.After(time.Second * 2)
	for {
		select {
		case msg := <-c.SendChan():
			if msg.Type == ResponseNotification && strings.Contains(msg.Payload.(string), substr) {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for notification %q", substr)
			return
		}
	}
}

func join(t *testing.T, d *Dealer, c *Client, name string) *joinAck {
	t.Helper()

	d.ReceivedMessage(c, &Message{Type: MessageJoin, Join: &JoinPayload{Name: name}})
	for {
		msg := nextResponse(t, c, ResponseGameState)
		if ack, ok := msg.Payload.(*joinAck); ok {
			require.NotEmpty(t, ack.PlayerID)
			require.NotEmpty(t, ack.Token)
			return ack
		}
	}
}

func TestDealer_joinAndStartGame(t *testing.T) {
	a := assert.New(t)

	d := testDealer()
	defer d.EndShift()

	c1 := connect(d)
	join(t, d, c1, "Alice")

	// cannot start with a single player
	d.ReceivedMessage(c1, &Message{Type: MessageStartGame})
	waitForNotification(t, c1, "cannot start")

	c2 := connect(d)
	join(t, d, c2, "Bob")

	d.ReceivedMessage(c2, &Message{Type: MessageStartGame})
	waitForNotification(t, c1, "dealing a new hand")

	msg := nextResponse(t, c1, ResponseGameState)
	state, ok := msg.Payload.(*table.PublicState)
	require.True(t, ok)
	a.Equal("preflop", state.Street)
	a.Equal(15, state.Pot)
	a.Len(state.Seats, 2)

	// each player gets a private view with their hole cards
	waitForNotification(t, c2, "dealing a new hand")
	private := nextResponse(t, c2, ResponsePrivateState)
	a.Len(private.Payload.(*table.PrivateState).HoleCards, 2)
}

func TestDealer_ignoresClientBuyIn(t *testing.T) {
	a := assert.New(t)

	d := testDealer()
	defer d.EndShift()

	c := connect(d)
	d.ReceivedMessage(c, &Message{Type: MessageJoin, Join: &JoinPayload{Name: "Alice", BuyIn: 5}})
	msg := nextResponse(t, c, ResponseGameState)

	ack, ok := msg.Payload.(*joinAck)
	require.True(t, ok)
	a.Equal(1000, ack.Private.Stack)
}

func TestDealer_outOfTurnActionDoesNotFold(t *testing.T) {
	a := assert.New(t)

	d := testDealer()
	defer d.EndShift()

	c1 := connect(d)
	ack := join(t, d, c1, "Alice")
	c2 := connect(d)
	bob := join(t, d, c2, "Bob")

	d.ReceivedMessage(c1, &Message{Type: MessageStartGame})

	// Bob is the small blind and acts first; Alice is out of turn
	d.ReceivedMessage(c1, &Message{Type: MessageAction, Action: &ActionPayload{Action: "check"}})
	msg := nextResponse(t, c1, ResponseError)
	a.Contains(msg.Payload, "not your turn")

	// the true actor's turn is unaffected
	a.Equal(bob.PlayerID, d.Table().ActingPlayerID())
	a.NotEqual(ack.PlayerID, d.Table().ActingPlayerID())
}

func TestDealer_illegalActionAutoFolds(t *testing.T) {
	a := assert.New(t)

	d := testDealer()
	defer d.EndShift()

	c1 := connect(d)
	join(t, d, c1, "Alice")
	c2 := connect(d)
	join(t, d, c2, "Bob")

	d.ReceivedMessage(c1, &Message{Type: MessageStartGame})

	// Bob tries an undersized raise on his own turn: rejected and auto-folded
	d.ReceivedMessage(c2, &Message{Type: MessageAction, Action: &ActionPayload{Action: "raise", Amount: 12}})
	nextResponse(t, c2, ResponseError)

	waitForNotification(t, c1, "was folded")

	// heads-up, the fold ends the hand
	msg := nextResponse(t, c1, ResponseHandComplete)
	result, ok := msg.Payload.(*table.HandResult)
	require.True(t, ok)
	require.Len(t, result.Winners, 1)
	a.Equal("Alice", result.Winners[0].Name)
	a.Equal(15, result.Winners[0].Amount)
}

func TestDealer_restartClearsSeats(t *testing.T) {
	a := assert.New(t)

	d := testDealer()
	defer d.EndShift()

	c1 := connect(d)
	join(t, d, c1, "Alice")
	c2 := connect(d)
	join(t, d, c2, "Bob")

	d.ReceivedMessage(c1, &Message{Type: MessageStartGame})
	d.ReceivedMessage(c2, &Message{Type: MessageRestart})
	nextResponse(t, c1, ResponseGameReset)

	msg := nextResponse(t, c1, ResponsePlayers)
	a.Empty(msg.Payload.([]*playerInfo))
	a.Equal(table.StageWaitingForPlayers, d.Table().Stage())

	// joining after a restart works as if no game existed
	ack := join(t, d, c1, "Alice")
	a.Equal(1000, ack.Private.Stack)
}

func TestDealer_leaveStandsPlayer(t *testing.T) {
	a := assert.New(t)

	d := testDealer()
	defer d.EndShift()

	c1 := connect(d)
	join(t, d, c1, "Alice")
	c2 := connect(d)
	join(t, d, c2, "Bob")

	d.ReceivedMessage(c2, &Message{Type: MessageLeave})
	waitForNotification(t, c1, "left the table")

	msg := nextResponse(t, c1, ResponsePlayers)
	players := msg.Payload.([]*playerInfo)
	require.Len(t, players, 1)
	a.Equal("Alice", players[0].Name)
}
