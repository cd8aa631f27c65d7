package room

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a single player's connection to a room
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// RoomID is the room the client connected to
	RoomID string

	// PlayerID is set once the client joins (or presents a session token)
	PlayerID string

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	// send is a channel for sending messages to the client
	send chan *Response

	dealer *Dealer
}

// NewClient returns a new client. playerID may be empty; it is assigned when
// the client joins, or restored from a session token.
func NewClient(conn *websocket.Conn, roomID, playerID string) *Client {
	return &Client{
		Conn:     conn,
		RoomID:   roomID,
		PlayerID: playerID,
		Close:    make(chan string),
		send:     make(chan *Response, 256),
	}
}

// Send queues a message for the client without blocking. A full queue means
// the client is too slow or gone; the message is dropped and false returned.
func (c *Client) Send(msg *Response) bool {
	select {
	case c.send <- msg:
		return true
	default:
		logrus.WithField("client", c.String()).Warn("send queue full, dropping message")
		return false
	}
}

// SendChan returns a read-only channel of queued outbound messages
func (c *Client) SendChan() <-chan *Response {
	return c.send
}

// String returns a traceable identifier for the player and room
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.PlayerID, c.RoomID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *Message) {
	if c.dealer == nil {
		logrus.WithField("type", msg.Type).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
