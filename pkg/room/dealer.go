package room

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"cardroom-server/internal/jwt"
	"cardroom-server/internal/metrics"
	"cardroom-server/internal/util"
	"cardroom-server/pkg/table"
)

// Dealer runs a single room. Every mutation of the table funnels through the
// dealer's run loop, so applying an action, recomputing state, and
// broadcasting is atomic as far as clients can observe.
type Dealer struct {
	pitBoss *PitBoss
	logger  logrus.FieldLogger
	roomID  string
	table   *table.Table

	clients map[*Client]bool
	lock    sync.RWMutex

	execInRunLoop chan func()
	close         chan bool
}

// NewDealer creates a new dealer for the room
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, logger logrus.FieldLogger, roomID string, opts table.Options) *Dealer {
	logger = logger.WithField("room", roomID)

	return &Dealer{
		pitBoss:       pitBoss,
		logger:        logger,
		roomID:        roomID,
		table:         table.New(logger, opts),
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// Table returns the table the dealer is running
func (d *Dealer) Table() *table.Table {
	return d.table
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.execInRunLoop <- func() {
		d.broadcastPlayers()

		// a returning player immediately receives the current state
		if client.PlayerID != "" {
			client.Send(&Response{Type: ResponseGameState, Payload: d.table.PublicState()})
			if private := d.table.PrivateState(client.PlayerID); private != nil {
				client.Send(&Response{Type: ResponsePrivateState, Payload: private})
			}
		}
	}
}

// RemoveClient removes a disconnected client and stands their player up.
// This method must return quickly. The return value is true when the room
// has no clients left.
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients == 0 {
		return true
	}

	d.execInRunLoop <- func() {
		if client.PlayerID == "" {
			d.broadcastPlayers()
			return
		}

		name := d.playerName(client.PlayerID)
		result, err := d.table.Stand(client.PlayerID)
		if err != nil {
			d.logger.WithError(err).Error("could not stand player")
		}

		if name != "" {
			d.broadcast(newNotification("%s left the table", name))
		}

		d.broadcastPlayers()
		d.broadcastGame()
		d.handleResult(result)
	}

	return false
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *Message) {
	metrics.MessagesReceived.WithLabelValues(msg.Type).Inc()

	switch msg.Type {
	case MessageJoin:
		payload := msg.Join
		d.execInRunLoop <- func() {
			d.handleJoin(c, payload)
		}
	case MessageAction:
		payload := msg.Action
		d.execInRunLoop <- func() {
			d.handleAction(c, payload)
		}
	case MessageStartGame:
		d.execInRunLoop <- func() {
			d.handleStartGame(c)
		}
	case MessageRestart:
		d.execInRunLoop <- func() {
			d.handleRestart()
		}
	case MessageLeave:
		d.execInRunLoop <- func() {
			d.handleLeave(c)
		}
	default:
		d.logger.WithField("type", msg.Type).Warn("unknown message")
		c.Send(NewErrorResponse(ErrMalformedMessage))
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) handleJoin(c *Client, payload *JoinPayload) {
	id := c.PlayerID
	if id == "" {
		id = payload.PlayerID
	}
	if id == "" {
		id = uuid.New().String()
	}

	name := payload.Name
	if name == "" {
		name = util.GetRandomName()
	}

	// the client-requested buy-in is ignored; the house stack is authoritative
	player, err := d.table.Seat(id, name)
	if err != nil {
		c.Send(NewErrorResponse(err))
		return
	}

	c.PlayerID = player.ID

	token, err := jwt.Sign(player.ID)
	if err != nil {
		d.logger.WithError(err).Error("could not sign session token")
	}

	c.Send(&Response{
		Type: ResponseGameState,
		Payload: &joinAck{
			PlayerID: player.ID,
			Token:    token,
			State:    d.table.PublicState(),
			Private:  d.table.PrivateState(player.ID),
		},
	})

	d.broadcast(newNotification("%s joined the table", player.Name))
	d.broadcastPlayers()
	d.broadcastGame()
}

// NOTE: must only be called from the run loop
func (d *Dealer) handleAction(c *Client, payload *ActionPayload) {
	playerID := c.PlayerID
	if playerID == "" {
		playerID = payload.PlayerID
	}

	action, err := table.ActionFromString(payload.Action)
	if err != nil {
		d.rejectAction(c, playerID, err)
		return
	}

	result, err := d.table.Act(playerID, action, payload.Amount)
	if err != nil {
		d.rejectAction(c, playerID, err)
		return
	}

	d.broadcast(newNotification("%s %s", d.playerName(playerID), action.LogMessage(payload.Amount)))
	d.broadcastGame()
	d.handleResult(result)
}

// rejectAction reports the error to the offender and, if the table really was
// waiting on them, folds their hand so the game cannot stall on a misbehaving
// client
// NOTE: must only be called from the run loop
func (d *Dealer) rejectAction(c *Client, playerID string, err error) {
	c.Send(NewErrorResponse(err))

	result, folded := d.table.ForceFold(playerID)
	if !folded {
		return
	}

	d.broadcast(newNotification("%s was folded: %s", d.playerName(playerID), err))
	d.broadcastGame()
	d.handleResult(result)
}

// NOTE: must only be called from the run loop
func (d *Dealer) handleStartGame(c *Client) {
	result, err := d.table.StartHand()
	if err != nil {
		if err == table.ErrInsufficientPlayers {
			d.broadcast(newNotification("cannot start: %s", err))
		} else {
			c.Send(NewErrorResponse(err))
		}

		return
	}

	d.broadcast(newNotification("dealing a new hand"))
	d.broadcastGame()
	d.handleResult(result)
}

// NOTE: must only be called from the run loop
func (d *Dealer) handleRestart() {
	d.table.Reset()

	d.broadcast(&Response{Type: ResponseGameReset})
	d.broadcastPlayers()
	d.broadcastGame()
}

// NOTE: must only be called from the run loop
func (d *Dealer) handleLeave(c *Client) {
	if c.PlayerID == "" {
		return
	}

	name := d.playerName(c.PlayerID)
	result, err := d.table.Stand(c.PlayerID)
	if err != nil {
		d.logger.WithError(err).Error("could not stand player")
	}

	if name != "" {
		d.broadcast(newNotification("%s left the table", name))
	}

	d.broadcastPlayers()
	d.broadcastGame()
	d.handleResult(result)
}

// handleResult announces a completed hand
// NOTE: must only be called from the run loop
func (d *Dealer) handleResult(result *table.HandResult) {
	if result == nil {
		return
	}

	metrics.HandsPlayed.Inc()
	d.broadcast(&Response{Type: ResponseHandComplete, Payload: result})
	for _, winner := range result.Winners {
		if winner.Hand != "" {
			d.broadcast(newNotification("%s wins %d with %s", winner.Name, winner.Amount, winner.Hand))
		} else {
			d.broadcast(newNotification("%s wins %d", winner.Name, winner.Amount))
		}
	}

	d.broadcastPlayers()
}

// broadcastGame sends the public projection to every client and the private
// projection to each seated player
// NOTE: must only be called from the run loop
func (d *Dealer) broadcastGame() {
	public := d.table.PublicState()
	for _, client := range d.Clients() {
		client.Send(&Response{Type: ResponseGameState, Payload: public})

		if client.PlayerID == "" {
			continue
		}

		if private := d.table.PrivateState(client.PlayerID); private != nil {
			client.Send(&Response{Type: ResponsePrivateState, Payload: private})
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcastPlayers() {
	connected := make(map[string]bool)
	for _, client := range d.Clients() {
		if client.PlayerID != "" {
			connected[client.PlayerID] = true
		}
	}

	players := make([]*playerInfo, 0)
	for _, p := range d.table.Players() {
		players = append(players, &playerInfo{
			ID:          p.ID,
			Name:        p.Name,
			Stack:       p.Stack(),
			IsConnected: connected[p.ID],
		})
	}

	d.broadcast(&Response{Type: ResponsePlayers, Payload: players})
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcast(msg *Response) {
	for _, client := range d.Clients() {
		client.Send(msg)
	}
}

func (d *Dealer) playerName(id string) string {
	for _, p := range d.table.Players() {
		if p.ID == id {
			return p.Name
		}
	}

	return ""
}
