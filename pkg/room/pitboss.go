package room

import (
	"github.com/sirupsen/logrus"

	"cardroom-server/internal/metrics"
	"cardroom-server/pkg/table"
)

// PitBoss is responsible for dispatching players to rooms. Rooms are created
// on first connect and torn down when the last client leaves.
type PitBoss struct {
	logger     logrus.FieldLogger
	opts       table.Options
	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(logger logrus.FieldLogger, opts table.Options) *PitBoss {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &PitBoss{
		logger:     logger,
		opts:       opts,
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			p.logger.WithField("client", client.String()).Debug("client connected")
			dealer, found := p.dealers[client.RoomID]
			if !found {
				dealer = NewDealer(p, p.logger, client.RoomID, p.opts)
				dealer.StartShift()
				p.dealers[client.RoomID] = dealer
			}

			dealer.AddClient(client)
			metrics.ConnectedClients.Inc()
			metrics.ActiveRooms.Set(float64(len(p.dealers)))
		case client := <-p.disconnect:
			p.logger.WithField("client", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.RoomID]
			if !found {
				p.logger.WithField("room", client.RoomID).Error("room not found")
				continue
			}

			metrics.ConnectedClients.Dec()
			if dealer.RemoveClient(client) {
				dealer.EndShift()
				delete(p.dealers, client.RoomID)
			}

			metrics.ActiveRooms.Set(float64(len(p.dealers)))
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
