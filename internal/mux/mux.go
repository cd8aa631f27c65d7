// Package mux routes HTTP requests and upgrades websocket connections into
// the room layer.
package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cardroom-server/internal/config"
	"cardroom-server/pkg/room"
	"cardroom-server/pkg/table"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	cfg := config.Instance()
	pitBoss := room.NewPitBoss(nil, table.Options{
		SmallBlind: cfg.Game.SmallBlind,
		BigBlind:   cfg.Game.BigBlind,
		BuyIn:      cfg.Game.BuyIn,
		MaxSeats:   cfg.Game.MaxSeats,
	})
	pitBoss.StartShift()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/metrics").Handler(promhttp.Handler())
	r.Methods(http.MethodGet).Path("/rooms/{room:[A-Za-z0-9_-]+}/ws").Handler(this.getRoomWS())

	return this
}
