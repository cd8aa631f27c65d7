// Package metrics exposes the server's Prometheus instrumentation
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ConnectedClients tracks the number of live websocket connections
	ConnectedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "cardroom",
		Name:      "connected_clients",
		Help:      "Number of connected websocket clients",
	})

	// ActiveRooms tracks the number of rooms with at least one client
	ActiveRooms = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "cardroom",
		Name:      "active_rooms",
		Help:      "Number of active rooms",
	})

	// MessagesReceived counts inbound client messages by type
	MessagesReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cardroom",
		Name:      "messages_received_total",
		Help:      "Total number of messages received",
	}, []string{"type"})

	// HandsPlayed counts completed hands
	HandsPlayed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cardroom",
		Name:      "hands_played_total",
		Help:      "Total number of completed hands",
	})
)

func init() {
	prometheus.MustRegister(
		ConnectedClients,
		ActiveRooms,
		MessagesReceived,
		HandsPlayed,
	)
}
