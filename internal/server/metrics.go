package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics registers on its own registry so independent Server instances
// (one per test) never collide.
type Metrics struct {
	registry *prometheus.Registry

	ActiveRooms          prometheus.Gauge
	SubscribersConnected prometheus.Gauge
	RoomsCreated         prometheus.Counter
	PlayersJoined        prometheus.Counter
	GuessesSubmitted     prometheus.Counter
	EventsBroadcast      prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of rooms held by the registry",
		}),
		SubscribersConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "subscribers_connected",
			Help:      "Number of live websocket subscribers",
		}),
		RoomsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_created_total",
			Help:      "Total number of rooms created",
		}),
		PlayersJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "players_joined_total",
			Help:      "Total number of players joined across all rooms",
		}),
		GuessesSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_submitted_total",
			Help:      "Total number of accepted guesses",
		}),
		EventsBroadcast: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_broadcast_total",
			Help:      "Total number of events fanned out to subscribers",
		}),
	}

	m.registry.MustRegister(
		m.ActiveRooms,
		m.SubscribersConnected,
		m.RoomsCreated,
		m.PlayersJoined,
		m.GuessesSubmitted,
		m.EventsBroadcast,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
