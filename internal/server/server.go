package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/evgenius1424/spielenium/internal/config"
)

type Server struct {
	registry *Registry
	cfg      config.Config
	metrics  *Metrics
	timersMu sync.Mutex
	timers   map[string]*time.Timer
}

func New(cfg config.Config) *Server {
	s := &Server{
		registry: NewRegistry(),
		cfg:      cfg,
		metrics:  NewMetrics("spielenium"),
		timers:   make(map[string]*time.Timer),
	}
	s.registry.onBroadcast = func() { s.metrics.EventsBroadcast.Inc() }
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/rooms", s.handleCreateRoom)
	mux.HandleFunc("GET /api/rooms", s.handleRooms)
	mux.HandleFunc("GET /api/rooms/", s.handleRoomSubroutes)
	mux.HandleFunc("POST /api/rooms/", s.handleRoomSubroutes)
	mux.HandleFunc("GET /ws/rooms/", s.handleWebsocket)
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}
