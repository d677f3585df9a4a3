package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 10 * time.Second

// wsSubscriber forwards room events to one websocket connection. Writes are
// serialized and bounded by a deadline; on the first failed write the conn is
// closed and further deliveries are dropped, which unblocks the read pump so
// it can unsubscribe. It never calls back into the room from Deliver.
type wsSubscriber struct {
	conn *websocket.Conn

	mu   sync.Mutex
	dead bool
}

func (ws *wsSubscriber) Deliver(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.dead {
		return
	}
	_ = ws.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := ws.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		ws.dead = true
		_ = ws.conn.Close()
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	roomID, ok := parseWebsocketPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	room, found := s.registry.Resolve(roomID)
	if !found {
		http.NotFound(w, r)
		return
	}
	role := r.URL.Query().Get("role")
	if role != wsRoleHost {
		role = wsRolePlayer
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected room_id=%s role=%s remote=%s", room.ID, role, r.RemoteAddr)

	sub := &wsSubscriber{conn: conn}
	unsubscribe := room.Subscribe(sub)
	s.metrics.SubscribersConnected.Inc()

	go s.readWS(room, conn, unsubscribe, role)
}

// readWS drains the connection until it errors, then deregisters the
// subscriber. A host walking away ends the game for everyone.
func (s *Server) readWS(room *Room, conn *websocket.Conn, unsubscribe func(), role string) {
	defer func() {
		unsubscribe()
		_ = conn.Close()
		s.metrics.SubscribersConnected.Dec()
		if role == wsRoleHost {
			s.endGameFromHost(room)
		}
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected room_id=%s role=%s error=%v", room.ID, role, err)
			return
		}
	}
}

func (s *Server) endGameFromHost(room *Room) {
	room.EndGame()
	s.cancelGuessTimer(room.ID)
	log.Printf("game ended room_id=%s reason=host_disconnected", room.ID)
}
