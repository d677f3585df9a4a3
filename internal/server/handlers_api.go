package server

import (
	"log"
	"net/http"
)

type createRoomRequest struct {
	Categories []Category `json:"categories"`
}

type joinRequest struct {
	Name string `json:"name"`
}

type pickRequest struct {
	Category string `json:"category"`
	Item     string `json:"item"`
}

type guessRequest struct {
	PlayerID int     `json:"player_id"`
	Guess    float64 `json:"guess"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := readJSON(r.Body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if err := validateCategories(req.Categories); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	room := s.registry.CreateRoom(normalizeCategories(req.Categories))
	s.metrics.RoomsCreated.Inc()
	s.metrics.ActiveRooms.Set(float64(s.registry.Count()))
	log.Printf("room created room_id=%s join_code=%s categories=%d", room.ID, room.JoinCode, len(room.Categories))
	writeJSON(w, http.StatusCreated, map[string]string{
		"room_id":   room.ID,
		"join_code": room.JoinCode,
	})
}

func (s *Server) handleRoomSubroutes(w http.ResponseWriter, r *http.Request) {
	roomID, action, ok := parseRoomPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	room, found := s.registry.Resolve(roomID)
	if !found {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		switch action {
		case "":
			writeJSON(w, http.StatusOK, room.Snapshot())
		case "qr":
			s.handleRoomQR(w, r, room)
		default:
			http.NotFound(w, r)
		}
	case http.MethodPost:
		switch action {
		case "join":
			s.handleJoinRoom(w, r, room)
		case "start":
			s.handleStartGame(w, r, room)
		case "pick":
			s.handlePickItem(w, r, room)
		case "guesses":
			s.handleSubmitGuess(w, r, room)
		case "close":
			s.handleCloseRound(w, r, room)
		case "advance":
			s.handleAdvance(w, r, room)
		case "end":
			s.handleEndGame(w, r, room)
		default:
			http.NotFound(w, r)
		}
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request, room *Room) {
	var req joinRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	player, err := room.Join(req.Name, s.cfg.MaxPlayers)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	s.metrics.PlayersJoined.Inc()
	log.Printf("player joined room_id=%s player_id=%d name=%s", room.ID, player.ID, player.Name)
	writeJSON(w, http.StatusOK, map[string]any{
		"player_id": player.ID,
		"name":      player.Name,
		"token":     player.Token,
		"score":     player.Score,
		"voted":     player.Voted,
	})
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request, room *Room) {
	if err := room.StartGame(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	log.Printf("game started room_id=%s", room.ID)
	writeJSON(w, http.StatusOK, map[string]string{"phase": phaseCategorySelection})
}

func (s *Server) handlePickItem(w http.ResponseWriter, r *http.Request, room *Room) {
	var req pickRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	category, item, err := room.PickItem(normalizeText(req.Category), normalizeText(req.Item))
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	// Rotation happens here, after the pick succeeded, never inside PickItem.
	room.AdvancePicker()
	s.scheduleGuessTimer(room)
	log.Printf("round started room_id=%s category=%s item=%s", room.ID, category, item.Name)
	writeJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"item": map[string]any{
			"name":      item.Name,
			"image_url": item.ImageURL,
		},
	})
}

func (s *Server) handleSubmitGuess(w http.ResponseWriter, r *http.Request, room *Room) {
	var req guessRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Out-of-phase and unknown-player submissions are deliberately
	// acknowledged: stale clients are harmless, not errors.
	if room.SubmitGuess(req.PlayerID, req.Guess) {
		s.metrics.GuessesSubmitted.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleCloseRound(w http.ResponseWriter, r *http.Request, room *Room) {
	result, err := room.CloseRound()
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	s.cancelGuessTimer(room.ID)
	log.Printf("round closed room_id=%s item=%s winners=%d losers=%d", room.ID, result.Item.Name, len(result.Winners), len(result.Losers))
	writeJSON(w, http.StatusOK, resultPayload(result))
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request, room *Room) {
	phase, err := room.Advance()
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	log.Printf("room advanced room_id=%s phase=%s", room.ID, phase)
	writeJSON(w, http.StatusOK, map[string]string{"phase": phase})
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request, room *Room) {
	room.EndGame()
	s.cancelGuessTimer(room.ID)
	writeJSON(w, http.StatusOK, map[string]string{"phase": phaseGameOver})
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	summaries := s.registry.ListRoomSummaries()
	rooms := make([]map[string]any, 0, len(summaries))
	for _, summary := range summaries {
		rooms = append(rooms, map[string]any{
			"room_id":   summary.ID,
			"join_code": summary.JoinCode,
			"phase":     summary.Phase,
			"players":   summary.Players,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}
