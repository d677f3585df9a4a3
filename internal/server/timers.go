package server

import (
	"log"
	"time"
)

// scheduleGuessTimer arms the optional guessing countdown. With
// GuessDurationSeconds at zero (the default) rounds stay open until the host
// closes them.
func (s *Server) scheduleGuessTimer(room *Room) {
	duration := time.Duration(s.cfg.GuessDurationSeconds) * time.Second
	if duration <= 0 {
		return
	}
	s.timersMu.Lock()
	if existing, ok := s.timers[room.ID]; ok {
		existing.Stop()
	}
	timer := time.AfterFunc(duration, func() {
		s.autoCloseRound(room)
	})
	s.timers[room.ID] = timer
	s.timersMu.Unlock()
}

func (s *Server) cancelGuessTimer(roomID string) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if timer, ok := s.timers[roomID]; ok {
		timer.Stop()
		delete(s.timers, roomID)
	}
}

func (s *Server) autoCloseRound(room *Room) {
	s.cancelGuessTimer(room.ID)
	result, err := room.CloseRound()
	if err != nil {
		// The host already closed or ended the round; nothing to do.
		return
	}
	log.Printf("round auto-closed room_id=%s item=%s reason=timeout", room.ID, result.Item.Name)
}
