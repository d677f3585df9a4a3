package server

import (
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// handleRoomQR renders the join URL as a PNG for the host display, so phones
// can scan in instead of typing the code.
func (s *Server) handleRoomQR(w http.ResponseWriter, r *http.Request, room *Room) {
	base := s.cfg.JoinBaseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}
		base = scheme + "://" + r.Host
	}
	url := strings.TrimSuffix(base, "/") + "/join/" + room.JoinCode

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "qr generation failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
