package server

// snapshotLocked builds the full-state payload pushed to every subscriber
// after each mutation and to every new subscriber on connect. Callers must
// hold r.mu.
func (r *Room) snapshotLocked() map[string]any {
	players := make([]map[string]any, 0, len(r.Players))
	for _, player := range r.Players {
		players = append(players, map[string]any{
			"id":    player.ID,
			"name":  player.Name,
			"score": player.Score,
			"voted": player.Voted,
		})
	}

	categories := make([]map[string]any, 0, len(r.Categories))
	for _, category := range r.Categories {
		categories = append(categories, map[string]any{
			"name":       category.Name,
			"items_left": len(category.Items),
		})
	}

	var currentItem map[string]any
	if r.CurrentItem != nil {
		currentItem = map[string]any{
			"name":      r.CurrentItem.Name,
			"image_url": r.CurrentItem.ImageURL,
		}
		// The target price stays hidden from phones until the round closes.
		if r.Phase == phaseResults || r.Phase == phaseGameOver {
			currentItem["price"] = r.CurrentItem.Price
		}
	}

	history := make([]map[string]any, 0, len(r.RoundHistory))
	for _, result := range r.RoundHistory {
		history = append(history, resultPayload(result))
	}

	return map[string]any{
		"type":              eventState,
		"room_id":           r.ID,
		"join_code":         r.JoinCode,
		"phase":             r.Phase,
		"phase_started_at":  r.PhaseStartedAt,
		"players":           players,
		"picker_index":      r.PickerIndex,
		"categories":        categories,
		"selected_category": r.SelectedCategory,
		"current_item":      currentItem,
		"round_history":     history,
		"counts": map[string]int{
			"players":    len(r.Players),
			"guesses":    len(r.Guesses),
			"categories": len(r.Categories),
		},
		"can_join": r.Phase != phaseGameOver,
	}
}

// Snapshot returns the current state payload, for the HTTP GET endpoint.
func (r *Room) Snapshot() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}
