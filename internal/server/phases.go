package server

import (
	"errors"
	"log"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Room lifecycle:
//
//	lobby -> category-selection -> guessing -> results -> category-selection
//	                                                   -> game-over
//
// game-over is terminal. Every successful mutation broadcasts before the
// room lock is released.

// Join appends a player in any phase except game-over. Blank names are
// defaulted; join order is the picker rotation order.
func (r *Room) Join(name string, maxPlayers int) (Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Phase == phaseGameOver {
		return Player{}, errors.New("game is over")
	}
	if maxPlayers > 0 && len(r.Players) >= maxPlayers {
		return Player{}, errors.New("room is full")
	}

	player := Player{
		ID:    r.nextPlayerID,
		Name:  playerName(name, len(r.Players)),
		Token: uuid.NewString(),
	}
	r.nextPlayerID++
	r.Players = append(r.Players, player)
	r.broadcastStateLocked()
	return player, nil
}

// StartGame moves a lobby with at least one player into category selection
// and hands the first pick to the first player who joined.
func (r *Room) StartGame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Phase != phaseLobby {
		return errors.New("game already started")
	}
	if len(r.Players) == 0 {
		return errors.New("no players have joined")
	}
	r.PickerIndex = 0
	r.setPhaseLocked(phaseCategorySelection)
	r.broadcastStateLocked()
	return nil
}

// PickItem starts a round from the named category. When itemName is empty a
// random unused item is drawn. Picker rotation is deliberately not advanced
// here — the handler layer rotates only after a successful pick.
func (r *Room) PickItem(categoryName, itemName string) (string, Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Phase != phaseCategorySelection {
		return "", Item{}, errors.New("not selecting a category")
	}
	category := r.findCategoryLocked(categoryName)
	if category == nil || len(category.Items) == 0 {
		return "", Item{}, errors.New("category has no items left")
	}

	var item Item
	if itemName != "" {
		found := false
		for _, candidate := range category.Items {
			if candidate.Name == itemName {
				item = candidate
				found = true
				break
			}
		}
		if !found {
			return "", Item{}, errors.New("item not found in category")
		}
	} else {
		item = category.Items[rand.Intn(len(category.Items))]
	}

	r.SelectedCategory = category.Name
	current := item
	r.CurrentItem = &current
	r.Guesses = make(map[int]float64)
	r.setPhaseLocked(phaseGuessing)

	r.broadcastLocked(questionPayload(category.Name, item))
	r.broadcastStateLocked()
	return category.Name, item, nil
}

// AdvancePicker rotates the category pick to the next player in join order.
// Callers invoke it from the request layer after PickItem succeeds.
func (r *Room) AdvancePicker() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Players) == 0 {
		return
	}
	r.PickerIndex = (r.PickerIndex + 1) % len(r.Players)
	r.broadcastStateLocked()
}

// SubmitGuess records a guess for the current round, last write wins. Any
// unmet precondition — wrong phase, no current item, unknown player, or a
// non-finite value — is a silent no-op so stale or racing clients stay
// harmless. The returned bool only reports whether the guess was recorded.
func (r *Room) SubmitGuess(playerID int, guess float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Phase != phaseGuessing || r.CurrentItem == nil {
		return false
	}
	if !isFinite(guess) {
		return false
	}
	player := r.findPlayerLocked(playerID)
	if player == nil {
		return false
	}

	r.Guesses[playerID] = guess
	player.Voted = true
	player.LastGuess = floatPtr(guess)

	r.broadcastLocked(guessPayload(player.ID, player.Name, guess))
	r.broadcastStateLocked()
	return true
}

// CloseRound scores the current round, applies score deltas, retires the
// used item (pruning its category when empty) and moves to results.
func (r *Room) CloseRound() (RoundResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Phase != phaseGuessing || r.CurrentItem == nil {
		return RoundResult{}, errors.New("no round in progress")
	}

	result := scoreRound(len(r.RoundHistory)+1, r.Players, r.Guesses, r.SelectedCategory, *r.CurrentItem)
	applyScores(r.Players, result)
	for i := range r.Players {
		r.Players[i].Voted = false
	}
	r.removeItemLocked(r.SelectedCategory, r.CurrentItem.Name)
	r.Guesses = make(map[int]float64)
	r.RoundHistory = append(r.RoundHistory, result)
	r.setPhaseLocked(phaseResults)

	r.broadcastLocked(resultPayload(result))
	r.broadcastStateLocked()
	return result, nil
}

// Advance leaves the results phase: back to category selection while items
// remain, otherwise to game-over. Advancing a finished room is rejected and
// never mutates state.
func (r *Room) Advance() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Phase == phaseGameOver {
		return "", errors.New("game is over")
	}
	if r.Phase != phaseResults {
		return "", errors.New("round still in progress")
	}

	r.clearRoundLocked()
	if len(r.Categories) == 0 {
		r.setPhaseLocked(phaseGameOver)
	} else {
		r.setPhaseLocked(phaseCategorySelection)
	}
	r.broadcastStateLocked()
	return r.Phase, nil
}

// EndGame forces the terminal phase from anywhere. Ending a finished room is
// an idempotent no-op.
func (r *Room) EndGame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Phase == phaseGameOver {
		return
	}
	r.clearRoundLocked()
	r.setPhaseLocked(phaseGameOver)
	log.Printf("game over room_id=%s rounds=%d", r.ID, len(r.RoundHistory))
	r.broadcastStateLocked()
}

func (r *Room) setPhaseLocked(phase string) {
	r.Phase = phase
	r.PhaseStartedAt = timeNowUTC()
}

func (r *Room) clearRoundLocked() {
	r.SelectedCategory = ""
	r.CurrentItem = nil
	r.Guesses = make(map[int]float64)
}

func (r *Room) findPlayerLocked(playerID int) *Player {
	for i := range r.Players {
		if r.Players[i].ID == playerID {
			return &r.Players[i]
		}
	}
	return nil
}

func (r *Room) findCategoryLocked(name string) *Category {
	for i := range r.Categories {
		if r.Categories[i].Name == name {
			return &r.Categories[i]
		}
	}
	return nil
}

// removeItemLocked retires a used item so it can never be picked again, and
// prunes the category once its last item is gone.
func (r *Room) removeItemLocked(categoryName, itemName string) {
	for i := range r.Categories {
		if r.Categories[i].Name != categoryName {
			continue
		}
		items := r.Categories[i].Items
		for j := range items {
			if items[j].Name == itemName {
				r.Categories[i].Items = append(items[:j], items[j+1:]...)
				break
			}
		}
		if len(r.Categories[i].Items) == 0 {
			r.Categories = append(r.Categories[:i], r.Categories[i+1:]...)
		}
		return
	}
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
