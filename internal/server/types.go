package server

import (
	"sync"
	"time"
)

const (
	phaseLobby             = "lobby"
	phaseCategorySelection = "category-selection"
	phaseGuessing          = "guessing"
	phaseResults           = "results"
	phaseGameOver          = "game-over"
)

const (
	wsRolePlayer = "player"
	wsRoleHost   = "host"
)

type RoomSummary struct {
	ID       string
	JoinCode string
	Phase    string
	Players  int
}

// Room is one game session. All mutable state is guarded by mu; mutations
// and their broadcasts run to completion under the same lock, so subscribers
// observe events in mutation order.
type Room struct {
	ID             string
	JoinCode       string
	CreatedAt      time.Time
	Phase          string
	PhaseStartedAt time.Time

	Categories       []Category
	SelectedCategory string
	CurrentItem      *Item

	Players     []Player
	PickerIndex int
	Guesses     map[int]float64

	RoundHistory []RoundResult

	mu           sync.Mutex
	nextPlayerID int
	subscribers  map[Subscriber]struct{}

	// onBroadcast, when set, is invoked once per event fan-out. The server
	// uses it to feed the broadcast counter without the room knowing about
	// metrics.
	onBroadcast func()
}

type Player struct {
	ID        int
	Name      string
	Token     string
	Score     int
	Voted     bool
	LastGuess *float64
}

type Category struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

type Item struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url,omitempty"`
}

// PlayerDiff is one row of a round result, ordered best to worst.
// Diff is +Inf for players who never submitted a guess.
type PlayerDiff struct {
	PlayerID int
	Name     string
	Diff     float64
	Guess    *float64
}

type RoundResult struct {
	Round    int
	Category string
	Item     Item
	Winners  []int
	Losers   []int
	Diffs    []PlayerDiff
}
