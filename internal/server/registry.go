package server

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Registry is the process-wide map of live rooms. It only guards the map
// itself; each Room carries its own lock, so operations on unrelated rooms
// never serialize behind one another.
type Registry struct {
	mu     sync.RWMutex
	nextID int
	rooms  map[string]*Room

	// onBroadcast is copied into every room it creates; see Room.onBroadcast.
	onBroadcast func()
}

func NewRegistry() *Registry {
	return &Registry{
		nextID: 1,
		rooms:  make(map[string]*Room),
	}
}

// CreateRoom allocates a room in the lobby phase. An empty category list
// falls back to the built-in catalog.
func (reg *Registry) CreateRoom(categories []Category) *Room {
	if len(categories) == 0 {
		categories = defaultCatalog()
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	id := fmt.Sprintf("room-%d", reg.nextID)
	reg.nextID++
	room := &Room{
		ID:             id,
		JoinCode:       newJoinCode(),
		CreatedAt:      timeNowUTC(),
		Phase:          phaseLobby,
		PhaseStartedAt: timeNowUTC(),
		Categories:     categories,
		Guesses:        make(map[int]float64),
		nextPlayerID:   1,
		subscribers:    make(map[Subscriber]struct{}),
		onBroadcast:    reg.onBroadcast,
	}
	reg.rooms[id] = room
	return room
}

func (reg *Registry) GetRoom(id string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[id]
	return room, ok
}

func (reg *Registry) FindRoomByJoinCode(code string) (*Room, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	for _, room := range reg.rooms {
		if room.JoinCode == code {
			return room, true
		}
	}
	return nil, false
}

// Resolve looks a room up by ID first, then by join code, so phones can use
// the short code printed on the host display.
func (reg *Registry) Resolve(idOrCode string) (*Room, bool) {
	if room, ok := reg.GetRoom(idOrCode); ok {
		return room, true
	}
	return reg.FindRoomByJoinCode(idOrCode)
}

func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

func (reg *Registry) ListRoomSummaries() []RoomSummary {
	reg.mu.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.RUnlock()

	list := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		room.mu.Lock()
		list = append(list, RoomSummary{
			ID:       room.ID,
			JoinCode: room.JoinCode,
			Phase:    room.Phase,
			Players:  len(room.Players),
		})
		room.mu.Unlock()
	}
	sort.Slice(list, func(i, j int) bool {
		return roomSortKey(list[i].ID) < roomSortKey(list[j].ID)
	})
	return list
}

func roomSortKey(id string) int {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return 0
	}
	value, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return value
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
