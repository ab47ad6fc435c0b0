package room

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"sanguo-reversi-server/cards"
	"sanguo-reversi-server/config"
)

// Registry is the process-wide room table: rooms are inserted on create and
// removed when they close. All core logic receives rooms through the
// registry; there is no ambient global state.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	cfg   *config.Config

	// OnMatchEnd is copied onto every created room; optional.
	OnMatchEnd func(MatchSummary)

	// AttachBot fills the second seat of a lone auto-matched room after
	// BotPairTimeoutSec; optional (nil disables bot pairing).
	AttachBot func(*Room)
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		cfg:   cfg,
	}
}

// Get returns the room with the given ID.
func (reg *Registry) Get(roomID string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rooms[roomID]
	return r, ok
}

// Count returns the number of live rooms.
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// Join adds a player to the room with the given ID, creating it when it does
// not exist yet (explicit join-by-id). Returns ErrRoomFull when the room
// already has two members.
func (reg *Registry) Join(roomID string, m *Member) (*Room, error) {
	r := reg.getOrCreate(roomID)
	if err := r.Join(m); err != nil {
		return nil, err
	}
	return r, nil
}

// AutoMatch joins the first room that still has a free seat and has not
// started playing, or creates a fresh room when none qualifies. The scan
// order is room-ID order: consistent, but no FIFO guarantee.
func (reg *Registry) AutoMatch(m *Member) (*Room, error) {
	for _, r := range reg.roomsSorted() {
		if r.joinable() {
			if err := r.Join(m); err == nil {
				return r, nil
			}
			// Lost the race for the last seat; keep scanning.
		}
	}

	r := reg.getOrCreate(uuid.NewString())
	if err := r.Join(m); err != nil {
		return nil, err
	}
	reg.scheduleBot(r)
	return r, nil
}

func (reg *Registry) getOrCreate(roomID string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if r, ok := reg.rooms[roomID]; ok {
		return r
	}
	r := newRoom(roomID, reg.cfg, reg.remove)
	r.OnMatchEnd = reg.OnMatchEnd
	reg.rooms[roomID] = r
	slog.Info("room created", "tag", "registry", "room", roomID, "rooms", len(reg.rooms))
	return r
}

// roomsSorted snapshots the room list outside any room mutex so the scan
// never holds the registry lock while touching a room.
func (reg *Registry) roomsSorted() []*Room {
	reg.mu.RLock()
	ids := make([]string, 0, len(reg.rooms))
	for id := range reg.rooms {
		ids = append(ids, id)
	}
	rooms := make([]*Room, 0, len(ids))
	sort.Strings(ids)
	for _, id := range ids {
		rooms = append(rooms, reg.rooms[id])
	}
	reg.mu.RUnlock()
	return rooms
}

func (r *Room) joinable() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase == Open && len(r.members) < 2
}

func (reg *Registry) remove(roomID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, roomID)
	slog.Info("room removed", "tag", "registry", "room", roomID, "rooms", len(reg.rooms))
}

// scheduleBot attaches a bot to the room if it is still waiting for an
// opponent after the configured timeout.
func (reg *Registry) scheduleBot(r *Room) {
	if reg.AttachBot == nil || reg.cfg.BotPairTimeoutSec <= 0 {
		return
	}
	go func() {
		time.Sleep(time.Duration(reg.cfg.BotPairTimeoutSec) * time.Second)
		if r.joinable() {
			reg.AttachBot(r)
		}
	}()
}

// Faction validation lives here so the ws layer stays a thin parser.
func ValidFaction(f string) (cards.Faction, bool) {
	faction := cards.Faction(f)
	return faction, faction.Valid()
}
