package room

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"sanguo-reversi-server/cards"
	"sanguo-reversi-server/config"
	"sanguo-reversi-server/game"
	"sanguo-reversi-server/gameerrors"
	"sanguo-reversi-server/wsutil"
)

// Phase is the room lifecycle state machine.
type Phase int

const (
	Open Phase = iota
	Full
	Playing
	Over
	Closed
)

// String returns the protocol string for a Phase.
func (p Phase) String() string {
	switch p {
	case Open:
		return "open"
	case Full:
		return "full"
	case Playing:
		return "playing"
	case Over:
		return "over"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Member is one connected participant of a room. Seat order is join order.
type Member struct {
	ID      string
	Name    string
	Faction cards.Faction
	// UserID is the authenticated identity, empty for guests.
	UserID string
	Ready  bool
	Bot    bool
	Send   chan []byte
}

// MatchSummary describes a finished match for the optional history store.
type MatchSummary struct {
	MatchID    string
	PlayerIDs  [2]string
	UserIDs    [2]string
	Names      [2]string
	WinnerSeat int
	HPLeft     [2]int
	Turns      int
}

// Room groups up to two players and, once both are ready, one Match. All
// event handling runs under the room's mutex, so a move and a disconnect for
// the same room can never interleave. The Room exclusively owns its Match,
// board, decks and hands; nothing is shared across rooms.
type Room struct {
	ID string

	mu      sync.Mutex
	members []*Member
	match   *game.Match
	matchID string
	phase   Phase

	cfg *config.Config

	// onClose removes the room from its registry; set at creation.
	onClose func(roomID string)

	// OnMatchEnd is called once per finished match; optional, may be nil.
	OnMatchEnd func(MatchSummary)
}

func newRoom(id string, cfg *config.Config, onClose func(string)) *Room {
	return &Room{ID: id, cfg: cfg, phase: Open, onClose: onClose}
}

// Phase returns the current lifecycle phase.
func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// MemberCount returns the number of joined members.
func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Join adds a member to the room. The joiner receives a room snapshot; the
// existing member is told who arrived.
func (r *Room) Join(m *Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == Closed {
		return gameerrors.ErrRoomNotFound
	}
	if len(r.members) >= 2 {
		return gameerrors.ErrRoomFull
	}
	r.members = append(r.members, m)
	if len(r.members) == 2 {
		r.phase = Full
	}

	r.sendTo(m, RoomJoinedMsg{Type: "room_joined", Room: r.snapshotLocked()})
	for _, other := range r.members {
		if other != m {
			r.sendTo(other, PlayerJoinedMsg{Type: "player_joined", Player: memberView(m)})
		}
	}
	slog.Info("player joined", "tag", "room", "room", r.ID, "player", m.Name, "members", len(r.members))
	return nil
}

// SelectFaction updates a member's faction. Rejected while a game is in
// progress; the new faction takes effect at the next deck construction.
func (r *Room) SelectFaction(playerID string, faction cards.Faction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == Playing {
		return gameerrors.ErrIllegalMove
	}
	m := r.memberLocked(playerID)
	if m == nil {
		return gameerrors.ErrNotConnected
	}
	m.Faction = faction
	return nil
}

// Ready marks a member as ready (entered the game view). When both members
// are ready the match starts; after a finished match the same signal from
// both members restarts with a fresh Match.
func (r *Room) Ready(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != Full && r.phase != Over {
		return gameerrors.ErrGameNotStarted
	}
	m := r.memberLocked(playerID)
	if m == nil {
		return gameerrors.ErrNotConnected
	}
	m.Ready = true

	for _, member := range r.members {
		if !member.Ready {
			return nil
		}
	}
	r.startMatchLocked()
	return nil
}

func (r *Room) startMatchLocked() {
	p0 := game.NewPlayer(r.members[0].ID, r.members[0].Name, r.members[0].Faction, r.cfg.InitialHP)
	p1 := game.NewPlayer(r.members[1].ID, r.members[1].Name, r.members[1].Faction, r.cfg.InitialHP)
	r.match = game.NewMatch(r.cfg, p0, p1)
	r.match.Start()
	r.matchID = uuid.NewString()
	r.phase = Playing
	for _, m := range r.members {
		m.Ready = false
	}

	slog.Info("match started", "tag", "room", "room", r.ID, "match", r.matchID,
		"p0", r.members[0].Name, "p1", r.members[1].Name)
	r.broadcastStateLocked("game_start")
}

// Move validates and applies a move for the given player, then broadcasts
// the canonical state to both members. The state broadcast reflects exactly
// this move and nothing after it.
func (r *Room) Move(playerID string, row, col int, cardID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.phase {
	case Open, Full:
		return gameerrors.ErrGameNotStarted
	case Over, Closed:
		return gameerrors.ErrGameAlreadyOver
	}
	seat := r.seatLocked(playerID)
	if seat < 0 {
		return gameerrors.ErrNotConnected
	}

	outcome, err := r.match.ApplyMove(seat, row, col, cardID)
	if err != nil {
		return err
	}

	r.broadcastStateLocked("state_update")

	if outcome.GameOver {
		r.phase = Over
		winner := r.match.Players[outcome.Winner]
		r.broadcastLocked(map[string]any{
			"type":       "game_over",
			"winnerId":   winner.ID,
			"winnerName": winner.Name,
		})
		slog.Info("game over", "tag", "room", "room", r.ID, "match", r.matchID,
			"winner", winner.Name, "turns", r.match.Turns)
		if r.OnMatchEnd != nil {
			r.OnMatchEnd(r.summaryLocked(outcome.Winner))
		}
	}
	return nil
}

// Leave closes the room for everyone: both disconnects and explicit leaves
// end the match with no reconnect path. The departing player is named in the
// player_left broadcast; everyone then gets room_closed.
func (r *Room) Leave(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == Closed {
		return
	}
	r.phase = Closed
	r.match = nil

	for _, m := range r.members {
		r.sendTo(m, map[string]any{"type": "player_left", "playerId": playerID})
		r.sendTo(m, map[string]any{"type": "room_closed"})
	}
	slog.Info("room closed", "tag", "room", "room", r.ID, "left", playerID)
	r.members = nil
	if r.onClose != nil {
		r.onClose(r.ID)
	}
}

// Members returns the current member views (for snapshots and tests).
func (r *Room) Members() []PlayerSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	views := make([]PlayerSnapshot, 0, len(r.members))
	for _, m := range r.members {
		views = append(views, memberView(m))
	}
	return views
}

func (r *Room) memberLocked(playerID string) *Member {
	for _, m := range r.members {
		if m.ID == playerID {
			return m
		}
	}
	return nil
}

func (r *Room) seatLocked(playerID string) int {
	for i, m := range r.members {
		if m.ID == playerID {
			return i
		}
	}
	return -1
}

func (r *Room) summaryLocked(winner int) MatchSummary {
	return MatchSummary{
		MatchID:    r.matchID,
		PlayerIDs:  [2]string{r.members[0].ID, r.members[1].ID},
		UserIDs:    [2]string{r.members[0].UserID, r.members[1].UserID},
		Names:      [2]string{r.members[0].Name, r.members[1].Name},
		WinnerSeat: winner,
		HPLeft:     [2]int{r.match.Players[0].HP, r.match.Players[1].HP},
		Turns:      r.match.Turns,
	}
}

// broadcastStateLocked sends each member their own view of the match state.
func (r *Room) broadcastStateLocked(msgType string) {
	for seat, m := range r.members {
		state := r.match.BuildStateForSeat(seat, msgType)
		r.sendTo(m, state)
	}
}

func (r *Room) broadcastLocked(msg any) {
	for _, m := range r.members {
		r.sendTo(m, msg)
	}
}

func (r *Room) sendTo(m *Member, msg any) {
	if m == nil || m.Send == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshaling room message", "tag", "room", "err", err)
		return
	}
	wsutil.SafeSend(m.Send, data)
}
