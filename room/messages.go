package room

// PlayerSnapshot is the client-facing view of a room member.
type PlayerSnapshot struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Faction string `json:"faction"`
	Ready   bool   `json:"ready"`
	Bot     bool   `json:"bot,omitempty"`
}

// Snapshot is the client-facing view of a room.
type Snapshot struct {
	ID         string           `json:"id"`
	Phase      string           `json:"phase"`
	MaxPlayers int              `json:"maxPlayers"`
	Players    []PlayerSnapshot `json:"players"`
}

// RoomJoinedMsg confirms a successful join to the joining player.
type RoomJoinedMsg struct {
	Type string   `json:"type"`
	Room Snapshot `json:"room"`
}

// PlayerJoinedMsg tells an existing member who arrived.
type PlayerJoinedMsg struct {
	Type   string         `json:"type"`
	Player PlayerSnapshot `json:"player"`
}

func memberView(m *Member) PlayerSnapshot {
	return PlayerSnapshot{
		ID:      m.ID,
		Name:    m.Name,
		Faction: string(m.Faction),
		Ready:   m.Ready,
		Bot:     m.Bot,
	}
}

func (r *Room) snapshotLocked() Snapshot {
	players := make([]PlayerSnapshot, 0, len(r.members))
	for _, m := range r.members {
		players = append(players, memberView(m))
	}
	return Snapshot{
		ID:         r.ID,
		Phase:      r.phase.String(),
		MaxPlayers: 2,
		Players:    players,
	}
}

// Snapshot returns the current room snapshot.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}
