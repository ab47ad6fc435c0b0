package ws

import "encoding/json"

// InboundEnvelope is the generic envelope for all client-to-server messages.
// The Type field is used for routing; Raw holds the full JSON payload.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture the raw payload.
func (e *InboundEnvelope) UnmarshalJSON(data []byte) error {
	// Unmarshal just the type field
	type typeOnly struct {
		Type string `json:"type"`
	}
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	e.Type = t.Type
	e.Raw = json.RawMessage(data)
	return nil
}

// --- Client-to-Server message payloads ---

// AuthMsg optionally binds a stable user identity via a JWT. Guests skip it.
type AuthMsg struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// JoinMsg joins (or creates) a specific room by ID.
type JoinMsg struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId"`
	Name    string `json:"name"`
	Faction string `json:"faction"`
}

// AutoMatchMsg joins the first waiting room, or creates one.
type AutoMatchMsg struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Faction string `json:"faction"`
}

// SelectFactionMsg changes the player's faction before deck construction.
type SelectFactionMsg struct {
	Type    string `json:"type"`
	Faction string `json:"faction"`
}

// ReadyMsg signals the player has entered the game view.
type ReadyMsg struct {
	Type string `json:"type"`
}

// MoveMsg places a card from the player's hand on the board.
type MoveMsg struct {
	Type   string `json:"type"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	CardID string `json:"cardId"`
}

// LeaveMsg leaves (and thereby closes) the current room.
type LeaveMsg struct {
	Type string `json:"type"`
}

// --- Server-to-Client messages ---

// ErrorMsg is sent to the offending request's sender only. Kind is a stable
// machine-readable error class; Message is human-readable.
type ErrorMsg struct {
	Type    string `json:"type"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// AuthenticatedMsg confirms a successful auth message.
type AuthenticatedMsg struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
}
