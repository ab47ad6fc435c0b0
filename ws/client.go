package ws

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"sanguo-reversi-server/auth"
	"sanguo-reversi-server/gameerrors"
	"sanguo-reversi-server/room"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Client is a middleman between the websocket connection and the room layer.
type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	ID     string
	Name   string
	UserID string
	Room   *room.Room
}

// ReadPump pumps messages from the websocket connection to the room layer.
// It runs in its own goroutine per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "tag", "ws", "err", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// WritePump pumps messages from the send channel to the websocket connection.
// It runs in its own goroutine per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	var envelope InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.sendError("Internal", "Invalid message format.")
		return
	}

	switch envelope.Type {
	case "auth":
		c.handleAuth(envelope.Raw)
	case "join":
		c.handleJoin(envelope.Raw)
	case "auto_match":
		c.handleAutoMatch(envelope.Raw)
	case "select_faction":
		c.handleSelectFaction(envelope.Raw)
	case "ready":
		c.handleReady()
	case "move":
		c.handleMove(envelope.Raw)
	case "leave":
		c.handleLeave()
	default:
		c.sendError("Internal", "Unknown message type: "+envelope.Type)
	}
}

func (c *Client) handleAuth(raw json.RawMessage) {
	var msg AuthMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Internal", "Invalid auth message.")
		return
	}
	if c.Hub.Config.AuthJWKSBaseURL == "" {
		c.sendError("Internal", "Auth is not configured on this server.")
		return
	}

	claims, err := auth.ValidateToken(c.Hub.Config.AuthJWKSBaseURL, msg.Token)
	if err != nil {
		c.sendError("Internal", "Invalid token.")
		return
	}
	c.UserID = auth.UserIDFromClaims(claims)

	reply := AuthenticatedMsg{Type: "authenticated", UserID: c.UserID, Name: auth.NameFromClaims(claims)}
	data, _ := json.Marshal(reply)
	c.trySend(data)
}

// validateIdentity checks the name and faction carried by join/auto_match.
func (c *Client) validateIdentity(name, faction string) bool {
	if c.Room != nil {
		c.sendError("Internal", "Already in a room.")
		return false
	}
	if len(name) < 1 || len(name) > c.Hub.Config.MaxNameLength {
		c.sendError("Internal", fmt.Sprintf("Name must be between 1 and %d characters.", c.Hub.Config.MaxNameLength))
		return false
	}
	if _, ok := room.ValidFaction(faction); !ok {
		c.sendError("Internal", "Unknown faction: "+faction)
		return false
	}
	return true
}

func (c *Client) newMember(name, faction string) *room.Member {
	f, _ := room.ValidFaction(faction)
	c.Name = name
	return &room.Member{
		ID:      c.ID,
		Name:    name,
		Faction: f,
		UserID:  c.UserID,
		Send:    c.Send,
	}
}

func (c *Client) handleJoin(raw json.RawMessage) {
	var msg JoinMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Internal", "Invalid join message.")
		return
	}
	if msg.RoomID == "" {
		c.sendError("RoomNotFound", "Missing room id.")
		return
	}
	if !c.validateIdentity(msg.Name, msg.Faction) {
		return
	}

	r, err := c.Hub.Registry.Join(msg.RoomID, c.newMember(msg.Name, msg.Faction))
	if err != nil {
		c.sendRoomError(err)
		return
	}
	c.Room = r
}

func (c *Client) handleAutoMatch(raw json.RawMessage) {
	var msg AutoMatchMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Internal", "Invalid auto_match message.")
		return
	}
	if !c.validateIdentity(msg.Name, msg.Faction) {
		return
	}

	r, err := c.Hub.Registry.AutoMatch(c.newMember(msg.Name, msg.Faction))
	if err != nil {
		c.sendRoomError(err)
		return
	}
	c.Room = r
}

func (c *Client) handleSelectFaction(raw json.RawMessage) {
	var msg SelectFactionMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Internal", "Invalid select_faction message.")
		return
	}
	if c.Room == nil {
		c.sendRoomError(gameerrors.ErrNotConnected)
		return
	}
	faction, ok := room.ValidFaction(msg.Faction)
	if !ok {
		c.sendError("Internal", "Unknown faction: "+msg.Faction)
		return
	}
	if err := c.Room.SelectFaction(c.ID, faction); err != nil {
		c.sendRoomError(err)
	}
}

func (c *Client) handleReady() {
	if c.Room == nil {
		c.sendRoomError(gameerrors.ErrNotConnected)
		return
	}
	if err := c.Room.Ready(c.ID); err != nil {
		c.sendRoomError(err)
	}
}

func (c *Client) handleMove(raw json.RawMessage) {
	var msg MoveMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Internal", "Invalid move message.")
		return
	}
	if c.Room == nil {
		c.sendRoomError(gameerrors.ErrNotConnected)
		return
	}
	if err := c.Room.Move(c.ID, msg.Row, msg.Col, msg.CardID); err != nil {
		c.sendRoomError(err)
	}
}

func (c *Client) handleLeave() {
	if c.Room == nil {
		c.sendRoomError(gameerrors.ErrNotConnected)
		return
	}
	c.Room.Leave(c.ID)
	c.Room = nil
}

// sendRoomError reports a room/game error to this client only.
func (c *Client) sendRoomError(err error) {
	c.sendError(gameerrors.Kind(err), capitalize(err.Error())+".")
}

func (c *Client) sendError(kind, message string) {
	msg := ErrorMsg{Type: "error", Kind: kind, Message: message}
	data, _ := json.Marshal(msg)
	c.trySend(data)
}

func (c *Client) trySend(data []byte) {
	select {
	case c.Send <- data:
	default:
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
