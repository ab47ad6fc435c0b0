package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"sanguo-reversi-server/config"
	"sanguo-reversi-server/room"
	"sanguo-reversi-server/ws"
)

// setupTestServer creates a test HTTP server with the full game server stack.
func setupTestServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()

	cfg := &config.Config{
		BoardSize:         6,
		InitialHP:         120,
		DeckSize:          20,
		MaxCopiesPerChar:  2,
		HandCapacity:      5,
		MaxNameLength:     24,
		WSPort:            0, // not used when using httptest
		BotPairTimeoutSec: 0, // no bot pairing in tests
	}

	registry := room.NewRegistry(cfg)
	hub := ws.NewHub(cfg, registry)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)

	server := httptest.NewServer(mux)
	cleanup := func() {
		server.Close()
		cancel()
	}
	return server, cleanup
}

// connectWS creates a WebSocket connection to the test server.
func connectWS(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	return conn
}

// readMsg reads a JSON message from the WebSocket and returns it as a map.
func readMsg(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read message: %v", err)
	}
	var msg map[string]interface{}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("failed to unmarshal: %v\ndata: %s", err, string(data))
	}
	return msg
}

// sendMsg sends a JSON message over the WebSocket.
func sendMsg(t *testing.T, conn *websocket.Conn, msg interface{}) {
	t.Helper()
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
}

func TestIntegration_JoinReadyAndFirstMove(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	conn1 := connectWS(t, server)
	defer conn1.Close()
	conn2 := connectWS(t, server)
	defer conn2.Close()

	// Player 1 joins a named room
	sendMsg(t, conn1, map[string]string{"type": "join", "roomId": "itest", "name": "Alice", "faction": "shu"})
	msg1 := readMsg(t, conn1)
	if msg1["type"] != "room_joined" {
		t.Fatalf("expected room_joined, got %v", msg1["type"])
	}

	// Player 2 joins the same room; player 1 is notified
	sendMsg(t, conn2, map[string]string{"type": "join", "roomId": "itest", "name": "Bob", "faction": "wei"})
	msg2 := readMsg(t, conn2)
	if msg2["type"] != "room_joined" {
		t.Fatalf("expected room_joined, got %v", msg2["type"])
	}
	notify := readMsg(t, conn1)
	if notify["type"] != "player_joined" {
		t.Fatalf("expected player_joined for player 1, got %v", notify["type"])
	}

	// Both ready up; both should receive game_start
	sendMsg(t, conn1, map[string]string{"type": "ready"})
	sendMsg(t, conn2, map[string]string{"type": "ready"})

	gs1 := readMsg(t, conn1)
	if gs1["type"] != "game_start" {
		t.Fatalf("expected game_start for player 1, got %v", gs1["type"])
	}
	gs2 := readMsg(t, conn2)
	if gs2["type"] != "game_start" {
		t.Fatalf("expected game_start for player 2, got %v", gs2["type"])
	}

	// Board is 6x6, hands hold 5 cards, exactly one player has the turn
	board := gs1["board"].([]interface{})
	if len(board) != 6 {
		t.Errorf("expected 6 board rows, got %d", len(board))
	}
	hand1 := gs1["hand"].([]interface{})
	if len(hand1) != 5 {
		t.Errorf("expected 5 cards in hand, got %d", len(hand1))
	}
	p1Turn := gs1["yourTurn"].(bool)
	p2Turn := gs2["yourTurn"].(bool)
	if p1Turn == p2Turn {
		t.Fatal("exactly one player should have yourTurn=true")
	}

	// The current player plays their first legal move; both sides see the
	// defender lose HP.
	mover, waiter, state := conn1, conn2, gs1
	if p2Turn {
		mover, waiter, state = conn2, conn1, gs2
	}
	legal := state["legalMoves"].([]interface{})[0].(map[string]interface{})
	card := state["hand"].([]interface{})[0].(map[string]interface{})
	sendMsg(t, mover, map[string]interface{}{
		"type":   "move",
		"row":    int(legal["row"].(float64)),
		"col":    int(legal["col"].(float64)),
		"cardId": card["id"].(string),
	})

	upMover := readMsg(t, mover)
	if upMover["type"] != "state_update" {
		t.Fatalf("expected state_update for mover, got %v", upMover["type"])
	}
	upWaiter := readMsg(t, waiter)
	if upWaiter["type"] != "state_update" {
		t.Fatalf("expected state_update for waiter, got %v", upWaiter["type"])
	}
	moverView := upMover["opponent"].(map[string]interface{})
	waiterView := upWaiter["you"].(map[string]interface{})
	if moverView["hp"].(float64) >= 120 {
		t.Errorf("defender should have lost HP, got %v", moverView["hp"])
	}
	if moverView["hp"] != waiterView["hp"] {
		t.Errorf("both views must agree on defender HP: %v vs %v", moverView["hp"], waiterView["hp"])
	}
	if !upWaiter["yourTurn"].(bool) {
		t.Error("turn should have passed to the other player")
	}
}

func TestIntegration_AutoMatchPairsPlayers(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	conn1 := connectWS(t, server)
	defer conn1.Close()
	conn2 := connectWS(t, server)
	defer conn2.Close()

	sendMsg(t, conn1, map[string]string{"type": "auto_match", "name": "Alice", "faction": "wu"})
	msg1 := readMsg(t, conn1)
	if msg1["type"] != "room_joined" {
		t.Fatalf("expected room_joined, got %v", msg1["type"])
	}

	sendMsg(t, conn2, map[string]string{"type": "auto_match", "name": "Bob", "faction": "shu"})
	msg2 := readMsg(t, conn2)
	if msg2["type"] != "room_joined" {
		t.Fatalf("expected room_joined, got %v", msg2["type"])
	}

	// Same room: player 1 sees player 2 arrive
	notify := readMsg(t, conn1)
	if notify["type"] != "player_joined" {
		t.Fatalf("expected player_joined, got %v", notify["type"])
	}
	player := notify["player"].(map[string]interface{})
	if player["name"] != "Bob" {
		t.Errorf("expected Bob to arrive, got %v", player["name"])
	}
}

func TestIntegration_DisconnectClosesRoom(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	conn1 := connectWS(t, server)
	defer conn1.Close()
	conn2 := connectWS(t, server)

	sendMsg(t, conn1, map[string]string{"type": "join", "roomId": "itest-dc", "name": "Alice", "faction": "shu"})
	readMsg(t, conn1) // room_joined
	sendMsg(t, conn2, map[string]string{"type": "join", "roomId": "itest-dc", "name": "Bob", "faction": "wei"})
	readMsg(t, conn2) // room_joined
	readMsg(t, conn1) // player_joined

	// Player 2 drops; player 1's room closes with no reconnection window.
	conn2.Close()

	left := readMsg(t, conn1)
	if left["type"] != "player_left" {
		t.Fatalf("expected player_left, got %v", left["type"])
	}
	closed := readMsg(t, conn1)
	if closed["type"] != "room_closed" {
		t.Fatalf("expected room_closed, got %v", closed["type"])
	}
}

func TestIntegration_ErrorOnInvalidName(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	conn := connectWS(t, server)
	defer conn.Close()

	sendMsg(t, conn, map[string]string{"type": "join", "roomId": "itest-err", "name": "", "faction": "shu"})
	msg := readMsg(t, conn)
	if msg["type"] != "error" {
		t.Fatalf("expected error for empty name, got %v", msg["type"])
	}
}

func TestIntegration_ErrorOnUnknownFaction(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	conn := connectWS(t, server)
	defer conn.Close()

	sendMsg(t, conn, map[string]string{"type": "join", "roomId": "itest-err", "name": "Alice", "faction": "jin"})
	msg := readMsg(t, conn)
	if msg["type"] != "error" {
		t.Fatalf("expected error for unknown faction, got %v", msg["type"])
	}
}

func TestIntegration_ErrorOnMoveBeforeStart(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	conn := connectWS(t, server)
	defer conn.Close()

	sendMsg(t, conn, map[string]string{"type": "join", "roomId": "itest-early", "name": "Alice", "faction": "shu"})
	readMsg(t, conn) // room_joined

	sendMsg(t, conn, map[string]interface{}{"type": "move", "row": 1, "col": 3, "cardId": "x"})
	msg := readMsg(t, conn)
	if msg["type"] != "error" {
		t.Fatalf("expected error for move before start, got %v", msg["type"])
	}
	if msg["kind"] != "GameNotStarted" {
		t.Errorf("expected kind GameNotStarted, got %v", msg["kind"])
	}
}
