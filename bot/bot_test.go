package bot

import (
	"encoding/json"
	"testing"
	"time"

	"sanguo-reversi-server/cards"
	"sanguo-reversi-server/config"
	"sanguo-reversi-server/game"
	"sanguo-reversi-server/room"
)

func testConfig() *config.Config {
	return &config.Config{
		BoardSize:        6,
		InitialHP:        120,
		DeckSize:         20,
		MaxCopiesPerChar: 2,
		HandCapacity:     5,
	}
}

// waitState reads messages from ch until a state message matching accept
// arrives or the timeout expires.
func waitState(t *testing.T, ch chan []byte, timeout time.Duration, accept func(*game.StateMsg) bool) *game.StateMsg {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case data := <-ch:
			var state game.StateMsg
			if err := json.Unmarshal(data, &state); err != nil {
				continue
			}
			if (state.Type == "game_start" || state.Type == "state_update") && accept(&state) {
				return &state
			}
		case <-deadline:
			t.Fatal("timed out waiting for state")
			return nil
		}
	}
}

func TestBotJoinsReadiesAndPlays(t *testing.T) {
	reg := room.NewRegistry(testConfig())
	human := &room.Member{
		ID:      "human",
		Name:    "Alice",
		Faction: cards.Shu,
		Send:    make(chan []byte, 256),
	}
	r, err := reg.Join("room-bot", human)
	if err != nil {
		t.Fatalf("join human: %v", err)
	}

	if err := attach(r, 0, 0); err != nil {
		t.Fatalf("attach bot: %v", err)
	}
	if err := r.Ready("human"); err != nil {
		t.Fatalf("human ready: %v", err)
	}

	// Bot readies on its own; the match starts with the human in seat 0.
	start := waitState(t, human.Send, 2*time.Second, func(s *game.StateMsg) bool {
		return s.Type == "game_start"
	})
	if !start.YourTurn {
		t.Fatal("expected human (seat 0) to move first")
	}

	// Human plays; the bot must answer with its own move, returning the
	// turn to the human with some HP lost on both sides.
	move := start.LegalMoves[0]
	if err := r.Move("human", move.Row, move.Col, start.Hand[0].ID); err != nil {
		t.Fatalf("human move: %v", err)
	}

	back := waitState(t, human.Send, 3*time.Second, func(s *game.StateMsg) bool {
		return s.YourTurn && s.CurrentPlayerIndex == 0
	})
	if back.You.HP >= 120 {
		t.Errorf("expected bot's move to deal damage, human HP still %d", back.You.HP)
	}
	if back.Opponent.HP >= 120 {
		t.Errorf("expected human's move to deal damage, bot HP still %d", back.Opponent.HP)
	}
}

func TestPickMovePrefersHighestDamage(t *testing.T) {
	// Hand holds a weak and a strong card; the greedy pick must take the
	// strong one on any cell.
	board := game.NewBoard(6)
	state := &game.StateMsg{
		Board:              game.BuildBoardView(board),
		CurrentPlayerIndex: 0,
		YourTurn:           true,
		Hand: []game.CardView{
			{ID: "weak", Name: "Deng Zhi", Attack: 13, Combo: 6},
			{ID: "strong", Name: "Guan Yu", Attack: 20, Combo: 8},
		},
		LegalMoves: []game.Coord{{Row: 1, Col: 3}, {Row: 2, Col: 4}},
	}

	_, _, cardID, ok := pickMove(state)
	if !ok {
		t.Fatal("expected a move")
	}
	if cardID != "strong" {
		t.Errorf("expected the strong card, got %q", cardID)
	}
}

func TestPickMoveCountsClosingCombo(t *testing.T) {
	// Two candidate cells: one closes on a combo card, one on a plain
	// piece. Same card either way, so the combo cell must win.
	board := &game.Board{Size: 6, Cells: make([][]game.Cell, 6)}
	for i := range board.Cells {
		board.Cells[i] = make([]game.Cell, 6)
	}
	combo := cards.Card{Character: cards.Character{Name: "Zhuge Liang", Attack: 12, Combo: 10}}
	board.Cells[0][0] = game.Cell{Owner: game.PlayerA, Card: &combo}
	board.Cells[0][1] = game.Cell{Owner: game.PlayerB}
	board.Cells[5][0] = game.Cell{Owner: game.PlayerA}
	board.Cells[5][1] = game.Cell{Owner: game.PlayerB}

	state := &game.StateMsg{
		Board:              game.BuildBoardView(board),
		CurrentPlayerIndex: 0,
		YourTurn:           true,
		Hand:               []game.CardView{{ID: "card", Name: "Liu Bei", Attack: 15, Combo: 5}},
		LegalMoves:         []game.Coord{{Row: 0, Col: 2}, {Row: 5, Col: 2}},
	}

	row, col, _, ok := pickMove(state)
	if !ok {
		t.Fatal("expected a move")
	}
	if row != 0 || col != 2 {
		t.Errorf("expected the combo-closing cell (0,2), got (%d,%d)", row, col)
	}
}

func TestPickMoveNoOptions(t *testing.T) {
	state := &game.StateMsg{
		Board:      game.BuildBoardView(game.NewBoard(6)),
		Hand:       nil,
		LegalMoves: []game.Coord{{Row: 1, Col: 3}},
	}
	if _, _, _, ok := pickMove(state); ok {
		t.Error("expected no move with an empty hand")
	}
}
