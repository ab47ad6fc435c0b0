// Package bot fills the second seat of a room that found no human opponent.
// The bot drives the same room API as a real client and evaluates moves with
// the shared board engine, so its rules can never drift from the server's.
package bot

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"sanguo-reversi-server/cards"
	"sanguo-reversi-server/game"
	"sanguo-reversi-server/room"
)

var botNames = []string{"Sima Yi", "Lu Su", "Jia Xu", "Guo Jia", "Zhang Zhao"}

var factions = []cards.Faction{cards.Wei, cards.Shu, cards.Wu}

// Bot plays one seat of one room. It reads its own outbound message channel
// like a client reads its socket, and answers through the room's methods.
type Bot struct {
	ID     string
	Name   string
	member *room.Member
	room   *room.Room

	minDelay time.Duration
	maxDelay time.Duration
}

// Attach seats a bot in the room and starts its play loop. Fails with the
// room's join error if the seat was taken in the meantime.
func Attach(r *room.Room) error {
	return attach(r, 600*time.Millisecond, 1600*time.Millisecond)
}

func attach(r *room.Room, minDelay, maxDelay time.Duration) error {
	b := &Bot{
		ID:       "bot-" + uuid.NewString(),
		Name:     botNames[rand.Intn(len(botNames))],
		minDelay: minDelay,
		maxDelay: maxDelay,
		room:     r,
	}
	b.member = &room.Member{
		ID:      b.ID,
		Name:    b.Name,
		Faction: factions[rand.Intn(len(factions))],
		Bot:     true,
		Send:    make(chan []byte, 256),
	}
	if err := r.Join(b.member); err != nil {
		return err
	}
	slog.Info("bot attached", "tag", "bot", "room", r.ID, "name", b.Name)
	go b.run()
	return nil
}

func (b *Bot) run() {
	// Entering the room counts as entering the game view.
	b.pause()
	if err := b.room.Ready(b.ID); err != nil {
		slog.Warn("bot ready rejected", "tag", "bot", "room", b.room.ID, "err", err)
	}

	for data := range b.member.Send {
		var envelope struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			continue
		}
		switch envelope.Type {
		case "game_start", "state_update":
			var state game.StateMsg
			if err := json.Unmarshal(data, &state); err != nil {
				continue
			}
			if state.YourTurn && !state.Over {
				b.pause()
				b.playTurn(&state)
			}
		case "game_over":
			b.pause()
			if err := b.room.Ready(b.ID); err != nil {
				return
			}
		case "room_closed":
			return
		}
	}
}

func (b *Bot) playTurn(state *game.StateMsg) {
	row, col, cardID, ok := pickMove(state)
	if !ok {
		// No card or no legal cell: nothing to do, same as a stuck human.
		slog.Info("bot has no move", "tag", "bot", "room", b.room.ID)
		return
	}
	if err := b.room.Move(b.ID, row, col, cardID); err != nil {
		slog.Warn("bot move rejected", "tag", "bot", "room", b.room.ID, "err", err)
	}
}

func (b *Bot) pause() {
	if b.maxDelay <= b.minDelay {
		time.Sleep(b.minDelay)
		return
	}
	time.Sleep(b.minDelay + time.Duration(rand.Int63n(int64(b.maxDelay-b.minDelay))))
}

// pickMove greedily picks the (cell, card) pair with the highest total
// damage, simulating each candidate on a board rebuilt from the state view.
func pickMove(state *game.StateMsg) (row, col int, cardID string, ok bool) {
	if len(state.LegalMoves) == 0 || len(state.Hand) == 0 {
		return 0, 0, "", false
	}

	bestDamage := -1
	for _, coord := range state.LegalMoves {
		for _, cv := range state.Hand {
			board := boardFromView(state.Board)
			card := cards.Card{
				ID:        cv.ID,
				Character: cards.Character{Name: cv.Name, Attack: cv.Attack, Combo: cv.Combo},
			}
			result, err := board.ApplyMove(coord.Row, coord.Col, currentOwner(state), card)
			if err != nil {
				continue
			}
			if result.Damage > bestDamage {
				bestDamage = result.Damage
				row, col, cardID = coord.Row, coord.Col, cv.ID
				ok = true
			}
		}
	}
	return row, col, cardID, ok
}

func currentOwner(state *game.StateMsg) game.Owner {
	return game.OwnerForSeat(state.CurrentPlayerIndex)
}

// boardFromView reconstructs a Board from the client-facing grid. Cards on
// the board only matter for their combo values, which the view exposes.
func boardFromView(view [][]game.CellView) *game.Board {
	size := len(view)
	board := &game.Board{Size: size, Cells: make([][]game.Cell, size)}
	for r := 0; r < size; r++ {
		board.Cells[r] = make([]game.Cell, size)
		for c := 0; c < size; c++ {
			cell := game.Cell{Owner: game.Owner(view[r][c].Owner)}
			if cv := view[r][c].Card; cv != nil {
				cell.Card = &cards.Card{
					Character: cards.Character{Name: cv.Name, Attack: cv.Attack, Combo: cv.Combo},
				}
			}
			board.Cells[r][c] = cell
		}
	}
	return board
}
