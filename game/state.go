package game

import (
	"sort"

	"sanguo-reversi-server/cards"
)

// CardView is the client-facing representation of a card. ID is only set for
// cards in the viewing player's own hand; board cards never expose instance
// IDs.
type CardView struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Attack  int    `json:"attack"`
	Combo   int    `json:"combo"`
	Title   string `json:"title,omitempty"`
	Faction string `json:"faction"`
}

// CellView is the client-facing representation of a board cell.
type CellView struct {
	Owner int       `json:"owner"`
	Card  *CardView `json:"card,omitempty"`
}

// PlayerView is the client-facing representation of a player.
type PlayerView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	HP   int    `json:"hp"`
}

// StateMsg is the canonical match state built per seat. Board, players, turn
// and over flag are identical for both seats; Hand, DeckCount and LegalMoves
// are private to the receiving player and never describe the opponent.
type StateMsg struct {
	Type               string       `json:"type"`
	Board              [][]CellView `json:"board"`
	You                PlayerView   `json:"you"`
	Opponent           PlayerView   `json:"opponent"`
	CurrentPlayerIndex int          `json:"currentPlayerIndex"`
	YourTurn           bool         `json:"yourTurn"`
	Over               bool         `json:"over"`
	WinnerID           string       `json:"winnerId,omitempty"`
	Hand               []CardView   `json:"hand"`
	DeckCount          int          `json:"deckCount"`
	LegalMoves         []Coord      `json:"legalMoves,omitempty"`
}

func buildCardView(c *cards.Card, includeID bool) *CardView {
	if c == nil {
		return nil
	}
	view := &CardView{
		Name:    c.Character.Name,
		Attack:  c.Character.Attack,
		Combo:   c.Character.Combo,
		Title:   c.Character.Title,
		Faction: string(c.Faction),
	}
	if includeID {
		view.ID = c.ID
	}
	return view
}

// BuildBoardView constructs the client-facing board grid.
func BuildBoardView(board *Board) [][]CellView {
	if board == nil {
		return nil
	}
	rows := make([][]CellView, board.Size)
	for r := 0; r < board.Size; r++ {
		rows[r] = make([]CellView, board.Size)
		for c := 0; c < board.Size; c++ {
			cell := board.Cells[r][c]
			rows[r][c] = CellView{
				Owner: int(cell.Owner),
				Card:  buildCardView(cell.Card, false),
			}
		}
	}
	return rows
}

// BuildPlayerView creates a PlayerView from a Player.
func BuildPlayerView(p *Player) PlayerView {
	return PlayerView{ID: p.ID, Name: p.Name, HP: p.HP}
}

// BuildStateForSeat returns the match state view for the given seat (0 or 1).
// msgType is the outbound message type ("game_start" or "state_update").
func (m *Match) BuildStateForSeat(seat int, msgType string) StateMsg {
	opponent := 1 - seat

	hand := make([]CardView, 0, m.Hands[seat].Count())
	for _, c := range m.Hands[seat].Cards() {
		hand = append(hand, *buildCardView(&c, true))
	}

	state := StateMsg{
		Type:               msgType,
		Board:              BuildBoardView(m.Board),
		You:                BuildPlayerView(m.Players[seat]),
		Opponent:           BuildPlayerView(m.Players[opponent]),
		CurrentPlayerIndex: m.Current,
		YourTurn:           m.Phase == Playing && seat == m.Current,
		Over:               m.Phase == Over,
		Hand:               hand,
		DeckCount:          m.Decks[seat].Remaining(),
	}
	if m.Phase == Over && m.Winner >= 0 {
		state.WinnerID = m.Players[m.Winner].ID
	}
	if state.YourTurn {
		moves := make([]Coord, 0, len(m.legal))
		for coord := range m.legal {
			moves = append(moves, coord)
		}
		// Map iteration order is random; sort so broadcasts are stable.
		sort.Slice(moves, func(i, j int) bool {
			if moves[i].Row != moves[j].Row {
				return moves[i].Row < moves[j].Row
			}
			return moves[i].Col < moves[j].Col
		})
		state.LegalMoves = moves
	}
	return state
}
