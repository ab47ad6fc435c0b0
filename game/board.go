package game

import (
	"sanguo-reversi-server/cards"
	"sanguo-reversi-server/gameerrors"
)

// Owner identifies who holds a board cell. The numeric values are part of
// the wire protocol (0 empty, 1 first seat, 2 second seat).
type Owner int

const (
	Empty Owner = iota
	PlayerA
	PlayerB
)

// String returns the protocol string for an Owner.
func (o Owner) String() string {
	switch o {
	case Empty:
		return "empty"
	case PlayerA:
		return "playerA"
	case PlayerB:
		return "playerB"
	default:
		return "unknown"
	}
}

// Opponent returns the other player. Calling it on Empty returns Empty.
func (o Owner) Opponent() Owner {
	switch o {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

// OwnerForSeat maps a seat index (0 or 1) to its board owner.
func OwnerForSeat(seat int) Owner {
	if seat == 0 {
		return PlayerA
	}
	return PlayerB
}

// Coord addresses one board cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell is one board square. Card is nil unless a piece with a character
// stands here; captured pieces lose their card.
type Cell struct {
	Owner Owner
	Card  *cards.Card
}

// Board is a fixed-size square grid of cells.
type Board struct {
	Size  int
	Cells [][]Cell
}

// directions are the 8 standard adjacency offsets.
var directions = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, 1}, {1, -1}, {-1, 1},
}

// NewBoard creates a board with the four-center-piece opening: the mover's
// pieces on the main diagonal, the opponent's on the anti-diagonal.
func NewBoard(size int) *Board {
	cells := make([][]Cell, size)
	for i := range cells {
		cells[i] = make([]Cell, size)
	}
	mid := size/2 - 1
	cells[mid][mid].Owner = PlayerA
	cells[mid+1][mid+1].Owner = PlayerA
	cells[mid][mid+1].Owner = PlayerB
	cells[mid+1][mid].Owner = PlayerB
	return &Board{Size: size, Cells: cells}
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.Size && col >= 0 && col < b.Size
}

// LegalMoves returns the set of cells where the given player may place a
// piece: empty cells reachable from one of the player's pieces by crossing
// one or more contiguous enemy pieces in a straight line. The set is derived
// state and must be recomputed whenever the player to move changes.
func (b *Board) LegalMoves(player Owner) map[Coord]struct{} {
	enemy := player.Opponent()
	legal := make(map[Coord]struct{})

	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Cells[row][col].Owner != player {
				continue
			}
			for _, dir := range directions {
				r, c := row+dir[0], col+dir[1]
				enemies := 0
				for b.inBounds(r, c) && b.Cells[r][c].Owner == enemy {
					enemies++
					r += dir[0]
					c += dir[1]
				}
				if enemies > 0 && b.inBounds(r, c) && b.Cells[r][c].Owner == Empty {
					legal[Coord{r, c}] = struct{}{}
				}
			}
		}
	}
	return legal
}

// MoveResult describes the outcome of one placement.
type MoveResult struct {
	// Damage is the placed card's attack plus every combo bonus triggered.
	Damage int
	// ComboBonus is the combo part of Damage (0 when no line closed on a
	// combo card).
	ComboBonus int
	// Flipped lists every enemy cell captured by this move.
	Flipped []Coord
}

// ComboHappened reports whether any closing card added bonus damage.
func (r *MoveResult) ComboHappened() bool {
	return r.ComboBonus > 0
}

// ApplyMove places card for player at (row, col), flips every enclosed enemy
// run and accumulates damage: the card's own attack plus the combo value of
// each closing card that actually capped a captured run. Flipped cells lose
// their character reference.
//
// The target must be a currently legal cell for player; a stale or invalid
// target returns ErrIllegalMove and leaves the board untouched.
func (b *Board) ApplyMove(row, col int, player Owner, card cards.Card) (*MoveResult, error) {
	if !b.inBounds(row, col) || b.Cells[row][col].Owner != Empty {
		return nil, gameerrors.ErrIllegalMove
	}

	enemy := player.Opponent()
	result := &MoveResult{Damage: card.Character.Attack}

	// First pass: find every direction that closes on an own piece across a
	// run of enemies. Nothing is mutated until we know the move is legal.
	type capture struct {
		run     []Coord
		closing Coord
	}
	var captures []capture
	for _, dir := range directions {
		r, c := row+dir[0], col+dir[1]
		var run []Coord
		for b.inBounds(r, c) && b.Cells[r][c].Owner == enemy {
			run = append(run, Coord{r, c})
			r += dir[0]
			c += dir[1]
		}
		if len(run) > 0 && b.inBounds(r, c) && b.Cells[r][c].Owner == player {
			captures = append(captures, capture{run: run, closing: Coord{r, c}})
		}
	}
	if len(captures) == 0 {
		return nil, gameerrors.ErrIllegalMove
	}

	b.Cells[row][col] = Cell{Owner: player, Card: &card}
	for _, capt := range captures {
		for _, coord := range capt.run {
			b.Cells[coord.Row][coord.Col] = Cell{Owner: player}
		}
		result.Flipped = append(result.Flipped, capt.run...)
		closingCell := b.Cells[capt.closing.Row][capt.closing.Col]
		if closingCell.Card != nil && closingCell.Card.Character.Combo > 0 {
			result.ComboBonus += closingCell.Card.Character.Combo
		}
	}
	result.Damage += result.ComboBonus

	return result, nil
}

// CountOwned returns the number of cells held by the given owner.
func (b *Board) CountOwned(o Owner) int {
	n := 0
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Cells[row][col].Owner == o {
				n++
			}
		}
	}
	return n
}
