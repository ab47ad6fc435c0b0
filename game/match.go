package game

import (
	"sanguo-reversi-server/cards"
	"sanguo-reversi-server/config"
	"sanguo-reversi-server/gameerrors"
)

// Phase is the match state machine.
type Phase int

const (
	AwaitingBothReady Phase = iota
	Playing
	Over
)

// String returns the protocol string for a Phase.
func (p Phase) String() string {
	switch p {
	case AwaitingBothReady:
		return "awaiting_ready"
	case Playing:
		return "playing"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// Player is one side of a match. HP is mutated only by TakeDamage.
type Player struct {
	ID      string
	Name    string
	Faction cards.Faction
	HP      int
}

// NewPlayer creates a match player with full HP.
func NewPlayer(id, name string, faction cards.Faction, hp int) *Player {
	return &Player{ID: id, Name: name, Faction: faction, HP: hp}
}

// TakeDamage reduces HP, clamped at 0.
func (p *Player) TakeDamage(damage int) {
	p.HP -= damage
	if p.HP < 0 {
		p.HP = 0
	}
}

// Dead reports whether the player has no HP left.
func (p *Player) Dead() bool {
	return p.HP <= 0
}

// Match couples two players, their decks and hands, the board, and the turn
// pointer for one full game. A Match is exclusively owned by one room and
// must only be touched from that room's serialized event handling.
type Match struct {
	Board   *Board
	Players [2]*Player
	Decks   [2]*cards.Deck
	Hands   [2]*cards.Hand
	Current int
	Phase   Phase
	// Winner is the seat index of the winning player; -1 while undecided.
	Winner int
	// Turns counts successfully applied moves.
	Turns int

	cfg   *config.Config
	legal map[Coord]struct{}
}

// NewMatch builds a match for two players. Decks are constructed from each
// player's faction; the board, hands and turn state are set up by Start once
// both players have signaled ready.
func NewMatch(cfg *config.Config, p0, p1 *Player) *Match {
	return &Match{
		Players: [2]*Player{p0, p1},
		Decks: [2]*cards.Deck{
			cards.NewDeck(p0.Faction, cfg.DeckSize, cfg.MaxCopiesPerChar),
			cards.NewDeck(p1.Faction, cfg.DeckSize, cfg.MaxCopiesPerChar),
		},
		Hands: [2]*cards.Hand{
			cards.NewHand(cfg.HandCapacity),
			cards.NewHand(cfg.HandCapacity),
		},
		Phase:  AwaitingBothReady,
		Winner: -1,
		cfg:    cfg,
	}
}

// Start performs the AwaitingBothReady -> Playing transition: opening board,
// initial deal (both hands filled to capacity or until the deck runs out),
// first player to move, and that player's legal moves.
func (m *Match) Start() {
	if m.Phase != AwaitingBothReady {
		return
	}
	m.Board = NewBoard(m.cfg.BoardSize)
	for seat := 0; seat < 2; seat++ {
		for !m.Hands[seat].IsFull() {
			card, ok := m.Decks[seat].Draw()
			if !ok {
				break
			}
			m.Hands[seat].Add(card)
		}
	}
	m.Current = 0
	m.Phase = Playing
	m.legal = m.Board.LegalMoves(OwnerForSeat(m.Current))
}

// LegalMoves returns the derived legal-move set for the player to move.
// Empty outside the Playing phase.
func (m *Match) LegalMoves() map[Coord]struct{} {
	return m.legal
}

// MoveOutcome is the result of one applied move, for broadcasting.
type MoveOutcome struct {
	Result   *MoveResult
	GameOver bool
	// Winner is the winning seat when GameOver, else -1.
	Winner int
}

// ApplyMove validates and applies a move by the player in the given seat.
// Validation is checked-then-applied atomically: a rejected move never
// mutates board, hands, HP or the turn pointer.
func (m *Match) ApplyMove(seat, row, col int, cardID string) (*MoveOutcome, error) {
	switch m.Phase {
	case AwaitingBothReady:
		return nil, gameerrors.ErrGameNotStarted
	case Over:
		return nil, gameerrors.ErrGameAlreadyOver
	}
	if seat != m.Current {
		return nil, gameerrors.ErrNotYourTurn
	}
	card, ok := m.Hands[seat].Get(cardID)
	if !ok {
		return nil, gameerrors.ErrIllegalMove
	}
	if _, ok := m.legal[Coord{row, col}]; !ok {
		return nil, gameerrors.ErrIllegalMove
	}

	result, err := m.Board.ApplyMove(row, col, OwnerForSeat(seat), card)
	if err != nil {
		return nil, err
	}
	m.Hands[seat].Remove(cardID)
	m.Turns++

	opponent := m.Players[1-seat]
	opponent.TakeDamage(result.Damage)

	if opponent.Dead() {
		m.Phase = Over
		m.Winner = seat
		m.legal = nil
		return &MoveOutcome{Result: result, GameOver: true, Winner: seat}, nil
	}

	// Turn passes: refill the new current player's hand by exactly one card,
	// then recompute their legal moves.
	m.Current = 1 - seat
	if !m.Hands[m.Current].IsFull() {
		if card, ok := m.Decks[m.Current].Draw(); ok {
			m.Hands[m.Current].Add(card)
		}
	}
	m.legal = m.Board.LegalMoves(OwnerForSeat(m.Current))

	return &MoveOutcome{Result: result, Winner: -1}, nil
}
