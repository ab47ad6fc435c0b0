package cards

import (
	"math/rand"

	"github.com/google/uuid"
)

// Card is one physical copy of a character. Two copies of the same character
// are distinct instances with distinct IDs.
type Card struct {
	ID        string    `json:"id"`
	Character Character `json:"character"`
	Faction   Faction   `json:"faction"`
}

// Deck is a shuffled stack of card instances owned by one player for one
// match. It is built once at match start and mutated only by Draw.
type Deck struct {
	cards []Card
}

// NewDeck builds a deck from a faction's catalog. Each character gets up to
// maxCopies instances; copy counts are spread so the deck reaches targetSize
// when the catalog allows it. A faction with too few characters yields a
// smaller deck (maxCopies each) rather than exceeding the copy cap.
func NewDeck(faction Faction, targetSize, maxCopies int) *Deck {
	catalog := CatalogFor(faction)
	deck := &Deck{cards: make([]Card, 0, targetSize)}

	remaining := targetSize
	for i, ch := range catalog {
		if remaining <= 0 {
			break
		}
		count := (remaining + len(catalog) - i - 1) / (len(catalog) - i) // ceil
		if count > maxCopies {
			count = maxCopies
		}
		for c := 0; c < count; c++ {
			deck.cards = append(deck.cards, Card{
				ID:        uuid.NewString(),
				Character: ch,
				Faction:   faction,
			})
		}
		remaining -= count
	}

	deck.shuffle()
	return deck
}

// shuffle applies a uniform Fisher–Yates permutation.
func (d *Deck) shuffle() {
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card (the tail of the shuffled order).
// Returns false when the deck is empty; the deck is left unchanged.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
