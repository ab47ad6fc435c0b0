package cards

// Hand is a capacity-bounded sequence of card instances in insertion order.
type Hand struct {
	cards    []Card
	capacity int
}

// NewHand creates an empty hand with the given capacity.
func NewHand(capacity int) *Hand {
	return &Hand{
		cards:    make([]Card, 0, capacity),
		capacity: capacity,
	}
}

// Add appends a card to the hand. Returns false if the hand is full; the
// caller keeps the card (typically by not drawing it in the first place).
func (h *Hand) Add(card Card) bool {
	if len(h.cards) >= h.capacity {
		return false
	}
	h.cards = append(h.cards, card)
	return true
}

// Remove takes the card with the given instance ID out of the hand.
// Returns false if no such card is held.
func (h *Hand) Remove(id string) (Card, bool) {
	for i, c := range h.cards {
		if c.ID == id {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// Get returns the held card with the given instance ID without removing it.
func (h *Hand) Get(id string) (Card, bool) {
	for _, c := range h.cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// IsFull reports whether the hand is at capacity.
func (h *Hand) IsFull() bool {
	return len(h.cards) >= h.capacity
}

// Count returns the number of cards held.
func (h *Hand) Count() int {
	return len(h.cards)
}

// Capacity returns the hand's capacity.
func (h *Hand) Capacity() int {
	return h.capacity
}

// Cards returns a copy of the held cards in insertion order.
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}
