package cards

import (
	"testing"
)

func TestNewDeckFullCatalog(t *testing.T) {
	// Shu has 20 characters, so a 20-card deck holds exactly one copy each.
	deck := NewDeck(Shu, 20, 2)

	if deck.Remaining() != 20 {
		t.Fatalf("expected 20 cards, got %d", deck.Remaining())
	}

	seen := make(map[string]int)
	ids := make(map[string]bool)
	for {
		card, ok := deck.Draw()
		if !ok {
			break
		}
		seen[card.Character.Name]++
		if ids[card.ID] {
			t.Errorf("duplicate card instance id %q", card.ID)
		}
		ids[card.ID] = true
		if card.Faction != Shu {
			t.Errorf("expected faction shu, got %q", card.Faction)
		}
	}

	if len(seen) != 20 {
		t.Errorf("expected 20 distinct characters, got %d", len(seen))
	}
	for name, count := range seen {
		if count != 1 {
			t.Errorf("character %q has %d copies, expected 1", name, count)
		}
	}
}

func TestNewDeckSmallCatalogCapsCopies(t *testing.T) {
	// Wei has 5 characters; with a copy cap of 2 the deck cannot reach 20.
	deck := NewDeck(Wei, 20, 2)

	if deck.Remaining() != 10 {
		t.Fatalf("expected 10 cards (5 characters x 2 copies), got %d", deck.Remaining())
	}

	seen := make(map[string]int)
	for {
		card, ok := deck.Draw()
		if !ok {
			break
		}
		seen[card.Character.Name]++
	}
	for name, count := range seen {
		if count != 2 {
			t.Errorf("character %q has %d copies, expected 2", name, count)
		}
	}
}

func TestDrawDecrementsByOne(t *testing.T) {
	deck := NewDeck(Wu, 20, 2)

	before := deck.Remaining()
	for before > 0 {
		_, ok := deck.Draw()
		if !ok {
			t.Fatalf("draw failed with %d cards remaining", before)
		}
		after := deck.Remaining()
		if after != before-1 {
			t.Fatalf("expected remaining %d after draw, got %d", before-1, after)
		}
		before = after
	}
}

func TestDrawFromEmptyDeck(t *testing.T) {
	deck := &Deck{}

	card, ok := deck.Draw()
	if ok {
		t.Errorf("expected draw from empty deck to fail, got card %+v", card)
	}
	if deck.Remaining() != 0 {
		t.Errorf("expected empty deck to stay empty, got %d", deck.Remaining())
	}
}

func TestNewDeckUnknownFaction(t *testing.T) {
	deck := NewDeck(Faction("jin"), 20, 2)
	if deck.Remaining() != 0 {
		t.Errorf("expected empty deck for unknown faction, got %d cards", deck.Remaining())
	}
}

func TestCatalogAttackAndComboNonNegative(t *testing.T) {
	for _, ch := range AllCharacters() {
		if ch.Attack < 0 {
			t.Errorf("character %q has negative attack %d", ch.Name, ch.Attack)
		}
		if ch.Combo < 0 {
			t.Errorf("character %q has negative combo %d", ch.Name, ch.Combo)
		}
		if !ch.Faction.Valid() {
			t.Errorf("character %q has invalid faction %q", ch.Name, ch.Faction)
		}
	}
}
