package cards

// Faction is one of the three card pools a player can draw from.
type Faction string

const (
	Wei Faction = "wei"
	Shu Faction = "shu"
	Wu  Faction = "wu"
)

// Valid reports whether f is one of the three known factions.
func (f Faction) Valid() bool {
	return f == Wei || f == Shu || f == Wu
}

// Character is an immutable catalog entry. Attack is dealt when the card is
// placed; Combo is bonus damage dealt when the card's cell closes a capturing
// line (0 = no combo).
type Character struct {
	Name    string
	Attack  int
	Combo   int
	Title   string
	Faction Faction
}

// CatalogFor returns the static character list for a faction. The returned
// slice is shared reference data and must not be mutated.
func CatalogFor(f Faction) []Character {
	switch f {
	case Wei:
		return WeiCharacters
	case Shu:
		return ShuCharacters
	case Wu:
		return WuCharacters
	default:
		return nil
	}
}

// AllCharacters returns every character across all factions.
func AllCharacters() []Character {
	all := make([]Character, 0, len(WeiCharacters)+len(ShuCharacters)+len(WuCharacters))
	all = append(all, WeiCharacters...)
	all = append(all, ShuCharacters...)
	all = append(all, WuCharacters...)
	return all
}
