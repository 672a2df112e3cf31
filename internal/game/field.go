package game

import "fmt"

// Location names where a card currently sits for its owner.
type Location int

const (
	LocationNone Location = iota
	LocationHand
	LocationRow
	LocationGraveyard
)

// Field tracks card membership for one player: an ordered hand, three
// ordered rows (append-on-play) and an ordered graveyard. A card is in
// exactly one of those at any time; the field owns membership only; power
// changes live in the Ledger.
type Field struct {
	hand      []Card
	rows      [RowCount][]Card
	graveyard []Card
}

func NewField() *Field {
	return &Field{}
}

// AddToHand appends a card to the hand. Adding an id the field already
// tracks anywhere breaks the single-location invariant and is refused.
func (f *Field) AddToHand(c Card) error {
	if loc, _ := f.Locate(c.ID); loc != LocationNone {
		return &InvariantError{Detail: fmt.Sprintf("card %s already tracked by this field", c.ID)}
	}
	f.hand = append(f.hand, c)
	return nil
}

// Hand returns a copy of the hand in order.
func (f *Field) Hand() []Card {
	out := make([]Card, len(f.hand))
	copy(out, f.hand)
	return out
}

func (f *Field) HandSize() int {
	return len(f.hand)
}

// HandCard returns the card with the given id if it is in hand.
func (f *Field) HandCard(cardID string) (Card, bool) {
	for _, c := range f.hand {
		if c.ID == cardID {
			return c, true
		}
	}
	return Card{}, false
}

// PlaceCard moves a card from the hand onto a row. It fails without
// mutation when the card is not in hand or the row is invalid; a card
// already on a row is reported as such.
func (f *Field) PlaceCard(cardID string, row Row) (Card, error) {
	if !row.Valid() {
		return Card{}, ErrInvalidRow
	}
	for i, c := range f.hand {
		if c.ID == cardID {
			f.hand = append(f.hand[:i], f.hand[i+1:]...)
			f.rows[row] = append(f.rows[row], c)
			return c, nil
		}
	}
	if loc, _ := f.Locate(cardID); loc == LocationRow {
		return Card{}, ErrCardOnField
	}
	return Card{}, ErrCardNotInHand
}

// RemoveFromRow moves a card from whatever row holds it to the graveyard.
// Used on death effects.
func (f *Field) RemoveFromRow(cardID string) (Card, error) {
	for r := RowMelee; r <= RowSiege; r++ {
		for i, c := range f.rows[r] {
			if c.ID == cardID {
				f.rows[r] = append(f.rows[r][:i], f.rows[r][i+1:]...)
				f.graveyard = append(f.graveyard, c)
				return c, nil
			}
		}
	}
	return Card{}, fmt.Errorf("card %s not on any row", cardID)
}

// Discard moves a card from the hand to the graveyard.
func (f *Field) Discard(cardID string) (Card, error) {
	for i, c := range f.hand {
		if c.ID == cardID {
			f.hand = append(f.hand[:i], f.hand[i+1:]...)
			f.graveyard = append(f.graveyard, c)
			return c, nil
		}
	}
	return Card{}, ErrCardNotInHand
}

// ClearRows sweeps every row card into the graveyard, preserving play
// order. Called at round end; hands are untouched.
func (f *Field) ClearRows() {
	for r := RowMelee; r <= RowSiege; r++ {
		f.graveyard = append(f.graveyard, f.rows[r]...)
		f.rows[r] = nil
	}
}

// RowCards returns the cards on one row in play order.
func (f *Field) RowCards(row Row) []Card {
	if !row.Valid() {
		return nil
	}
	out := make([]Card, len(f.rows[row]))
	copy(out, f.rows[row])
	return out
}

// AllFieldCards returns every card on this player's rows, melee then ranged
// then siege. It never includes the opponent's cards.
func (f *Field) AllFieldCards() []Card {
	var out []Card
	for r := RowMelee; r <= RowSiege; r++ {
		out = append(out, f.rows[r]...)
	}
	return out
}

// RowOf returns which row holds the card.
func (f *Field) RowOf(cardID string) (Row, bool) {
	for r := RowMelee; r <= RowSiege; r++ {
		for _, c := range f.rows[r] {
			if c.ID == cardID {
				return r, true
			}
		}
	}
	return 0, false
}

// Graveyard returns a copy of the graveyard in order.
func (f *Field) Graveyard() []Card {
	out := make([]Card, len(f.graveyard))
	copy(out, f.graveyard)
	return out
}

func (f *Field) GraveyardSize() int {
	return len(f.graveyard)
}

// Locate reports where the card currently sits. The second result counts
// how many locations track the id; anything above one is an invariant
// violation.
func (f *Field) Locate(cardID string) (Location, int) {
	loc, hits := LocationNone, 0
	for _, c := range f.hand {
		if c.ID == cardID {
			loc, hits = LocationHand, hits+1
		}
	}
	for r := RowMelee; r <= RowSiege; r++ {
		for _, c := range f.rows[r] {
			if c.ID == cardID {
				loc, hits = LocationRow, hits+1
			}
		}
	}
	for _, c := range f.graveyard {
		if c.ID == cardID {
			loc, hits = LocationGraveyard, hits+1
		}
	}
	return loc, hits
}

// CheckIntegrity verifies the single-location invariant for every card the
// field tracks.
func (f *Field) CheckIntegrity() error {
	seen := make(map[string]bool)
	check := func(cards []Card) error {
		for _, c := range cards {
			if seen[c.ID] {
				return &InvariantError{Detail: fmt.Sprintf("card %s tracked in two locations", c.ID)}
			}
			seen[c.ID] = true
		}
		return nil
	}
	if err := check(f.hand); err != nil {
		return err
	}
	for r := RowMelee; r <= RowSiege; r++ {
		if err := check(f.rows[r]); err != nil {
			return err
		}
	}
	return check(f.graveyard)
}
