package game

// modifierKey scopes deltas to exactly one owner. Card ids are not
// guaranteed globally unique across seats, so lookups are always by the
// (card, owner) pair: one seat's modifiers never bleed into the other's.
type modifierKey struct {
	CardID string
	Owner  int
}

// Ledger tracks additive power adjustments per (card, owner) pair. It only
// ever adds: "double power" is expressed by callers as a delta equal to the
// card's current effective power, damage as a negative delta. The ledger
// itself has no failure modes, unknown pairs simply have zero deltas.
type Ledger struct {
	deltas map[modifierKey][]int
}

func NewLedger() *Ledger {
	return &Ledger{deltas: make(map[modifierKey][]int)}
}

// Add appends a signed delta for the card under the given owner.
func (l *Ledger) Add(cardID string, owner int, delta int) {
	k := modifierKey{CardID: cardID, Owner: owner}
	l.deltas[k] = append(l.deltas[k], delta)
}

// Total returns the sum of all deltas for the pair, zero when unknown.
func (l *Ledger) Total(cardID string, owner int) int {
	sum := 0
	for _, d := range l.deltas[modifierKey{CardID: cardID, Owner: owner}] {
		sum += d
	}
	return sum
}

// EffectivePower computes the battle-relevant power of a card: base power
// plus the owner's deltas, floored at zero, and capped to 1 when weather
// affects the card's row this round.
func (l *Ledger) EffectivePower(cardID string, owner, basePower int, weatherAffected bool) int {
	p := basePower + l.Total(cardID, owner)
	if p < 0 {
		p = 0
	}
	if weatherAffected && p > 1 {
		p = 1
	}
	return p
}

// ClearRound drops every delta. Called exactly once at round start, after
// round-end scoring and before the next round deals.
func (l *Ledger) ClearRound() {
	l.deltas = make(map[modifierKey][]int)
}
