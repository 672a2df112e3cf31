package game

import (
	"fmt"
	"testing"

	"github.com/mtarnawa/gwentish/internal/log"
)

// stubCatalog is a map-backed CardSource for tests.
type stubCatalog struct {
	cards   map[string]Card
	leaders map[string]Leader
}

func newStubCatalog(cards ...Card) *stubCatalog {
	sc := &stubCatalog{
		cards:   make(map[string]Card),
		leaders: make(map[string]Leader),
	}
	for _, c := range cards {
		sc.cards[c.ID] = c
	}
	return sc
}

func (sc *stubCatalog) addLeader(l Leader) *stubCatalog {
	sc.leaders[l.ID] = l
	return sc
}

func (sc *stubCatalog) Card(id string) (Card, bool) {
	c, ok := sc.cards[id]
	return c, ok
}

func (sc *stubCatalog) Leader(id string) (Leader, bool) {
	l, ok := sc.leaders[id]
	return l, ok
}

// --- Card builders ---

func creature(id, faction string, power int) Card {
	return Card{ID: id, Name: id, Type: CardTypeCreature, BasePower: power, Faction: faction, Rarity: RarityCommon}
}

func spellCard(id, faction string, power int) Card {
	return Card{ID: id, Name: id, Type: CardTypeSpell, BasePower: power, Faction: faction, Rarity: RarityCommon}
}

func legendary(id, faction string, power int) Card {
	return Card{ID: id, Name: id, Type: CardTypeCreature, BasePower: power, Faction: faction, Rarity: RarityLegendary}
}

func epicCard(id, faction string, power int) Card {
	return Card{ID: id, Name: id, Type: CardTypeCreature, BasePower: power, Faction: faction, Rarity: RarityEpic}
}

// fillerDeck builds n distinct low-power creatures with distinct factions
// so no combo fires by accident.
func fillerDeck(prefix string, n int) []Card {
	var out []Card
	for i := 0; i < n; i++ {
		out = append(out, creature(fmt.Sprintf("%s%d", prefix, i), fmt.Sprintf("f-%s%d", prefix, i), 1))
	}
	return out
}

func ids(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

// newTestSession wires a deterministic two-seat session. Player ids are
// "alice" (seat 0) and "bob" (seat 1); seat 0 leads round 1, decks are
// dealt whole into hands.
func newTestSession(t *testing.T, deckA, deckB []Card) (*Session, *log.MemoryLogger) {
	t.Helper()
	all := append(append([]Card{}, deckA...), deckB...)
	catalog := newStubCatalog(all...)

	handSize := len(deckA)
	if len(deckB) > handSize {
		handSize = len(deckB)
	}

	logger := log.NewMemoryLogger()
	s, err := NewSession(SessionConfig{
		Players: [2]ParticipantConfig{
			{ID: "alice", Name: "Alice", Deck: ids(deckA)},
			{ID: "bob", Name: "Bob", Deck: ids(deckB)},
		},
		Catalog:   catalog,
		Logger:    logger,
		Seed:      1,
		NoShuffle: true,
		HandSize:  handSize,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, logger
}

// mustPlay fails the test if the play is rejected.
func mustPlay(t *testing.T, s *Session, playerID, cardID string, row Row) {
	t.Helper()
	if err := s.PlayCard(playerID, cardID, row); err != nil {
		t.Fatalf("PlayCard(%s, %s, %s): %v", playerID, cardID, row, err)
	}
}

func mustPass(t *testing.T, s *Session, playerID string) {
	t.Helper()
	if err := s.Pass(playerID); err != nil {
		t.Fatalf("Pass(%s): %v", playerID, err)
	}
}
