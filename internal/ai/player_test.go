package ai

import (
	"fmt"
	"testing"

	"github.com/mtarnawa/gwentish/internal/game"
)

type mapCatalog struct {
	cards map[string]game.Card
}

func (m *mapCatalog) Card(id string) (game.Card, bool) {
	c, ok := m.cards[id]
	return c, ok
}

func (m *mapCatalog) Leader(id string) (game.Leader, bool) {
	return game.Leader{}, false
}

func botMatch(t *testing.T, seed int64) *game.Session {
	t.Helper()
	catalog := &mapCatalog{cards: make(map[string]game.Card)}
	var deckA, deckB []string
	for i := 0; i < 12; i++ {
		a := card(fmt.Sprintf("a%d", i), 1+i%9)
		b := card(fmt.Sprintf("b%d", i), 1+(i*3)%9)
		catalog.cards[a.ID] = a
		catalog.cards[b.ID] = b
		deckA = append(deckA, a.ID)
		deckB = append(deckB, b.ID)
	}
	s, err := game.NewSession(game.SessionConfig{
		Players: [2]game.ParticipantConfig{
			{ID: "bot-a", Name: "Bot A", Deck: deckA},
			{ID: "bot-b", Name: "Bot B", Deck: deckB},
		},
		Catalog:  catalog,
		Seed:     seed,
		HandSize: 10,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// Two seat drivers play a whole match; no operation may come back rejected
// and the game must reach a terminal state.
func TestPlayersDriveMatchToCompletion(t *testing.T) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert} {
		t.Run(d.String(), func(t *testing.T) {
			s := botMatch(t, int64(d)+1)
			bots := [2]*Player{
				NewPlayer(d, 100+int64(d)),
				NewPlayer(d, 200+int64(d)),
			}

			for i := 0; i < 500 && s.State() != game.StateGameEnded; i++ {
				seat := s.TurnSeat()
				if err := bots[seat].Act(s, seat); err != nil {
					t.Fatalf("turn %d seat %d: %v", i, seat, err)
				}
			}
			if s.State() != game.StateGameEnded {
				t.Fatalf("match did not finish; state %s round %d", s.State(), s.Round())
			}
			if s.Failed() != nil {
				t.Fatalf("session failed: %v", s.Failed())
			}
		})
	}
}

func TestActIsNoOpOffTurn(t *testing.T) {
	s := botMatch(t, 9)
	bot := NewPlayer(DifficultyNormal, 1)

	offSeat := 1 - s.TurnSeat()
	hand := len(s.Hand(offSeat))
	if err := bot.Act(s, offSeat); err != nil {
		t.Fatalf("Act off turn: %v", err)
	}
	if len(s.Hand(offSeat)) != hand || s.Passed(offSeat) {
		t.Error("off-turn Act mutated state")
	}
}
