package ai

import (
	"math/rand"
	"testing"

	"github.com/mtarnawa/gwentish/internal/game"
)

func card(id string, power int) game.Card {
	return game.Card{ID: id, Name: id, Type: game.CardTypeCreature, BasePower: power, Faction: "f-" + id, Rarity: game.RarityCommon}
}

func TestChooseCardEmptyHand(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, ok := ChooseCard(rng, StrategyAggressive, nil, 0); ok {
		t.Fatal("chose a card from an empty hand")
	}
}

func TestChooseCardAggressiveStaysInTopThird(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	hand := []game.Card{
		card("a", 10), card("b", 9), card("c", 8), card("d", 7), card("e", 6),
		card("f", 5), card("g", 4), card("h", 3), card("i", 2), card("j", 1),
	}
	for i := 0; i < 500; i++ {
		c, ok := ChooseCard(rng, StrategyAggressive, hand, 0)
		if !ok {
			t.Fatal("no card chosen")
		}
		// Top 30% of ten cards by power: 10, 9, 8.
		if c.BasePower < 8 {
			t.Fatalf("aggressive picked %s (power %d) outside the strong cut", c.ID, c.BasePower)
		}
	}
}

func TestChooseCardDefensiveAvoidsExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	hand := []game.Card{
		card("a", 12), card("b", 11), card("c", 10),
		card("d", 6), card("e", 5), card("f", 4),
		card("g", 2), card("h", 1), card("i", 1),
	}
	for i := 0; i < 500; i++ {
		c, _ := ChooseCard(rng, StrategyDefensive, hand, 0)
		if c.BasePower > 6 || c.BasePower < 4 {
			t.Fatalf("defensive picked %s (power %d) outside the middle third", c.ID, c.BasePower)
		}
	}
}

func TestChooseCardSingleCardHand(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	hand := []game.Card{card("only", 3)}
	for _, mode := range []StrategyMode{
		StrategyBalanced, StrategyAggressive, StrategyDefensive,
		StrategyAdaptive, StrategyBluff, StrategyRush,
	} {
		c, ok := ChooseCard(rng, mode, hand, -20)
		if !ok || c.ID != "only" {
			t.Errorf("%s: got (%v, %v), want the only card", mode, c.ID, ok)
		}
	}
}

func TestChooseRowPrefersContestedDeficitRow(t *testing.T) {
	rows := [game.RowCount]RowState{
		game.RowMelee:  {OwnCount: 2, OwnPower: 12, OpponentPower: 10},
		game.RowRanged: {OwnCount: 0, OwnPower: 0, OpponentPower: 8},
		game.RowSiege:  {OwnCount: 1, OwnPower: 5, OpponentPower: 5},
	}
	if got := ChooseRow(StrategyBalanced, card("x", 6), rows); got != game.RowRanged {
		t.Errorf("row = %s, want ranged (empty and 8 behind)", got)
	}
}

func TestChooseRowAvoidsWeather(t *testing.T) {
	rows := [game.RowCount]RowState{
		game.RowMelee:  {Weather: true},
		game.RowRanged: {OwnCount: 1},
		game.RowSiege:  {OwnCount: 1},
	}
	if got := ChooseRow(StrategyBalanced, card("x", 7), rows); got == game.RowMelee {
		t.Errorf("placed a 7-power card into weather")
	}

	// A 1-power card loses nothing to weather; the empty melee row wins.
	if got := ChooseRow(StrategyBalanced, card("weak", 1), rows); got != game.RowMelee {
		t.Errorf("row = %s for a 1-power card, want melee", got)
	}
}

func TestChooseRowTieBreaksInRowOrder(t *testing.T) {
	var rows [game.RowCount]RowState
	if got := ChooseRow(StrategyBalanced, card("x", 5), rows); got != game.RowMelee {
		t.Errorf("row = %s on all-equal scores, want melee first", got)
	}
}
