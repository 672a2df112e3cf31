package ai

import (
	"math/rand"
	"sort"

	"github.com/mtarnawa/gwentish/internal/game"
)

// ChooseCard picks a card from the hand according to the mode's power
// heuristic. Returns false only for an empty hand.
func ChooseCard(rng *rand.Rand, mode StrategyMode, hand []game.Card, scoreDiff int) (game.Card, bool) {
	if len(hand) == 0 {
		return game.Card{}, false
	}

	byPower := make([]game.Card, len(hand))
	copy(byPower, hand)
	sort.SliceStable(byPower, func(i, j int) bool {
		return byPower[i].BasePower > byPower[j].BasePower
	})
	n := len(byPower)
	third := n / 3
	if third == 0 {
		third = 1
	}

	switch mode {
	case StrategyAggressive, StrategyRush:
		// Strongest 30% of the hand.
		top := (n*3 + 9) / 10
		if top < 1 {
			top = 1
		}
		return byPower[rng.Intn(top)], true

	case StrategyDefensive:
		// Middle third: contest without spending the best cards.
		start := third
		if start >= n {
			start = n - 1
		}
		end := n - third
		if end <= start {
			end = start + 1
		}
		return byPower[start+rng.Intn(end-start)], true

	case StrategyBluff:
		// Mostly random, with a deliberate lowball third of the time.
		if rng.Float64() < 0.3 {
			return byPower[n-third+rng.Intn(third)], true
		}
		return byPower[rng.Intn(n)], true

	case StrategyAdaptive:
		if scoreDiff < 0 {
			return byPower[rng.Intn(third)], true
		}
		start := third
		if start >= n {
			start = n - 1
		}
		end := n - third
		if end <= start {
			end = start + 1
		}
		return byPower[start+rng.Intn(end-start)], true

	default: // StrategyBalanced
		if scoreDiff <= deficitThreshold {
			return byPower[rng.Intn(third)], true
		}
		if scoreDiff >= leadThreshold {
			return byPower[n-third+rng.Intn(third)], true
		}
		return byPower[rng.Intn(n)], true
	}
}

// RowState is the per-row situation ChooseRow scores against.
type RowState struct {
	OwnCount      int
	OwnPower      int
	OpponentPower int
	Weather       bool
}

// Row-scoring weights. Spreading across empty rows keeps faction and
// creature combos reachable; a weather row is near worthless for anything
// stronger than 1 power.
const (
	rowCrowdPenalty   = 2
	rowDeficitCap     = 10
	rowWeatherPenalty = 8
)

// ChooseRow scores each row and returns the best. Ties resolve in melee,
// ranged, siege order.
func ChooseRow(mode StrategyMode, card game.Card, rows [game.RowCount]RowState) game.Row {
	best := game.RowMelee
	bestScore := rowScore(mode, card, rows[game.RowMelee])
	for r := game.RowRanged; r <= game.RowSiege; r++ {
		if score := rowScore(mode, card, rows[r]); score > bestScore {
			best, bestScore = r, score
		}
	}
	return best
}

func rowScore(mode StrategyMode, card game.Card, rs RowState) int {
	score := -rs.OwnCount * rowCrowdPenalty

	deficit := rs.OpponentPower - rs.OwnPower
	if deficit > rowDeficitCap {
		deficit = rowDeficitCap
	}
	if deficit > 0 {
		score += deficit
	}

	if rs.Weather && card.BasePower > 1 {
		penalty := rowWeatherPenalty
		if mode == StrategyBluff {
			// A bluffing play into weather costs little anyway.
			penalty /= 2
		}
		score -= penalty
	}
	return score
}
