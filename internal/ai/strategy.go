package ai

import (
	"fmt"
	"math/rand"
	"strings"
)

// Difficulty scales how situationally aware the opponent plays.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
	DifficultyExpert
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	case DifficultyExpert:
		return "expert"
	default:
		return "unknown"
	}
}

// ParseDifficulty maps a config string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "normal", "medium", "":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	case "expert":
		return DifficultyExpert, nil
	default:
		return DifficultyNormal, fmt.Errorf("unknown difficulty %q", s)
	}
}

// StrategyMode is the behavioral policy re-chosen at every decision point.
type StrategyMode int

const (
	StrategyBalanced StrategyMode = iota
	StrategyAggressive
	StrategyDefensive
	StrategyAdaptive
	StrategyBluff
	StrategyRush
)

func (m StrategyMode) String() string {
	switch m {
	case StrategyBalanced:
		return "balanced"
	case StrategyAggressive:
		return "aggressive"
	case StrategyDefensive:
		return "defensive"
	case StrategyAdaptive:
		return "adaptive"
	case StrategyBluff:
		return "bluff"
	case StrategyRush:
		return "rush"
	default:
		return "unknown"
	}
}

// Situation is the match snapshot a decision is made against. ScoreDiff is
// own total minus the opponent's.
type Situation struct {
	ScoreDiff    int
	Round        int
	RoundsWon    int
	RoundsWonOpp int
	HandSize     int
}

// Score-difference thresholds for the situational branches.
const (
	deficitThreshold = -10
	leadThreshold    = 10
	bigLeadThreshold = 15
)

// ChooseStrategy picks a behavioral mode for this decision. Higher
// difficulties unlock more modes and branch on more of the situation;
// easy opponents never leave the balanced/defensive pair.
func ChooseStrategy(rng *rand.Rand, d Difficulty, sit Situation) StrategyMode {
	switch d {
	case DifficultyEasy:
		if rng.Intn(2) == 0 {
			return StrategyBalanced
		}
		return StrategyDefensive

	case DifficultyNormal:
		if sit.ScoreDiff <= deficitThreshold {
			if rng.Float64() < 0.7 {
				return StrategyAggressive
			}
			return StrategyBalanced
		}
		if sit.ScoreDiff >= leadThreshold {
			if rng.Float64() < 0.6 {
				return StrategyDefensive
			}
			return StrategyBalanced
		}
		return StrategyBalanced

	case DifficultyHard:
		if sit.Round >= 3 && sit.RoundsWon == sit.RoundsWonOpp {
			// Decider round with everything level: commit hard.
			if rng.Float64() < 0.5 {
				return StrategyRush
			}
			return StrategyAdaptive
		}
		if sit.ScoreDiff <= deficitThreshold {
			switch r := rng.Float64(); {
			case r < 0.5:
				return StrategyAggressive
			case r < 0.8:
				return StrategyRush
			default:
				return StrategyBalanced
			}
		}
		if sit.ScoreDiff >= leadThreshold {
			switch r := rng.Float64(); {
			case r < 0.5:
				return StrategyDefensive
			case r < 0.75:
				return StrategyBluff
			default:
				return StrategyBalanced
			}
		}
		if rng.Float64() < 0.25 {
			return StrategyAdaptive
		}
		return StrategyBalanced

	default: // DifficultyExpert
		losing := sit.RoundsWonOpp > sit.RoundsWon || sit.ScoreDiff <= deficitThreshold
		winning := sit.RoundsWon > sit.RoundsWonOpp || sit.ScoreDiff >= bigLeadThreshold
		switch {
		case losing && !winning:
			if rng.Float64() < 0.6 {
				return StrategyAggressive
			}
			return StrategyRush
		case winning && !losing:
			switch r := rng.Float64(); {
			case r < 0.5:
				return StrategyDefensive
			case r < 0.8:
				return StrategyBluff
			default:
				return StrategyBalanced
			}
		case sit.Round >= 2:
			// Dead even past round 1: mix deception and adaptation.
			switch r := rng.Float64(); {
			case r < 0.3:
				return StrategyBluff
			case r < 0.7:
				return StrategyAdaptive
			default:
				return StrategyAggressive
			}
		default:
			if rng.Float64() < 0.4 {
				return StrategyAdaptive
			}
			return StrategyBalanced
		}
	}
}

// playChance is the per-mode base probability of playing rather than
// passing, before situational adjustment.
var playChance = map[StrategyMode]float64{
	StrategyAggressive: 0.95,
	StrategyRush:       0.90,
	StrategyAdaptive:   0.80,
	StrategyBalanced:   0.75,
	StrategyBluff:      0.70,
	StrategyDefensive:  0.60,
}

// ShouldPlay gates whether to play at all this turn. Out of cards means
// pass; a round the opponent can close the match on is never conceded from
// behind.
func ShouldPlay(rng *rand.Rand, mode StrategyMode, sit Situation) bool {
	if sit.HandSize == 0 {
		return false
	}
	if sit.RoundsWonOpp+1 >= 2 && sit.ScoreDiff < 0 {
		return true
	}

	chance := playChance[mode]
	if sit.ScoreDiff >= bigLeadThreshold {
		// Comfortably ahead: bank cards for the rounds to come.
		switch mode {
		case StrategyDefensive:
			chance = 0.30
		case StrategyBalanced:
			chance = 0.55
		default:
			chance -= 0.15
		}
	} else if sit.ScoreDiff <= deficitThreshold {
		chance += 0.10
	}
	if sit.HandSize == 1 && sit.ScoreDiff > 0 {
		// Last card with the round already won: keep it.
		chance -= 0.25
	}
	return rng.Float64() < chance
}
