package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type CardType int

const (
	CardTypeCreature CardType = iota
	CardTypeSpell
	CardTypeSpecial
)

func (ct CardType) String() string {
	switch ct {
	case CardTypeCreature:
		return "Creature"
	case CardTypeSpell:
		return "Spell"
	case CardTypeSpecial:
		return "Special"
	default:
		return "Unknown"
	}
}

type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// Row is one of the three lanes a card is placed into. Each side of the
// board has its own three rows.
type Row int

const (
	RowMelee Row = iota
	RowRanged
	RowSiege

	RowCount = 3
)

func (r Row) String() string {
	switch r {
	case RowMelee:
		return "Melee"
	case RowRanged:
		return "Ranged"
	case RowSiege:
		return "Siege"
	default:
		return "Unknown"
	}
}

// Valid reports whether r names an actual row.
func (r Row) Valid() bool {
	return r >= RowMelee && r <= RowSiege
}

// ParseRow maps a wire/CLI string to a row.
func ParseRow(s string) (Row, error) {
	switch strings.ToLower(s) {
	case "melee", "m":
		return RowMelee, nil
	case "ranged", "r":
		return RowRanged, nil
	case "siege", "s":
		return RowSiege, nil
	default:
		return RowMelee, fmt.Errorf("unknown row %q", s)
	}
}

// --- Card and leader definitions (static, from the catalog) ---

// Card is an immutable card definition. The engine treats it as a value and
// never mutates it; all power changes live in the Ledger keyed by
// (card ID, owner).
type Card struct {
	ID        string
	Name      string
	Type      CardType
	BasePower int
	Faction   string
	Rarity    Rarity
}

func (c Card) String() string {
	return c.Name
}

// LeaderAbilityKind enumerates the once-per-game leader abilities.
type LeaderAbilityKind int

const (
	LeaderAbilityNone LeaderAbilityKind = iota
	LeaderAbilityClearSkies // removes all weather
	LeaderAbilityFrost      // frost on both melee rows
	LeaderAbilityFog        // fog on both ranged rows
	LeaderAbilityRain       // rain on both siege rows
)

func (a LeaderAbilityKind) String() string {
	switch a {
	case LeaderAbilityClearSkies:
		return "Clear Skies"
	case LeaderAbilityFrost:
		return "Biting Frost"
	case LeaderAbilityFog:
		return "Impenetrable Fog"
	case LeaderAbilityRain:
		return "Torrential Rain"
	default:
		return "None"
	}
}

// Leader is an immutable leader definition.
type Leader struct {
	ID      string
	Name    string
	Faction string
	Ability LeaderAbilityKind
}

// CardSource is the read-only catalog a session resolves decks and leaders
// against. Implementations live outside the core (in-memory or
// database-backed); the session receives one at construction and never
// writes through it.
type CardSource interface {
	Card(id string) (Card, bool)
	Leader(id string) (Leader, bool)
}
