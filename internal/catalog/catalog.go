// Package catalog provides the read-only card and leader definitions a
// match resolves its decks against, loaded from YAML or a database.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mtarnawa/gwentish/internal/game"
)

// File is the top-level YAML structure.
type File struct {
	Cards   []CardEntry   `yaml:"cards"`
	Leaders []LeaderEntry `yaml:"leaders"`
	Decks   []DeckEntry   `yaml:"decks"`
}

type CardEntry struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Power   int    `yaml:"power"`
	Faction string `yaml:"faction"`
	Rarity  string `yaml:"rarity"`
}

type LeaderEntry struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Faction string `yaml:"faction"`
	Ability string `yaml:"ability"`
}

// DeckEntry is a prebuilt deck: card ids with counts, plus a leader.
type DeckEntry struct {
	Name   string `yaml:"name"`
	Leader string `yaml:"leader"`
	Cards  []struct {
		ID    string `yaml:"id"`
		Count int    `yaml:"count"`
	} `yaml:"cards"`
}

// Deck is a resolved prebuilt deck, ready to hand to a session config.
type Deck struct {
	Name    string
	Leader  string
	CardIDs []string
}

// Memory is a map-backed catalog. It satisfies the lookup interface the
// engine consumes and additionally serves the prebuilt decks.
type Memory struct {
	cards   map[string]game.Card
	leaders map[string]game.Leader
	decks   []Deck
}

// Load reads and validates a catalog YAML file.
func Load(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a catalog from YAML bytes. Every deck reference is checked
// against the card and leader sets so a bad data file fails at startup, not
// mid-match.
func Parse(data []byte) (*Memory, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	m := &Memory{
		cards:   make(map[string]game.Card, len(f.Cards)),
		leaders: make(map[string]game.Leader, len(f.Leaders)),
	}

	for _, e := range f.Cards {
		if e.ID == "" {
			return nil, fmt.Errorf("card %q: missing id", e.Name)
		}
		if _, dup := m.cards[e.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", e.ID)
		}
		ct, err := ParseCardType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", e.ID, err)
		}
		rarity, err := ParseRarity(e.Rarity)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", e.ID, err)
		}
		if e.Power < 0 {
			return nil, fmt.Errorf("card %q: negative power %d", e.ID, e.Power)
		}
		m.cards[e.ID] = game.Card{
			ID:        e.ID,
			Name:      e.Name,
			Type:      ct,
			BasePower: e.Power,
			Faction:   e.Faction,
			Rarity:    rarity,
		}
	}

	for _, e := range f.Leaders {
		if e.ID == "" {
			return nil, fmt.Errorf("leader %q: missing id", e.Name)
		}
		if _, dup := m.leaders[e.ID]; dup {
			return nil, fmt.Errorf("duplicate leader id %q", e.ID)
		}
		ability, err := ParseLeaderAbility(e.Ability)
		if err != nil {
			return nil, fmt.Errorf("leader %q: %w", e.ID, err)
		}
		m.leaders[e.ID] = game.Leader{
			ID:      e.ID,
			Name:    e.Name,
			Faction: e.Faction,
			Ability: ability,
		}
	}

	for _, d := range f.Decks {
		deck := Deck{Name: d.Name, Leader: d.Leader}
		if d.Leader != "" {
			if _, ok := m.leaders[d.Leader]; !ok {
				return nil, fmt.Errorf("deck %q: unknown leader %q", d.Name, d.Leader)
			}
		}
		for _, c := range d.Cards {
			if _, ok := m.cards[c.ID]; !ok {
				return nil, fmt.Errorf("deck %q: unknown card %q", d.Name, c.ID)
			}
			count := c.Count
			if count <= 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				deck.CardIDs = append(deck.CardIDs, c.ID)
			}
		}
		if len(deck.CardIDs) == 0 {
			return nil, fmt.Errorf("deck %q: no cards", d.Name)
		}
		m.decks = append(m.decks, deck)
	}

	return m, nil
}

func (m *Memory) Card(id string) (game.Card, bool) {
	c, ok := m.cards[id]
	return c, ok
}

func (m *Memory) Leader(id string) (game.Leader, bool) {
	l, ok := m.leaders[id]
	return l, ok
}

// Decks returns the prebuilt decks in file order.
func (m *Memory) Decks() []Deck { return m.decks }

// DeckByName finds a prebuilt deck, case-insensitively.
func (m *Memory) DeckByName(name string) (Deck, bool) {
	for _, d := range m.decks {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Deck{}, false
}

// Cards returns every card definition, unordered.
func (m *Memory) Cards() []game.Card {
	out := make([]game.Card, 0, len(m.cards))
	for _, c := range m.cards {
		out = append(out, c)
	}
	return out
}

// Leaders returns every leader definition, unordered.
func (m *Memory) Leaders() []game.Leader {
	out := make([]game.Leader, 0, len(m.leaders))
	for _, l := range m.leaders {
		out = append(out, l)
	}
	return out
}

// ParseCardType maps a YAML/DB string to a card type.
func ParseCardType(s string) (game.CardType, error) {
	switch strings.ToLower(s) {
	case "creature", "":
		return game.CardTypeCreature, nil
	case "spell":
		return game.CardTypeSpell, nil
	case "special":
		return game.CardTypeSpecial, nil
	default:
		return game.CardTypeCreature, fmt.Errorf("unknown card type %q", s)
	}
}

// ParseRarity maps a YAML/DB string to a rarity.
func ParseRarity(s string) (game.Rarity, error) {
	switch strings.ToLower(s) {
	case "common", "":
		return game.RarityCommon, nil
	case "rare":
		return game.RarityRare, nil
	case "epic":
		return game.RarityEpic, nil
	case "legendary":
		return game.RarityLegendary, nil
	default:
		return game.RarityCommon, fmt.Errorf("unknown rarity %q", s)
	}
}

// ParseLeaderAbility maps a YAML/DB string to a leader ability.
func ParseLeaderAbility(s string) (game.LeaderAbilityKind, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return game.LeaderAbilityNone, nil
	case "clear_skies", "clear-skies":
		return game.LeaderAbilityClearSkies, nil
	case "frost":
		return game.LeaderAbilityFrost, nil
	case "fog":
		return game.LeaderAbilityFog, nil
	case "rain":
		return game.LeaderAbilityRain, nil
	default:
		return game.LeaderAbilityNone, fmt.Errorf("unknown leader ability %q", s)
	}
}
