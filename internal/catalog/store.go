package catalog

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mtarnawa/gwentish/internal/game"
)

// CardRecord is the persisted card definition row.
type CardRecord struct {
	ID      string `gorm:"primaryKey"`
	Name    string
	Type    string
	Power   int
	Faction string `gorm:"index"`
	Rarity  string
}

// LeaderRecord is the persisted leader definition row.
type LeaderRecord struct {
	ID      string `gorm:"primaryKey"`
	Name    string
	Faction string
	Ability string
}

// Store is a database-backed catalog. It satisfies the same lookup
// interface as Memory; matches never write through it.
type Store struct {
	db *gorm.DB
}

// OpenStore opens (or creates) the sqlite catalog database and migrates
// the schema.
func OpenStore(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	if err := db.AutoMigrate(&CardRecord{}, &LeaderRecord{}); err != nil {
		return nil, fmt.Errorf("migrate catalog db: %w", err)
	}
	return &Store{db: db}, nil
}

// Seed copies the in-memory catalog into the database if it is empty. The
// YAML file stays the source of truth; the database is a rebuildable copy.
func (s *Store) Seed(m *Memory) error {
	var count int64
	if err := s.db.Model(&CardRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	cards := make([]CardRecord, 0, len(m.cards))
	for _, c := range m.Cards() {
		cards = append(cards, CardRecord{
			ID:      c.ID,
			Name:    c.Name,
			Type:    c.Type.String(),
			Power:   c.BasePower,
			Faction: c.Faction,
			Rarity:  c.Rarity.String(),
		})
	}
	if len(cards) > 0 {
		if err := s.db.Create(&cards).Error; err != nil {
			return err
		}
	}

	leaders := make([]LeaderRecord, 0, len(m.leaders))
	for _, l := range m.Leaders() {
		leaders = append(leaders, LeaderRecord{
			ID:      l.ID,
			Name:    l.Name,
			Faction: l.Faction,
			Ability: abilityKey(l.Ability),
		})
	}
	if len(leaders) > 0 {
		if err := s.db.Create(&leaders).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Card(id string) (game.Card, bool) {
	var rec CardRecord
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		return game.Card{}, false
	}
	ct, err := ParseCardType(rec.Type)
	if err != nil {
		return game.Card{}, false
	}
	rarity, err := ParseRarity(rec.Rarity)
	if err != nil {
		return game.Card{}, false
	}
	return game.Card{
		ID:        rec.ID,
		Name:      rec.Name,
		Type:      ct,
		BasePower: rec.Power,
		Faction:   rec.Faction,
		Rarity:    rarity,
	}, true
}

func (s *Store) Leader(id string) (game.Leader, bool) {
	var rec LeaderRecord
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		return game.Leader{}, false
	}
	ability, err := ParseLeaderAbility(rec.Ability)
	if err != nil {
		return game.Leader{}, false
	}
	return game.Leader{
		ID:      rec.ID,
		Name:    rec.Name,
		Faction: rec.Faction,
		Ability: ability,
	}, true
}

// CardsByFaction lists a faction's cards, for deck-building surfaces.
func (s *Store) CardsByFaction(faction string) ([]game.Card, error) {
	var recs []CardRecord
	if err := s.db.Where("faction = ?", faction).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]game.Card, 0, len(recs))
	for _, rec := range recs {
		ct, err := ParseCardType(rec.Type)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", rec.ID, err)
		}
		rarity, err := ParseRarity(rec.Rarity)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", rec.ID, err)
		}
		out = append(out, game.Card{
			ID:        rec.ID,
			Name:      rec.Name,
			Type:      ct,
			BasePower: rec.Power,
			Faction:   rec.Faction,
			Rarity:    rarity,
		})
	}
	return out, nil
}

func abilityKey(a game.LeaderAbilityKind) string {
	switch a {
	case game.LeaderAbilityClearSkies:
		return "clear_skies"
	case game.LeaderAbilityFrost:
		return "frost"
	case game.LeaderAbilityFog:
		return "fog"
	case game.LeaderAbilityRain:
		return "rain"
	default:
		return "none"
	}
}
