package game

import (
	"fmt"
	"sort"
)

// ComboKey is the one-shot key a fired combo records in the round's
// collected set, per owner.
type ComboKey string

const (
	ComboLegendary ComboKey = "legendary"
	ComboEpic      ComboKey = "epic"
	ComboSpell     ComboKey = "spell"
	ComboCreature  ComboKey = "creature"
	ComboPower     ComboKey = "power"
)

// FactionComboKey returns the collected-set key for a faction combo.
func FactionComboKey(faction string) ComboKey {
	return ComboKey("faction_" + faction)
}

const (
	factionComboMin     = 3
	legendaryComboMin   = 2
	legendaryComboBoost = 5
	epicComboMin        = 3
	epicComboHeal       = 3
	spellComboMin       = 3
	creatureComboMin    = 5
	creatureComboBoost  = 2
	powerComboThreshold = 50
)

// FieldDamager applies flat damage to every card on one player's field.
// The spell combo invokes it exactly once with the full damage amount;
// how the damage lands (and whether cards die from it) is the
// collaborator's business.
type FieldDamager interface {
	DamageAllCards(owner int, amount int)
}

// ComboResult describes one combo that fired, for event emission.
type ComboResult struct {
	Key    ComboKey
	Detail string
}

// ComboEngine evaluates the field-composition combos. It is stateless:
// power changes go through the ledger and the once-per-round bookkeeping
// lives in the collected set the session passes in.
type ComboEngine struct {
	Ledger  *Ledger
	Damager FieldDamager
}

// Evaluate runs every combo family for the acting player, invoked once,
// synchronously, immediately after a card is placed (the card is already
// counted in the field). Only the acting player's own field triggers
// combos; the opponent is touched solely by the spell combo's damage
// branch. A key already in the collected set is skipped entirely; it is
// not re-evaluated even if its condition still holds after earlier deltas.
// Keys are marked collected before the effect is applied, so the check is
// re-entrant safe.
func (e *ComboEngine) Evaluate(owner, opponent int, field *Field, weather *Weather, collected map[ComboKey]bool) []ComboResult {
	cards := field.AllFieldCards()
	if len(cards) == 0 {
		return nil
	}

	var fired []ComboResult

	// Faction combos: 3+ own field cards sharing a faction boost every card
	// of that faction by (count-2). Factions are visited in sorted order so
	// evaluation is deterministic.
	byFaction := make(map[string]int)
	for _, c := range cards {
		if c.Faction != "" {
			byFaction[c.Faction]++
		}
	}
	factions := make([]string, 0, len(byFaction))
	for f := range byFaction {
		factions = append(factions, f)
	}
	sort.Strings(factions)
	for _, faction := range factions {
		count := byFaction[faction]
		key := FactionComboKey(faction)
		if count < factionComboMin || collected[key] {
			continue
		}
		collected[key] = true
		boost := count - 2
		for _, c := range cards {
			if c.Faction == faction {
				e.Ledger.Add(c.ID, owner, boost)
			}
		}
		fired = append(fired, ComboResult{
			Key:    key,
			Detail: fmt.Sprintf("+%d to %d %s cards", boost, count, faction),
		})
	}

	// Legendary combo: 2+ legendaries grant +5 to the whole field.
	if n := countRarity(cards, RarityLegendary); n >= legendaryComboMin && !collected[ComboLegendary] {
		collected[ComboLegendary] = true
		for _, c := range cards {
			e.Ledger.Add(c.ID, owner, legendaryComboBoost)
		}
		fired = append(fired, ComboResult{
			Key:    ComboLegendary,
			Detail: fmt.Sprintf("+%d to all %d field cards", legendaryComboBoost, len(cards)),
		})
	}

	// Epic combo: 3+ epics heal every field card toward its base power, by
	// at most 3 visible points. Healing never raises power above base.
	if n := countRarity(cards, RarityEpic); n >= epicComboMin && !collected[ComboEpic] {
		collected[ComboEpic] = true
		healed := 0
		for _, c := range cards {
			raw := c.BasePower + e.Ledger.Total(c.ID, owner)
			cur := raw
			if cur < 0 {
				cur = 0
			}
			target := cur + epicComboHeal
			if target > c.BasePower {
				target = c.BasePower
			}
			if target > raw {
				e.Ledger.Add(c.ID, owner, target-raw)
				healed++
			}
		}
		fired = append(fired, ComboResult{
			Key:    ComboEpic,
			Detail: fmt.Sprintf("healed %d cards toward base power", healed),
		})
	}

	// Spell combo: 3+ spells on the field damage the opponent's entire
	// field by the spell count, through the field-damage collaborator.
	if n := countType(cards, CardTypeSpell); n >= spellComboMin && !collected[ComboSpell] {
		collected[ComboSpell] = true
		e.Damager.DamageAllCards(opponent, n)
		fired = append(fired, ComboResult{
			Key:    ComboSpell,
			Detail: fmt.Sprintf("%d damage to the opposing field", n),
		})
	}

	// Creature combo: 5+ creatures grant +2 to every creature.
	if n := countType(cards, CardTypeCreature); n >= creatureComboMin && !collected[ComboCreature] {
		collected[ComboCreature] = true
		for _, c := range cards {
			if c.Type == CardTypeCreature {
				e.Ledger.Add(c.ID, owner, creatureComboBoost)
			}
		}
		fired = append(fired, ComboResult{
			Key:    ComboCreature,
			Detail: fmt.Sprintf("+%d to %d creatures", creatureComboBoost, n),
		})
	}

	// Power combo: a field totalling 50+ effective power doubles every
	// card, expressed as an additive delta equal to its current effective
	// power (the ledger only ever adds).
	if total := e.fieldTotal(owner, field, weather); total >= powerComboThreshold && !collected[ComboPower] {
		collected[ComboPower] = true
		for r := RowMelee; r <= RowSiege; r++ {
			affected := weather.Affects(r)
			for _, c := range field.RowCards(r) {
				cur := e.Ledger.EffectivePower(c.ID, owner, c.BasePower, affected)
				if cur > 0 {
					e.Ledger.Add(c.ID, owner, cur)
				}
			}
		}
		fired = append(fired, ComboResult{
			Key:    ComboPower,
			Detail: fmt.Sprintf("field power doubled at %d total", total),
		})
	}

	return fired
}

// fieldTotal sums weather-adjusted effective power over the player's rows.
func (e *ComboEngine) fieldTotal(owner int, field *Field, weather *Weather) int {
	total := 0
	for r := RowMelee; r <= RowSiege; r++ {
		affected := weather.Affects(r)
		for _, c := range field.RowCards(r) {
			total += e.Ledger.EffectivePower(c.ID, owner, c.BasePower, affected)
		}
	}
	return total
}

func countRarity(cards []Card, r Rarity) int {
	n := 0
	for _, c := range cards {
		if c.Rarity == r {
			n++
		}
	}
	return n
}

func countType(cards []Card, t CardType) int {
	n := 0
	for _, c := range cards {
		if c.Type == t {
			n++
		}
	}
	return n
}
