package game

import "testing"

func TestLedgerEffectivePowerNeverNegative(t *testing.T) {
	l := NewLedger()
	l.Add("c1", 0, -5)
	l.Add("c1", 0, -100)

	if got := l.EffectivePower("c1", 0, 10, false); got != 0 {
		t.Errorf("effective power = %d, want 0", got)
	}
}

func TestLedgerUnknownPairHasZeroDeltas(t *testing.T) {
	l := NewLedger()
	if got := l.EffectivePower("nobody", 1, 7, false); got != 7 {
		t.Errorf("effective power = %d, want 7", got)
	}
	if got := l.Total("nobody", 1); got != 0 {
		t.Errorf("total = %d, want 0", got)
	}
}

func TestLedgerOwnerIsolation(t *testing.T) {
	// The same card id under two owners must never share deltas.
	l := NewLedger()
	l.Add("shared", 0, 4)

	if got := l.EffectivePower("shared", 0, 5, false); got != 9 {
		t.Errorf("owner 0 power = %d, want 9", got)
	}
	if got := l.EffectivePower("shared", 1, 5, false); got != 5 {
		t.Errorf("owner 1 power = %d, want 5", got)
	}
}

func TestLedgerWeatherClampOverridesModifiers(t *testing.T) {
	l := NewLedger()
	l.Add("m1", 0, 5)

	if got := l.EffectivePower("m1", 0, 10, true); got != 1 {
		t.Errorf("weather-affected power = %d, want exactly 1", got)
	}
	// A card already at zero stays at zero under weather.
	l.Add("m2", 0, -9)
	if got := l.EffectivePower("m2", 0, 3, true); got != 0 {
		t.Errorf("weather-affected zero-power card = %d, want 0", got)
	}
}

func TestLedgerClearRound(t *testing.T) {
	l := NewLedger()
	l.Add("c1", 0, 3)
	l.Add("c2", 1, -2)
	l.ClearRound()

	if got := l.EffectivePower("c1", 0, 4, false); got != 4 {
		t.Errorf("power after clear = %d, want 4", got)
	}
	if got := l.Total("c2", 1); got != 0 {
		t.Errorf("total after clear = %d, want 0", got)
	}
}

func TestLedgerAccumulatesSignedDeltas(t *testing.T) {
	l := NewLedger()
	l.Add("c1", 0, 3)
	l.Add("c1", 0, -1)
	l.Add("c1", 0, 2)

	if got := l.EffectivePower("c1", 0, 6, false); got != 10 {
		t.Errorf("power = %d, want 10", got)
	}
}
