package game

// Weather holds the global per-row effects for the current round. An
// affected row caps every card in it, on both sides of the board, to an
// effective power of 1, independent of the modifier ledger.
type Weather struct {
	affected [RowCount]bool
}

func NewWeather() *Weather {
	return &Weather{}
}

// Set turns the effect for a row on or off.
func (w *Weather) Set(row Row, on bool) {
	if row.Valid() {
		w.affected[row] = on
	}
}

// Affects reports whether the row is weather-affected this round.
func (w *Weather) Affects(row Row) bool {
	return row.Valid() && w.affected[row]
}

// Active returns the affected rows in enumeration order.
func (w *Weather) Active() []Row {
	var rows []Row
	for r := RowMelee; r <= RowSiege; r++ {
		if w.affected[r] {
			rows = append(rows, r)
		}
	}
	return rows
}

// Clear removes all effects. Called between rounds.
func (w *Weather) Clear() {
	w.affected = [RowCount]bool{}
}

// WeatherEffectName returns the conventional effect name for a row.
func WeatherEffectName(row Row) string {
	switch row {
	case RowMelee:
		return "Frost"
	case RowRanged:
		return "Fog"
	case RowSiege:
		return "Rain"
	default:
		return ""
	}
}
