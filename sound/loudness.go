package sound

const (
	minLoudnessDb   = -48.0
	loudnessRangeDb = 60.0
)

// PercentToDb maps a loudness percentage onto the playback range
// [-48, +12] dB. Out of range percentages are clamped first.
func PercentToDb(pct float64) float64 {
	pct = clamp(pct, 0, 100)
	return loudnessRangeDb*(pct/100) + minLoudnessDb
}

// DbToPercent is the inverse of PercentToDb, clamped to [0, 100].
func DbToPercent(db float64) float64 {
	return clamp((db-minLoudnessDb)*100/loudnessRangeDb, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
