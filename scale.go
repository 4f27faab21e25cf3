package kaiku

import "math"

// Scale maps note indices to frequencies. Only the default 12-tone equal
// temperament scale exists for now; the type leaves room for alternate
// tuning tables.
type Scale int

const ScaleDefault Scale = iota

// semitoneRatio is the 12th root of two.
const semitoneRatio = 1.0594630943592953

// Frequency returns the frequency in Hz of the given note index. The scale
// is anchored so that index 0 is 8 Hz; every 12 indices double the
// frequency.
func (s Scale) Frequency(noteID int) float64 {
	switch s {
	case ScaleDefault:
		fallthrough
	default:
		return 8 * math.Pow(semitoneRatio, float64(noteID))
	}
}

// Frequency is shorthand for ScaleDefault.Frequency.
func Frequency(noteID int) float64 {
	return ScaleDefault.Frequency(noteID)
}
