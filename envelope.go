package kaiku

// envelopeFloor is the level below which an envelope is considered silent.
// Clamping to exact zero both cuts inaudible tails and lets instruments
// detect that a released note has finished.
const envelopeFloor = 0.01

// Envelope holds the parameters of a linear ADSR envelope. Attack, Decay
// and Release are durations in seconds; Sustain and Start are amplitude
// levels. Envelopes are owned one-per-instrument and never mutated at
// runtime.
type Envelope struct {
	Attack  float64 `yaml:"attack"`
	Decay   float64 `yaml:"decay"`
	Sustain float64 `yaml:"sustain"`
	Release float64 `yaml:"release"`
	Start   float64 `yaml:"start"`
}

// ramp is the attack/decay/sustain curve as a function of time lived since
// the note went on. A non-positive attack or decay jumps straight to the
// next level.
func (e Envelope) ramp(life float64) float64 {
	switch {
	case life <= e.Attack:
		if e.Attack <= 0 {
			return e.Start
		}
		return life / e.Attack * e.Start
	case life <= e.Attack+e.Decay:
		if e.Decay <= 0 {
			return e.Sustain
		}
		return e.Start + (life-e.Attack)/e.Decay*(e.Sustain-e.Start)
	default:
		return e.Sustain
	}
}

// Amplitude returns the envelope level in [0, Start] at the given time. It
// is a pure function of the three timestamps: on > off means the note is
// sustaining, otherwise the note is releasing and the level the note had
// reached at release time is recomputed from off-on and ramped linearly to
// zero over Release seconds. Any level at or below the floor is clamped to
// exactly zero.
func (e Envelope) Amplitude(time, on, off float64) float64 {
	var amplitude float64
	if on > off {
		amplitude = e.ramp(time - on)
	} else {
		releaseStart := e.ramp(off - on)
		if e.Release > 0 {
			amplitude = releaseStart + (time-off)/e.Release*(0-releaseStart)
		}
	}
	if amplitude <= envelopeFloor {
		return 0
	}
	return amplitude
}
