package kaiku

import "fmt"

// Kind enumerates the built-in timbres. The catalog is closed and small, so
// instruments dispatch on the kind instead of going through an interface.
type Kind int

const (
	Bell Kind = iota
	Bell8
	Harmonica
	DrumKick
	DrumSnare
	DrumHiHat
	numKinds
)

// Instrument is a fixed additive-synthesis recipe: an envelope preset, a
// volume, an optional one-shot lifetime cutoff and a kind-specific set of
// weighted oscillator layers. Instrument values are immutable once placed
// in a registry.
type Instrument struct {
	Kind        Kind     `yaml:"kind"`
	Name        string   `yaml:"name"`
	Volume      float64  `yaml:"volume"`
	MaxLifetime float64  `yaml:"maxlifetime"` // seconds; <= 0 means unlimited
	Envelope    Envelope `yaml:"envelope"`
}

// NewInstrument returns the built-in preset for the given kind.
func NewInstrument(kind Kind) Instrument {
	switch kind {
	case Bell:
		return Instrument{
			Kind:        Bell,
			Name:        "Bell",
			Volume:      1.0,
			MaxLifetime: 3.0,
			Envelope:    Envelope{Attack: 0.01, Decay: 1.0, Sustain: 0.0, Release: 1.0, Start: 1.0},
		}
	case Bell8:
		return Instrument{
			Kind:        Bell8,
			Name:        "8-Bit Bell",
			Volume:      1.0,
			MaxLifetime: 3.0,
			Envelope:    Envelope{Attack: 0.01, Decay: 0.5, Sustain: 0.8, Release: 1.0, Start: 1.0},
		}
	case Harmonica:
		return Instrument{
			Kind:     Harmonica,
			Name:     "Harmonica",
			Volume:   0.3,
			Envelope: Envelope{Attack: 0.0, Decay: 1.0, Sustain: 0.95, Release: 0.5, Start: 1.0},
		}
	case DrumKick:
		return Instrument{
			Kind:        DrumKick,
			Name:        "Drum Kick",
			Volume:      1.0,
			MaxLifetime: 1.5,
			Envelope:    Envelope{Attack: 0.01, Decay: 0.15, Sustain: 0.0, Release: 0.0, Start: 1.0},
		}
	case DrumSnare:
		return Instrument{
			Kind:        DrumSnare,
			Name:        "Drum Snare",
			Volume:      1.0,
			MaxLifetime: 1.0,
			Envelope:    Envelope{Attack: 0.0, Decay: 0.2, Sustain: 0.0, Release: 0.0, Start: 1.0},
		}
	case DrumHiHat:
		fallthrough
	default:
		return Instrument{
			Kind:        DrumHiHat,
			Name:        "Drum HiHat",
			Volume:      0.5,
			MaxLifetime: 1.0,
			Envelope:    Envelope{Attack: 0.01, Decay: 0.05, Sustain: 0.0, Release: 0.0, Start: 1.0},
		}
	}
}

// Catalog returns the full built-in instrument catalog in Kind order.
func Catalog() []Instrument {
	instruments := make([]Instrument, numKinds)
	for kind := Kind(0); kind < numKinds; kind++ {
		instruments[kind] = NewInstrument(kind)
	}
	return instruments
}

// KindForName resolves a display name from the built-in catalog.
func KindForName(name string) (Kind, error) {
	for kind := Kind(0); kind < numKinds; kind++ {
		if NewInstrument(kind).Name == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown instrument %q", name)
}

// Sound computes the instrument's contribution for one voice at the given
// engine time. finished is true when the note can be removed from the
// pool: either its envelope has decayed to zero during release, or the
// instrument has a max lifetime and the note has outlived it, which
// terminates one-shot percussion even while the key is still held.
//
// The returned sample is the envelope level times the weighted oscillator
// sum times the instrument volume; its magnitude is small but unbounded,
// and headroom is the mixer's business.
func (in *Instrument) Sound(time float64, n Note) (sample float64, finished bool) {
	amplitude := in.Envelope.Amplitude(time, n.On, n.Off)
	if amplitude <= 0 && !n.Sustaining() {
		finished = true
	}
	if in.MaxLifetime > 0 && time-n.On >= in.MaxLifetime {
		finished = true
	}

	elapsed := time - n.On
	var sound float64
	switch in.Kind {
	case Bell:
		sound = 1.00*Osc{Shape: Sine, LFOHertz: 5.0, LFODepth: 0.001}.Sample(elapsed, Frequency(n.ID+12)) +
			0.50*Osc{Shape: Sine}.Sample(elapsed, Frequency(n.ID+24)) +
			0.25*Osc{Shape: Sine}.Sample(elapsed, Frequency(n.ID+36))

	case Bell8:
		sound = 1.00*Osc{Shape: Square, LFOHertz: 5.0, LFODepth: 0.001}.Sample(elapsed, Frequency(n.ID)) +
			0.50*Osc{Shape: Sine}.Sample(elapsed, Frequency(n.ID+12)) +
			0.25*Osc{Shape: Sine}.Sample(elapsed, Frequency(n.ID+24))

	case Harmonica:
		// The first layer feeds a negated elapsed time into the analog saw
		// on purpose; the backwards sweep is the instrument's breathy onset.
		sound = 1.00*Osc{Shape: SawAnalog, LFOHertz: 5.0, LFODepth: 0.001, Partials: 100}.Sample(-elapsed, Frequency(n.ID-12)) +
			1.00*Osc{Shape: Square, LFOHertz: 5.0, LFODepth: 0.001}.Sample(elapsed, Frequency(n.ID)) +
			0.50*Osc{Shape: Square}.Sample(elapsed, Frequency(n.ID+12)) +
			0.05*Osc{Shape: Noise}.Sample(elapsed, Frequency(n.ID+24))

	case DrumKick:
		sound = 0.99*Osc{Shape: Sine, LFOHertz: 1.0, LFODepth: 1.0}.Sample(elapsed, Frequency(n.ID-36)) +
			0.01*Osc{Shape: Noise}.Sample(elapsed, 0)

	case DrumSnare:
		sound = 0.5*Osc{Shape: Sine, LFOHertz: 0.5, LFODepth: 1.0}.Sample(elapsed, Frequency(n.ID-24)) +
			0.5*Osc{Shape: Noise}.Sample(elapsed, 0)

	case DrumHiHat:
		sound = 0.1*Osc{Shape: Square, LFOHertz: 1.5, LFODepth: 1.0}.Sample(elapsed, Frequency(n.ID-12)) +
			0.9*Osc{Shape: Noise}.Sample(elapsed, 0)
	}

	return amplitude * sound * in.Volume, finished
}
