package kaiku

import (
	"math"
	"math/rand"
)

// Waveform selects the basic shape an oscillator produces.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Triangle
	SawAnalog
	SawDigital
	Noise
)

// defaultPartials is the number of additive partials a SawAnalog oscillator
// sums when the recipe does not say otherwise.
const defaultPartials = 50

// Osc is one oscillator layer of an instrument recipe. The zero value is a
// plain sine with no vibrato. LFOHertz/LFODepth phase-modulate the carrier
// (vibrato); Partials only matters for SawAnalog.
type Osc struct {
	Shape    Waveform
	LFOHertz float64
	LFODepth float64
	Partials int
}

func omega(hertz float64) float64 {
	return 2 * math.Pi * hertz
}

// Sample evaluates the oscillator at the given time and frequency. The
// output of a single layer is roughly [-1, 1] except for SawAnalog, whose
// additive sum overshoots; instruments weight the layers to compensate.
func (o Osc) Sample(time, hertz float64) float64 {
	phase := omega(hertz)*time + o.LFODepth*hertz*math.Sin(omega(o.LFOHertz)*time)

	switch o.Shape {
	case Sine:
		return math.Sin(phase)

	case Square:
		if math.Sin(phase) > 0 {
			return 1
		}
		return -1

	case Triangle:
		return math.Asin(math.Sin(phase)) * (2 / math.Pi)

	case SawAnalog:
		partials := o.Partials
		if partials <= 0 {
			partials = defaultPartials
		}
		var sum float64
		for n := 1.0; n < float64(partials); n++ {
			sum += math.Sin(n*phase) / n
		}
		return sum * (2 / math.Pi)

	case SawDigital:
		if hertz <= 0 {
			return 0
		}
		return (2 / math.Pi) * (hertz*math.Pi*math.Mod(time, 1/hertz) - math.Pi/2)

	case Noise:
		return 2*rand.Float64() - 1

	default:
		return 0
	}
}
