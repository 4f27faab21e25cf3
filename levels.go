package kaiku

import (
	"math"

	"github.com/viterin/vek/vek32"
)

// Peak returns the largest absolute sample value in the buffer.
func Peak(buffer []float32) float32 {
	if len(buffer) == 0 {
		return 0
	}
	return max32(vek32.Max(buffer), -vek32.Min(buffer))
}

// RMS returns the root mean square level of the buffer.
func RMS(buffer []float32) float32 {
	if len(buffer) == 0 {
		return 0
	}
	return float32(math.Sqrt(float64(vek32.Dot(buffer, buffer)) / float64(len(buffer))))
}

// Decibels converts a linear level to dBFS, with a -120 dB floor for
// silence.
func Decibels(level float32) float32 {
	const floor = -120
	if level <= 0 {
		return floor
	}
	db := float32(20 * math.Log10(float64(level)))
	if db < floor {
		return floor
	}
	return db
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
