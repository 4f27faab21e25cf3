package kaiku_test

import (
	"math"
	"testing"

	"github.com/kaiku-synth/kaiku"
)

func TestPeak(t *testing.T) {
	if got := kaiku.Peak([]float32{0.1, -0.8, 0.4}); got != 0.8 {
		t.Errorf("Peak = %v, expected 0.8", got)
	}
	if got := kaiku.Peak(nil); got != 0 {
		t.Errorf("Peak of empty buffer = %v, expected 0", got)
	}
}

func TestRMS(t *testing.T) {
	buffer := make([]float32, 1000)
	for i := range buffer {
		buffer[i] = 0.5
	}
	if got := kaiku.RMS(buffer); math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("RMS of a constant 0.5 buffer = %v, expected 0.5", got)
	}
	if got := kaiku.RMS(nil); got != 0 {
		t.Errorf("RMS of empty buffer = %v, expected 0", got)
	}
}

func TestDecibels(t *testing.T) {
	if got := kaiku.Decibels(1); got != 0 {
		t.Errorf("Decibels(1) = %v, expected 0", got)
	}
	if got := kaiku.Decibels(0.5); math.Abs(float64(got)+6.02) > 0.01 {
		t.Errorf("Decibels(0.5) = %v, expected about -6.02", got)
	}
	if got := kaiku.Decibels(0); got != -120 {
		t.Errorf("Decibels(0) = %v, expected the -120 floor", got)
	}
}
