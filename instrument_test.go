package kaiku_test

import (
	"testing"

	"github.com/kaiku-synth/kaiku"
)

func TestCatalog(t *testing.T) {
	catalog := kaiku.Catalog()
	if len(catalog) != 6 {
		t.Fatalf("catalog has %d instruments, expected 6", len(catalog))
	}
	seen := map[string]bool{}
	for _, in := range catalog {
		if in.Name == "" {
			t.Errorf("instrument %v has no name", in.Kind)
		}
		if seen[in.Name] {
			t.Errorf("duplicate instrument name %q", in.Name)
		}
		seen[in.Name] = true
		if in.Volume <= 0 {
			t.Errorf("%s has volume %v", in.Name, in.Volume)
		}
	}
}

func TestKindForName(t *testing.T) {
	for _, in := range kaiku.Catalog() {
		kind, err := kaiku.KindForName(in.Name)
		if err != nil {
			t.Errorf("KindForName(%q): %v", in.Name, err)
		}
		if kind != in.Kind {
			t.Errorf("KindForName(%q) = %v, expected %v", in.Name, kind, in.Kind)
		}
	}
	if _, err := kaiku.KindForName("Theremin"); err == nil {
		t.Error("expected an error for an unknown instrument name")
	}
}

func TestHarmonicaSustains(t *testing.T) {
	in := kaiku.NewInstrument(kaiku.Harmonica)
	n := kaiku.Note{ID: 64, On: 1.0, Active: true, Instrument: kaiku.InstrumentID(kaiku.Harmonica)}
	// While held, the note must keep sounding and never report finished.
	for _, time := range []float64{1.1, 2.0, 5.0, 30.0} {
		if _, finished := in.Sound(time, n); finished {
			t.Errorf("harmonica reported finished at t=%v while still held", time)
		}
	}
}

func TestHarmonicaReleaseFinishes(t *testing.T) {
	in := kaiku.NewInstrument(kaiku.Harmonica)
	n := kaiku.Note{ID: 64, On: 1.0, Off: 2.0, Active: true, Instrument: kaiku.InstrumentID(kaiku.Harmonica)}
	// Release is 0.5s; well past that the envelope is zero and the note
	// is finished.
	sample, finished := in.Sound(3.0, n)
	if sample != 0 {
		t.Errorf("sample after the release tail = %v, expected 0", sample)
	}
	if !finished {
		t.Error("expected finished after the release tail")
	}
}

func TestBellLifetimeCutoff(t *testing.T) {
	in := kaiku.NewInstrument(kaiku.Bell)
	n := kaiku.Note{ID: 64, On: 1.0, Active: true, Instrument: kaiku.InstrumentID(kaiku.Bell)}
	if _, finished := in.Sound(1.5, n); finished {
		t.Error("bell finished after half a second")
	}
	// The bell is a one-shot: it ends at its max lifetime even while the
	// key is still held.
	if _, finished := in.Sound(4.1, n); !finished {
		t.Error("bell still running past its max lifetime")
	}
}

func TestDrumsAreOneShots(t *testing.T) {
	for _, kind := range []kaiku.Kind{kaiku.DrumKick, kaiku.DrumSnare, kaiku.DrumHiHat} {
		in := kaiku.NewInstrument(kind)
		if in.MaxLifetime <= 0 {
			t.Errorf("%s has no max lifetime", in.Name)
			continue
		}
		n := kaiku.Note{ID: 64, On: 0, Off: 0, Active: true, Instrument: kaiku.InstrumentID(kind)}
		n.On = 1.0
		if _, finished := in.Sound(1.0+in.MaxLifetime, n); !finished {
			t.Errorf("%s still running past its max lifetime", in.Name)
		}
	}
}
