package engine_test

import (
	"testing"

	"github.com/kaiku-synth/kaiku"
	"github.com/kaiku-synth/kaiku/engine"
)

// newSequencer returns a 60 bpm, four-beat, one-sub-beat sequencer, so
// one step is exactly one second and a bar is four steps.
func newSequencer() *engine.Sequencer {
	return engine.NewSequencer(60, 4, 1)
}

func TestAdvanceFiresPattern(t *testing.T) {
	seq := newSequencer()
	seq.AddChannel(kaiku.DrumKick, "X.X.")
	expected := []int{1, 0, 1, 0, 1, 0, 1, 0}
	for i, want := range expected {
		hits := seq.Advance(1.0)
		if len(hits) != want {
			t.Fatalf("step %d fired %d hits, expected %d", i, len(hits), want)
		}
		for _, hit := range hits {
			if hit.Instrument != kaiku.DrumKick {
				t.Errorf("step %d fired %v, expected the kick", i, hit.Instrument)
			}
			if hit.NoteID != 64 {
				t.Errorf("step %d fired note %d, expected 64", i, hit.NoteID)
			}
		}
	}
}

func TestAdvanceCatchesUp(t *testing.T) {
	seq := newSequencer()
	seq.AddChannel(kaiku.DrumKick, "X.X.")
	// A four second stall covers four steps and must fire both hits.
	if hits := seq.Advance(4.0); len(hits) != 2 {
		t.Fatalf("a 4s advance fired %d hits, expected 2", len(hits))
	}
}

func TestShortAdvanceFiresNothing(t *testing.T) {
	seq := newSequencer()
	seq.AddChannel(kaiku.DrumKick, "XXXX")
	if hits := seq.Advance(0.4); len(hits) != 0 {
		t.Fatalf("a sub-step advance fired %d hits, expected 0", len(hits))
	}
	// The fraction accumulates; the next advance pushes it over a step.
	if hits := seq.Advance(0.7); len(hits) != 1 {
		t.Fatalf("the accumulated advance fired %d hits, expected 1", len(hits))
	}
}

func TestTempoGrid(t *testing.T) {
	// 120 bpm with four sub-beats makes a 0.125s step; one second covers
	// exactly eight steps.
	seq := engine.NewSequencer(120, 4, 4)
	seq.AddChannel(kaiku.DrumHiHat, "XXXXXXXXXXXXXXXX")
	if hits := seq.Advance(1.0); len(hits) != 8 {
		t.Fatalf("one second at 120 bpm x4 fired %d hits, expected 8", len(hits))
	}
}

func TestShortPatternRests(t *testing.T) {
	// Steps past the end of a pattern are rests, not wrapped hits.
	seq := newSequencer()
	seq.AddChannel(kaiku.DrumKick, "X.")
	seq.AddChannel(kaiku.DrumHiHat, "X..")
	total := 0
	for i := 0; i < 8; i++ {
		total += len(seq.Advance(1.0))
	}
	// Two four-step bars: each channel only hits its own step 0 per bar.
	if total != 4 {
		t.Fatalf("eight steps fired %d hits, expected 4", total)
	}
}

func TestBarWraps(t *testing.T) {
	seq := newSequencer()
	seq.AddChannel(kaiku.DrumKick, "X...")
	total := 0
	for i := 0; i < 12; i++ {
		total += len(seq.Advance(1.0))
	}
	// Three bars, one downbeat each.
	if total != 3 {
		t.Fatalf("twelve steps fired %d hits, expected 3", total)
	}
}

func TestReset(t *testing.T) {
	seq := newSequencer()
	seq.AddChannel(kaiku.DrumKick, "X...")
	seq.Advance(3.0)
	seq.Reset()
	if hits := seq.Advance(1.0); len(hits) != 1 {
		t.Fatalf("the first step after Reset fired %d hits, expected 1", len(hits))
	}
}

func TestValidate(t *testing.T) {
	seq := newSequencer()
	seq.AddChannel(kaiku.DrumKick, "X.X.")
	if err := seq.Validate(); err != nil {
		t.Errorf("valid sequencer rejected: %v", err)
	}

	bad := engine.NewSequencer(0, 4, 1)
	if err := bad.Validate(); err == nil {
		t.Error("expected an error for a zero tempo")
	}

	bad = engine.NewSequencer(120, 0, 4)
	if err := bad.Validate(); err == nil {
		t.Error("expected an error for zero beats")
	}

	bad = engine.NewSequencer(120, 4, 0)
	if err := bad.Validate(); err == nil {
		t.Error("expected an error for zero sub-beats")
	}

	bad = newSequencer()
	bad.AddChannel(kaiku.DrumKick, "X-X-")
	if err := bad.Validate(); err == nil {
		t.Error("expected an error for stray pattern characters")
	}

	bad = newSequencer()
	bad.Channels = append(bad.Channels, engine.Channel{Name: "Theremin", Pattern: "X."})
	if err := bad.Validate(); err == nil {
		t.Error("expected an error for an unknown instrument name")
	}
}

func TestValidateResolvesNames(t *testing.T) {
	seq := newSequencer()
	seq.Channels = append(seq.Channels, engine.Channel{Name: "Drum Snare", Pattern: "X."})
	if err := seq.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if got := seq.Channels[0].Instrument; got != kaiku.DrumSnare {
		t.Errorf("resolved instrument = %v, expected the snare", got)
	}
}
