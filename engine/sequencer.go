package engine

import (
	"fmt"
	"strings"

	"github.com/kaiku-synth/kaiku"
)

// triggerNoteID is the note every sequencer hit plays. The rhythm section
// is pitched once and patterns only choose when an instrument fires.
const triggerNoteID = 64

// hitMark is the pattern character that fires a trigger; any other
// character is a rest.
const hitMark = 'X'

// Channel binds one instrument to a hit pattern, one character per
// sub-beat. A pattern shorter than the bar rests for the remaining
// steps.
type Channel struct {
	Instrument kaiku.Kind `yaml:"-"`
	Name       string     `yaml:"instrument"`
	Pattern    string     `yaml:"pattern"`
}

// Sequencer steps a set of channels on a sub-beat grid of Beats x
// SubBeats steps per bar. It keeps no audio state of its own; the caller
// feeds it wall or engine time and fires the returned triggers into an
// engine.
type Sequencer struct {
	Tempo    float64 // beats per minute
	Beats    int     // beats per bar
	SubBeats int     // grid lines per beat
	Channels []Channel

	accumulator float64
	position    int
}

// NewSequencer returns a sequencer with an empty channel list.
func NewSequencer(tempo float64, beats, subBeats int) *Sequencer {
	return &Sequencer{Tempo: tempo, Beats: beats, SubBeats: subBeats}
}

// AddChannel appends a channel.
func (s *Sequencer) AddChannel(instrument kaiku.Kind, pattern string) {
	s.Channels = append(s.Channels, Channel{
		Instrument: instrument,
		Name:       kaiku.NewInstrument(instrument).Name,
		Pattern:    pattern,
	})
}

// stepDuration returns the length of one grid line in seconds.
func (s *Sequencer) stepDuration() float64 {
	return 60.0 / s.Tempo / float64(s.SubBeats)
}

// totalSteps returns the number of grid lines in one bar.
func (s *Sequencer) totalSteps() int {
	return s.Beats * s.SubBeats
}

// Step is one pending trigger produced by Advance.
type Step struct {
	Instrument kaiku.Kind
	NoteID     int
}

// Advance consumes elapsed seconds and returns the triggers due in that
// span. A long gap yields every step it covers, so a stalled caller
// catches up instead of silently skipping beats. Steps past the end of a
// channel's pattern are rests.
func (s *Sequencer) Advance(elapsed float64) []Step {
	if s.Tempo <= 0 || s.Beats <= 0 || s.SubBeats <= 0 {
		return nil
	}
	var due []Step
	s.accumulator += elapsed
	step := s.stepDuration()
	for s.accumulator >= step {
		s.accumulator -= step
		for _, c := range s.Channels {
			if s.position < len(c.Pattern) && c.Pattern[s.position] == hitMark {
				due = append(due, Step{Instrument: c.Instrument, NoteID: triggerNoteID})
			}
		}
		s.position = (s.position + 1) % s.totalSteps()
	}
	return due
}

// Reset rewinds the sequencer to the first step of the bar.
func (s *Sequencer) Reset() {
	s.accumulator = 0
	s.position = 0
}

// Validate checks the grid parameters and resolves channel instrument
// names. It must be called on sequencers built from decoded songs before
// they are advanced.
func (s *Sequencer) Validate() error {
	if s.Tempo <= 0 {
		return fmt.Errorf("tempo %v is not positive", s.Tempo)
	}
	if s.Beats <= 0 {
		return fmt.Errorf("beats %d is not positive", s.Beats)
	}
	if s.SubBeats <= 0 {
		return fmt.Errorf("subbeats %d is not positive", s.SubBeats)
	}
	for i := range s.Channels {
		c := &s.Channels[i]
		if c.Name != "" {
			kind, err := kaiku.KindForName(c.Name)
			if err != nil {
				return fmt.Errorf("channel %d: %w", i, err)
			}
			c.Instrument = kind
		}
		if rest := strings.Map(func(r rune) rune {
			if r == hitMark || r == '.' {
				return -1
			}
			return r
		}, c.Pattern); rest != "" {
			return fmt.Errorf("channel %d: pattern contains %q, want only %q and '.'", i, rest, hitMark)
		}
	}
	return nil
}
