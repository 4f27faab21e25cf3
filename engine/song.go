package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kaiku-synth/kaiku"
)

// tailSeconds is appended after the last step of an offline render so
// releases and one-shot tails ring out instead of being cut.
const tailSeconds = 1.0

// Song is the serialized form of a sequencer setup: a tempo, a grid and
// a channel list with textual hit patterns. Songs round-trip through
// yaml.
type Song struct {
	Name     string    `yaml:"name"`
	Tempo    float64   `yaml:"tempo"`
	Beats    int       `yaml:"beats"`
	SubBeats int       `yaml:"subbeats"`
	Steps    int       `yaml:"steps,omitempty"` // grid lines to play; 0 means one bar
	Channels []Channel `yaml:"channels"`
}

// LoadSong reads and validates a song file, accepting json or yaml.
func LoadSong(path string) (*Song, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read song: %w", err)
	}
	var song Song
	if errJSON := json.Unmarshal(raw, &song); errJSON != nil {
		if errYaml := yaml.Unmarshal(raw, &song); errYaml != nil {
			return nil, fmt.Errorf("the song could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	if err := song.Validate(); err != nil {
		return nil, fmt.Errorf("invalid song %q: %w", path, err)
	}
	return &song, nil
}

// Save writes the song as yaml.
func (s *Song) Save(path string) error {
	raw, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("could not serialize song: %w", err)
	}
	return os.WriteFile(path, raw, 0644)
}

// Validate checks the song and resolves channel instrument names.
func (s *Song) Validate() error {
	if len(s.Channels) == 0 {
		return errors.New("song has no channels")
	}
	seq := s.Sequencer()
	if err := seq.Validate(); err != nil {
		return err
	}
	// Validation resolves Channel.Instrument from the name; copy the
	// resolution back so the song is usable directly.
	s.Channels = seq.Channels
	return nil
}

// Sequencer builds a sequencer playing this song from the top.
func (s *Song) Sequencer() *Sequencer {
	seq := NewSequencer(s.Tempo, s.Beats, s.SubBeats)
	seq.Channels = append([]Channel(nil), s.Channels...)
	return seq
}

// length returns the number of grid lines to render.
func (s *Song) length() int {
	if s.Steps > 0 {
		return s.Steps
	}
	return s.Beats * s.SubBeats
}

// Render plays the song offline through a fresh engine and returns the
// mono samples, including a short tail after the last step.
func (s *Song) Render() (kaiku.AudioBuffer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	seq := s.Sequencer()
	eng := NewEngine()
	stepDur := seq.stepDuration()
	stepSamples := int(stepDur*kaiku.SampleRate + 0.5)
	steps := s.length()
	buffer := make(kaiku.AudioBuffer, 0, (steps+1)*stepSamples+int(tailSeconds*kaiku.SampleRate))
	for i := 0; i < steps; i++ {
		for _, hit := range seq.Advance(stepDur) {
			eng.Trigger(hit.Instrument, hit.NoteID)
		}
		buffer = append(buffer, eng.Render(stepSamples)...)
	}
	buffer = append(buffer, eng.Render(int(tailSeconds*kaiku.SampleRate))...)
	return buffer, nil
}
