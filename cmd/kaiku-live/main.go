// Command kaiku-live plays the synth interactively: the middle rows of a
// qwerty keyboard become a piano, an optional midi input port plays real
// keys, and an optional song file runs as a rhythm backing track.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/eiannone/keyboard"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/kaiku-synth/kaiku"
	"github.com/kaiku-synth/kaiku/engine"
	"github.com/kaiku-synth/kaiku/oto"
	"github.com/kaiku-synth/kaiku/version"
)

// keyNotes maps the zsxcfvgbnjmk, row to note ids starting at 64,
// laying a chromatic octave on the home row the way tracker keyjazz
// does.
const keyNotes = "zsxcfvgbnjmk,"

const baseNoteID = 64

func main() {
	instrumentName := flag.String("i", "Harmonica", "Instrument to play on the keyboard and midi input.")
	midiIn := flag.Int("m", -1, "Midi input port number to listen to. Negative means no midi input.")
	listMidi := flag.Bool("M", false, "List midi input ports and exit.")
	songFile := flag.String("b", "", "Song file to loop as a backing track.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.String())
		os.Exit(0)
	}
	if *listMidi {
		for i, in := range midi.GetInPorts() {
			fmt.Printf("%d: %s\n", i, in)
		}
		os.Exit(0)
	}
	kind, err := kaiku.KindForName(*instrumentName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v; available instruments:\n", err)
		for _, in := range kaiku.Catalog() {
			fmt.Fprintf(os.Stderr, "  %s\n", in.Name)
		}
		os.Exit(1)
	}

	audioContext, err := oto.NewContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not acquire oto AudioContext: %v\n", err)
		os.Exit(1)
	}
	defer audioContext.Close()

	eng := engine.NewEngine()
	player := audioContext.Play(eng)
	defer player.Close()

	if *midiIn >= 0 {
		stop, err := listenMidi(*midiIn, eng, kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open midi input: %v\n", err)
			os.Exit(1)
		}
		defer stop()
	}

	if *songFile != "" {
		song, err := engine.LoadSong(*songFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		go runBacking(song, eng)
	}

	if err := keyboard.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "could not open keyboard: %v\n", err)
		os.Exit(1)
	}
	defer keyboard.Close()

	fmt.Printf("playing %s; keys %q are notes, space releases, esc quits\n", *instrumentName, keyNotes)
	held := -1
	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			fmt.Fprintf(os.Stderr, "keyboard read failed: %v\n", err)
			return
		}
		switch {
		case key == keyboard.KeyEsc || key == keyboard.KeyCtrlC:
			return
		case key == keyboard.KeySpace:
			if held >= 0 {
				eng.Release(kind, held)
				held = -1
			}
		default:
			note := noteForKey(char)
			if note < 0 {
				continue
			}
			if held >= 0 && held != note {
				eng.Release(kind, held)
			}
			eng.Trigger(kind, note)
			held = note
		}
	}
}

func noteForKey(char rune) int {
	for i, k := range keyNotes {
		if k == char {
			return baseNoteID + i
		}
	}
	return -1
}

// listenMidi routes note on/off messages from the given input port into
// the engine. Midi note numbers are used directly as note ids, which
// puts midi middle C near the top of the keyboard range.
func listenMidi(port int, eng *engine.Engine, kind kaiku.Kind) (func(), error) {
	in, err := midi.InPort(port)
	if err != nil {
		return nil, err
	}
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var channel, key, velocity uint8
		if msg.GetNoteOn(&channel, &key, &velocity) {
			eng.Trigger(kind, int(key))
		} else if msg.GetNoteOff(&channel, &key, &velocity) {
			eng.Release(kind, int(key))
		}
	})
	if err != nil {
		return nil, err
	}
	return func() { stop() }, nil
}

// runBacking advances the song's sequencer against the engine clock so
// the backing track cannot drift from the audio output.
func runBacking(song *engine.Song, eng *engine.Engine) {
	seq := song.Sequencer()
	last := eng.Now()
	for range time.Tick(5 * time.Millisecond) {
		now := eng.Now()
		for _, hit := range seq.Advance(now - last) {
			eng.Trigger(hit.Instrument, hit.NoteID)
		}
		last = now
	}
}
