// Package engine implements the polyphonic voice pool: triggering and
// releasing notes, mixing the active voices into samples and exposing the
// result as an audio source with a sample-accurate clock.
package engine

import (
	"runtime"
	"sync/atomic"

	"github.com/kaiku-synth/kaiku"
)

const (
	// MaxVoices bounds the pool. Triggers beyond the bound steal the voice
	// furthest into its release, or are dropped when nothing is releasing.
	MaxVoices = 64

	// headroom scales the mixed sum so that a handful of simultaneous
	// voices stays clear of clipping.
	headroom = 0.2

	// neverReleased keeps On > Off for a note triggered at engine time
	// zero, so a fresh note always starts out sustaining.
	neverReleased = -1.0
)

// spinLock is a busy-waiting mutex. The render path holds it for one
// buffer at a time and triggers hold it for a few dozen nanoseconds, so
// spinning beats parking the goroutine in the scheduler.
type spinLock struct {
	held atomic.Bool
}

func (l *spinLock) Lock() {
	for !l.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

func (l *spinLock) Unlock() {
	l.held.Store(false)
}

// Engine mixes a pool of notes through the built-in instrument catalog.
// It implements kaiku.AudioSource; time advances only as samples are
// read, so an engine driven by a player stays in lockstep with playback.
//
// All methods are safe to call concurrently. The zero value is not
// usable, use NewEngine.
type Engine struct {
	lock    spinLock
	catalog []kaiku.Instrument
	notes   [MaxVoices]kaiku.Note
	active  int
	frame   atomic.Int64
}

// NewEngine returns an engine with an empty pool over the built-in
// instrument catalog.
func NewEngine() *Engine {
	return &Engine{catalog: kaiku.Catalog()}
}

// Now returns the engine clock in seconds: the number of samples rendered
// so far divided by the sample rate.
func (e *Engine) Now() float64 {
	return float64(e.frame.Load()) / kaiku.SampleRate
}

// Trigger starts a note, or retriggers it when the same instrument is
// already playing the same note id. Retriggering restarts the envelope
// from the current time without allocating a second voice.
func (e *Engine) Trigger(kind kaiku.Kind, noteID int) {
	now := e.Now()
	e.lock.Lock()
	defer e.lock.Unlock()
	for i := 0; i < e.active; i++ {
		n := &e.notes[i]
		if n.Instrument == kaiku.InstrumentID(kind) && n.ID == noteID {
			n.On = now
			n.Off = neverReleased
			n.Active = true
			return
		}
	}
	slot := e.active
	if slot == MaxVoices {
		slot = e.stealSlot(now)
		if slot < 0 {
			return
		}
	} else {
		e.active++
	}
	e.notes[slot] = kaiku.Note{
		ID:         noteID,
		On:         now,
		Off:        neverReleased,
		Active:     true,
		Instrument: kaiku.InstrumentID(kind),
	}
}

// stealSlot picks the released note furthest into its decay, the one a
// listener is least likely to miss. Returns -1 when every voice is still
// sustaining.
func (e *Engine) stealSlot(now float64) int {
	slot, furthest := -1, -1.0
	for i := 0; i < e.active; i++ {
		n := &e.notes[i]
		if n.Sustaining() {
			continue
		}
		if age := now - n.Off; age > furthest {
			slot, furthest = i, age
		}
	}
	return slot
}

// Release marks the matching sustaining note as released at the current
// time. Releasing a note that is not playing is a no-op.
func (e *Engine) Release(kind kaiku.Kind, noteID int) {
	now := e.Now()
	e.lock.Lock()
	defer e.lock.Unlock()
	for i := 0; i < e.active; i++ {
		n := &e.notes[i]
		if n.Instrument == kaiku.InstrumentID(kind) && n.ID == noteID && n.Sustaining() {
			n.Off = now
		}
	}
}

// ActiveVoices reports the current pool occupancy.
func (e *Engine) ActiveVoices() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.active
}

// renderSample mixes every active voice at the given time and compacts
// finished voices out of the pool. Caller holds the lock.
func (e *Engine) renderSample(time float64) float64 {
	var sum float64
	for i := 0; i < e.active; i++ {
		n := &e.notes[i]
		id := int(n.Instrument)
		if id < 0 || id >= len(e.catalog) {
			n.Active = false
			continue
		}
		sample, finished := e.catalog[id].Sound(time, *n)
		sum += sample
		if finished {
			n.Active = false
		}
	}
	// Swap-remove keeps the live voices contiguous without shifting.
	for i := 0; i < e.active; {
		if e.notes[i].Active {
			i++
			continue
		}
		e.active--
		e.notes[i] = e.notes[e.active]
	}
	return sum * headroom
}

// ReadAudio renders the next len(buffer) mono samples and advances the
// engine clock. It never returns io.EOF; a live engine is an endless
// source and playback stops by closing the player.
func (e *Engine) ReadAudio(buffer []float32) (int, error) {
	e.lock.Lock()
	frame := e.frame.Load()
	for i := range buffer {
		time := float64(frame+int64(i)) / kaiku.SampleRate
		buffer[i] = float32(e.renderSample(time))
	}
	e.frame.Store(frame + int64(len(buffer)))
	e.lock.Unlock()
	return len(buffer), nil
}

// Render computes a fixed number of samples into a fresh buffer. It is
// the offline counterpart of ReadAudio and shares its clock.
func (e *Engine) Render(samples int) kaiku.AudioBuffer {
	buffer := make([]float32, samples)
	e.ReadAudio(buffer)
	return kaiku.AudioBuffer(buffer)
}
