// Package kaiku is a small real-time polyphonic synthesis engine. The root
// package contains the pure synthesis domain: oscillators, the note scale,
// the stateless ADSR envelope and the built-in instrument catalog. The
// engine package owns the live voices and the step sequencer, and the oto
// package plays rendered audio on an actual sound device.
package kaiku

import "io"

// SampleRate is the only sample rate the engine renders at.
const SampleRate = 44100

// AudioSource produces successive mono samples of audio. ReadAudio fills
// buffer with float32 samples and returns the number of values written;
// io.EOF signals that the source is exhausted.
type AudioSource interface {
	ReadAudio(buffer []float32) (int, error)
}

// CloserWaiter is returned by AudioContext.Play; Wait blocks until the
// played source has been consumed and heard.
type CloserWaiter interface {
	Close() error
	Wait()
}

// AudioContext is the audio device abstraction; the oto subpackage provides
// the real implementation.
type AudioContext interface {
	Play(source AudioSource) CloserWaiter
	Close() error
}

// AudioBuffer is rendered mono audio, one float32 value per sample.
type AudioBuffer []float32

// Source returns an AudioSource that reads through the buffer once.
func (b AudioBuffer) Source() AudioSource {
	return &bufferSource{buffer: b}
}

type bufferSource struct {
	buffer   AudioBuffer
	position int
}

func (s *bufferSource) ReadAudio(buffer []float32) (int, error) {
	n := copy(buffer, s.buffer[s.position:])
	s.position += n
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}
