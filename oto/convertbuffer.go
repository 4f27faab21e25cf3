package oto

import (
	"encoding/binary"
	"io"
	"math"
	"sync"

	"github.com/kaiku-synth/kaiku"
)

const bytesPerSample = 4 // float32 little-endian

// sourceReader exposes an AudioSource as the io.Reader an oto player
// pulls from, converting float32 samples to their byte representation.
// The scratch buffer is reused between reads so the audio callback path
// stays allocation free after the first read.
type sourceReader struct {
	source  kaiku.AudioSource
	scratch []float32
	eof     chan struct{}
	once    sync.Once
}

func newSourceReader(source kaiku.AudioSource) *sourceReader {
	return &sourceReader{source: source, eof: make(chan struct{})}
}

func (r *sourceReader) Read(p []byte) (int, error) {
	samples := len(p) / bytesPerSample
	if cap(r.scratch) < samples {
		r.scratch = make([]float32, samples)
	}
	n, err := r.source.ReadAudio(r.scratch[:samples])
	for i, v := range r.scratch[:n] {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(v))
	}
	if err == io.EOF {
		r.once.Do(func() { close(r.eof) })
	}
	return n * bytesPerSample, err
}
