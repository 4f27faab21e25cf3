package oto

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/kaiku-synth/kaiku"
)

func TestSourceReaderConvertsSamples(t *testing.T) {
	buffer := kaiku.AudioBuffer{0, 0.25, -0.5, 1}
	reader := newSourceReader(buffer.Source())
	raw := make([]byte, len(buffer)*bytesPerSample)
	n, err := reader.Read(raw)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if n != len(raw) {
		t.Fatalf("read %d bytes, expected %d", n, len(raw))
	}
	for i, want := range buffer {
		bits := binary.LittleEndian.Uint32(raw[i*bytesPerSample:])
		if got := math.Float32frombits(bits); got != want {
			t.Errorf("sample %d decoded to %v, expected %v", i, got, want)
		}
	}
}

func TestSourceReaderSignalsEOF(t *testing.T) {
	buffer := kaiku.AudioBuffer{1, 2}
	reader := newSourceReader(buffer.Source())
	raw := make([]byte, 16)
	for i := 0; i < 10; i++ {
		if _, err := reader.Read(raw); err == io.EOF {
			select {
			case <-reader.eof:
			default:
				t.Error("eof channel not closed after io.EOF")
			}
			return
		}
	}
	t.Fatal("reader never returned io.EOF")
}
