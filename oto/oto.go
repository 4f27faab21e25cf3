// Package oto outputs audio through the ebitengine/oto library. It adapts
// pull-based kaiku.AudioSources to oto players, which read float32
// little-endian bytes.
package oto

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/kaiku-synth/kaiku"
)

// Context wraps an oto context configured for the engine's mono float32
// stream. Only one context may exist per process.
type Context struct {
	context *oto.Context
	ready   chan struct{}
}

// NewContext opens the audio device.
func NewContext() (*Context, error) {
	options := &oto.NewContextOptions{
		SampleRate:   kaiku.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	context, ready, err := oto.NewContext(options)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	return &Context{context: context, ready: ready}, nil
}

// Close suspends the context. oto contexts cannot be destroyed, so this
// just stops the device from being fed.
func (c *Context) Close() error {
	if err := c.context.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

// Play starts playing the source and returns a handle to stop playback
// or wait for a finite source to drain.
func (c *Context) Play(source kaiku.AudioSource) kaiku.CloserWaiter {
	<-c.ready
	reader := newSourceReader(source)
	player := c.context.NewPlayer(reader)
	player.Play()
	return &playback{player: player, reader: reader}
}

type playback struct {
	player *oto.Player
	reader *sourceReader
}

func (p *playback) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}

// Wait blocks until the source has returned io.EOF and the player has
// drained its buffer. Waiting on an endless source blocks forever.
func (p *playback) Wait() {
	<-p.reader.eof
	for p.player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
}
