//go:build !headless

package audio

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays a square wave tone on the default audio device while active.
type Beeper struct {
	*tone

	ctx    *oto.Context
	player *oto.Player
}

// NewBeeper opens the audio device and starts a silent player.
func NewBeeper() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	b := &Beeper{
		tone: newTone(SampleRate, ToneFrequency),
		ctx:  ctx,
	}
	b.player = ctx.NewPlayer(b.tone)
	b.player.Play()
	return b, nil
}

// Close stops the player.
func (b *Beeper) Close() error {
	b.SetActive(false)
	if err := b.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
