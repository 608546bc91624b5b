//go:build headless

package audio

// Beeper tracks the tone state without an audio device.
type Beeper struct {
	*tone
}

// NewBeeper returns a silent beeper.
func NewBeeper() (*Beeper, error) {
	return &Beeper{
		tone: newTone(SampleRate, ToneFrequency),
	}, nil
}

// Close does nothing.
func (b *Beeper) Close() error {
	return nil
}
