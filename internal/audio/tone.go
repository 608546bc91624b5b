// Package audio implements the beeper that sounds while the CHIP-8 sound
// timer is active.
package audio

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

// Tone settings of the beeper.
const (
	SampleRate    = 44100
	ToneFrequency = 440
	amplitude     = 0.15
	sampleSize    = 4 // mono 32 bit float samples
)

// tone generates a square wave while active and silence otherwise. Read is
// called from the audio goroutine, SetActive from the emulation loop.
type tone struct {
	active     atomic.Bool
	halfPeriod int
	position   int
}

func newTone(sampleRate, frequency int) *tone {
	return &tone{
		halfPeriod: max(sampleRate/frequency/2, 1),
	}
}

// SetActive switches the tone on or off.
func (t *tone) SetActive(active bool) {
	t.active.Store(active)
}

// Active returns whether the tone is switched on.
func (t *tone) Active() bool {
	return t.active.Load()
}

// Read fills p with little endian float32 samples.
func (t *tone) Read(p []byte) (int, error) {
	samples := len(p) / sampleSize
	active := t.active.Load()

	for i := range samples {
		var value float32
		if active {
			value = amplitude
			if (t.position/t.halfPeriod)%2 == 1 {
				value = -amplitude
			}
			t.position++
		} else {
			t.position = 0
		}
		binary.LittleEndian.PutUint32(p[i*sampleSize:], math.Float32bits(value))
	}
	return samples * sampleSize, nil
}
