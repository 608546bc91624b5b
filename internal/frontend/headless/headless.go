// Package headless implements a frontend without input or output devices,
// used for scripted runs with a frame limit.
package headless

import (
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/render"
)

// Headless records presented frames and reports no input.
type Headless struct {
	last      chip8.Display
	presented int
}

// New returns a new headless frontend.
func New() *Headless {
	return &Headless{}
}

// Poll reports no key changes and never requests to quit.
func (h *Headless) Poll(func(key int, pressed bool) error) (bool, error) {
	return false, nil
}

// Present records the display.
func (h *Headless) Present(display chip8.Display) error {
	h.last = display
	h.presented++
	return nil
}

// Presented returns the number of presented frames.
func (h *Headless) Presented() int {
	return h.presented
}

// WriteDisplay writes the last presented display as text.
func (h *Headless) WriteDisplay(w io.Writer) error {
	return render.Text(w, h.last, render.PixelOn, render.PixelOff)
}
