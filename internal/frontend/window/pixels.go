// Package window implements a frontend that shows the display in a desktop
// window and reads the keypad from the host keyboard.
package window

import (
	"errors"
	"image/color"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// ErrUnavailable is returned when the binary was built without window support.
var ErrUnavailable = errors.New("window frontend is not available in headless builds")

// Pixel colors of the display.
var (
	colorOn  = color.RGBA{R: 0xE0, G: 0xF0, B: 0xD0, A: 0xFF}
	colorOff = color.RGBA{R: 0x10, G: 0x18, B: 0x10, A: 0xFF}
)

// pixelBufferSize is the size of an RGBA buffer covering the display.
const pixelBufferSize = chip8.DisplayWidth * chip8.DisplayHeight * 4

// fillPixels converts the display into RGBA pixels.
func fillPixels(dst []byte, display *chip8.Display) {
	for i, on := range display {
		c := colorOff
		if on {
			c = colorOn
		}
		dst[i*4] = c.R
		dst[i*4+1] = c.G
		dst[i*4+2] = c.B
		dst[i*4+3] = c.A
	}
}
