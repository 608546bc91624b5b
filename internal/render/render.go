// Package render converts the CHIP-8 display buffer into text.
package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Characters used by Text by default.
const (
	PixelOn  = '#'
	PixelOff = '.'
)

// Half block characters, each text cell covers two pixel rows.
const (
	blockUpper = '▀'
	blockLower = '▄'
	blockFull  = '█'
	blockEmpty = ' '
)

// Text writes the display with one character per pixel and one line per row.
func Text(w io.Writer, d chip8.Display, on, off rune) error {
	buf := bufio.NewWriter(w)
	for y := range chip8.DisplayHeight {
		for x := range chip8.DisplayWidth {
			c := off
			if d.Pixel(x, y) {
				c = on
			}
			if _, err := buf.WriteRune(c); err != nil {
				return fmt.Errorf("writing pixel: %w", err)
			}
		}
		if err := buf.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing line end: %w", err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

// HalfBlocks writes the display using Unicode half blocks so that two pixel
// rows share a line. Lines are terminated with CR LF to render correctly on
// terminals in raw mode.
func HalfBlocks(w io.Writer, d chip8.Display) error {
	buf := bufio.NewWriter(w)
	for y := 0; y < chip8.DisplayHeight; y += 2 {
		for x := range chip8.DisplayWidth {
			if _, err := buf.WriteRune(halfBlock(d.Pixel(x, y), d.Pixel(x, y+1))); err != nil {
				return fmt.Errorf("writing pixel: %w", err)
			}
		}
		if _, err := buf.WriteString("\r\n"); err != nil {
			return fmt.Errorf("writing line end: %w", err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

func halfBlock(upper, lower bool) rune {
	switch {
	case upper && lower:
		return blockFull
	case upper:
		return blockUpper
	case lower:
		return blockLower
	default:
		return blockEmpty
	}
}
