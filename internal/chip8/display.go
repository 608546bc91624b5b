package chip8

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the monochrome display buffer, stored row-major with one
// element per pixel.
type Display [DisplayWidth * DisplayHeight]bool

// Pixel returns whether the pixel at the given coordinates is set.
// Coordinates wrap around the display edges.
func (d *Display) Pixel(x, y int) bool {
	return d[offsetOf(x, y)]
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	*d = Display{}
}

// Lit returns the number of pixels that are set.
func (d *Display) Lit() int {
	count := 0
	for _, on := range d {
		if on {
			count++
		}
	}
	return count
}

// toggle flips the pixel at the given coordinates and returns whether it
// was set before.
func (d *Display) toggle(x, y int) bool {
	i := offsetOf(x, y)
	was := d[i]
	d[i] = !was
	return was
}

func offsetOf(x, y int) int {
	x %= DisplayWidth
	if x < 0 {
		x += DisplayWidth
	}
	y %= DisplayHeight
	if y < 0 {
		y += DisplayHeight
	}
	return y*DisplayWidth + x
}
