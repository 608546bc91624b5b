// Package frontend contains the keypad layout shared by all frontends.
package frontend

// Layout is the host keyboard layout mapped onto the CHIP-8 keypad, read row
// by row:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
const Layout = "1234qwerasdfzxcv"

// LayoutKeys contains the keypad key for every character of Layout.
var LayoutKeys = [len(Layout)]int{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

// KeyForChar returns the keypad key for a host keyboard character.
// Upper case characters map to the same keys as lower case ones.
func KeyForChar(c byte) (int, bool) {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	for i := range len(Layout) {
		if Layout[i] == c {
			return LayoutKeys[i], true
		}
	}
	return 0, false
}
