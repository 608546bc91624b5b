// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendHeadless = "headless"
	FrontendTerminal = "terminal"
	FrontendWindow   = "window"
)

// Frontends lists all supported frontend names.
var Frontends = []string{FrontendHeadless, FrontendTerminal, FrontendWindow}

// Default emulation speed settings.
const (
	DefaultInstructionsPerSecond = 700
	DefaultTimerHz               = 60
	DefaultKeyHoldFrames         = 6
	DefaultScale                 = 10
)

// Parameters contains file path options.
type Parameters struct {
	Input  string // program image to run, - reads from stdin
	Output string // file to write the final display to in headless mode
}

// Flags contains behavior options.
type Flags struct {
	Frontend              string // frontend to use, empty for auto-detect
	InstructionsPerSecond int
	Frames                int    // number of frames to run, 0 for unlimited
	Seed                  uint64 // random seed, 0 for a random seed
	KeyHoldFrames         int    // frames a terminal key stays pressed after its last input
	Scale                 int    // window pixel scale
	Mute                  bool
	Debug                 bool
	Quiet                 bool
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}
