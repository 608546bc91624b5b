// Package terminal implements a frontend that renders the display with text
// and reads the keypad from a terminal in raw mode.
package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/render"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
	"golang.org/x/term"
)

// Escape sequences written to the terminal.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Input bytes that quit the emulation.
const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// Terminal is a text frontend. Terminals only report key presses, so a key
// is considered held for a number of frames after its last input byte.
type Terminal struct {
	logger *log.Logger
	in     io.Reader
	out    io.Writer

	fd       int
	oldState *term.State
	input    chan byte

	holdFrames int
	frame      int
	releaseAt  [chip8.KeyCount]int
	pressed    set.Set[int]
	frameBuf   bytes.Buffer
}

// New returns a terminal frontend reading from in and writing to out.
// Raw mode is only enabled if in is a terminal.
func New(logger *log.Logger, in io.Reader, out io.Writer, holdFrames int) *Terminal {
	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &Terminal{
		logger:     logger,
		in:         in,
		out:        out,
		fd:         fd,
		holdFrames: max(holdFrames, 1),
		pressed:    set.New[int](),
	}
}

// Open switches the terminal into raw mode, clears it and starts reading input.
func (t *Terminal) Open() error {
	if t.fd >= 0 && term.IsTerminal(t.fd) {
		if width, height, err := term.GetSize(t.fd); err == nil &&
			(width < chip8.DisplayWidth || height < chip8.DisplayHeight/2) {
			t.logger.Warn("Terminal is smaller than the display",
				log.Int("width", width),
				log.Int("height", height))
		}

		oldState, err := term.MakeRaw(t.fd)
		if err != nil {
			return fmt.Errorf("setting raw mode: %w", err)
		}
		t.oldState = oldState
	}

	if _, err := io.WriteString(t.out, clearScreen+hideCursor); err != nil {
		return fmt.Errorf("clearing terminal: %w", err)
	}

	t.input = make(chan byte, 64)
	go t.read(t.input)
	return nil
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	_, err := io.WriteString(t.out, showCursor+"\r\n")
	if t.oldState != nil {
		if restoreErr := term.Restore(t.fd, t.oldState); restoreErr != nil {
			return fmt.Errorf("restoring terminal: %w", restoreErr)
		}
		t.oldState = nil
	}
	if err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

// read forwards input bytes until the reader fails. The goroutine is left
// blocked in Read on exit as stdin can not be interrupted portably.
func (t *Terminal) read(input chan<- byte) {
	defer close(input)

	buf := make([]byte, 16)
	for {
		n, err := t.in.Read(buf)
		for _, b := range buf[:n] {
			input <- b
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.logger.Debug("Terminal input closed", log.Err(err))
			}
			return
		}
	}
}

// Poll processes pending input bytes and reports keys whose held state changed.
func (t *Terminal) Poll(report func(key int, pressed bool) error) (bool, error) {
	quit := t.drainInput()

	current := set.New[int]()
	for key, releaseAt := range t.releaseAt {
		if releaseAt > t.frame {
			current.Add(key)
		}
	}

	for key := range chip8.KeyCount {
		now := current.Contains(key)
		if now == t.pressed.Contains(key) {
			continue
		}
		if err := report(key, now); err != nil {
			return false, fmt.Errorf("reporting key %X: %w", key, err)
		}
	}

	t.pressed = current
	t.frame++
	return quit, nil
}

func (t *Terminal) drainInput() bool {
	for {
		select {
		case b, ok := <-t.input:
			if !ok {
				t.input = nil // keep running without input
				return false
			}
			if b == keyCtrlC || b == keyEscape {
				return true
			}
			if key, found := frontend.KeyForChar(b); found {
				t.releaseAt[key] = t.frame + t.holdFrames
			}

		default:
			return false
		}
	}
}

// Present redraws the display at the top left of the terminal.
func (t *Terminal) Present(display chip8.Display) error {
	t.frameBuf.Reset()
	t.frameBuf.WriteString(cursorHome)
	if err := render.HalfBlocks(&t.frameBuf, display); err != nil {
		return fmt.Errorf("rendering display: %w", err)
	}
	if _, err := t.out.Write(t.frameBuf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}
