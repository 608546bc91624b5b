// Package runner paces a CHIP-8 machine against real time and connects it
// to a frontend.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Machine is the state access surface of the emulated system the runner drives.
type Machine interface {
	Tick() error
	TickTimers()
	Keypress(key int, pressed bool) error
	Display() chip8.Display
	SoundActive() bool
}

// Frontend polls host input and presents frames.
type Frontend interface {
	// Poll reports key transitions since the last poll and returns whether
	// the user asked to quit.
	Poll(report func(key int, pressed bool) error) (quit bool, err error)
	// Present shows the display buffer.
	Present(display chip8.Display) error
}

// Beeper outputs a tone while active.
type Beeper interface {
	SetActive(active bool)
}

// Config controls the execution speed.
type Config struct {
	InstructionsPerSecond int
	TimerHz               int
	MaxFrames             int  // 0 runs until stopped
	Unpaced               bool // run frames back to back without waiting for the timer period
}

// Runner executes frames of instructions and timer ticks.
type Runner struct {
	machine Machine
	logger  *log.Logger
	beeper  Beeper

	timerHz        int
	cyclesPerFrame int
	maxFrames      int
	unpaced        bool
	frames         int
	beeping        bool
}

// New returns a new runner for the machine. The beeper is optional.
func New(machine Machine, logger *log.Logger, cfg Config, beeper Beeper) *Runner {
	timerHz := max(cfg.TimerHz, 1)
	return &Runner{
		machine:        machine,
		logger:         logger,
		beeper:         beeper,
		timerHz:        timerHz,
		cyclesPerFrame: max(cfg.InstructionsPerSecond/timerHz, 1),
		maxFrames:      cfg.MaxFrames,
		unpaced:        cfg.Unpaced,
	}
}

// Frames returns the number of executed frames.
func (r *Runner) Frames() int {
	return r.frames
}

// Done returns whether the configured frame limit has been reached.
func (r *Runner) Done() bool {
	return r.maxFrames > 0 && r.frames >= r.maxFrames
}

// Frame executes the instructions of one timer period followed by a single
// timer tick and updates the beeper.
func (r *Runner) Frame() error {
	for range r.cyclesPerFrame {
		if err := r.machine.Tick(); err != nil {
			return fmt.Errorf("frame %d: %w", r.frames, err)
		}
	}
	r.machine.TickTimers()
	r.frames++

	sound := r.machine.SoundActive()
	if sound != r.beeping {
		r.beeping = sound
		if r.beeper != nil {
			r.beeper.SetActive(sound)
		}
	}
	return nil
}

// Run drives the machine with a frame per timer period until the context is
// cancelled, the frontend asks to quit, the frame limit is reached or the
// machine returns an error.
func (r *Runner) Run(ctx context.Context, frontend Frontend) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.timerHz))
	defer ticker.Stop()
	defer r.silence()

	r.logger.Debug("Starting emulation",
		log.Int("cycles_per_frame", r.cyclesPerFrame),
		log.Int("timer_hz", r.timerHz))

	for !r.Done() {
		if r.unpaced {
			if err := ctx.Err(); err != nil {
				return err
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}

		if err := r.Step(frontend); err != nil {
			if IsQuit(err) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Step runs a single frame without waiting: input is polled, the frame is
// executed and the display presented.
func (r *Runner) Step(frontend Frontend) error {
	quit, err := frontend.Poll(r.machine.Keypress)
	if err != nil {
		return fmt.Errorf("polling input: %w", err)
	}
	if quit {
		r.logger.Debug("Quit requested", log.Int("frames", r.frames))
		return errQuit
	}

	if err := r.Frame(); err != nil {
		return err
	}

	if err := frontend.Present(r.machine.Display()); err != nil {
		return fmt.Errorf("presenting display: %w", err)
	}
	return nil
}

func (r *Runner) silence() {
	if r.beeping && r.beeper != nil {
		r.beeper.SetActive(false)
	}
	r.beeping = false
}
