// Package pipeline orchestrates the emulation workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(logger),
	}
}

// Execute loads the program given in the options and runs it with the
// detected frontend. The final display of headless runs is written to output.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, output io.Writer) error {
	data, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	frontend := p.detector.Detect(opts)
	return p.ExecuteWithProgram(ctx, data, opts, frontend, output)
}

// ExecuteWithProgram runs the emulation pipeline with a pre-loaded program image.
// This is useful for testing and programmatic usage where the program is already in memory.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, data []byte, opts options.Program,
	frontend string, output io.Writer) error {

	machine, err := p.createMachine(data, opts)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}

	app.PrintInfo(p.logger, opts, frontend, len(data))

	var beeper *audio.Beeper
	if !opts.Mute && frontend != options.FrontendHeadless {
		beeper, err = audio.NewBeeper()
		if err != nil {
			p.logger.Warn("Sound output disabled", log.Err(err))
			beeper = nil
		} else {
			defer func() { _ = beeper.Close() }()
		}
	}

	cfg := runner.Config{
		InstructionsPerSecond: opts.InstructionsPerSecond,
		TimerHz:               options.DefaultTimerHz,
		MaxFrames:             opts.Frames,
		Unpaced:               frontend == options.FrontendHeadless && opts.Frames > 0,
	}
	r := runner.New(machine, p.logger, cfg, beeperOrNil(beeper))

	if err := p.run(ctx, r, opts, frontend, output); err != nil {
		p.logMachineState(machine)
		return err
	}

	p.logger.Debug("Emulation finished", log.Int("frames", r.Frames()))
	return nil
}

func (p *Pipeline) createMachine(data []byte, opts options.Program) (*chip8.Machine, error) {
	machineOpts := []chip8.Option{
		chip8.WithRandom(chip8.NewRandomSource(opts.Seed)),
	}
	if opts.Debug {
		machineOpts = append(machineOpts, chip8.WithLogger(p.logger))
	}

	machine := chip8.New(machineOpts...)
	if err := machine.Load(data); err != nil {
		return nil, fmt.Errorf("loading program into memory: %w", err)
	}
	return machine, nil
}

// run drives the runner with the frontend matching the given name.
func (p *Pipeline) run(ctx context.Context, r *runner.Runner, opts options.Program,
	frontend string, output io.Writer) error {

	switch frontend {
	case options.FrontendHeadless:
		h := headless.New()
		if err := r.Run(ctx, h); err != nil {
			return fmt.Errorf("running headless: %w", err)
		}
		return p.writeDisplay(h, opts, output)

	case options.FrontendTerminal:
		t := terminal.New(p.logger, os.Stdin, os.Stdout, opts.KeyHoldFrames)
		if err := t.Open(); err != nil {
			return fmt.Errorf("opening terminal: %w", err)
		}
		runErr := r.Run(ctx, t)
		if err := t.Close(); err != nil {
			p.logger.Error("Restoring terminal failed", log.Err(err))
		}
		if runErr != nil {
			return fmt.Errorf("running in terminal: %w", runErr)
		}
		return nil

	case options.FrontendWindow:
		w := window.New(p.logger, r, opts.Scale, options.DefaultTimerHz)
		if err := w.Run(ctx); err != nil {
			return fmt.Errorf("running in window: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unsupported frontend '%s'", frontend)
	}
}

// writeDisplay writes the final display of a headless run to the output file
// or the given writer.
func (p *Pipeline) writeDisplay(h *headless.Headless, opts options.Program, output io.Writer) error {
	if opts.Output == "" {
		if err := h.WriteDisplay(output); err != nil {
			return fmt.Errorf("writing display: %w", err)
		}
		return nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	if err := h.WriteDisplay(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing display to %s: %w", opts.Output, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing output file %s: %w", opts.Output, err)
	}
	return nil
}

func (p *Pipeline) logMachineState(machine *chip8.Machine) {
	p.logger.Debug("Machine state",
		log.Hex("pc", machine.PC()),
		log.Hex("index", machine.Index()),
		log.Int("stack_depth", machine.StackDepth()),
		log.Hex("delay_timer", machine.DelayTimer()),
		log.Hex("sound_timer", machine.SoundTimer()))
}

// beeperOrNil avoids passing a typed nil pointer as runner.Beeper.
func beeperOrNil(beeper *audio.Beeper) runner.Beeper {
	if beeper == nil {
		return nil
	}
	return beeper
}
