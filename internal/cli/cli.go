// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <program to run>\n\n")
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && len(arg) > 1 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program to run, please pass the program as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if opts.Frontend == "tty" {
		opts.Frontend = options.FrontendTerminal
	}
	if opts.Frontend != "" && !slices.Contains(options.Frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(options.Frontends, ", "))
	}

	if opts.InstructionsPerSecond < options.DefaultTimerHz {
		return fmt.Errorf("instructions per second must be at least %d", options.DefaultTimerHz)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("frame limit can not be negative: %d", opts.Frames)
	}
	if opts.KeyHoldFrames < 1 {
		opts.KeyHoldFrames = 1
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the program file to run, - reads from stdin")
	flags.StringVar(&opts.Output, "o", "", "name of the file to write the final display to in headless mode, printed on console if no name given")
	flags.StringVar(&opts.Frontend, "f", "", "frontend to use (headless/terminal/window) - auto-detected if not given")
	flags.IntVar(&opts.InstructionsPerSecond, "ips", options.DefaultInstructionsPerSecond, "instructions to execute per second")
	flags.IntVar(&opts.Frames, "frames", 0, "number of 60 Hz frames to run before exiting, 0 runs until quit")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number generator, 0 picks a random seed")
	flags.IntVar(&opts.KeyHoldFrames, "hold", options.DefaultKeyHoldFrames, "frames a key stays pressed after its last terminal input")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "pixel scale of the window frontend")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the sound output")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging and instruction tracing")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
