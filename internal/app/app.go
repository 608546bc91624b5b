// Package app provides the main application helpers for the emulator.
package app

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints the information about the program to run.
func PrintInfo(logger *log.Logger, opts options.Program, frontend string, size int) {
	if opts.Quiet {
		return
	}

	input := opts.Input
	if input == "" {
		input = "memory"
	}

	logger.Info("Running CHIP-8 program",
		log.String("file", input),
		log.Int("size", size),
		log.String("frontend", frontend),
		log.Int("ips", opts.InstructionsPerSecond),
	)
	if opts.Frames > 0 {
		logger.Info("Frame limit set", log.Int("frames", opts.Frames))
	}
}
