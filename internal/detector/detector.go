// Package detector handles frontend detection.
package detector

import (
	"os"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Detector handles frontend detection from options and the attached output.
type Detector struct {
	logger     *log.Logger
	isTerminal func() bool
}

// New creates a new frontend detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Detect determines the frontend to use. An explicitly requested frontend
// is returned as is, otherwise the terminal frontend is used when running
// interactively and the headless frontend when the output is redirected.
func (d *Detector) Detect(opts options.Program) string {
	if opts.Frontend != "" {
		return opts.Frontend
	}

	frontend := options.FrontendHeadless
	if d.isTerminal() {
		frontend = options.FrontendTerminal
	}
	d.logger.Debug("Auto-detected frontend",
		log.String("frontend", frontend))
	return frontend
}
