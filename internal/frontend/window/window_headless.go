//go:build headless

package window

import (
	"context"

	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// Window is unavailable in headless builds.
type Window struct{}

// New returns a window frontend that fails to run.
func New(*log.Logger, *runner.Runner, int, int) *Window {
	return &Window{}
}

// Run returns ErrUnavailable.
func (w *Window) Run(context.Context) error {
	return ErrUnavailable
}
