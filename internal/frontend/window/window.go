//go:build !headless

package window

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// layoutKeys contains the host keys in the order of frontend.Layout.
var layoutKeys = [len(frontend.Layout)]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyR,
	ebiten.KeyA, ebiten.KeyS, ebiten.KeyD, ebiten.KeyF,
	ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC, ebiten.KeyV,
}

// Window runs the emulation inside the ebiten game loop, every game update
// executes one frame.
type Window struct {
	ctx    context.Context
	logger *log.Logger
	runner *runner.Runner
	scale  int
	tps    int

	pressed [chip8.KeyCount]bool
	pixels  []byte
}

// New returns a window frontend driving the given runner with tps frames
// per second.
func New(logger *log.Logger, r *runner.Runner, scale, tps int) *Window {
	return &Window{
		logger: logger,
		runner: r,
		scale:  max(scale, 1),
		tps:    tps,
		pixels: make([]byte, pixelBufferSize),
	}
}

// Run opens the window and blocks until it is closed, the context is
// cancelled or the emulation fails.
func (w *Window) Run(ctx context.Context) error {
	w.ctx = ctx

	ebiten.SetWindowSize(chip8.DisplayWidth*w.scale, chip8.DisplayHeight*w.scale)
	ebiten.SetWindowTitle("retrochip8")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(w.tps)

	w.logger.Debug("Opening window", log.Int("scale", w.scale))
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || w.runner.Done() {
		return ebiten.Termination
	}

	if err := w.runner.Step(w); err != nil {
		if runner.IsQuit(err) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.WritePixels(w.pixels)
}

// Layout implements ebiten.Game, the screen keeps the display resolution and
// is scaled to the window by ebiten.
func (w *Window) Layout(_, _ int) (int, int) {
	return chip8.DisplayWidth, chip8.DisplayHeight
}

// Poll implements runner.Frontend by reading the host keyboard state.
func (w *Window) Poll(report func(key int, pressed bool) error) (bool, error) {
	for i, hostKey := range layoutKeys {
		key := frontend.LayoutKeys[i]
		pressed := ebiten.IsKeyPressed(hostKey)
		if pressed == w.pressed[key] {
			continue
		}
		w.pressed[key] = pressed
		if err := report(key, pressed); err != nil {
			return false, fmt.Errorf("reporting key %X: %w", key, err)
		}
	}
	return false, nil
}

// Present implements runner.Frontend.
func (w *Window) Present(display chip8.Display) error {
	fillPixels(w.pixels, &display)
	return nil
}
