package poncho

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// game adapts a Scene to ebiten.Game.
type game struct {
	scene  *Scene
	width  int
	height int
}

func (g *game) Update() error {
	g.scene.Update()
	if g.scene.updateFunc != nil {
		if err := g.scene.updateFunc(); err != nil {
			return err
		}
	}
	// Queued screenshots are written by the next Draw, so stop only once
	// they have been flushed.
	if r := g.scene.testRunner; r != nil && r.Done() && g.scene.exitOnScriptDone &&
		len(g.scene.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens a window and runs scene until the window is closed or the
// update func returns an error. ebiten.Termination is not reported as an
// error.
func Run(scene *Scene, cfg RunConfig) error {
	if scene == nil {
		panic("poncho: Run with nil scene")
	}
	cfg = cfg.withDefaults()
	if err := applyRunConfig(scene, cfg); err != nil {
		return err
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	g := &game{scene: scene, width: cfg.Width, height: cfg.Height}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("poncho: run: %w", err)
	}
	return nil
}

// applyRunConfig copies the host-independent parts of cfg onto scene.
func applyRunConfig(scene *Scene, cfg RunConfig) error {
	scene.clock.Interval = cfg.FPSInterval
	if cfg.ClearColor != "" {
		c, err := ParseColor(cfg.ClearColor)
		if err != nil {
			return err
		}
		scene.ClearColor = c
	}
	if cfg.ScreenshotDir != "" {
		scene.ScreenshotDir = cfg.ScreenshotDir
	}
	if cfg.Debug {
		scene.SetDebugMode(true)
	}
	if cfg.TestScript != "" {
		r, err := LoadTestScriptFile(cfg.TestScript)
		if err != nil {
			return err
		}
		scene.SetTestRunner(r)
		scene.exitOnScriptDone = true
	}
	if cfg.ShowFPS {
		scene.Root().AddChild(NewFPSText(scene, TextFormat{}))
	}
	return nil
}
