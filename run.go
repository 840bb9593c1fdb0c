package banana

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Resizable lets the user resize the window; the engine is resized to
	// match.
	Resizable bool
	// ShowFPS draws the frame rate and part counts over the scene.
	ShowFPS bool
	// Screenshots lets F12 queue a screenshot of the next frame.
	Screenshots bool
}

// game adapts an Engine drawing into an EbitenSurface to ebiten.Game.
type game struct {
	engine  *Engine
	surface *EbitenSurface
	cfg     RunConfig
	fps     *fpsOverlay
	w, h    int
}

func (g *game) Update() error {
	g.engine.Update()
	if g.cfg.Screenshots && inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.surface.Screenshot(g.cfg.Title)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	g.engine.Draw()
	// Captured before the overlay so screenshots show only the scene.
	g.surface.flushScreenshots(g.engine.log)
	if g.fps != nil {
		g.fps.update(g.engine.Stats())
		g.fps.draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		if err := g.engine.Resize(outsideWidth, outsideHeight); err != nil {
			g.engine.log.Error("resize failed", zap.Error(err))
		}
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives e until the window is closed. e must have
// been created with an *EbitenSurface.
func Run(e *Engine, cfg RunConfig) error {
	surface, ok := e.surface.(*EbitenSurface)
	if !ok {
		return fmt.Errorf("banana: Run needs an *EbitenSurface, got %T", e.surface)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = surface.Size()
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	g := &game{engine: e, surface: surface, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = &fpsOverlay{}
	}
	defer e.Close()
	return ebiten.RunGame(g)
}
