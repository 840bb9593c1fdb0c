package banana

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// fpsOverlay draws frame rate and draw stats in the top-left corner. The
// text is refreshed every ~0.5 seconds.
type fpsOverlay struct {
	text string
	last time.Time
}

func (o *fpsOverlay) update(stats FrameStats) {
	if o.text != "" && time.Since(o.last) < 500*time.Millisecond {
		return
	}
	o.last = time.Now()
	o.text = formatOverlay(ebiten.ActualFPS(), ebiten.ActualTPS(), stats)
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	// Semi-transparent background for readability
	vector.DrawFilledRect(screen, 0, 0, 140, 48, color.RGBA{0, 0, 0, 128}, false)
	ebitenutil.DebugPrint(screen, o.text)
}

func formatOverlay(fps, tps float64, s FrameStats) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nparts: %d/%d", fps, tps, s.Parts, s.Parts+s.Skipped)
}
