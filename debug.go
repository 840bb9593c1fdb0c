package banana

import (
	"time"

	"go.uber.org/zap"
)

// renderStats holds per-frame draw metrics. Counted every frame, logged only
// in debug mode.
type renderStats struct {
	objects   int
	parts     int
	skipped   int
	drawCalls int
	fills     int
	saves     int
	drawTime  time.Duration
}

// debugLog writes the frame's draw metrics at debug level.
func (e *Engine) debugLog(stats renderStats) {
	if !e.opts.DebugMode {
		return
	}
	e.log.Debug("frame",
		zap.Int("objects", stats.objects),
		zap.Int("parts", stats.parts),
		zap.Int("skipped", stats.skipped),
		zap.Int("draw_calls", stats.drawCalls),
		zap.Int("pattern_fills", stats.fills),
		zap.Int("saves", stats.saves),
		zap.Duration("draw_time", stats.drawTime),
	)
}

// debugMaxObjects is the object count above which debug mode warns once.
const debugMaxObjects = 10000

func (e *Engine) debugCheckObjectCount() {
	if !e.opts.DebugMode || e.warnedObjects || len(e.objects) <= debugMaxObjects {
		return
	}
	e.warnedObjects = true
	e.log.Warn("object count exceeds threshold",
		zap.Int("objects", len(e.objects)), zap.Int("threshold", debugMaxObjects))
}

// Stats returns the draw metrics of the last frame.
func (e *Engine) Stats() FrameStats {
	s := e.lastStats
	return FrameStats{
		Objects:   s.objects,
		Parts:     s.parts,
		Skipped:   s.skipped,
		DrawCalls: s.drawCalls,
		Saves:     s.saves,
	}
}

// FrameStats reports what the last Draw did.
type FrameStats struct {
	Objects   int // objects rendered
	Parts     int // parts drawn
	Skipped   int // parts skipped because their image was not ready
	DrawCalls int // DrawImage and FillRect calls
	Saves     int // Save/Restore pairs
}
