package banana

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func transformsEqual(a, b Transformation) bool {
	return approxEqual(a.Position.X, b.Position.X, epsilon) &&
		approxEqual(a.Position.Y, b.Position.Y, epsilon) &&
		approxEqual(a.Rotation, b.Rotation, epsilon) &&
		approxEqual(a.Scale.X, b.Scale.X, epsilon) &&
		approxEqual(a.Scale.Y, b.Scale.Y, epsilon)
}

// --- recording surface ---

type call struct {
	op         string
	x, y, w, h float64
	img        Image
	paint      Paint
}

type fakeImage struct {
	w, h int
}

func (i *fakeImage) Size() (int, int) { return i.w, i.h }

type fakePaint struct {
	img  Image
	mode RepeatMode
}

func (p *fakePaint) Repeat() RepeatMode { return p.mode }

// recordingSurface records every call the engine makes.
type recordingSurface struct {
	calls    []call
	depth    int
	maxDepth int
	w, h     int
}

func (s *recordingSurface) record(c call) { s.calls = append(s.calls, c) }

func (s *recordingSurface) Resize(w, h int) error {
	s.w, s.h = w, h
	s.record(call{op: "resize", w: float64(w), h: float64(h)})
	return nil
}

func (s *recordingSurface) Clear() { s.record(call{op: "clear"}) }

func (s *recordingSurface) Save() {
	s.depth++
	if s.depth > s.maxDepth {
		s.maxDepth = s.depth
	}
	s.record(call{op: "save"})
}

func (s *recordingSurface) Restore() {
	s.depth--
	s.record(call{op: "restore"})
}

func (s *recordingSurface) Translate(x, y float64) {
	s.record(call{op: "translate", x: x, y: y})
}

func (s *recordingSurface) Rotate(radians float64) {
	s.record(call{op: "rotate", x: radians})
}

func (s *recordingSurface) DrawImage(img Image, x, y, w, h float64) {
	s.record(call{op: "drawImage", img: img, x: x, y: y, w: w, h: h})
}

func (s *recordingSurface) FillRect(paint Paint, x, y, w, h float64) {
	s.record(call{op: "fillRect", paint: paint, x: x, y: y, w: w, h: h})
}

func (s *recordingSurface) NewImage(src image.Image) Image {
	b := src.Bounds()
	return &fakeImage{w: b.Dx(), h: b.Dy()}
}

func (s *recordingSurface) NewPattern(img Image, mode RepeatMode) Paint {
	return &fakePaint{img: img, mode: mode}
}

// ops returns the recorded operation names, skipping clears.
func (s *recordingSurface) ops() []string {
	var out []string
	for _, c := range s.calls {
		if c.op != "clear" {
			out = append(out, c.op)
		}
	}
	return out
}

func (s *recordingSurface) draws() []call {
	var out []call
	for _, c := range s.calls {
		if c.op == "drawImage" || c.op == "fillRect" {
			out = append(out, c)
		}
	}
	return out
}

func (s *recordingSurface) reset() { s.calls = nil }

// --- clock ---

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1000, 0)} }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(seconds float64) {
	c.t = c.t.Add(time.Duration(seconds * float64(time.Second)))
}

// --- images ---

func pngBytes(t testing.TB, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{200, 50, 50, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// testImages serves a.png (10x20), b.png (4x4) and tile.png (8x8).
func testImages(t testing.TB) MemoryLoader {
	return MemoryLoader{
		"a.png":    pngBytes(t, 10, 20),
		"b.png":    pngBytes(t, 4, 4),
		"tile.png": pngBytes(t, 8, 8),
	}
}

// --- engine ---

type testEngine struct {
	*Engine
	surface *recordingSurface
	clock   *fakeClock
	logs    *observer.ObservedLogs
}

func newTestEngine(t *testing.T, opts *EngineOptions) *testEngine {
	t.Helper()
	if opts == nil {
		opts = &EngineOptions{}
	}
	core, logs := observer.New(zapcore.DebugLevel)
	clock := newFakeClock()
	surface := &recordingSurface{}
	if opts.Loader == nil {
		opts.Loader = testImages(t)
	}
	if opts.Logger == nil {
		opts.Logger = zap.New(core)
	}
	opts.Clock = clock.Now
	e := NewEngine(surface, opts)
	t.Cleanup(e.Close)
	return &testEngine{Engine: e, surface: surface, clock: clock, logs: logs}
}

func (te *testEngine) flush(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := te.Cache().Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func newTestCache(t *testing.T, loader Loader) (*ResourceCache, *recordingSurface, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	surface := &recordingSurface{}
	c := NewResourceCache(surface, loader, 2, zap.New(core))
	t.Cleanup(c.Close)
	return c, surface, logs
}

func flushCache(t *testing.T, c *ResourceCache) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

// puppetModel is a two-part model: a basic body and a repeat-x ground.
func puppetModel() *RenderModel {
	return &RenderModel{
		Name: "puppet",
		Parts: map[string]Part{
			"body": {
				Position: Vec2{5, 0},
				Scale:    UniformScale(1),
				Texture:  TextureDescriptor{Path: "a.png"},
			},
			"ground": {
				Position: Vec2{0, 30},
				Scale:    Scale{4, 1},
				Texture:  TextureDescriptor{Path: "tile.png", Repeat: "repeat-x"},
				Layer:    -1,
			},
		},
	}
}
