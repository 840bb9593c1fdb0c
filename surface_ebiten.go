package banana

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxTilesPerAxis caps the tiles drawn along one axis of a pattern fill.
const maxTilesPerAxis = 1024

// EbitenSurface is a Surface that draws onto an ebiten image, normally the
// screen passed to ebiten.Game.Draw. Call SetTarget before every Draw.
type EbitenSurface struct {
	// ScreenshotDir is where Screenshot writes PNGs. Empty means
	// "screenshots".
	ScreenshotDir string

	target      *ebiten.Image
	screenshots []string
	w, h        int
	matrix      [6]float64
	stack       [][6]float64
	op          ebiten.DrawImageOptions
}

// NewEbitenSurface creates a surface of the given logical size.
func NewEbitenSurface(w, h int) *EbitenSurface {
	return &EbitenSurface{w: w, h: h, matrix: identityAffine}
}

// SetTarget sets the image drawn onto and resets the transform stack.
func (s *EbitenSurface) SetTarget(img *ebiten.Image) {
	s.target = img
	s.matrix = identityAffine
	s.stack = s.stack[:0]
}

// Size returns the logical size last set by Resize.
func (s *EbitenSurface) Size() (w, h int) { return s.w, s.h }

// Resize implements Surface. The target image is owned by ebiten; only the
// logical size is recorded.
func (s *EbitenSurface) Resize(w, h int) error {
	s.w, s.h = w, h
	return nil
}

// Clear implements Surface.
func (s *EbitenSurface) Clear() {
	if s.target != nil {
		s.target.Clear()
	}
}

// Save implements Surface.
func (s *EbitenSurface) Save() {
	s.stack = append(s.stack, s.matrix)
}

// Restore implements Surface. An unbalanced Restore resets to identity.
func (s *EbitenSurface) Restore() {
	if len(s.stack) == 0 {
		s.matrix = identityAffine
		return
	}
	s.matrix = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Translate implements Surface.
func (s *EbitenSurface) Translate(x, y float64) {
	s.matrix = multiplyAffine(s.matrix, translateAffine(x, y))
}

// Rotate implements Surface.
func (s *EbitenSurface) Rotate(radians float64) {
	s.matrix = multiplyAffine(s.matrix, rotateAffine(radians))
}

// DrawImage implements Surface.
func (s *EbitenSurface) DrawImage(img Image, x, y, w, h float64) {
	ei, ok := img.(*ebitenImage)
	if !ok || s.target == nil {
		return
	}
	iw, ih := ei.Size()
	if iw == 0 || ih == 0 {
		return
	}
	s.op.GeoM.Reset()
	s.op.GeoM.Scale(w/float64(iw), h/float64(ih))
	s.op.GeoM.Translate(x, y)
	s.op.GeoM.Concat(geoM(s.matrix))
	s.target.DrawImage(ei.img, &s.op)
}

// FillRect implements Surface. Tiles are anchored at the origin of the
// current transform and clipped to the rectangle.
func (s *EbitenSurface) FillRect(paint Paint, x, y, w, h float64) {
	p, ok := paint.(*ebitenPattern)
	if !ok || s.target == nil {
		return
	}
	iw, ih := p.img.Size()
	if iw == 0 || ih == 0 {
		return
	}
	xs := tileSpans(x, w, float64(iw), p.mode.TilesX())
	ys := tileSpans(y, h, float64(ih), p.mode.TilesY())
	m := geoM(s.matrix)
	for _, ty := range ys {
		for _, tx := range xs {
			src := image.Rect(
				int(math.Floor(tx.src)), int(math.Floor(ty.src)),
				int(math.Ceil(tx.src+tx.length)), int(math.Ceil(ty.src+ty.length)),
			)
			if src.Empty() {
				continue
			}
			sub := p.img.img.SubImage(src).(*ebiten.Image)
			s.op.GeoM.Reset()
			s.op.GeoM.Translate(tx.pos, ty.pos)
			s.op.GeoM.Concat(m)
			s.target.DrawImage(sub, &s.op)
		}
	}
}

// NewImage implements Surface.
func (s *EbitenSurface) NewImage(src image.Image) Image {
	return &ebitenImage{img: ebiten.NewImageFromImage(src)}
}

// NewPattern implements Surface.
func (s *EbitenSurface) NewPattern(img Image, mode RepeatMode) Paint {
	ei, _ := img.(*ebitenImage)
	return &ebitenPattern{img: ei, mode: mode}
}

type ebitenImage struct {
	img *ebiten.Image
}

func (i *ebitenImage) Size() (w, h int) {
	if i == nil || i.img == nil {
		return 0, 0
	}
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

type ebitenPattern struct {
	img  *ebitenImage
	mode RepeatMode
}

func (p *ebitenPattern) Repeat() RepeatMode { return p.mode }

// geoM converts an affine matrix [a, b, c, d, tx, ty] to an ebiten GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// tileSpan is one tile's visible slice along an axis: it is drawn at pos and
// shows length pixels starting at src within the tile.
type tileSpan struct {
	pos, src, length float64
}

// tileSpans returns the visible tile slices covering [start, start+length)
// for tiles of size tile anchored at 0. Without repeat only the tile at 0 is
// considered.
func tileSpans(start, length, tile float64, repeat bool) []tileSpan {
	if length <= 0 || tile <= 0 {
		return nil
	}
	end := start + length
	first, last := 0.0, 0.0
	if repeat {
		first = math.Floor(start / tile)
		last = math.Ceil(end/tile) - 1
		if last-first >= maxTilesPerAxis {
			last = first + maxTilesPerAxis - 1
		}
	}
	var spans []tileSpan
	for k := first; k <= last; k++ {
		t0 := k * tile
		a := math.Max(start, t0)
		b := math.Min(end, t0+tile)
		if b <= a {
			continue
		}
		spans = append(spans, tileSpan{pos: a, src: a - t0, length: b - a})
	}
	return spans
}
