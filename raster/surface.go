// Package raster provides a software banana.Surface backed by a gg canvas,
// for headless rendering, snapshots and tests.
package raster

import (
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/phanxgames/banana"
)

// Surface draws into an in-memory RGBA canvas.
type Surface struct {
	dc  *gg.Context
	err error
}

// New creates a w×h transparent surface.
func New(w, h int) *Surface {
	return &Surface{dc: gg.NewContext(w, h)}
}

// Size returns the canvas size in pixels.
func (s *Surface) Size() (w, h int) { return s.dc.Width(), s.dc.Height() }

// Image returns the canvas contents.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// SavePNG writes the canvas to a PNG file.
func (s *Surface) SavePNG(path string) error { return s.dc.SavePNG(path) }

// EncodePNG writes the canvas as PNG to w.
func (s *Surface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// Err returns the first fill error since the surface was created.
func (s *Surface) Err() error { return s.err }

// Close releases the canvas.
func (s *Surface) Close() error { return s.dc.Close() }

// Resize implements banana.Surface. The contents are discarded.
func (s *Surface) Resize(w, h int) error { return s.dc.Resize(w, h) }

// Clear implements banana.Surface.
func (s *Surface) Clear() { s.dc.Clear() }

// Save implements banana.Surface.
func (s *Surface) Save() { s.dc.Push() }

// Restore implements banana.Surface.
func (s *Surface) Restore() { s.dc.Pop() }

// Translate implements banana.Surface.
func (s *Surface) Translate(x, y float64) { s.dc.Translate(x, y) }

// Rotate implements banana.Surface.
func (s *Surface) Rotate(radians float64) { s.dc.Rotate(radians) }

// DrawImage implements banana.Surface.
func (s *Surface) DrawImage(img banana.Image, x, y, w, h float64) {
	ri, ok := img.(*rasterImage)
	if !ok || w == 0 || h == 0 {
		return
	}
	s.dc.DrawImageEx(ri.buf, gg.DrawImageOptions{
		X:         x,
		Y:         y,
		DstWidth:  w,
		DstHeight: h,
		Opacity:   1,
	})
}

// FillRect implements banana.Surface. Tiles are anchored at the origin of
// the current transform.
func (s *Surface) FillRect(paint banana.Paint, x, y, w, h float64) {
	tp, ok := paint.(*tilePaint)
	if !ok || w == 0 || h == 0 {
		return
	}
	s.dc.Push()
	defer s.dc.Pop()
	s.dc.SetFillPattern(&tilePattern{
		img:     tp.img.buf,
		mode:    tp.mode,
		inverse: s.dc.GetTransform().Invert(),
	})
	s.dc.DrawRectangle(x, y, w, h)
	if err := s.dc.Fill(); err != nil && s.err == nil {
		s.err = err
	}
}

// NewImage implements banana.Surface.
func (s *Surface) NewImage(src image.Image) banana.Image {
	return &rasterImage{buf: gg.ImageBufFromImage(src)}
}

// NewPattern implements banana.Surface.
func (s *Surface) NewPattern(img banana.Image, mode banana.RepeatMode) banana.Paint {
	ri, _ := img.(*rasterImage)
	return &tilePaint{img: ri, mode: mode}
}

type rasterImage struct {
	buf *gg.ImageBuf
}

func (i *rasterImage) Size() (w, h int) {
	if i == nil || i.buf == nil {
		return 0, 0
	}
	return i.buf.Bounds()
}

type tilePaint struct {
	img  *rasterImage
	mode banana.RepeatMode
}

func (p *tilePaint) Repeat() banana.RepeatMode { return p.mode }

// tilePattern samples an image tiled along the axes its repeat mode allows.
// Outside the single tile of a non-repeating axis it is transparent.
type tilePattern struct {
	img     *gg.ImageBuf
	mode    banana.RepeatMode
	inverse gg.Matrix
}

// ColorAt implements gg.Pattern.
func (p *tilePattern) ColorAt(x, y float64) gg.RGBA {
	if p.img == nil {
		return gg.RGBA{}
	}
	w, h := p.img.Bounds()
	if w == 0 || h == 0 {
		return gg.RGBA{}
	}
	pt := p.inverse.TransformPoint(gg.Pt(x, y))
	ix, ok := wrap(pt.X, w, p.mode.TilesX())
	if !ok {
		return gg.RGBA{}
	}
	iy, ok := wrap(pt.Y, h, p.mode.TilesY())
	if !ok {
		return gg.RGBA{}
	}
	r, g, b, a := p.img.GetRGBA(ix, iy)
	return gg.RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// wrap maps a coordinate into [0, size), tiling when repeat is set.
func wrap(v float64, size int, repeat bool) (int, bool) {
	i := int(math.Floor(v))
	if repeat {
		i %= size
		if i < 0 {
			i += size
		}
		return i, true
	}
	return i, i >= 0 && i < size
}
