package banana

import "image"

// Image is a decoded image uploaded to a Surface. Its natural size is the
// size parts are scaled from.
type Image interface {
	Size() (w, h int)
}

// Paint is a tileable paint source created by Surface.NewPattern.
type Paint interface {
	Repeat() RepeatMode
}

// Surface is the drawing target the engine renders into. It mirrors the
// small subset of a 2D canvas the renderer needs: a transform stack, image
// blits, and pattern-filled rectangles. Implementations: EbitenSurface and
// raster.Surface.
//
// Save and Restore must nest; every Save is paired with exactly one Restore.
type Surface interface {
	// Resize changes the drawable size in pixels.
	Resize(w, h int) error
	// Clear erases the whole surface to transparent.
	Clear()

	Save()
	Restore()
	// Translate and Rotate post-multiply the current transform. Rotation is
	// in radians, clockwise with Y pointing down.
	Translate(x, y float64)
	Rotate(radians float64)

	// DrawImage draws img stretched to the rectangle (x, y, w, h) in the
	// current transform's coordinate space.
	DrawImage(img Image, x, y, w, h float64)
	// FillRect fills the rectangle (x, y, w, h) with paint. Tiles are
	// anchored at the origin of the current transform.
	FillRect(paint Paint, x, y, w, h float64)

	// NewImage uploads a decoded image. Called on the frame goroutine.
	NewImage(src image.Image) Image
	// NewPattern builds a tileable paint source from an uploaded image.
	NewPattern(img Image, mode RepeatMode) Paint
}

// SurfaceHooks lets the host observe the engine's surface lifecycle without
// the engine depending on any windowing or DOM layer.
type SurfaceHooks struct {
	// OnAttach is called once from NewEngine with the engine's surface.
	OnAttach func(Surface)
	// OnResize is called after the surface has been resized.
	OnResize func(w, h int)
}
