package banana

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the view offset subtracted from every world position before
// drawing. Position is the world point drawn at the surface origin.
type Camera struct {
	Position Vec2
	// Rotation is in degrees. It is stored for callers but not applied to
	// part transforms.
	Rotation float64

	followTarget *Body
	followOffset Vec2
	followLerp   float64

	scrollTween *scrollAnim
}

// Follow makes the camera track b so that b appears at offset from the
// surface origin. A lerp of 1 snaps immediately; lower values smooth.
func (c *Camera) Follow(b *Body, offset Vec2, lerp float64) {
	c.followTarget = b
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera to the given position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.Position.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Position.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool { return c.scrollTween != nil }

// update advances follow and scroll. Called from Engine.Update.
func (c *Camera) update(dt float32) {
	if c.followTarget != nil {
		if c.followTarget.IsRemoved() {
			c.followTarget = nil
		} else {
			target := c.followTarget.Position.Sub(c.followOffset)
			c.Position = c.Position.Add(target.Sub(c.Position).Scaled(c.followLerp))
		}
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.Position.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Position.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}
}
