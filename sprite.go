package banana

// Sprite is a single-texture object. Create sprites with Engine.CreateSprite.
type Sprite struct {
	Body
	Emitter

	// Scale multiplies the texture's natural size.
	Scale Scale

	engine  *Engine
	texture *Texture
}

// Texture returns the sprite's texture.
func (sp *Sprite) Texture() *Texture { return sp.texture }

// Update integrates velocity and emits EventUpdate.
func (sp *Sprite) Update(dt float64) {
	sp.integrate(dt, sp.engine.opts.VelocityPerSecond)
	sp.Emit(Event{Type: EventUpdate, DT: dt})
}

// Render draws the texture centred on the sprite position and emits
// EventRender. Nothing is drawn or emitted until the texture has loaded.
func (sp *Sprite) Render(s Surface) {
	if !sp.texture.Loaded() {
		sp.engine.stats.skipped++
		return
	}
	sp.engine.drawTexture(s, sp.texture, DrawTransform{
		Translation: sp.Position.Sub(sp.engine.Camera.Position),
		Rotation:    sp.Rotation * degToRad,
		Scale:       sp.Scale,
	})
	sp.Emit(Event{Type: EventRender})
}
