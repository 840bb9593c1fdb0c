package banana

import "go.uber.org/zap"

// ComposePart combines an entity's body, one of its parts, the part's
// animated offset and the camera position into a draw transform.
//
//	translation = body + part + offset - camera
//	rotation    = (body + part + offset) degrees, in radians
//	scale       = part ⊙ offset
//
// Camera rotation is not applied.
func ComposePart(body Body, part Part, offset Transformation, camera Vec2) DrawTransform {
	return DrawTransform{
		Translation: body.Position.Add(part.Position).Add(offset.Position).Sub(camera),
		Rotation:    (body.Rotation + part.Rotation + offset.Rotation) * degToRad,
		Scale:       part.Scale.Mul(offset.Scale),
	}
}

// drawTexture draws a loaded texture centred on dt.Translation at its natural
// size scaled by dt.Scale. Unrotated draws go straight to the surface;
// rotated draws are wrapped in a Save/Restore pair.
func (e *Engine) drawTexture(s Surface, tex *Texture, dt DrawTransform) {
	var paint Paint
	if tex.kind != TextureBasic {
		p, err := e.cache.LoadPattern(tex)
		if err != nil {
			e.stats.skipped++
			e.log.Debug("pattern unavailable", zap.String("url", tex.image.url), zap.Error(err))
			return
		}
		paint = p.paint
	}

	iw, ih := tex.image.image.Size()
	w := float64(iw) * dt.Scale.X
	h := float64(ih) * dt.Scale.Y
	e.stats.parts++

	if dt.Rotation == 0 {
		e.drawVariant(s, tex, paint, dt.Translation.X-w/2, dt.Translation.Y-h/2, w, h)
		return
	}

	s.Save()
	defer s.Restore()
	e.stats.saves++
	s.Translate(dt.Translation.X, dt.Translation.Y)
	s.Rotate(dt.Rotation)
	e.drawVariant(s, tex, paint, -w/2, -h/2, w, h)
}

func (e *Engine) drawVariant(s Surface, tex *Texture, paint Paint, x, y, w, h float64) {
	e.stats.drawCalls++
	switch tex.kind {
	case TextureBasic:
		s.DrawImage(tex.image.image, x, y, w, h)
	case TexturePattern, TextureRepeating:
		e.stats.fills++
		s.FillRect(paint, x, y, w, h)
	}
}
