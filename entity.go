package banana

import (
	"fmt"
	"maps"
)

// GameObject is anything the engine updates and draws each frame.
type GameObject interface {
	Update(dt float64)
	Render(s Surface)
	IsRemoved() bool
}

// Body is the per-frame motion state shared by entities and sprites.
type Body struct {
	Position Vec2
	// Rotation is in degrees, clockwise.
	Rotation float64
	// Velocity is added to Position every update. It is a per-frame delta
	// unless the engine was created with VelocityPerSecond.
	Velocity Vec2

	removed bool
}

// Remove marks the body for removal; the engine drops it on its next update.
func (b *Body) Remove() { b.removed = true }

// IsRemoved reports whether Remove has been called.
func (b *Body) IsRemoved() bool { return b.removed }

func (b *Body) integrate(dt float64, perSecond bool) {
	if perSecond {
		b.Position = b.Position.Add(b.Velocity.Scaled(dt))
		return
	}
	b.Position = b.Position.Add(b.Velocity)
}

// Entity is a multi-part object drawn from its active model and animated by
// its active animation. Create entities with Engine.CreateEntity.
type Entity struct {
	Body
	Emitter

	engine     *Engine
	models     map[string]*loadedModel
	animations map[string]*loadedAnimation
	model      string
	animation  string
	blend      BlendFunc
}

func newEntity(e *Engine) *Entity {
	return &Entity{
		engine:     e,
		models:     make(map[string]*loadedModel),
		animations: make(map[string]*loadedAnimation),
	}
}

// LoadModel registers m under its name, replacing any model with the same
// name. Every part's texture is resolved before anything is registered, so a
// failing part leaves the entity unchanged. The model is copied; later edits
// to m have no effect.
func (en *Entity) LoadModel(m *RenderModel) error {
	if err := m.Validate(); err != nil {
		return err
	}
	lm := &loadedModel{
		model:    &RenderModel{Name: m.Name, Parts: maps.Clone(m.Parts)},
		keys:     m.PartKeys(),
		textures: make(map[string]*Texture, len(m.Parts)),
	}
	for _, key := range lm.keys {
		if m.Parts[key].Texture.Path == "" {
			return fmt.Errorf("banana: model %q part %q: %w: empty path", m.Name, key, ErrInvalidTexture)
		}
	}
	for _, key := range lm.keys {
		tex, err := NewTexture(en.engine.cache, m.Parts[key].Texture)
		if err != nil {
			return fmt.Errorf("banana: model %q part %q: %w", m.Name, key, err)
		}
		lm.textures[key] = tex
	}
	en.models[m.Name] = lm
	return nil
}

// LoadModelData parses a model descriptor and loads it.
func (en *Entity) LoadModelData(data []byte, f Format) error {
	m, err := ParseModel(data, f)
	if err != nil {
		return err
	}
	return en.LoadModel(m)
}

// LoadModelFile reads a model descriptor from path and loads it.
func (en *Entity) LoadModelFile(path string) error {
	m, err := ReadModelFile(path)
	if err != nil {
		return err
	}
	return en.LoadModel(m)
}

// LoadAnimation registers a under its name, replacing any animation with the
// same name. Animations are pure transform data; nothing is loaded.
func (en *Entity) LoadAnimation(a *AnimationModel) error {
	if err := a.Validate(); err != nil {
		return err
	}
	en.animations[a.Name] = &loadedAnimation{
		model: &AnimationModel{Name: a.Name, Parts: maps.Clone(a.Parts)},
	}
	return nil
}

// LoadAnimationData parses an animation descriptor and loads it.
func (en *Entity) LoadAnimationData(data []byte, f Format) error {
	a, err := ParseAnimation(data, f)
	if err != nil {
		return err
	}
	return en.LoadAnimation(a)
}

// LoadAnimationFile reads an animation descriptor from path and loads it.
func (en *Entity) LoadAnimationFile(path string) error {
	a, err := ReadAnimationFile(path)
	if err != nil {
		return err
	}
	return en.LoadAnimation(a)
}

// ApplyModel makes the named model the one drawn by Render.
func (en *Entity) ApplyModel(name string) error {
	if _, ok := en.models[name]; !ok {
		return fmt.Errorf("%w: model %q", ErrNotFound, name)
	}
	en.model = name
	return nil
}

// ApplyAnimation activates the named animation and stamps its activation
// time with the engine clock.
func (en *Entity) ApplyAnimation(name string) error {
	la, ok := en.animations[name]
	if !ok {
		return fmt.Errorf("%w: animation %q", ErrNotFound, name)
	}
	la.activated = en.engine.Now()
	en.animation = name
	return nil
}

// ClearAnimation deactivates the current animation. Parts return to their
// rest pose.
func (en *Entity) ClearAnimation() {
	en.animation = ""
}

// CurrentModel returns the active model name, or "" if none.
func (en *Entity) CurrentModel() string { return en.model }

// CurrentAnimation returns the active animation name, or "" if none.
func (en *Entity) CurrentAnimation() string { return en.animation }

// Model returns a registered model.
func (en *Entity) Model(name string) (*RenderModel, bool) {
	lm, ok := en.models[name]
	if !ok {
		return nil, false
	}
	return lm.model, true
}

// PartTexture returns the texture resolved for a part of a registered model.
func (en *Entity) PartTexture(model, part string) *Texture {
	lm, ok := en.models[model]
	if !ok {
		return nil
	}
	return lm.textures[part]
}

// SetBlend overrides the engine's keyframe blend curve for this entity. nil
// restores the engine default.
func (en *Entity) SetBlend(fn BlendFunc) { en.blend = fn }

// PartOffset returns the animated offset of a part at the current engine
// time, or IdentityTransform without an active animation.
func (en *Entity) PartOffset(part string) Transformation {
	la, ok := en.animations[en.animation]
	if !ok {
		return IdentityTransform
	}
	blend := en.blend
	if blend == nil {
		blend = en.engine.opts.Blend
	}
	return la.model.Offset(part, en.engine.animationTime(la), blend)
}

// Update integrates velocity and emits EventUpdate.
func (en *Entity) Update(dt float64) {
	en.integrate(dt, en.engine.opts.VelocityPerSecond)
	en.Emit(Event{Type: EventUpdate, DT: dt})
}

// Render draws every part of the active model and emits EventRender. It does
// nothing without an active model.
func (en *Entity) Render(s Surface) {
	lm, ok := en.models[en.model]
	if !ok {
		return
	}
	camera := en.engine.Camera.Position
	for _, key := range lm.keys {
		tex := lm.textures[key]
		if !tex.Loaded() {
			en.engine.stats.skipped++
			continue
		}
		dt := ComposePart(en.Body, lm.model.Parts[key], en.PartOffset(key), camera)
		en.engine.drawTexture(s, tex, dt)
	}
	en.Emit(Event{Type: EventRender})
}
