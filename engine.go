package banana

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AnimationClock selects the time base keyframes are sampled against.
type AnimationClock uint8

const (
	// ClockWall samples at seconds since the engine started, so entities
	// running the same animation stay in phase.
	ClockWall AnimationClock = iota
	// ClockActivation samples at seconds since the animation was applied, so
	// every ApplyAnimation restarts the cycle.
	ClockActivation
)

// EngineOptions configures an Engine. The zero value is usable.
type EngineOptions struct {
	SurfaceHooks

	// DebugMode enables debug-level diagnostics: per-frame draw stats and
	// resource lifecycle messages. It has no behavioural effect.
	DebugMode bool
	// Logger receives diagnostics. nil discards them.
	Logger *zap.Logger
	// Loader opens image bytes. nil uses DefaultLoader.
	Loader Loader
	// DecodeWorkers bounds concurrent image decodes. <= 0 uses GOMAXPROCS.
	DecodeWorkers int
	// Clock returns the current time. nil uses time.Now.
	Clock func() time.Time
	// Blend is the default keyframe blend curve. nil uses BlendLinear.
	Blend BlendFunc
	// AnimationClock selects the keyframe time base.
	AnimationClock AnimationClock
	// VelocityPerSecond treats Body.Velocity as units per second instead of
	// units per frame.
	VelocityPerSecond bool
}

// Engine owns a surface, a resource cache, a camera and the objects drawn
// each frame. All methods must be called from one goroutine.
type Engine struct {
	Emitter

	// Camera offsets every object drawn by the engine.
	Camera *Camera

	surface Surface
	cache   *ResourceCache
	log     *zap.Logger
	opts    EngineOptions

	objects []GameObject

	start time.Time
	last  time.Time
	now   float64

	stats         renderStats
	lastStats     renderStats
	warnedObjects bool
}

// NewEngine creates an engine drawing into surface. opts may be nil.
func NewEngine(surface Surface, opts *EngineOptions) *Engine {
	var o EngineOptions
	if opts != nil {
		o = *opts
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Blend == nil {
		o.Blend = BlendLinear
	}
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if !o.DebugMode {
		log = log.WithOptions(zap.IncreaseLevel(zapcore.InfoLevel))
	}
	log = log.Named("banana")

	now := o.Clock()
	e := &Engine{
		Camera:  &Camera{},
		surface: surface,
		cache:   NewResourceCache(surface, o.Loader, o.DecodeWorkers, log.Named("cache")),
		log:     log,
		opts:    o,
		start:   now,
		last:    now,
	}
	if o.OnAttach != nil {
		o.OnAttach(surface)
	}
	return e
}

// Surface returns the drawing target.
func (e *Engine) Surface() Surface { return e.surface }

// Cache returns the engine's resource cache.
func (e *Engine) Cache() *ResourceCache { return e.cache }

// Logger returns the engine's logger.
func (e *Engine) Logger() *zap.Logger { return e.log }

// Now returns the engine clock in seconds since NewEngine, as of the last
// Update.
func (e *Engine) Now() float64 { return e.now }

func (e *Engine) animationTime(la *loadedAnimation) float64 {
	if e.opts.AnimationClock == ClockActivation {
		return e.now - la.activated
	}
	return e.now
}

// CreateEntity creates an entity and adds it to the engine.
func (e *Engine) CreateEntity() *Entity {
	en := newEntity(e)
	e.Add(en)
	return en
}

// CreateSprite creates a sprite for desc and adds it to the engine.
func (e *Engine) CreateSprite(desc TextureDescriptor) (*Sprite, error) {
	tex, err := NewTexture(e.cache, desc)
	if err != nil {
		return nil, fmt.Errorf("banana: create sprite: %w", err)
	}
	sp := &Sprite{engine: e, texture: tex, Scale: UniformScale(1)}
	e.Add(sp)
	return sp, nil
}

// CreateRepeatingSprite creates a sprite backed by a Repeating texture.
func (e *Engine) CreateRepeatingSprite(path string, mode RepeatMode) (*Sprite, error) {
	tex, err := NewRepeatingTexture(e.cache, path, mode)
	if err != nil {
		return nil, fmt.Errorf("banana: create sprite: %w", err)
	}
	sp := &Sprite{engine: e, texture: tex, Scale: UniformScale(1)}
	e.Add(sp)
	return sp, nil
}

// Add appends obj to the objects updated and drawn each frame. Objects draw
// in the order they were added.
func (e *Engine) Add(obj GameObject) {
	e.objects = append(e.objects, obj)
	e.debugCheckObjectCount()
}

// Objects returns the live objects in draw order.
func (e *Engine) Objects() []GameObject { return e.objects }

// Update advances one frame: it delivers finished image decodes, reads the
// clock, moves the camera, updates every object, drops removed objects and
// emits EventUpdate.
func (e *Engine) Update() {
	e.cache.Poll()

	t := e.opts.Clock()
	dt := t.Sub(e.last).Seconds()
	e.last = t
	e.now = t.Sub(e.start).Seconds()

	e.Camera.update(float32(dt))

	for _, obj := range e.objects {
		if !obj.IsRemoved() {
			obj.Update(dt)
		}
	}
	e.pruneRemoved()

	e.Emit(Event{Type: EventUpdate, DT: dt})
}

func (e *Engine) pruneRemoved() {
	live := e.objects[:0]
	for _, obj := range e.objects {
		if !obj.IsRemoved() {
			live = append(live, obj)
		}
	}
	clear(e.objects[len(live):])
	e.objects = live
}

// Draw clears the surface, renders every object and emits EventRender.
func (e *Engine) Draw() {
	start := time.Now()
	e.stats = renderStats{}
	e.surface.Clear()
	for _, obj := range e.objects {
		if obj.IsRemoved() {
			continue
		}
		obj.Render(e.surface)
		e.stats.objects++
	}
	e.stats.drawTime = time.Since(start)
	e.lastStats = e.stats
	e.debugLog(e.stats)
	e.Emit(Event{Type: EventRender})
}

// Tick runs Update then Draw.
func (e *Engine) Tick() {
	e.Update()
	e.Draw()
}

// Resize resizes the surface, then calls OnResize and emits EventResize.
func (e *Engine) Resize(w, h int) error {
	if err := e.surface.Resize(w, h); err != nil {
		return fmt.Errorf("banana: resize: %w", err)
	}
	if e.opts.OnResize != nil {
		e.opts.OnResize(w, h)
	}
	e.Emit(Event{Type: EventResize, Width: w, Height: h})
	return nil
}

// Close cancels pending image decodes.
func (e *Engine) Close() {
	e.cache.Close()
}
