// Package banana is a minimal 2D engine that draws multi-part, keyframe
// animated entities from cached images.
//
// An [Engine] owns a [Surface], a [ResourceCache] and a [Camera]. Entities
// load named models (sets of textured parts) and named animations (per-part
// offsets, static or keyframed), then activate one of each:
//
//	surface := banana.NewEbitenSurface(640, 480)
//	engine := banana.NewEngine(surface, &banana.EngineOptions{Logger: log})
//
//	hero := engine.CreateEntity()
//	if err := hero.LoadModelFile("hero.yaml"); err != nil { ... }
//	if err := hero.LoadAnimationFile("walk.json"); err != nil { ... }
//	hero.ApplyModel("hero")
//	hero.ApplyAnimation("walk")
//
//	banana.Run(engine, banana.RunConfig{Title: "Hero", Width: 640, Height: 480})
//
// For full control, call [Engine.Update] and [Engine.Draw] from your own loop.
// Headless rendering is available through the raster subpackage.
//
// # Resources
//
// Images are keyed by normalized URL and decoded on worker goroutines.
// [Engine.Update] delivers finished decodes; until then, parts using an image
// are skipped. [ResourceCache.Flush] waits for every pending decode.
//
// # Animation
//
// A part's animation data is either one static transformation or a mapping
// from time in seconds to transformations. The mapping loops with a period
// equal to its largest key, and neighbouring keyframes are blended with a
// [BlendFunc]. Any [gween] easing curve can be used through [EaseBlend].
//
// # Descriptors
//
// Models and animations are accepted as JSON, YAML or TOML with the same
// shape; see [ParseModel] and [ParseAnimation].
//
// [gween]: https://github.com/tanema/gween
package banana
