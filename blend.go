package banana

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// BlendFunc blends a toward b by fraction t in [0, 1].
type BlendFunc func(a, b, t float64) float64

// BlendLinear is a + (b-a)·t. It is the default keyframe blend.
func BlendLinear(a, b, t float64) float64 {
	return a + (b-a)*t
}

// BlendEaseIn starts slow: a + (b-a)·t².
func BlendEaseIn(a, b, t float64) float64 {
	return a + (b-a)*t*t
}

// BlendEaseOut ends slow: a + (b-a)·t(2-t).
func BlendEaseOut(a, b, t float64) float64 {
	return a + (b-a)*t*(2-t)
}

// BlendCubic is smoothstep: a + (b-a)·t²(3-2t).
func BlendCubic(a, b, t float64) float64 {
	return a + (b-a)*t*t*(3-2*t)
}

// EaseBlend adapts a gween easing curve to a BlendFunc. The curve is
// evaluated over a unit duration, so fn(t, 0, 1, 1) is the blend weight.
func EaseBlend(fn ease.TweenFunc) BlendFunc {
	return func(a, b, t float64) float64 {
		return a + (b-a)*float64(fn(float32(t), 0, 1, 1))
	}
}

var namedBlends = map[string]BlendFunc{
	"linear":       BlendLinear,
	"ease-in":      BlendEaseIn,
	"ease-out":     BlendEaseOut,
	"cubic":        BlendCubic,
	"in-quad":      EaseBlend(ease.InQuad),
	"out-quad":     EaseBlend(ease.OutQuad),
	"in-out-quad":  EaseBlend(ease.InOutQuad),
	"in-cubic":     EaseBlend(ease.InCubic),
	"out-cubic":    EaseBlend(ease.OutCubic),
	"in-out-cubic": EaseBlend(ease.InOutCubic),
	"in-sine":      EaseBlend(ease.InSine),
	"out-sine":     EaseBlend(ease.OutSine),
	"in-out-sine":  EaseBlend(ease.InOutSine),
	"in-back":      EaseBlend(ease.InBack),
	"out-back":     EaseBlend(ease.OutBack),
	"out-bounce":   EaseBlend(ease.OutBounce),
}

// BlendByName resolves a blend curve by name, as used in configuration
// files. An empty name selects BlendLinear.
func BlendByName(name string) (BlendFunc, error) {
	if name == "" {
		return BlendLinear, nil
	}
	if fn, ok := namedBlends[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("banana: unknown blend %q (known: %v)", name, BlendNames())
}

// BlendNames returns the names accepted by BlendByName, sorted.
func BlendNames() []string {
	names := make([]string, 0, len(namedBlends))
	for name := range namedBlends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// blendTransform blends every scalar component of two transformations
// independently.
func blendTransform(from, to Transformation, t float64, blend BlendFunc) Transformation {
	return Transformation{
		Position: Vec2{
			blend(from.Position.X, to.Position.X, t),
			blend(from.Position.Y, to.Position.Y, t),
		},
		Rotation: blend(from.Rotation, to.Rotation, t),
		Scale: Scale{
			blend(from.Scale.X, to.Scale.X, t),
			blend(from.Scale.Y, to.Scale.Y, t),
		},
	}
}
