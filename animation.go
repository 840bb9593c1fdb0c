package banana

import (
	"math"
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Keyframe is a transformation reached at Time seconds into a cycle.
// KeyframeTrack treats a zero Scale as 1.
type Keyframe struct {
	Time      float64
	Transform Transformation
}

// AnimationTrack is the animation data for one part: either a single static
// offset, or keyframes that loop with a period equal to the last key.
type AnimationTrack struct {
	// Static is the offset of a track without keyframes.
	Static Transformation
	// Keyframes are sorted by Time. A track with any keyframes is keyed.
	Keyframes []Keyframe
}

// StaticTrack returns a track that always yields t. A zero Scale means 1.
func StaticTrack(t Transformation) *AnimationTrack {
	return &AnimationTrack{Static: defaultScale(t)}
}

// KeyframeTrack returns a keyed track holding a sorted copy of frames. A
// frame with a zero Scale gets scale 1.
func KeyframeTrack(frames ...Keyframe) *AnimationTrack {
	s := append([]Keyframe(nil), frames...)
	for i := range s {
		s[i].Transform = defaultScale(s[i].Transform)
	}
	sort.SliceStable(s, func(i, j int) bool { return s[i].Time < s[j].Time })
	return &AnimationTrack{Keyframes: s}
}

func defaultScale(t Transformation) Transformation {
	if t.Scale == (Scale{}) {
		t.Scale = UniformScale(1)
	}
	return t
}

// Keyed reports whether the track interpolates keyframes.
func (tr *AnimationTrack) Keyed() bool { return len(tr.Keyframes) > 0 }

// Period returns the loop length in seconds, or 0 for a static track.
func (tr *AnimationTrack) Period() float64 {
	if !tr.Keyed() {
		return 0
	}
	return tr.Keyframes[len(tr.Keyframes)-1].Time
}

// Sample returns the offset at time now (seconds). Keyed tracks wrap now into
// [0, period) and blend the surrounding keyframes with blend, or BlendLinear
// when blend is nil.
//
// Edge cases: a single keyframe, or a period <= 0, yields the first keyframe.
// Before the first key the last keyframe, taken at time 0, blends into the
// first. Neighbouring keys with no time between them yield the earlier one.
func (tr *AnimationTrack) Sample(now float64, blend BlendFunc) Transformation {
	keys := tr.Keyframes
	if len(keys) == 0 {
		return tr.Static
	}
	period := keys[len(keys)-1].Time
	if len(keys) == 1 || period <= 0 {
		return keys[0].Transform
	}
	if blend == nil {
		blend = BlendLinear
	}

	wrapped := math.Mod(now, period)
	if wrapped < 0 {
		wrapped += period
	}
	if math.IsNaN(wrapped) {
		wrapped = 0
	}

	// Index of the greatest key <= wrapped. wrapped < period, so the last
	// key is never current.
	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time > wrapped }) - 1

	var cur, next Keyframe
	var curTime float64
	if i < 0 {
		cur, next = keys[len(keys)-1], keys[0]
	} else {
		cur, next = keys[i], keys[i+1]
		curTime = cur.Time
	}

	frac := 0.0
	if span := next.Time - curTime; span > 0 {
		frac = (wrapped - curTime) / span
	}
	return blendTransform(cur.Transform, next.Transform, frac, blend)
}

// AnimationModel is a named set of per-part tracks.
type AnimationModel struct {
	Name  string
	Parts map[string]*AnimationTrack
}

// Validate checks the fields the loader relies on.
func (a *AnimationModel) Validate() error {
	if a == nil {
		return invalidf("", "nil animation")
	}
	if a.Name == "" {
		return invalidf("name", "missing")
	}
	for key, tr := range a.Parts {
		if tr == nil {
			return invalidf("parts."+key, "nil track")
		}
		for i := 1; i < len(tr.Keyframes); i++ {
			if tr.Keyframes[i].Time <= tr.Keyframes[i-1].Time {
				return invalidf("parts."+key, "keyframe times must be strictly increasing")
			}
		}
	}
	return nil
}

// Offset samples the track for a part, or returns IdentityTransform when the
// animation does not move that part.
func (a *AnimationModel) Offset(part string, now float64, blend BlendFunc) Transformation {
	tr, ok := a.Parts[part]
	if !ok {
		return IdentityTransform
	}
	return tr.Sample(now, blend)
}

// loadedAnimation is a registered animation with the time it was last
// applied.
type loadedAnimation struct {
	model     *AnimationModel
	activated float64
}

// TweenGroup animates up to 2 float64 fields on a Body simultaneously.
// Create one via TweenPosition or TweenRotation and call Update(dt) each
// frame. If the body is removed, the group stops immediately.
//
// There is no global tween manager; callers own their groups.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	target *Body
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the body has been removed, Done is set and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsRemoved() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that moves b to (toX, toY) over duration
// seconds using the easing function.
func TweenPosition(b *Body, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: b}
	g.tweens[0] = gween.New(float32(b.Position.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(b.Position.Y), float32(toY), duration, fn)
	g.fields[0] = &b.Position.X
	g.fields[1] = &b.Position.Y
	return g
}

// TweenRotation creates a TweenGroup that turns b to the given rotation in
// degrees over duration seconds using the easing function.
func TweenRotation(b *Body, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: b}
	g.tweens[0] = gween.New(float32(b.Rotation), float32(to), duration, fn)
	g.fields[0] = &b.Rotation
	return g
}
