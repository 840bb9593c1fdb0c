package banana

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

var (
	key0 = Transformation{Position: Vec2{0, 0}, Rotation: 0, Scale: UniformScale(1)}
	key1 = Transformation{Position: Vec2{10, -4}, Rotation: 90, Scale: Scale{2, 1}}
	key2 = Transformation{Position: Vec2{20, 8}, Rotation: 30, Scale: UniformScale(3)}
)

// threeKeys has keyframes at 0, 1 and 2 seconds: a period of 2.
func threeKeys() *AnimationTrack {
	return KeyframeTrack(
		Keyframe{0, key0},
		Keyframe{1, key1},
		Keyframe{2, key2},
	)
}

func TestSampleBlendsNeighbours(t *testing.T) {
	tr := threeKeys()
	tests := []struct {
		now  float64
		want Transformation
	}{
		{0, key0},
		{0.5, blendTransform(key0, key1, 0.5, BlendLinear)},
		{1, key1},
		{1.25, blendTransform(key1, key2, 0.25, BlendLinear)},
		{1.9, blendTransform(key1, key2, 0.9, BlendLinear)},
	}
	for _, tt := range tests {
		if got := tr.Sample(tt.now, nil); !transformsEqual(got, tt.want) {
			t.Errorf("Sample(%v) = %+v, want %+v", tt.now, got, tt.want)
		}
	}
}

func TestSampleWrapsAtPeriod(t *testing.T) {
	tr := threeKeys()
	if tr.Period() != 2 {
		t.Fatalf("Period() = %v, want 2", tr.Period())
	}
	// The last key is never current: at exactly the period the cycle
	// restarts from the first key.
	if got := tr.Sample(2, nil); !transformsEqual(got, key0) {
		t.Errorf("Sample(2) = %+v, want first key", got)
	}
	if got, want := tr.Sample(4.5, nil), tr.Sample(0.5, nil); !transformsEqual(got, want) {
		t.Errorf("Sample(4.5) = %+v, want Sample(0.5) = %+v", got, want)
	}
}

func TestSampleLoopingTrackIsContinuous(t *testing.T) {
	// With the last key equal to the first the loop closes smoothly.
	tr := KeyframeTrack(Keyframe{0, key0}, Keyframe{1, key1}, Keyframe{2, key0})
	got := tr.Sample(1.9, nil)
	want := blendTransform(key1, key0, 0.9, BlendLinear)
	if !transformsEqual(got, want) {
		t.Errorf("Sample(1.9) = %+v, want %+v", got, want)
	}
}

func TestSampleNegativeTime(t *testing.T) {
	tr := threeKeys()
	if got, want := tr.Sample(-0.5, nil), tr.Sample(1.5, nil); !transformsEqual(got, want) {
		t.Errorf("Sample(-0.5) = %+v, want %+v", got, want)
	}
}

func TestSampleBeforeFirstKey(t *testing.T) {
	// The last key, taken at time 0, blends into the first.
	tr := KeyframeTrack(Keyframe{0.5, key1}, Keyframe{2, key2})
	got := tr.Sample(0.25, nil)
	want := blendTransform(key2, key1, 0.5, BlendLinear)
	if !transformsEqual(got, want) {
		t.Errorf("Sample(0.25) = %+v, want %+v", got, want)
	}
}

func TestSampleDegenerateTracks(t *testing.T) {
	single := KeyframeTrack(Keyframe{3, key1})
	for _, now := range []float64{0, 1, 3, 100} {
		if got := single.Sample(now, nil); !transformsEqual(got, key1) {
			t.Errorf("single key Sample(%v) = %+v, want key1", now, got)
		}
	}

	zero := &AnimationTrack{Keyframes: []Keyframe{{-1, key1}, {0, key2}}}
	if got := zero.Sample(0.5, nil); !transformsEqual(got, key1) {
		t.Errorf("period <= 0 Sample = %+v, want first key", got)
	}

	static := StaticTrack(key2)
	if got := static.Sample(42, nil); !transformsEqual(got, key2) {
		t.Errorf("static Sample = %+v, want key2", got)
	}
	if static.Period() != 0 {
		t.Errorf("static Period() = %v, want 0", static.Period())
	}
}

func TestSampleNaNTime(t *testing.T) {
	tr := threeKeys()
	if got := tr.Sample(math.NaN(), nil); !transformsEqual(got, key0) {
		t.Errorf("Sample(NaN) = %+v, want first key", got)
	}
}

func TestSampleUsesBlendCurve(t *testing.T) {
	tr := threeKeys()
	got := tr.Sample(0.5, BlendEaseIn)
	want := blendTransform(key0, key1, 0.5, BlendEaseIn)
	if !transformsEqual(got, want) {
		t.Errorf("Sample(0.5, ease-in) = %+v, want %+v", got, want)
	}
	if transformsEqual(got, tr.Sample(0.5, nil)) {
		t.Error("ease-in blend matched linear")
	}
}

func TestKeyframeTrackSortsCopy(t *testing.T) {
	frames := []Keyframe{{2, key2}, {0, key0}, {1, key1}}
	tr := KeyframeTrack(frames...)
	if tr.Keyframes[0].Time != 0 || tr.Keyframes[2].Time != 2 {
		t.Errorf("Keyframes not sorted: %+v", tr.Keyframes)
	}
	if frames[0].Time != 2 {
		t.Error("KeyframeTrack reordered the caller's slice")
	}
}

func TestAnimationModelValidate(t *testing.T) {
	tests := []struct {
		name string
		a    *AnimationModel
		ok   bool
	}{
		{"nil", nil, false},
		{"unnamed", &AnimationModel{}, false},
		{"nil track", &AnimationModel{Name: "a", Parts: map[string]*AnimationTrack{"p": nil}}, false},
		{"unsorted", &AnimationModel{Name: "a", Parts: map[string]*AnimationTrack{
			"p": {Keyframes: []Keyframe{{1, key0}, {0, key1}}},
		}}, false},
		{"duplicate", &AnimationModel{Name: "a", Parts: map[string]*AnimationTrack{
			"p": {Keyframes: []Keyframe{{1, key0}, {1, key1}}},
		}}, false},
		{"valid", &AnimationModel{Name: "a", Parts: map[string]*AnimationTrack{"p": threeKeys()}}, true},
	}
	for _, tt := range tests {
		err := tt.a.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("%s: Validate() = %v, want ok=%v", tt.name, err, tt.ok)
		}
	}
}

func TestOffsetMissingPartIsIdentity(t *testing.T) {
	a := &AnimationModel{Name: "a", Parts: map[string]*AnimationTrack{"arm": threeKeys()}}
	if got := a.Offset("leg", 0.5, nil); !transformsEqual(got, IdentityTransform) {
		t.Errorf("Offset(leg) = %+v, want identity", got)
	}
	if got := a.Offset("arm", 0.5, nil); !transformsEqual(got, threeKeys().Sample(0.5, nil)) {
		t.Errorf("Offset(arm) = %+v", got)
	}
}

// --- Tweens ---

func TestTweenPosition(t *testing.T) {
	b := &Body{Position: Vec2{0, 0}}
	g := TweenPosition(b, 100, 50, 1.0, ease.Linear)

	g.Update(0.5)
	if !approxEqual(b.Position.X, 50, 0.5) || !approxEqual(b.Position.Y, 25, 0.5) {
		t.Errorf("mid-tween position = %v, want ~(50, 25)", b.Position)
	}
	if g.Done {
		t.Error("Done after half the duration")
	}
	g.Update(0.6)
	if !g.Done {
		t.Error("not Done after the full duration")
	}
	if !approxEqual(b.Position.X, 100, 0.01) || !approxEqual(b.Position.Y, 50, 0.01) {
		t.Errorf("final position = %v, want (100, 50)", b.Position)
	}
}

func TestTweenRotation(t *testing.T) {
	b := &Body{Rotation: 0}
	g := TweenRotation(b, 90, 2.0, ease.Linear)
	g.Update(1)
	if !approxEqual(b.Rotation, 45, 0.5) {
		t.Errorf("mid-tween rotation = %v, want ~45", b.Rotation)
	}
	g.Update(1.5)
	if !g.Done || !approxEqual(b.Rotation, 90, 0.01) {
		t.Errorf("final rotation = %v, done=%v", b.Rotation, g.Done)
	}
}

func TestTweenStopsOnRemovedBody(t *testing.T) {
	b := &Body{}
	g := TweenPosition(b, 100, 100, 1.0, ease.Linear)
	b.Remove()
	g.Update(0.5)
	if !g.Done {
		t.Error("tween kept running on a removed body")
	}
	if b.Position != (Vec2{}) {
		t.Errorf("removed body moved to %v", b.Position)
	}
}

func TestTrackConstructorsDefaultScale(t *testing.T) {
	static := StaticTrack(Transformation{Position: Vec2{5, 0}})
	if got := static.Sample(0, nil).Scale; got != UniformScale(1) {
		t.Errorf("static Scale = %+v, want uniform 1", got)
	}
	keyed := KeyframeTrack(Keyframe{0, Transformation{}}, Keyframe{1, Transformation{Scale: UniformScale(3)}})
	if got := keyed.Sample(0, nil).Scale; got != UniformScale(1) {
		t.Errorf("keyed Scale at 0 = %+v, want uniform 1", got)
	}
	if got := keyed.Sample(0.5, nil).Scale; got != UniformScale(2) {
		t.Errorf("keyed Scale at 0.5 = %+v, want uniform 2", got)
	}
}
