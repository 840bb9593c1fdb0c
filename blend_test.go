package banana

import (
	"sort"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestBlendCurves(t *testing.T) {
	tests := []struct {
		name string
		fn   BlendFunc
		t    float64
		want float64
	}{
		{"linear", BlendLinear, 0.5, 5},
		{"ease-in", BlendEaseIn, 0.5, 2.5},
		{"ease-out", BlendEaseOut, 0.5, 7.5},
		{"cubic", BlendCubic, 0.5, 5},
		{"cubic quarter", BlendCubic, 0.25, 10 * 0.25 * 0.25 * 2.5},
	}
	for _, tt := range tests {
		if got := tt.fn(0, 10, tt.t); !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("%s(0, 10, %v) = %v, want %v", tt.name, tt.t, got, tt.want)
		}
	}
	for _, fn := range []BlendFunc{BlendLinear, BlendEaseIn, BlendEaseOut, BlendCubic} {
		if fn(3, 7, 0) != 3 || fn(3, 7, 1) != 7 {
			t.Error("blend curves must hit both endpoints")
		}
	}
}

func TestEaseBlendMatchesLinear(t *testing.T) {
	fn := EaseBlend(ease.Linear)
	for _, x := range []float64{0, 0.25, 0.5, 1} {
		if got, want := fn(-4, 4, x), BlendLinear(-4, 4, x); !approxEqual(got, want, 1e-5) {
			t.Errorf("EaseBlend(Linear)(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestBlendByName(t *testing.T) {
	fn, err := BlendByName("")
	if err != nil || fn(0, 10, 0.5) != 5 {
		t.Errorf("BlendByName(\"\") = %v, want linear", err)
	}
	fn, err = BlendByName("ease-in")
	if err != nil || fn(0, 10, 0.5) != 2.5 {
		t.Errorf("BlendByName(ease-in) = %v", err)
	}
	if _, err := BlendByName("wobble"); err == nil {
		t.Error("BlendByName(wobble) err = nil")
	}
	for _, name := range BlendNames() {
		if _, err := BlendByName(name); err != nil {
			t.Errorf("BlendByName(%q): %v", name, err)
		}
	}
	if !sort.StringsAreSorted(BlendNames()) {
		t.Error("BlendNames() not sorted")
	}
}
