package script

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/phanxgames/banana"
)

// nopSurface discards every draw.
type nopSurface struct{}

type nopImage struct{}

func (nopImage) Size() (int, int) { return 0, 0 }

type nopPaint struct{}

func (nopPaint) Repeat() banana.RepeatMode { return banana.RepeatBoth }

func (nopSurface) Resize(int, int) error                                      { return nil }
func (nopSurface) Clear()                                                     {}
func (nopSurface) Save()                                                      {}
func (nopSurface) Restore()                                                   {}
func (nopSurface) Translate(float64, float64)                                 {}
func (nopSurface) Rotate(float64)                                             {}
func (nopSurface) DrawImage(banana.Image, float64, float64, float64, float64) {}
func (nopSurface) FillRect(banana.Paint, float64, float64, float64, float64)  {}
func (nopSurface) NewImage(image.Image) banana.Image                          { return nopImage{} }
func (nopSurface) NewPattern(banana.Image, banana.RepeatMode) banana.Paint    { return nopPaint{} }

type fixture struct {
	engine *banana.Engine
	entity *banana.Entity
	rt     *Runtime
	logs   *observer.ObservedLogs
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: time.Unix(0, 0)}
	f.engine = banana.NewEngine(nopSurface{}, &banana.EngineOptions{
		Loader: banana.MemoryLoader{},
		Clock:  func() time.Time { return f.now },
	})
	t.Cleanup(f.engine.Close)

	f.entity = f.engine.CreateEntity()
	for _, name := range []string{"idle", "walk"} {
		if err := f.entity.LoadAnimation(&banana.AnimationModel{Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.entity.LoadModel(&banana.RenderModel{Name: "puppet"}); err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zapcore.DebugLevel)
	f.logs = logs
	f.rt = NewRuntime(zap.New(core))
	t.Cleanup(f.rt.Close)
	return f
}

func (f *fixture) step(seconds float64) {
	f.now = f.now.Add(time.Duration(seconds * float64(time.Second)))
	f.engine.Update()
}

const mover = `
return {
  on_update = function(self, dt)
    self.x = self.x + 10 * dt
    self.state.ticks = (self.state.ticks or 0) + 1
    if self.state.ticks == 2 then
      self.animation = "walk"
      self.model = "puppet"
    end
    self.rotation = self.state.ticks * 5
  end,
}
`

func TestBehaviorMovesEntity(t *testing.T) {
	f := newFixture(t)
	if _, err := f.rt.Attach(f.entity, "mover", mover); err != nil {
		t.Fatal(err)
	}

	f.step(0.5)
	if f.entity.Position.X != 5 {
		t.Errorf("X = %v, want 5", f.entity.Position.X)
	}
	if f.entity.CurrentAnimation() != "" {
		t.Errorf("animation = %q before the second tick", f.entity.CurrentAnimation())
	}

	f.step(0.5)
	if f.entity.Position.X != 10 || f.entity.Rotation != 10 {
		t.Errorf("position = %v, rotation = %v, want 10 and 10", f.entity.Position, f.entity.Rotation)
	}
	if f.entity.CurrentAnimation() != "walk" || f.entity.CurrentModel() != "puppet" {
		t.Errorf("names = %q/%q, want puppet/walk", f.entity.CurrentModel(), f.entity.CurrentAnimation())
	}
}

func TestBehaviorSeesGoSideChanges(t *testing.T) {
	f := newFixture(t)
	_, err := f.rt.Attach(f.entity, "reader", `
return {
  on_update = function(self, dt)
    self.vy = self.y
    if self.animation == "idle" then self.animation = "" end
  end,
}`)
	if err != nil {
		t.Fatal(err)
	}
	f.entity.Position.Y = 42
	f.entity.ApplyAnimation("idle")
	f.step(0.1)
	if f.entity.Velocity.Y != 42 {
		t.Errorf("Velocity.Y = %v, want 42", f.entity.Velocity.Y)
	}
	if f.entity.CurrentAnimation() != "" {
		t.Errorf("animation = %q, want cleared", f.entity.CurrentAnimation())
	}
}

func TestBehaviorDetach(t *testing.T) {
	f := newFixture(t)
	b, err := f.rt.Attach(f.entity, "mover", mover)
	if err != nil {
		t.Fatal(err)
	}
	f.step(1)
	b.Detach()
	f.step(1)
	if f.entity.Position.X != 10 {
		t.Errorf("X = %v, want 10: detached behavior kept running", f.entity.Position.X)
	}
}

func TestAttachErrors(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name, src, want string
	}{
		{"syntax", "return {", "syntax"},
		{"not a table", "return 5", "must return a table"},
		{"no on_update", "return {}", "on_update is not a function"},
		{"runtime", "error('boom')", "boom"},
	}
	for _, tt := range tests {
		_, err := f.rt.Attach(f.entity, tt.name, tt.src)
		if err == nil {
			t.Errorf("%s: err = nil", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.name) {
			t.Errorf("%s: error %q does not name the script", tt.name, err)
		}
		if tt.want != "syntax" && !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q, want it to mention %q", tt.name, err, tt.want)
		}
	}
}

func TestBehaviorRuntimeErrorIsLogged(t *testing.T) {
	f := newFixture(t)
	_, err := f.rt.Attach(f.entity, "faulty", `
return {
  on_update = function(self, dt)
    self.x = 99
    error("kaput")
  end,
}`)
	if err != nil {
		t.Fatal(err)
	}
	f.step(0.1)
	entries := f.logs.FilterMessage("lua on_update failed").All()
	if len(entries) != 1 {
		t.Fatalf("error logs = %d, want 1", len(entries))
	}
	if entries[0].ContextMap()["script"] != "faulty" {
		t.Errorf("script field = %v", entries[0].ContextMap()["script"])
	}
	if f.entity.Position.X != 0 {
		t.Errorf("X = %v, want 0: a failed call must not write back", f.entity.Position.X)
	}
}

func TestBehaviorUnknownAnimationWarns(t *testing.T) {
	f := newFixture(t)
	_, err := f.rt.Attach(f.entity, "typo", `
return { on_update = function(self, dt) self.animation = "wlak" end }`)
	if err != nil {
		t.Fatal(err)
	}
	f.step(0.1)
	if n := f.logs.FilterMessage("lua set unknown animation").Len(); n != 1 {
		t.Errorf("warnings = %d, want 1", n)
	}
}

func TestAttachFile(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "mover.lua")
	if err := os.WriteFile(path, []byte(mover), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := f.rt.AttachFile(f.entity, path); err != nil {
		t.Fatal(err)
	}
	f.step(1)
	if f.entity.Position.X != 10 {
		t.Errorf("X = %v, want 10", f.entity.Position.X)
	}
	if _, err := f.rt.AttachFile(f.entity, filepath.Join(t.TempDir(), "none.lua")); err == nil {
		t.Error("AttachFile(missing) err = nil")
	}
}
