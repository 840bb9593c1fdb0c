// Package script drives entities from Lua. A behavior is a Lua chunk that
// returns a table with an on_update(self, dt) function:
//
//	return {
//	  on_update = function(self, dt)
//	    self.x = self.x + 60 * dt
//	    if self.x > 400 then self.animation = "idle" end
//	  end,
//	}
//
// self exposes x, y, rotation, vx, vy, model and animation. Changes are
// written back to the entity after each call; a changed model or animation
// name is applied. self.state is a table kept between calls.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/phanxgames/banana"
)

// Runtime wraps a single gopher-lua VM shared by every behavior it attaches.
// Single-goroutine access only: the goroutine that drives the engine.
type Runtime struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewRuntime creates a Lua VM with the standard libraries. A nil logger
// discards output.
func NewRuntime(log *zap.Logger) *Runtime {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Runtime{vm: vm, log: log}
}

// Close shuts the VM down. Attached behaviors stop running.
func (r *Runtime) Close() {
	r.vm.Close()
}

// Behavior is a Lua script attached to one entity.
type Behavior struct {
	rt     *Runtime
	entity *banana.Entity
	name   string
	fn     lua.LValue
	self   *lua.LTable
	handle banana.ListenerHandle
}

// Attach runs src and binds the returned table's on_update to en's update
// event. name identifies the script in errors and logs.
func (r *Runtime) Attach(en *banana.Entity, name, src string) (*Behavior, error) {
	fn, err := r.vm.LoadString(src)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return r.attach(en, name, fn)
}

// AttachFile is Attach for a script on disk.
func (r *Runtime) AttachFile(en *banana.Entity, path string) (*Behavior, error) {
	fn, err := r.vm.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return r.attach(en, path, fn)
}

func (r *Runtime) attach(en *banana.Entity, name string, chunk *lua.LFunction) (*Behavior, error) {
	if err := r.vm.CallByParam(lua.P{Fn: chunk, NRet: 1, Protect: true}); err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	ret := r.vm.Get(-1)
	r.vm.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("script %s: must return a table, got %s", name, ret.Type())
	}
	fn := tbl.RawGetString("on_update")
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("script %s: on_update is not a function", name)
	}

	self := r.vm.NewTable()
	self.RawSetString("state", r.vm.NewTable())
	b := &Behavior{rt: r, entity: en, name: name, fn: fn, self: self}
	b.handle = en.On(banana.EventUpdate, func(ev banana.Event) { b.update(ev.DT) })
	r.log.Debug("behavior attached", zap.String("script", name))
	return b, nil
}

// Detach stops the behavior.
func (b *Behavior) Detach() {
	b.handle.Remove()
}

func (b *Behavior) update(dt float64) {
	vm := b.rt.vm
	en := b.entity

	b.self.RawSetString("x", lua.LNumber(en.Position.X))
	b.self.RawSetString("y", lua.LNumber(en.Position.Y))
	b.self.RawSetString("rotation", lua.LNumber(en.Rotation))
	b.self.RawSetString("vx", lua.LNumber(en.Velocity.X))
	b.self.RawSetString("vy", lua.LNumber(en.Velocity.Y))
	b.self.RawSetString("model", lua.LString(en.CurrentModel()))
	b.self.RawSetString("animation", lua.LString(en.CurrentAnimation()))

	if err := vm.CallByParam(lua.P{Fn: b.fn, NRet: 0, Protect: true}, b.self, lua.LNumber(dt)); err != nil {
		b.rt.log.Error("lua on_update failed", zap.String("script", b.name), zap.Error(err))
		return
	}

	en.Position.X = number(b.self, "x", en.Position.X)
	en.Position.Y = number(b.self, "y", en.Position.Y)
	en.Rotation = number(b.self, "rotation", en.Rotation)
	en.Velocity.X = number(b.self, "vx", en.Velocity.X)
	en.Velocity.Y = number(b.self, "vy", en.Velocity.Y)

	if m := lua.LVAsString(b.self.RawGetString("model")); m != en.CurrentModel() && m != "" {
		if err := en.ApplyModel(m); err != nil {
			b.rt.log.Warn("lua set unknown model", zap.String("script", b.name), zap.Error(err))
		}
	}
	switch a := lua.LVAsString(b.self.RawGetString("animation")); {
	case a == en.CurrentAnimation():
	case a == "":
		en.ClearAnimation()
	default:
		if err := en.ApplyAnimation(a); err != nil {
			b.rt.log.Warn("lua set unknown animation", zap.String("script", b.name), zap.Error(err))
		}
	}
}

func number(t *lua.LTable, key string, def float64) float64 {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return def
}
