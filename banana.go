package banana

import (
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Vec2 is a 2D vector used for positions, offsets, sizes, and velocities
// throughout the API. Descriptors encode it as a two-element array.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scaled returns v multiplied by k.
func (v Vec2) Scaled(k float64) Vec2 {
	return Vec2{v.X * k, v.Y * k}
}

// MarshalJSON encodes the vector as [x, y].
func (v Vec2) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{v.X, v.Y})
}

// MarshalYAML encodes the vector as a flow sequence [x, y].
func (v Vec2) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	if err := n.Encode([2]float64{v.X, v.Y}); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle
	return n, nil
}

// Scale is a per-axis scale factor. A scale whose axes are equal is uniform
// and has the canonical scalar form reported by Uniform; descriptors and
// the JSON/YAML encoders use that form.
type Scale struct {
	X, Y float64
}

// UniformScale returns a Scale with both axes set to s.
func UniformScale(s float64) Scale {
	return Scale{s, s}
}

// Uniform returns the scalar form of the scale and true when both axes are
// equal.
func (s Scale) Uniform() (float64, bool) {
	if s.X == s.Y {
		return s.X, true
	}
	return 0, false
}

// Mul returns the componentwise product of s and o.
func (s Scale) Mul(o Scale) Scale {
	return Scale{s.X * o.X, s.Y * o.Y}
}

// MarshalJSON encodes a uniform scale as a number and any other as [x, y].
func (s Scale) MarshalJSON() ([]byte, error) {
	if u, ok := s.Uniform(); ok {
		return json.Marshal(u)
	}
	return json.Marshal([2]float64{s.X, s.Y})
}

// MarshalYAML encodes a uniform scale as a number and any other as [x, y].
func (s Scale) MarshalYAML() (any, error) {
	if u, ok := s.Uniform(); ok {
		return u, nil
	}
	return Vec2(s).MarshalYAML()
}

// RepeatMode selects how a pattern texture tiles.
type RepeatMode uint8

const (
	RepeatBoth RepeatMode = iota // tile on both axes ("repeat")
	RepeatX                      // tile horizontally only ("repeat-x")
	RepeatY                      // tile vertically only ("repeat-y")
	NoRepeat                     // draw a single tile ("no-repeat")
)

// String returns the descriptor spelling of the mode.
func (m RepeatMode) String() string {
	switch m {
	case RepeatBoth:
		return "repeat"
	case RepeatX:
		return "repeat-x"
	case RepeatY:
		return "repeat-y"
	case NoRepeat:
		return "no-repeat"
	default:
		return fmt.Sprintf("RepeatMode(%d)", uint8(m))
	}
}

// TilesX reports whether the mode repeats along the X axis.
func (m RepeatMode) TilesX() bool {
	return m == RepeatBoth || m == RepeatX
}

// TilesY reports whether the mode repeats along the Y axis.
func (m RepeatMode) TilesY() bool {
	return m == RepeatBoth || m == RepeatY
}

// ParseRepeatMode maps a descriptor spelling to a RepeatMode.
func ParseRepeatMode(s string) (RepeatMode, bool) {
	switch s {
	case "repeat":
		return RepeatBoth, true
	case "repeat-x":
		return RepeatX, true
	case "repeat-y":
		return RepeatY, true
	case "no-repeat":
		return NoRepeat, true
	default:
		return RepeatBoth, false
	}
}

// EventType identifies a notification emitted by an Engine, Entity or Sprite.
type EventType uint8

const (
	EventUpdate EventType = iota // fires after an update step
	EventRender                  // fires after an object has drawn all of its parts
	EventResize                  // fires after the engine surface is resized
)

// String returns the event tag name.
func (t EventType) String() string {
	switch t {
	case EventUpdate:
		return "update"
	case EventRender:
		return "render"
	case EventResize:
		return "resize"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(t))
	}
}

// degToRad converts degrees to radians.
const degToRad = math.Pi / 180
