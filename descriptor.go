package banana

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a model or animation descriptor.
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// FormatForPath picks a descriptor format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("banana: unknown descriptor format for %q", path)
	}
}

// ParseModel decodes and validates a model descriptor.
func ParseModel(data []byte, f Format) (*RenderModel, error) {
	tree, err := decodeTree(data, f)
	if err != nil {
		return nil, err
	}
	return modelFromTree(tree)
}

// ParseAnimation decodes and validates an animation descriptor.
func ParseAnimation(data []byte, f Format) (*AnimationModel, error) {
	tree, err := decodeTree(data, f)
	if err != nil {
		return nil, err
	}
	return animationFromTree(tree)
}

// ReadModelFile reads a model descriptor, choosing the format by extension.
func ReadModelFile(path string) (*RenderModel, error) {
	data, f, err := readDescriptor(path)
	if err != nil {
		return nil, err
	}
	return ParseModel(data, f)
}

// ReadAnimationFile reads an animation descriptor, choosing the format by
// extension.
func ReadAnimationFile(path string) (*AnimationModel, error) {
	data, f, err := readDescriptor(path)
	if err != nil {
		return nil, err
	}
	return ParseAnimation(data, f)
}

func readDescriptor(path string) ([]byte, Format, error) {
	f, err := FormatForPath(path)
	if err != nil {
		return nil, 0, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("banana: read descriptor: %w", err)
	}
	return data, f, nil
}

// decodeTree decodes a descriptor into a generic tree. Shape checks happen
// afterwards, identically for every format.
func decodeTree(data []byte, f Format) (any, error) {
	var tree any
	var err error
	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, &tree)
	case FormatYAML:
		err = yaml.Unmarshal(data, &tree)
	case FormatTOML:
		var m map[string]any
		err = toml.Unmarshal(data, &m)
		tree = m
	default:
		return nil, fmt.Errorf("banana: unknown format %v", f)
	}
	if err != nil {
		return nil, invalidf("", "%s: %v", f, err)
	}
	return tree, nil
}

// asMap returns v as a string-keyed map. YAML mappings with non-string keys
// (such as keyframe times) have their keys formatted.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func numberField(m map[string]any, key, path string, def float64) (float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return def, nil
	}
	n, ok := asNumber(v)
	if !ok {
		return 0, invalidf(joinPath(path, key), "must be a number")
	}
	return n, nil
}

func pair(v any) (x, y float64, ok bool) {
	s, isSlice := v.([]any)
	if !isSlice || len(s) != 2 {
		return 0, 0, false
	}
	x, okX := asNumber(s[0])
	y, okY := asNumber(s[1])
	return x, y, okX && okY
}

func vecField(m map[string]any, key, path string) (Vec2, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return Vec2{}, nil
	}
	x, y, ok := pair(v)
	if !ok {
		return Vec2{}, invalidf(joinPath(path, key), "must be [x, y]")
	}
	return Vec2{x, y}, nil
}

func scaleField(m map[string]any, key, path string) (Scale, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return UniformScale(1), nil
	}
	if n, ok := asNumber(v); ok {
		return UniformScale(n), nil
	}
	x, y, ok := pair(v)
	if !ok {
		return Scale{}, invalidf(joinPath(path, key), "must be a number or [x, y]")
	}
	return Scale{x, y}, nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// header validates the fields shared by model and animation descriptors and
// returns the name and the parts mapping.
func header(tree any) (string, map[string]any, error) {
	root, ok := asMap(tree)
	if !ok {
		return "", nil, invalidf("", "descriptor must be an object, got %T", tree)
	}
	rawName, ok := root["name"]
	if !ok {
		return "", nil, invalidf("name", "missing")
	}
	name, ok := rawName.(string)
	if !ok || name == "" {
		return "", nil, invalidf("name", "must be a non-empty string")
	}
	rawParts, ok := root["parts"]
	if !ok || rawParts == nil {
		return name, nil, nil
	}
	parts, ok := asMap(rawParts)
	if !ok {
		return "", nil, invalidf("parts", "must be an object")
	}
	return name, parts, nil
}

func modelFromTree(tree any) (*RenderModel, error) {
	name, parts, err := header(tree)
	if err != nil {
		return nil, err
	}
	m := &RenderModel{Name: name, Parts: make(map[string]Part, len(parts))}
	for key, raw := range parts {
		path := "parts." + key
		pm, ok := asMap(raw)
		if !ok {
			return nil, invalidf(path, "part must be an object")
		}
		var p Part
		if p.Position, err = vecField(pm, "position", path); err != nil {
			return nil, err
		}
		if p.Rotation, err = numberField(pm, "rotation", path, 0); err != nil {
			return nil, err
		}
		if p.Scale, err = scaleField(pm, "scale", path); err != nil {
			return nil, err
		}
		if p.Texture, err = textureField(pm, path); err != nil {
			return nil, err
		}
		layer, err := numberField(pm, "layer", path, 0)
		if err != nil {
			return nil, err
		}
		if layer != math.Trunc(layer) {
			return nil, invalidf(joinPath(path, "layer"), "must be an integer")
		}
		p.Layer = int(layer)
		m.Parts[key] = p
	}
	return m, nil
}

// textureField reads the part texture from "texture", or from its alias
// "image". A missing texture yields an empty descriptor, which fails later
// at texture construction.
func textureField(pm map[string]any, path string) (TextureDescriptor, error) {
	key := "texture"
	raw, ok := pm[key]
	if !ok {
		key = "image"
		raw, ok = pm[key]
	}
	if !ok || raw == nil {
		return TextureDescriptor{}, nil
	}
	path = joinPath(path, key)
	tm, ok := asMap(raw)
	if !ok {
		return TextureDescriptor{}, invalidf(path, "must be an object")
	}
	var desc TextureDescriptor
	if v, ok := tm["path"]; ok {
		if desc.Path, ok = v.(string); !ok {
			return TextureDescriptor{}, invalidf(path+".path", "must be a string")
		}
	}
	if v, ok := tm["repeat"]; ok && v != nil {
		if desc.Repeat, ok = v.(string); !ok {
			return TextureDescriptor{}, invalidf(path+".repeat", "must be a string")
		}
	}
	return desc, nil
}

func animationFromTree(tree any) (*AnimationModel, error) {
	name, parts, err := header(tree)
	if err != nil {
		return nil, err
	}
	a := &AnimationModel{Name: name, Parts: make(map[string]*AnimationTrack, len(parts))}
	for key, raw := range parts {
		track, err := trackFromTree(raw, "parts."+key)
		if err != nil {
			return nil, err
		}
		a.Parts[key] = track
	}
	return a, nil
}

// trackFromTree applies the encoding convention: a mapping whose keys all
// parse as finite numbers holds keyframes keyed by time in seconds; anything
// else is one static transformation. An empty mapping is a static identity.
func trackFromTree(raw any, path string) (*AnimationTrack, error) {
	m, ok := asMap(raw)
	if !ok {
		return nil, invalidf(path, "must be an object")
	}
	if len(m) == 0 || !numericKeys(m) {
		t, err := transformFromMap(m, path)
		if err != nil {
			return nil, err
		}
		return &AnimationTrack{Static: t}, nil
	}
	frames := make([]Keyframe, 0, len(m))
	for k, v := range m {
		at, _ := strconv.ParseFloat(strings.TrimSpace(k), 64)
		fpath := joinPath(path, k)
		fm, ok := asMap(v)
		if !ok {
			return nil, invalidf(fpath, "keyframe must be an object")
		}
		t, err := transformFromMap(fm, fpath)
		if err != nil {
			return nil, err
		}
		frames = append(frames, Keyframe{Time: at, Transform: t})
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].Time < frames[j].Time })
	for i := 1; i < len(frames); i++ {
		if frames[i].Time == frames[i-1].Time {
			return nil, invalidf(path, "duplicate keyframe time %v", frames[i].Time)
		}
	}
	return &AnimationTrack{Keyframes: frames}, nil
}

func numericKeys(m map[string]any) bool {
	for k := range m {
		f, err := strconv.ParseFloat(strings.TrimSpace(k), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return false
		}
	}
	return true
}

func transformFromMap(m map[string]any, path string) (Transformation, error) {
	var t Transformation
	var err error
	if t.Position, err = vecField(m, "position", path); err != nil {
		return t, err
	}
	if t.Rotation, err = numberField(m, "rotation", path, 0); err != nil {
		return t, err
	}
	if t.Scale, err = scaleField(m, "scale", path); err != nil {
		return t, err
	}
	return t, nil
}
