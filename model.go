package banana

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// Part is one textured piece of a model, placed relative to its entity.
type Part struct {
	Position Vec2              `json:"position" yaml:"position"`
	Rotation float64           `json:"rotation" yaml:"rotation"` // degrees
	Scale    Scale             `json:"scale" yaml:"scale"`
	Texture  TextureDescriptor `json:"texture" yaml:"texture"`
	// Layer orders parts within a model; lower layers draw first. Parts on
	// the same layer draw in key order.
	Layer int `json:"layer,omitempty" yaml:"layer,omitempty"`
}

// RenderModel is a named set of parts. Models built in code must set each
// part's Scale; descriptors default it to 1. The struct tags shape encoding
// only: decoding, including json.Unmarshal and yaml.Unmarshal, goes through
// ParseModel.
type RenderModel struct {
	Name  string          `json:"name" yaml:"name"`
	Parts map[string]Part `json:"parts" yaml:"parts"`
}

// Validate checks the fields the loader relies on.
func (m *RenderModel) Validate() error {
	if m == nil {
		return invalidf("", "nil model")
	}
	if m.Name == "" {
		return invalidf("name", "missing")
	}
	return nil
}

// UnmarshalJSON parses and validates a JSON model descriptor.
func (m *RenderModel) UnmarshalJSON(data []byte) error {
	return m.parse(data, FormatJSON)
}

// UnmarshalYAML parses and validates a YAML model descriptor.
func (m *RenderModel) UnmarshalYAML(value *yaml.Node) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	return m.parse(data, FormatYAML)
}

func (m *RenderModel) parse(data []byte, f Format) error {
	parsed, err := ParseModel(data, f)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}

// PartKeys returns the part keys in draw order.
func (m *RenderModel) PartKeys() []string {
	keys := sortedKeys(m.Parts)
	sort.SliceStable(keys, func(i, j int) bool {
		return m.Parts[keys[i]].Layer < m.Parts[keys[j]].Layer
	})
	return keys
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// loadedModel is a registered model with its parts' textures resolved.
type loadedModel struct {
	model    *RenderModel
	keys     []string
	textures map[string]*Texture
}
