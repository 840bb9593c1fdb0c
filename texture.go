package banana

import (
	"fmt"

	"go.uber.org/zap"
)

// TextureKind selects how a texture is drawn. It is fixed when the texture is
// created.
type TextureKind uint8

const (
	// TextureBasic blits its image stretched to the part size.
	TextureBasic TextureKind = iota
	// TexturePattern fills the part rectangle with a tiled paint. Built from a
	// descriptor that names a repeat mode.
	TexturePattern
	// TextureRepeating is a pattern texture restricted to the tiling modes
	// repeat, repeat-x and repeat-y.
	TextureRepeating
)

// String returns the kind name.
func (k TextureKind) String() string {
	switch k {
	case TextureBasic:
		return "basic"
	case TexturePattern:
		return "pattern"
	case TextureRepeating:
		return "repeating"
	default:
		return fmt.Sprintf("TextureKind(%d)", uint8(k))
	}
}

// TextureDescriptor names the image behind a model part. Repeat is empty for
// a Basic texture.
type TextureDescriptor struct {
	Path   string `json:"path" yaml:"path" toml:"path"`
	Repeat string `json:"repeat,omitempty" yaml:"repeat,omitempty" toml:"repeat,omitempty"`
}

// Texture is a drawable backed by exactly one cached image.
type Texture struct {
	kind   TextureKind
	image  *ImageResource
	repeat RepeatMode
}

// NewTexture resolves desc through cache. A descriptor with a repeat mode
// yields a Pattern texture, otherwise a Basic one. An unknown repeat mode is
// logged and replaced by RepeatBoth.
func NewTexture(cache *ResourceCache, desc TextureDescriptor) (*Texture, error) {
	if desc.Path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidTexture)
	}
	if desc.Repeat == "" {
		return &Texture{kind: TextureBasic, image: cache.LoadImage(desc.Path)}, nil
	}
	mode, ok := ParseRepeatMode(desc.Repeat)
	if !ok {
		cache.log.Warn("invalid repeat mode, using repeat",
			zap.String("path", desc.Path), zap.String("repeat", desc.Repeat))
	}
	return &Texture{kind: TexturePattern, image: cache.LoadImage(desc.Path), repeat: mode}, nil
}

// NewRepeatingTexture creates a Repeating texture. Only RepeatBoth, RepeatX
// and RepeatY are accepted; any other mode is logged and replaced by
// RepeatBoth.
func NewRepeatingTexture(cache *ResourceCache, path string, mode RepeatMode) (*Texture, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidTexture)
	}
	if !mode.TilesX() && !mode.TilesY() {
		cache.log.Warn("invalid repeat mode for repeating texture, using repeat",
			zap.String("path", path), zap.Stringer("repeat", mode))
		mode = RepeatBoth
	}
	return &Texture{kind: TextureRepeating, image: cache.LoadImage(path), repeat: mode}, nil
}

// Kind returns the draw variant.
func (t *Texture) Kind() TextureKind { return t.kind }

// Image returns the backing image resource.
func (t *Texture) Image() *ImageResource { return t.image }

// Repeat returns the tiling mode. It is meaningless for a Basic texture.
func (t *Texture) Repeat() RepeatMode { return t.repeat }

// Loaded reports whether the backing image is ready to draw.
func (t *Texture) Loaded() bool { return t.image.loaded }
