package banana

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDescriptor is returned when a model or animation descriptor is
	// malformed: not an object, missing its name, or with a field of the
	// wrong shape.
	ErrInvalidDescriptor = errors.New("banana: invalid descriptor")

	// ErrNotFound is returned when a model or animation is applied by a name
	// that was never loaded.
	ErrNotFound = errors.New("banana: not found")

	// ErrInvalidTexture is returned when a texture is constructed without a
	// usable image path.
	ErrInvalidTexture = errors.New("banana: invalid texture")

	// ErrImageNotLoaded is returned by ResourceCache.LoadPattern while the
	// texture's backing image is still decoding.
	ErrImageNotLoaded = errors.New("banana: image not loaded")

	// ErrNotPattern is returned by ResourceCache.LoadPattern for a Basic texture.
	ErrNotPattern = errors.New("banana: texture is not a pattern")
)

// ValidationError describes where a descriptor failed schema validation.
// It matches ErrInvalidDescriptor with errors.Is.
type ValidationError struct {
	Path string // dotted location of the offending field, "" for the root
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("banana: invalid descriptor: %s", e.Msg)
	}
	return fmt.Sprintf("banana: invalid descriptor: %s: %s", e.Path, e.Msg)
}

// Unwrap lets errors.Is match ErrInvalidDescriptor.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidDescriptor
}

func invalidf(path, format string, args ...any) error {
	return &ValidationError{Path: path, Msg: fmt.Sprintf(format, args...)}
}
