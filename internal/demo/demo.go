// Package demo holds the puppet used by the example programs: a model, two
// animations, a walking script, and procedurally drawn part images.
package demo

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/phanxgames/banana"
)

//go:embed puppet.yaml wave.json bob.toml walk.lua
var files embed.FS

// WalkScript returns the Lua behavior that walks the puppet.
func WalkScript() string {
	data, _ := files.ReadFile("walk.lua")
	return string(data)
}

// Images returns a loader serving every image the puppet model references.
func Images() (banana.MemoryLoader, error) {
	imgs := map[string]image.Image{
		"puppet/body.png":   rect(24, 48, color.NRGBA{60, 110, 200, 255}),
		"puppet/head.png":   rect(24, 24, color.NRGBA{240, 180, 120, 255}),
		"puppet/arm.png":    rect(8, 32, color.NRGBA{50, 90, 170, 255}),
		"puppet/ground.png": checker(16, color.NRGBA{70, 140, 60, 255}, color.NRGBA{90, 170, 80, 255}),
	}
	loader := make(banana.MemoryLoader, len(imgs))
	for key, img := range imgs {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		loader[key] = buf.Bytes()
	}
	return loader, nil
}

// Spawn creates the puppet entity at pos with its model applied and the
// wave animation running.
func Spawn(e *banana.Engine, pos banana.Vec2) (*banana.Entity, error) {
	en := e.CreateEntity()
	en.Position = pos

	data, _ := files.ReadFile("puppet.yaml")
	if err := en.LoadModelData(data, banana.FormatYAML); err != nil {
		return nil, err
	}
	for _, name := range []string{"wave.json", "bob.toml"} {
		f, err := banana.FormatForPath(name)
		if err != nil {
			return nil, err
		}
		data, _ := files.ReadFile(name)
		if err := en.LoadAnimationData(data, f); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	if err := en.ApplyModel("puppet"); err != nil {
		return nil, err
	}
	if err := en.ApplyAnimation("wave"); err != nil {
		return nil, err
	}
	return en, nil
}

func rect(w, h int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func checker(size int, a, b color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	half := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/half+y/half)%2 == 0 {
				img.SetNRGBA(x, y, a)
			} else {
				img.SetNRGBA(x, y, b)
			}
		}
	}
	return img
}
