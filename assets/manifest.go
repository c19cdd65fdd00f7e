// Package assets loads the sprite manifest that maps texture files to sprite sheets.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plus3/reaperrun/game"
)

// TextureEntry names one texture file. Position in the manifest is the texture id.
type TextureEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// SheetEntry describes a walking sheet on a named texture.
type SheetEntry struct {
	Texture       string        `yaml:"texture"`
	FrameWidth    int32         `yaml:"frame_width"`
	FrameHeight   int32         `yaml:"frame_height"`
	Frames        int           `yaml:"frames"`
	FrameDuration time.Duration `yaml:"frame_duration"`
}

// RegionEntry is a rectangle on a texture, in texture pixels.
type RegionEntry struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
	W int32 `yaml:"w"`
	H int32 `yaml:"h"`
}

// SpriteEntry is a static sprite on a named texture.
type SpriteEntry struct {
	Texture string      `yaml:"texture"`
	Region  RegionEntry `yaml:"region"`
}

// Manifest is the parsed sprites.yaml.
type Manifest struct {
	Textures []TextureEntry `yaml:"textures"`
	Player   SheetEntry     `yaml:"player"`
	Enemy    SheetEntry     `yaml:"enemy"`
	Goal     SpriteEntry    `yaml:"goal"`
}

// LoadManifest loads and checks a sprite manifest.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sprite manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse sprite manifest: %w", err)
	}
	if _, err := m.SpriteSet(); err != nil {
		return nil, fmt.Errorf("sprite manifest %s: %w", path, err)
	}
	return &m, nil
}

// TextureID returns the id of the named texture, or -1 if the manifest has none.
func (m *Manifest) TextureID(name string) int {
	for i, t := range m.Textures {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// TexturePaths returns the texture files in id order, joined onto baseDir.
func (m *Manifest) TexturePaths(baseDir string) []string {
	paths := make([]string, len(m.Textures))
	for i, t := range m.Textures {
		paths[i] = filepath.Join(baseDir, t.Path)
	}
	return paths
}

// SpriteSet resolves texture names and returns the sprites the world is built from.
func (m *Manifest) SpriteSet() (game.SpriteSet, error) {
	var set game.SpriteSet
	seen := make(map[string]bool, len(m.Textures))
	for _, t := range m.Textures {
		if t.Name == "" || t.Path == "" {
			return set, errors.New("texture entry needs a name and a path")
		}
		if seen[t.Name] {
			return set, fmt.Errorf("duplicate texture %q", t.Name)
		}
		seen[t.Name] = true
	}

	player, err := m.sheet("player", m.Player)
	if err != nil {
		return set, err
	}
	enemy, err := m.sheet("enemy", m.Enemy)
	if err != nil {
		return set, err
	}
	goalTexture := m.TextureID(m.Goal.Texture)
	if goalTexture < 0 {
		return set, fmt.Errorf("goal: unknown texture %q", m.Goal.Texture)
	}
	r := m.Goal.Region
	if r.W <= 0 || r.H <= 0 {
		return set, fmt.Errorf("goal: region %dx%d must be positive", r.W, r.H)
	}

	set.Player = player
	set.Enemy = enemy
	set.Goal = game.Sprite{
		TextureID: goalTexture,
		Region:    game.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H},
	}
	return set, nil
}

func (m *Manifest) sheet(name string, e SheetEntry) (game.SpriteSheet, error) {
	texture := m.TextureID(e.Texture)
	switch {
	case texture < 0:
		return game.SpriteSheet{}, fmt.Errorf("%s: unknown texture %q", name, e.Texture)
	case e.FrameWidth <= 0 || e.FrameHeight <= 0:
		return game.SpriteSheet{}, fmt.Errorf("%s: frame size %dx%d must be positive", name, e.FrameWidth, e.FrameHeight)
	case e.Frames <= 0:
		return game.SpriteSheet{}, fmt.Errorf("%s: needs at least one frame", name)
	case e.FrameDuration <= 0:
		return game.SpriteSheet{}, fmt.Errorf("%s: frame duration must be positive", name)
	}
	return game.SpriteSheet{
		Texture:       texture,
		FrameWidth:    e.FrameWidth,
		FrameHeight:   e.FrameHeight,
		Frames:        e.Frames,
		FrameDuration: e.FrameDuration,
	}, nil
}
