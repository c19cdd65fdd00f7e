package game

import "time"

// SpriteSheet describes a walking sheet: one row per direction, frames laid out
// left to right, all frames the same size.
type SpriteSheet struct {
	Texture       int
	FrameWidth    int32
	FrameHeight   int32
	Frames        int
	FrameDuration time.Duration
}

// Region returns the sheet region of frame k for direction d.
func (s SpriteSheet) Region(d Direction, k int) Rect {
	return Rect{
		X: int32(k) * s.FrameWidth,
		Y: d.SheetRow() * s.FrameHeight,
		W: s.FrameWidth,
		H: s.FrameHeight,
	}
}

// Clip builds the walking clip for direction d.
func (s SpriteSheet) Clip(d Direction) *Clip {
	clip := &Clip{Frames: make([]Frame, s.Frames)}
	for k := range clip.Frames {
		clip.Frames[k] = Frame{
			Sprite:   Sprite{TextureID: s.Texture, Region: s.Region(d, k)},
			Duration: s.FrameDuration,
		}
	}
	return clip
}

// IdleSprite is the sprite shown before the entity first moves: frame 0 facing d.
func (s SpriteSheet) IdleSprite(d Direction) Sprite {
	return Sprite{TextureID: s.Texture, Region: s.Region(d, 0)}
}

// StandardWalkingAnimations builds the four walking clips of a sheet. The clips
// are allocated once and may be shared by every entity using the sheet.
func StandardWalkingAnimations(texture int, frameWidth, frameHeight int32, frames int, duration time.Duration) MovementAnimations {
	sheet := SpriteSheet{
		Texture:       texture,
		FrameWidth:    frameWidth,
		FrameHeight:   frameHeight,
		Frames:        frames,
		FrameDuration: duration,
	}
	return sheet.Animations()
}

// Animations builds the four walking clips of the sheet.
func (s SpriteSheet) Animations() MovementAnimations {
	return MovementAnimations{
		Up:    s.Clip(Up),
		Down:  s.Clip(Down),
		Left:  s.Clip(Left),
		Right: s.Clip(Right),
	}
}
