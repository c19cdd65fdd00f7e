package game

import (
	"time"

	"github.com/plus3/reaperrun/ecs"
)

// BoundingBox is an entity's position and extent in world coordinates.
type BoundingBox struct {
	Rect
}

// Velocity is a speed in pixels per second along a direction. The direction is
// kept while the speed is zero so stopped entities keep their facing.
type Velocity struct {
	Speed     int32
	Direction Direction
}

// Sprite selects the region of a texture to draw for an entity.
type Sprite struct {
	TextureID int
	Region    Rect
}

// Frame is one step of a clip.
type Frame struct {
	Sprite   Sprite
	Duration time.Duration
}

// Clip is an immutable looping sequence of frames. Clips are shared by pointer
// and compared by identity.
type Clip struct {
	Frames []Frame
}

// Len returns the number of frames in the clip.
func (c *Clip) Len() int {
	return len(c.Frames)
}

// Animation plays a clip on an entity. It exists only while the entity is animating.
type Animation struct {
	Clip    *Clip
	Frame   int
	Elapsed time.Duration
}

// MovementAnimations holds the walking clip for each direction.
type MovementAnimations struct {
	Up, Down, Left, Right *Clip
}

// For returns the clip for direction d.
func (m *MovementAnimations) For(d Direction) *Clip {
	switch d {
	case Up:
		return m.Up
	case Down:
		return m.Down
	case Left:
		return m.Left
	case Right:
		return m.Right
	}
	return nil
}

// Controlled marks the entity driven by the input intent.
type Controlled struct {
	MovementSpeed int32
}

// Autonomous marks an entity that changes direction on its own every Delay.
type Autonomous struct {
	Elapsed time.Duration
	Delay   time.Duration
}

// Hazard marks entities that end the game in a loss on contact.
type Hazard struct{}

// Goal marks entities that end the game in a win on contact.
type Goal struct{}

// RegisterComponents registers every game component type with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[BoundingBox](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Animation](registry)
	ecs.RegisterComponent[MovementAnimations](registry)
	ecs.RegisterComponent[Controlled](registry)
	ecs.RegisterComponent[Autonomous](registry)
	ecs.RegisterComponent[Hazard](registry)
	ecs.RegisterComponent[Goal](registry)
}
