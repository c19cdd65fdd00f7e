package game

import (
	"cmp"
	"slices"

	"github.com/plus3/reaperrun/ecs"
)

type renderRow struct {
	ecs.EntityId
	*BoundingBox
	*Sprite
}

// Renderable is a read-only copy of what a renderer needs for one entity.
type Renderable struct {
	Entity ecs.EntityId
	Box    Rect
	Sprite Sprite
}

// ScreenRect returns the destination rectangle on a canvasW x canvasH screen: the
// sprite's size, centered on the box center shifted by half the canvas.
func (r Renderable) ScreenRect(canvasW, canvasH int32) Rect {
	cx, cy := r.Box.Center()
	return RectFromCenter(cx+canvasW/2, cy+canvasH/2, r.Sprite.Region.W, r.Sprite.Region.H)
}

// Renderables returns a snapshot of every entity with a bounding box and a sprite,
// ordered by entity id.
func (s *Session) Renderables() []Renderable {
	out := make([]Renderable, 0, s.storage.Len())
	for item := range s.renderables.Values() {
		out = append(out, Renderable{
			Entity: item.EntityId,
			Box:    item.BoundingBox.Rect,
			Sprite: *item.Sprite,
		})
	}
	slices.SortFunc(out, func(a, b Renderable) int {
		return cmp.Compare(a.Entity, b.Entity)
	})
	return out
}
