package game

import (
	"time"

	"github.com/plus3/reaperrun/ecs"
)

// MovementSystem moves every entity with a positive speed. A move that would
// leave the world bounds is dropped for the frame.
type MovementSystem struct {
	Bounds ecs.Singleton[WorldBounds]
	Movers ecs.Query[struct {
		*Velocity
		*BoundingBox
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	bounds := s.Bounds.Get()
	for mover := range s.Movers.Values() {
		if next, ok := Advance(mover.BoundingBox.Rect, *mover.Velocity, frame.Elapsed); ok && bounds.Contains(next) {
			mover.BoundingBox.Rect = next
		}
	}
}

// Distance returns the whole pixels covered at speed over elapsed. Elapsed is
// taken in microseconds and the division comes last.
func Distance(speed int32, elapsed time.Duration) int32 {
	return int32(int64(speed) * elapsed.Microseconds() / 1_000_000)
}

// Advance returns box recentered one step along v. ok is false when the
// velocity does not move the box this frame.
func Advance(box Rect, v Velocity, elapsed time.Duration) (Rect, bool) {
	if v.Speed <= 0 || elapsed <= 0 {
		return box, false
	}
	distance := Distance(v.Speed, elapsed)
	dx, dy := v.Direction.Unit()
	cx, cy := box.Center()
	return box.Recenter(cx+dx*distance, cy+dy*distance), true
}
