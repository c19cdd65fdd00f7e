package game

import "github.com/plus3/reaperrun/ecs"

// AutonomySystem re-rolls the direction of autonomous entities once their delay elapses.
type AutonomySystem struct {
	Random    ecs.Singleton[Random]
	Wanderers ecs.Query[struct {
		*Autonomous
		*Velocity
	}]
}

func (s *AutonomySystem) Execute(frame *ecs.UpdateFrame) {
	rng := s.Random.Get()
	for wanderer := range s.Wanderers.Values() {
		auto := wanderer.Autonomous
		auto.Elapsed += frame.Elapsed
		if auto.Elapsed < auto.Delay {
			continue
		}
		wanderer.Velocity.Direction = rollDirection(rng.IntN(100)+1, wanderer.Velocity.Direction)
		auto.Elapsed = 0
	}
}

// rollDirection maps a draw n in [1, 100] to a direction: 1-60 keeps current,
// then 10 each for up, down, left and right.
func rollDirection(n int, current Direction) Direction {
	switch {
	case n <= 60:
		return current
	case n <= 70:
		return Up
	case n <= 80:
		return Down
	case n <= 90:
		return Left
	default:
		return Right
	}
}
