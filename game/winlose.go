package game

import "github.com/plus3/reaperrun/ecs"

// WinLoseSystem ends the game when a controlled entity touches a hazard (lose)
// or a goal (win). Hazards are checked first.
type WinLoseSystem struct {
	Status  ecs.Singleton[GameStatus]
	Players ecs.Query[struct {
		*Controlled
		*BoundingBox
	}]
	Hazards ecs.Query[struct {
		*Hazard
		*BoundingBox
	}]
	Goals ecs.Query[struct {
		*Goal
		*BoundingBox
	}]
}

func (s *WinLoseSystem) Execute(frame *ecs.UpdateFrame) {
	status := s.Status.Get()
	if *status != Running {
		return
	}

	for player := range s.Players.Values() {
		box := player.BoundingBox.Rect

		for hazard := range s.Hazards.Values() {
			if box.Intersects(hazard.BoundingBox.Rect) {
				*status = Lose
				return
			}
		}

		for goal := range s.Goals.Values() {
			if box.Intersects(goal.BoundingBox.Rect) {
				*status = Win
				return
			}
		}
	}
}
