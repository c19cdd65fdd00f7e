package game

import "github.com/plus3/reaperrun/ecs"

// InputSystem applies the frame's input intent to every controlled entity.
type InputSystem struct {
	Intent  ecs.Singleton[InputIntent]
	Players ecs.Query[struct {
		*Controlled
		*Velocity
	}]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	intent := s.Intent.Get()
	if intent == nil || intent.Kind == IntentNone {
		return
	}

	for player := range s.Players.Values() {
		applyIntent(*intent, player.Controlled, player.Velocity)
	}
}

func applyIntent(intent InputIntent, controlled *Controlled, velocity *Velocity) {
	switch intent.Kind {
	case IntentMove:
		velocity.Speed = controlled.MovementSpeed
		velocity.Direction = intent.Direction
	case IntentStop:
		velocity.Speed = 0
	}
}
