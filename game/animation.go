package game

import (
	"reflect"

	"github.com/plus3/reaperrun/ecs"
)

var animationType = reflect.TypeFor[Animation]()

// AnimationSystem picks the walking clip that matches each entity's velocity and
// plays it into the entity's Sprite.
//
// Attaching a clip to an entity that is not animating, and detaching it when the
// entity stops, go through the frame's command buffer and take effect after
// maintenance. Switching clips on an entity that is already animating happens in place.
type AnimationSystem struct {
	Walkers ecs.Query[struct {
		ecs.EntityId
		*Velocity
		*MovementAnimations
		Animation *Animation `ecs:"optional"`
	}]
	Playing ecs.Query[struct {
		ecs.EntityId
		*Animation
		*Sprite
	}]

	// entities whose clip was started or stopped this frame
	touched map[ecs.EntityId]struct{}
}

func (s *AnimationSystem) Execute(frame *ecs.UpdateFrame) {
	if s.touched == nil {
		s.touched = make(map[ecs.EntityId]struct{})
	}
	clear(s.touched)

	for walker := range s.Walkers.Values() {
		if walker.Velocity.Speed == 0 {
			if walker.Animation != nil {
				frame.Commands.RemoveComponent(walker.EntityId, animationType)
				s.touched[walker.EntityId] = struct{}{}
			}
			continue
		}

		clip := walker.MovementAnimations.For(walker.Velocity.Direction)
		switch {
		case walker.Animation == nil:
			frame.Commands.AddComponent(walker.EntityId, Animation{Clip: clip})
		case walker.Animation.Clip != clip:
			*walker.Animation = Animation{Clip: clip}
			s.touched[walker.EntityId] = struct{}{}
		}
	}

	for playing := range s.Playing.Values() {
		if _, ok := s.touched[playing.EntityId]; ok {
			continue
		}
		advance(playing.Animation, playing.Sprite, frame)
	}
}

// advance moves the animation to its next frame once the current frame's
// duration has elapsed and copies that frame's sprite.
func advance(anim *Animation, sprite *Sprite, frame *ecs.UpdateFrame) {
	if anim.Clip == nil || anim.Clip.Len() == 0 {
		return
	}
	anim.Elapsed += frame.Elapsed
	if anim.Elapsed < anim.Clip.Frames[anim.Frame].Duration {
		return
	}
	anim.Frame = (anim.Frame + 1) % anim.Clip.Len()
	anim.Elapsed = 0
	*sprite = anim.Clip.Frames[anim.Frame].Sprite
}
