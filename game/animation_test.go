package game_test

import (
	"testing"
	"time"

	"github.com/plus3/reaperrun/ecs"
	"github.com/plus3/reaperrun/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSheet = game.SpriteSheet{
	Texture:       3,
	FrameWidth:    52,
	FrameHeight:   72,
	Frames:        3,
	FrameDuration: 150 * time.Millisecond,
}

// spawnWalker returns a controllable entity without a bounding box so only
// input and animation touch it.
func spawnWalker(s *game.Session) (ecs.EntityId, game.MovementAnimations) {
	anims := testSheet.Animations()
	id := s.Storage().Spawn(
		game.Controlled{MovementSpeed: 200},
		game.Velocity{Speed: 0, Direction: game.Down},
		testSheet.IdleSprite(game.Down),
		anims,
	)
	return id, anims
}

func animationOf(s *game.Session, id ecs.EntityId) *game.Animation {
	return ecs.ReadComponent[game.Animation](s.Storage(), id)
}

func TestStandardWalkingAnimations(t *testing.T) {
	anims := game.StandardWalkingAnimations(1, 64, 72, 3, 150*time.Millisecond)

	require.Equal(t, 3, anims.Up.Len())
	assert.Equal(t, game.Rect{X: 128, Y: 3 * 72, W: 64, H: 72}, anims.Up.Frames[2].Sprite.Region)
	assert.Equal(t, game.Rect{X: 0, Y: 0, W: 64, H: 72}, anims.Down.Frames[0].Sprite.Region)
	assert.Equal(t, game.Rect{X: 64, Y: 72, W: 64, H: 72}, anims.Left.Frames[1].Sprite.Region)
	assert.Equal(t, game.Rect{X: 0, Y: 2 * 72, W: 64, H: 72}, anims.Right.Frames[0].Sprite.Region)
	assert.Equal(t, 1, anims.Right.Frames[0].Sprite.TextureID)
	assert.Equal(t, 150*time.Millisecond, anims.Left.Frames[2].Duration)

	assert.Same(t, anims.Left, anims.For(game.Left))
	assert.Same(t, anims.Up, anims.For(game.Up))
}

func TestAnimationStartsAfterMaintenance(t *testing.T) {
	s := emptySession(t, 50*time.Millisecond)
	id, anims := spawnWalker(s)
	idle := *ecs.ReadComponent[game.Sprite](s.Storage(), id)

	assert.Nil(t, animationOf(s, id))

	s.Step(game.Move(game.Up))

	anim := animationOf(s, id)
	require.NotNil(t, anim)
	assert.Same(t, anims.Up, anim.Clip)
	assert.Equal(t, 0, anim.Frame)
	assert.Zero(t, anim.Elapsed)
	assert.Equal(t, idle, *ecs.ReadComponent[game.Sprite](s.Storage(), id), "not advanced in the frame it was attached")
}

func TestAnimationAdvancesAndLoops(t *testing.T) {
	s := emptySession(t, 50*time.Millisecond)
	id, anims := spawnWalker(s)

	s.Step(game.Move(game.Up))

	// 150ms frames at 50ms per step: three steps per animation frame
	var frames []int
	for i := 0; i < 9; i++ {
		s.Step(game.NoIntent)
		frames = append(frames, animationOf(s, id).Frame)
	}
	assert.Equal(t, []int{0, 0, 1, 1, 1, 2, 2, 2, 0}, frames)

	sprite := ecs.ReadComponent[game.Sprite](s.Storage(), id)
	assert.Equal(t, anims.Up.Frames[0].Sprite, *sprite)
}

func TestAnimationSameDirectionNeverRestarts(t *testing.T) {
	s := emptySession(t, 50*time.Millisecond)
	id, _ := spawnWalker(s)

	s.Step(game.Move(game.Right))
	s.Step(game.NoIntent)
	s.Step(game.NoIntent)

	before := *animationOf(s, id)
	require.Equal(t, 100*time.Millisecond, before.Elapsed)

	// Re-issuing the same direction keeps the running clip
	s.Step(game.Move(game.Right))

	after := animationOf(s, id)
	assert.Same(t, before.Clip, after.Clip)
	assert.Equal(t, 1, after.Frame)
	assert.Zero(t, after.Elapsed)
}

func TestAnimationDirectionChangeResets(t *testing.T) {
	s := emptySession(t, 50*time.Millisecond)
	id, anims := spawnWalker(s)

	s.Step(game.Move(game.Up))
	for i := 0; i < 4; i++ {
		s.Step(game.NoIntent)
	}
	require.Equal(t, 1, animationOf(s, id).Frame)

	s.Step(game.Move(game.Left))

	anim := animationOf(s, id)
	require.NotNil(t, anim)
	assert.Same(t, anims.Left, anim.Clip)
	assert.Equal(t, 0, anim.Frame)
	assert.Zero(t, anim.Elapsed)
}

func TestAnimationRemovedOnStop(t *testing.T) {
	s := emptySession(t, 50*time.Millisecond)
	id, anims := spawnWalker(s)

	s.Step(game.Move(game.Down))
	for i := 0; i < 3; i++ {
		s.Step(game.NoIntent)
	}
	shown := *ecs.ReadComponent[game.Sprite](s.Storage(), id)
	assert.Equal(t, anims.Down.Frames[1].Sprite, shown)

	s.Step(game.Stop())

	assert.Nil(t, animationOf(s, id))
	assert.Equal(t, shown, *ecs.ReadComponent[game.Sprite](s.Storage(), id), "sprite is left as it was")

	// Stopping again with no animation is harmless
	s.Step(game.Stop())
	assert.Nil(t, animationOf(s, id))
}

func TestAnimatedEntitiesShareClips(t *testing.T) {
	s := emptySession(t, 50*time.Millisecond)
	anims := testSheet.Animations()

	a := s.Storage().Spawn(game.Velocity{Speed: 10, Direction: game.Left}, anims, testSheet.IdleSprite(game.Left))
	b := s.Storage().Spawn(game.Velocity{Speed: 10, Direction: game.Left}, anims, testSheet.IdleSprite(game.Left))

	s.Step(game.NoIntent)

	assert.Same(t, animationOf(s, a).Clip, animationOf(s, b).Clip)
}
