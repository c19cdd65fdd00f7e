package game_test

import (
	"testing"
	"time"

	"github.com/plus3/reaperrun/ecs"
	"github.com/plus3/reaperrun/game"
	"github.com/stretchr/testify/assert"
)

func spawnGoal(s *game.Session, cx, cy int32) ecs.EntityId {
	return s.Storage().Spawn(
		game.Goal{},
		game.BoundingBox{Rect: game.RectFromCenter(cx, cy, game.GoalWidth, game.GoalHeight)},
	)
}

func spawnHazard(s *game.Session, cx, cy int32) ecs.EntityId {
	return s.Storage().Spawn(
		game.Hazard{},
		game.BoundingBox{Rect: game.RectFromCenter(cx, cy, game.EnemyWidth, game.EnemyHeight)},
	)
}

func TestReachingGoalWins(t *testing.T) {
	s := emptySession(t, game.FrameDuration)
	spawnGoal(s, 0, -200)
	spawnPlayer(s, 10, -180, game.Velocity{})

	assert.Equal(t, game.Running, s.Status())
	assert.Equal(t, game.Win, s.Step(game.NoIntent))
	assert.Equal(t, game.Win, s.Status())
}

func TestHazardBeatsGoal(t *testing.T) {
	s := emptySession(t, game.FrameDuration)
	spawnGoal(s, 0, -200)
	spawnHazard(s, 0, -180)
	spawnPlayer(s, 0, -190, game.Velocity{})

	assert.Equal(t, game.Lose, s.Step(game.NoIntent))
}

func TestTouchingEdgesDoNotCollide(t *testing.T) {
	s := emptySession(t, game.FrameDuration)
	// goal spans y in [-258, -142); player box starts exactly at -142
	spawnGoal(s, 0, -200)
	spawnPlayer(s, 0, -142+game.PlayerHeight/2, game.Velocity{})
	// hazard right edge at -16 touches the player's left edge
	spawnHazard(s, -16-game.EnemyWidth/2, -113)

	assert.Equal(t, game.Running, s.Step(game.NoIntent))
}

func TestWalkingIntoGoal(t *testing.T) {
	s := emptySession(t, game.FrameDuration)
	spawnGoal(s, 0, -200)
	// player top edge at -137, five pixels below the goal's bottom edge
	spawnPlayer(s, 0, -137+game.PlayerHeight/2, game.Velocity{})

	status := s.Step(game.Move(game.Up))
	for i := 0; i < 10 && status == game.Running; i++ {
		status = s.Step(game.NoIntent)
	}

	assert.Equal(t, game.Win, status)
	assert.LessOrEqual(t, s.Frames(), uint64(3))
}

func TestTerminalStatusStopsTheSession(t *testing.T) {
	s := emptySession(t, time.Second)
	spawnHazard(s, 0, 0)
	player := spawnPlayer(s, 0, 0, game.Velocity{Direction: game.Right})

	assert.Equal(t, game.Lose, s.Step(game.NoIntent))
	frames := s.Frames()
	box := boxOf(t, s, player)

	assert.Equal(t, game.Lose, s.Step(game.Move(game.Left)))
	assert.Equal(t, frames, s.Frames())
	assert.Equal(t, box, boxOf(t, s, player))
}

func TestNoPlayerStaysRunning(t *testing.T) {
	s := emptySession(t, game.FrameDuration)
	spawnGoal(s, 0, 0)
	spawnHazard(s, 0, 0)

	assert.Equal(t, game.Running, s.Step(game.NoIntent))
}
