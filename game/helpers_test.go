package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/plus3/reaperrun/ecs"
	"github.com/plus3/reaperrun/game"
)

// emptySession returns an 800x600 session with no entities and the given frame duration.
func emptySession(t *testing.T, frame time.Duration) *game.Session {
	t.Helper()

	settings := game.DefaultSettings()
	settings.Seed = 42
	settings.FrameDuration = frame

	session, err := game.NewSession(settings, game.WithoutWorld())
	require.NoError(t, err)
	return session
}

func spawnPlayer(s *game.Session, cx, cy int32, v game.Velocity) ecs.EntityId {
	return s.Storage().Spawn(
		game.Controlled{MovementSpeed: 200},
		game.BoundingBox{Rect: game.RectFromCenter(cx, cy, game.PlayerWidth, game.PlayerHeight)},
		v,
	)
}

func boxOf(t *testing.T, s *game.Session, id ecs.EntityId) game.Rect {
	t.Helper()
	box := ecs.ReadComponent[game.BoundingBox](s.Storage(), id)
	require.NotNil(t, box)
	return box.Rect
}

func velocityOf(t *testing.T, s *game.Session, id ecs.EntityId) game.Velocity {
	t.Helper()
	v := ecs.ReadComponent[game.Velocity](s.Storage(), id)
	require.NotNil(t, v)
	return *v
}

func center(r game.Rect) [2]int32 {
	x, y := r.Center()
	return [2]int32{x, y}
}
