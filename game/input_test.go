package game_test

import (
	"testing"
	"time"

	"github.com/plus3/reaperrun/ecs"
	"github.com/plus3/reaperrun/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputMoveSetsSpeedAndDirection(t *testing.T) {
	s := emptySession(t, time.Millisecond)
	id := spawnPlayer(s, 0, 0, game.Velocity{Speed: 0, Direction: game.Down})

	s.Step(game.Move(game.Left))

	assert.Equal(t, game.Velocity{Speed: 200, Direction: game.Left}, velocityOf(t, s, id))
}

func TestInputStopKeepsFacing(t *testing.T) {
	s := emptySession(t, time.Millisecond)
	id := spawnPlayer(s, 0, 0, game.Velocity{Speed: 0, Direction: game.Down})

	s.Step(game.Move(game.Right))
	s.Step(game.Stop())
	first := velocityOf(t, s, id)
	s.Step(game.Stop())

	assert.Equal(t, game.Velocity{Speed: 0, Direction: game.Right}, first)
	assert.Equal(t, first, velocityOf(t, s, id), "stop is idempotent")
}

func TestInputAbsentIsNoop(t *testing.T) {
	s := emptySession(t, time.Millisecond)
	id := spawnPlayer(s, 0, 0, game.Velocity{Speed: 0, Direction: game.Down})

	s.Step(game.Move(game.Up))

	// The intent is consumed by its frame; later frames without input change nothing
	v := ecs.ReadComponent[game.Velocity](s.Storage(), id)
	require.NotNil(t, v)
	v.Speed = 17

	s.Step(game.NoIntent)
	s.Step(game.NoIntent)

	assert.Equal(t, game.Velocity{Speed: 17, Direction: game.Up}, velocityOf(t, s, id))
}

func TestInputAppliesToEveryControlledEntity(t *testing.T) {
	s := emptySession(t, time.Millisecond)
	a := spawnPlayer(s, -100, 0, game.Velocity{Direction: game.Down})
	b := spawnPlayer(s, 100, 0, game.Velocity{Direction: game.Up})
	other := s.Storage().Spawn(game.Velocity{Speed: 0, Direction: game.Left})

	s.Step(game.Move(game.Right))

	assert.Equal(t, game.Velocity{Speed: 200, Direction: game.Right}, velocityOf(t, s, a))
	assert.Equal(t, game.Velocity{Speed: 200, Direction: game.Right}, velocityOf(t, s, b))
	assert.Equal(t, game.Velocity{Speed: 0, Direction: game.Left}, velocityOf(t, s, other))
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "move up", game.Move(game.Up).String())
	assert.Equal(t, "stop", game.Stop().String())
	assert.Equal(t, "none", game.NoIntent.String())
}
