package game_test

import (
	"testing"

	"github.com/plus3/reaperrun/ecs"
	"github.com/plus3/reaperrun/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld(t *testing.T, seed uint64) *game.Session {
	t.Helper()
	settings := game.DefaultSettings()
	settings.Seed = seed
	s, err := game.NewSession(settings)
	require.NoError(t, err)
	return s
}

func TestPopulateStockWorld(t *testing.T) {
	s := newWorld(t, 1)
	storage := s.Storage()
	pop := s.Population

	assert.Equal(t, 8, storage.Len())
	require.Len(t, pop.Enemies, 6)

	goal := boxOf(t, s, pop.Goal)
	gx, gy := goal.Center()
	assert.Equal(t, int32(-200), gy)
	assert.GreaterOrEqual(t, gx, int32(-300))
	assert.LessOrEqual(t, gx, int32(300))
	assert.Equal(t, int32(game.GoalWidth), goal.W)
	assert.Equal(t, int32(game.GoalHeight), goal.H)
	goalSprite := ecs.ReadComponent[game.Sprite](storage, pop.Goal)
	require.NotNil(t, goalSprite)
	assert.Equal(t, game.Rect{W: 128, H: 128}, goalSprite.Region)

	player := boxOf(t, s, pop.Player)
	px, py := player.Center()
	assert.Equal(t, int32(250), py)
	assert.GreaterOrEqual(t, px, int32(-320))
	assert.LessOrEqual(t, px, int32(320))
	assert.Equal(t, game.Velocity{Speed: 0, Direction: game.Down}, velocityOf(t, s, pop.Player))
	controlled := ecs.ReadComponent[game.Controlled](storage, pop.Player)
	require.NotNil(t, controlled)
	assert.Equal(t, int32(200), controlled.MovementSpeed)
	playerSprite := ecs.ReadComponent[game.Sprite](storage, pop.Player)
	assert.Equal(t, game.Rect{W: 52, H: 72}, playerSprite.Region)
	assert.Equal(t, game.TexturePlayer, playerSprite.TextureID)

	var firstClips *game.MovementAnimations
	for k, id := range pop.Enemies {
		i := int32(k/2) - 1
		j := int32(k%2) - 2

		x, y := boxOf(t, s, id).Center()
		assert.GreaterOrEqual(t, x, i*200-80, "enemy %d", k)
		assert.Less(t, x, i*200+80, "enemy %d", k)
		assert.GreaterOrEqual(t, y, j*140+200-40, "enemy %d", k)
		assert.Less(t, y, j*140+200+40, "enemy %d", k)

		assert.True(t, storage.HasComponent(id, reflectType[game.Hazard]()))
		auto := ecs.ReadComponent[game.Autonomous](storage, id)
		require.NotNil(t, auto)
		assert.Equal(t, s.Settings().Layout.DirectionChangeDelay, auto.Delay)
		assert.Equal(t, int32(200), velocityOf(t, s, id).Speed)

		clips := ecs.ReadComponent[game.MovementAnimations](storage, id)
		require.NotNil(t, clips)
		if firstClips == nil {
			firstClips = clips
		} else {
			assert.Same(t, firstClips.Up, clips.Up, "enemies share clips")
		}
	}
}

func TestPopulateIsDeterministicForSeed(t *testing.T) {
	a := newWorld(t, 99).Renderables()
	b := newWorld(t, 99).Renderables()
	c := newWorld(t, 100).Renderables()

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestPopulateEnemyGrid(t *testing.T) {
	settings := game.DefaultSettings()
	settings.Seed = 5
	settings.Layout.EnemyColumns = 1
	settings.Layout.EnemyRows = 1

	s, err := game.NewSession(settings)
	require.NoError(t, err)
	require.Len(t, s.Population.Enemies, 1)

	x, y := boxOf(t, s, s.Population.Enemies[0]).Center()
	assert.InDelta(t, 0, x, 80)
	assert.InDelta(t, 60, y, 40)
}
