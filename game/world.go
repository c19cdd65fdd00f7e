package game

import (
	"time"

	"github.com/plus3/reaperrun/ecs"
)

const (
	PlayerWidth  = 32
	PlayerHeight = 58
	EnemyWidth   = 50
	EnemyHeight  = 58
	GoalWidth    = 92
	GoalHeight   = 116
)

// SpriteSet is the art the world is built from.
type SpriteSet struct {
	Player SpriteSheet
	Enemy  SpriteSheet
	Goal   Sprite
}

// Texture ids of DefaultSprites, in load order.
const (
	TexturePlayer = iota
	TextureEnemy
	TextureGoal
)

// DefaultSprites returns the sheet layout of the stock art.
func DefaultSprites() SpriteSet {
	return SpriteSet{
		Player: SpriteSheet{
			Texture:       TexturePlayer,
			FrameWidth:    52,
			FrameHeight:   72,
			Frames:        3,
			FrameDuration: 150 * time.Millisecond,
		},
		Enemy: SpriteSheet{
			Texture:       TextureEnemy,
			FrameWidth:    64,
			FrameHeight:   72,
			Frames:        3,
			FrameDuration: 150 * time.Millisecond,
		},
		Goal: Sprite{
			TextureID: TextureGoal,
			Region:    Rect{W: 128, H: 128},
		},
	}
}

// WorldLayout controls the initial entity set.
type WorldLayout struct {
	PlayerSpeed          int32
	EnemySpeed           int32
	EnemyColumns         int
	EnemyRows            int
	DirectionChangeDelay time.Duration
	Sprites              SpriteSet
}

// Population reports the entities created by Populate.
type Population struct {
	Player  ecs.EntityId
	Goal    ecs.EntityId
	Enemies []ecs.EntityId
}

// Populate spawns the goal, the player and a grid of enemies into storage.
//
// Enemies are scattered one per grid cell so they start apart from each other and
// from the player's starting row: column i sits around x = i*200 and row j around
// y = j*140 + 200, with j running over the rows above y = 200.
func Populate(storage *ecs.Storage, rng Random, layout WorldLayout) Population {
	var pop Population

	pop.Goal = storage.Spawn(
		Goal{},
		BoundingBox{Rect: RectFromCenter(rng.Between(-300, 301), -200, GoalWidth, GoalHeight)},
		layout.Sprites.Goal,
	)

	playerSheet := layout.Sprites.Player
	pop.Player = storage.Spawn(
		Controlled{MovementSpeed: layout.PlayerSpeed},
		BoundingBox{Rect: RectFromCenter(rng.Between(-320, 321), 250, PlayerWidth, PlayerHeight)},
		Velocity{Speed: 0, Direction: Down},
		playerSheet.IdleSprite(Down),
		playerSheet.Animations(),
	)

	enemySheet := layout.Sprites.Enemy
	enemyClips := enemySheet.Animations()
	for _, i := range gridSpan(layout.EnemyColumns, 0) {
		for _, j := range gridSpan(layout.EnemyRows, -1) {
			x := i*200 + rng.Between(-80, 80)
			y := j*140 + 200 + rng.Between(-40, 40)
			dir := Directions[rng.IntN(len(Directions))]

			id := storage.Spawn(
				Hazard{},
				Autonomous{Delay: layout.DirectionChangeDelay},
				BoundingBox{Rect: RectFromCenter(x, y, EnemyWidth, EnemyHeight)},
				Velocity{Speed: layout.EnemySpeed, Direction: dir},
				enemySheet.IdleSprite(dir),
				enemyClips,
			)
			pop.Enemies = append(pop.Enemies, id)
		}
	}

	return pop
}

// gridSpan returns n consecutive grid coordinates. With anchor 0 they are centered
// on zero (3 -> -1, 0, 1); with anchor -1 they end at -1 (2 -> -2, -1).
func gridSpan(n int, anchor int32) []int32 {
	if n <= 0 {
		return nil
	}
	start := anchor - int32(n) + 1
	if anchor == 0 {
		start = -int32(n-1) / 2
	}
	out := make([]int32, n)
	for k := range out {
		out[k] = start + int32(k)
	}
	return out
}
