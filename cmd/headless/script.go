package main

import "github.com/plus3/reaperrun/game"

// walkScript is a repeatable stand-in for a player: it mostly holds its
// course, sometimes turns and now and then stops.
type walkScript struct {
	rng game.Random
}

func newWalkScript(seed uint64) *walkScript {
	return &walkScript{rng: game.NewRandom(seed ^ 0x5eed)}
}

func (w *walkScript) Next() game.InputIntent {
	switch roll := w.rng.IntN(60); {
	case roll < 3:
		return game.Move(game.Directions[w.rng.IntN(len(game.Directions))])
	case roll == 3:
		return game.Stop()
	default:
		return game.NoIntent
	}
}
