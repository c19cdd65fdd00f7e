package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/reaperrun/game"
)

var arrowKeys = map[ebiten.Key]game.Direction{
	ebiten.KeyArrowUp:    game.Up,
	ebiten.KeyArrowDown:  game.Down,
	ebiten.KeyArrowLeft:  game.Left,
	ebiten.KeyArrowRight: game.Right,
}

// decodeKeys turns this tick's key transitions into at most one intent.
// Releases are applied before presses, so rolling from one arrow onto
// another keeps the player moving in the new direction.
func decodeKeys(pressed, released []ebiten.Key) (intent game.InputIntent, quit bool) {
	intent = game.NoIntent
	for _, k := range released {
		if _, ok := arrowKeys[k]; ok {
			intent = game.Stop()
		}
	}
	for _, k := range pressed {
		if k == ebiten.KeyEscape {
			quit = true
		}
		if d, ok := arrowKeys[k]; ok {
			intent = game.Move(d)
		}
	}
	return intent, quit
}

// readKeys polls ebiten for the transitions of the current tick. Held keys
// produce nothing; only the tick a key goes down or up counts.
func readKeys() (game.InputIntent, bool) {
	pressed := inpututil.AppendJustPressedKeys(nil)
	released := inpututil.AppendJustReleasedKeys(nil)
	return decodeKeys(pressed, released)
}
