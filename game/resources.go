package game

import (
	"math/rand/v2"
)

// GameStatus is the outcome of the game so far. Win and Lose are terminal.
type GameStatus uint8

const (
	Running GameStatus = iota
	Win
	Lose
)

func (s GameStatus) String() string {
	switch s {
	case Running:
		return "running"
	case Win:
		return "win"
	case Lose:
		return "lose"
	}
	return "unknown"
}

// Over reports whether the status is terminal.
func (s GameStatus) Over() bool {
	return s == Win || s == Lose
}

// IntentKind discriminates InputIntent values.
type IntentKind uint8

const (
	IntentNone IntentKind = iota
	IntentMove
	IntentStop
)

// InputIntent is the decoded input for one frame.
type InputIntent struct {
	Kind      IntentKind
	Direction Direction
}

// NoIntent is the intent of a frame without input.
var NoIntent = InputIntent{}

// Move returns the intent to start moving in d.
func Move(d Direction) InputIntent {
	return InputIntent{Kind: IntentMove, Direction: d}
}

// Stop returns the intent to stop moving.
func Stop() InputIntent {
	return InputIntent{Kind: IntentStop}
}

func (i InputIntent) String() string {
	switch i.Kind {
	case IntentMove:
		return "move " + i.Direction.String()
	case IntentStop:
		return "stop"
	}
	return "none"
}

// WorldBounds is the rectangle movable entities must stay inside.
type WorldBounds struct {
	Rect
}

// BoundsForCanvas returns world bounds covering a w x h canvas centered on the origin.
func BoundsForCanvas(w, h int32) WorldBounds {
	return WorldBounds{Rect: RectFromCenter(0, 0, w, h)}
}

// Random is the seedable random source shared by the systems that need one.
type Random struct {
	*rand.Rand
}

// NewRandom returns a PCG-backed source for seed.
func NewRandom(seed uint64) Random {
	return Random{Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Between returns a uniform value in [lo, hi).
func (r Random) Between(lo, hi int32) int32 {
	return lo + r.Int32N(hi-lo)
}
