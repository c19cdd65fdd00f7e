package game

// Direction is one of the four cardinal directions of motion.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in declaration order.
var Directions = [...]Direction{Up, Down, Left, Right}

// Unit returns the unit step for the direction in world coordinates.
func (d Direction) Unit() (dx, dy int32) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// SheetRow returns the row of a walking sprite sheet that holds this direction.
func (d Direction) SheetRow() int32 {
	switch d {
	case Down:
		return 0
	case Left:
		return 1
	case Right:
		return 2
	case Up:
		return 3
	}
	return 0
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}
