package core

// Direction is the snake's heading. The ordering matches the joystick
// enumeration of the board support package.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirUp
	DirRight
	DirDown
)

// JoystickOrder is the priority in which joystick lines are sampled when
// more than one is asserted.
var JoystickOrder = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// IsCardinal reports whether d is one of the four movement directions.
func (d Direction) IsCardinal() bool {
	return d >= DirLeft && d <= DirDown
}

// Opposite returns the reverse heading. DirNone has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return DirNone
	}
}

// Vector returns the one-cell step for d. Rows grow downwards.
func (d Direction) Vector() (dc, dr int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirNone:
		return "none"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}
