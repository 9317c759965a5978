package screens

import "snake-classic/game/types"

// Key is a toolkit independent key press.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyEnter
	KeyEscape
)

// steer maps movement keys to a heading. Arrows and WASD are equivalent.
func steer(k Key) (types.Direction, bool) {
	switch k {
	case KeyUp, KeyW:
		return types.UP, true
	case KeyDown, KeyS:
		return types.DOWN, true
	case KeyLeft, KeyA:
		return types.LEFT, true
	case KeyRight, KeyD:
		return types.RIGHT, true
	default:
		return types.NONE, false
	}
}
