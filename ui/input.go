package ui

import (
	"snake-classic/screens"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PollKeys drains raylib's key queue for this frame, in press order.
func PollKeys() []screens.Key {
	var keys []screens.Key
	for code := rl.GetKeyPressed(); code != 0; code = rl.GetKeyPressed() {
		if k := translate(code); k != screens.KeyNone {
			keys = append(keys, k)
		}
	}
	return keys
}

func translate(code int32) screens.Key {
	switch code {
	case rl.KeyUp:
		return screens.KeyUp
	case rl.KeyDown:
		return screens.KeyDown
	case rl.KeyLeft:
		return screens.KeyLeft
	case rl.KeyRight:
		return screens.KeyRight
	case rl.KeyW:
		return screens.KeyW
	case rl.KeyA:
		return screens.KeyA
	case rl.KeyS:
		return screens.KeyS
	case rl.KeyD:
		return screens.KeyD
	case rl.KeyEnter, rl.KeyKpEnter:
		return screens.KeyEnter
	case rl.KeyEscape:
		return screens.KeyEscape
	default:
		return screens.KeyNone
	}
}
