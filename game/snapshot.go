package game

import "snake-classic/game/types"

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Grid      types.Grid
	Snake     []types.Point
	Head      types.Point
	Food      types.Point
	Direction types.Direction
	Score     int
	Ticks     int
	State     State
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Grid:      e.Grid,
		Snake:     e.Snake(),
		Head:      e.Head(),
		Food:      e.food,
		Direction: e.Direction(),
		Score:     e.score,
		Ticks:     e.steps,
		State:     e.State(),
	}
}
