// Package game holds the snake gameplay state machine. It has no timers and
// draws nothing: a caller drives Tick at its chosen interval and reads the
// accessors to render.
package game

import (
	"errors"
	"fmt"
	"time"

	"snake-classic/game/entity"
	"snake-classic/game/manager"
	"snake-classic/game/types"
)

// noFood marks that no food could be placed.
var noFood = types.Point{X: -1, Y: -1}

// ErrInvalidGrid is returned by NewEngine for a board the starting snake cannot fit on.
var ErrInvalidGrid = errors.New("invalid grid")

// State is the lifecycle phase of an Engine.
type State int

const (
	Idle State = iota
	Running
	GameOver
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case GameOver:
		return "game over"
	default:
		return "idle"
	}
}

// Outcome describes what a single Tick did.
type Outcome int

const (
	// NoTick means the engine was not running and nothing changed.
	NoTick Outcome = iota
	Moved
	Ate
	HitWall
	HitSelf
	// BoardFull means food was eaten but no free cell was left for the next one.
	BoardFull
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case HitWall:
		return "wall"
	case HitSelf:
		return "self"
	case BoardFull:
		return "board full"
	default:
		return "no tick"
	}
}

// Ended reports whether the outcome finished the game.
func (o Outcome) Ended() bool {
	return o == HitWall || o == HitSelf || o == BoardFull
}

// Result is returned by Tick.
type Result struct {
	Outcome Outcome
	Head    types.Point
	Score   int
	Length  int
}

// Listener receives engine notifications. Nil fields are skipped.
type Listener struct {
	OnScoreChanged func(score int)
	OnGameOver     func()
}

// Config configures a new Engine.
type Config struct {
	Width  int
	Height int
	// Seed feeds food placement. Zero picks a time based seed.
	Seed     uint64
	Listener Listener
}

// Engine is the single-player gameplay state machine. It is not safe for
// concurrent use; all calls must come from one goroutine.
type Engine struct {
	Grid         types.Grid
	snake        *entity.Snake
	pending      types.Direction
	food         types.Point
	score        int
	active       bool
	over         bool
	steps        int
	err          error
	listener     Listener
	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
}

func NewEngine(cfg Config) (*Engine, error) {
	grid := types.Grid{
		Width:  cfg.Width,
		Height: cfg.Height,
	}
	if grid.Width < types.MinGridSide || grid.Height < types.MinGridSide {
		return nil, fmt.Errorf("%dx%d, sides must be at least %d: %w",
			grid.Width, grid.Height, types.MinGridSide, ErrInvalidGrid)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	collisionMgr := manager.NewCollisionManager(grid)
	e := &Engine{
		Grid:         grid,
		listener:     cfg.Listener,
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(grid, collisionMgr, seed),
	}
	e.Reset()
	return e, nil
}

// SetListener replaces the notification callbacks.
func (e *Engine) SetListener(l Listener) {
	e.listener = l
}

// Reset puts the engine back in Idle with a fresh three-cell snake at the
// board centre heading right, score zero and new food.
func (e *Engine) Reset() {
	e.snake = entity.NewSnake(e.Grid.Center(), types.StartLength)
	e.pending = e.snake.Direction
	e.score = 0
	e.active = false
	e.over = false
	e.steps = 0
	e.err = nil
	e.placeFood()
	e.notifyScore()
}

// Start moves Idle to Running. A finished game must be Reset first.
func (e *Engine) Start() {
	if e.over {
		return
	}
	e.active = true
}

// SetDirection changes the current direction, applied on the next tick. It is
// ignored while not running and when d reverses the current direction.
func (e *Engine) SetDirection(d types.Direction) {
	if !e.active || e.over {
		return
	}
	if d == types.NONE || d == e.pending.Opposite() {
		return
	}
	e.pending = d
}

// Tick advances the snake by one cell.
func (e *Engine) Tick() Result {
	if !e.active || e.over {
		return e.result(NoTick)
	}

	e.steps++
	e.snake.Direction = e.pending
	newHead := e.snake.GetHead().Add(e.snake.Direction.ToPoint())

	switch e.collisionMgr.CheckCollision(newHead, e.snake) {
	case manager.WallCollision:
		e.gameOver(nil)
		return e.result(HitWall)
	case manager.SelfCollision:
		e.gameOver(nil)
		return e.result(HitSelf)
	}

	e.snake.Move(newHead)

	if e.collisionMgr.IsFoodCollision(newHead, e.food) {
		e.score++
		e.notifyScore()
		if !e.placeFood() {
			e.food = noFood
			e.gameOver(e.err)
			return e.result(BoardFull)
		}
		return e.result(Ate)
	}

	e.snake.RemoveTail()
	return e.result(Moved)
}

func (e *Engine) placeFood() bool {
	food, err := e.foodMgr.GenerateFood(e.snake)
	if err != nil {
		e.err = err
		return false
	}
	e.food = food
	return true
}

func (e *Engine) gameOver(err error) {
	e.over = true
	e.active = false
	e.err = err
	if e.listener.OnGameOver != nil {
		e.listener.OnGameOver()
	}
}

func (e *Engine) notifyScore() {
	if e.listener.OnScoreChanged != nil {
		e.listener.OnScoreChanged(e.score)
	}
}

func (e *Engine) result(o Outcome) Result {
	return Result{
		Outcome: o,
		Head:    e.snake.GetHead(),
		Score:   e.score,
		Length:  e.snake.Len(),
	}
}

// Snake returns a copy of the body, head first.
func (e *Engine) Snake() []types.Point {
	return e.snake.Segments()
}

func (e *Engine) Head() types.Point {
	return e.snake.GetHead()
}

// Food is off the board after a BoardFull game over.
func (e *Engine) Food() types.Point {
	return e.food
}

func (e *Engine) Score() int {
	return e.score
}

func (e *Engine) IsOver() bool {
	return e.over
}

func (e *Engine) IsActive() bool {
	return e.active
}

// Direction is the current direction, including a change not yet applied by Tick.
func (e *Engine) Direction() types.Direction {
	return e.pending
}

// Ticks counts the ticks advanced since the last Reset.
func (e *Engine) Ticks() int {
	return e.steps
}

// Err holds ErrNoFreeCell after a BoardFull game over, nil otherwise.
func (e *Engine) Err() error {
	return e.err
}

func (e *Engine) State() State {
	switch {
	case e.over:
		return GameOver
	case e.active:
		return Running
	default:
		return Idle
	}
}
