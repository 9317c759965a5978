package game

import (
	"errors"
	"testing"

	"snake-classic/game/entity"
	"snake-classic/game/manager"
	"snake-classic/game/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(Config{Width: types.DefaultWidth, Height: types.DefaultHeight, Seed: 1})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

// parkFood moves the food somewhere the snake will not reach in a test.
func parkFood(e *Engine) {
	e.food = types.Point{X: 0, Y: 0}
}

func samePoints(a, b []types.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func manhattan(a, b types.Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func TestNewEngineRejectsTinyGrid(t *testing.T) {
	for _, size := range [][2]int{{3, 10}, {10, 3}, {0, 0}, {-5, 20}} {
		if _, err := NewEngine(Config{Width: size[0], Height: size[1]}); !errors.Is(err, ErrInvalidGrid) {
			t.Errorf("NewEngine(%dx%d) error = %v, want ErrInvalidGrid", size[0], size[1], err)
		}
	}
}

func TestInitialState(t *testing.T) {
	e := newTestEngine(t)

	want := []types.Point{{X: 50, Y: 40}, {X: 49, Y: 40}, {X: 48, Y: 40}}
	if got := e.Snake(); !samePoints(got, want) {
		t.Errorf("Expected snake %v, got %v", want, got)
	}
	if e.Direction() != types.RIGHT {
		t.Errorf("Expected direction right, got %s", e.Direction())
	}
	if e.Score() != 0 || e.IsActive() || e.IsOver() {
		t.Errorf("Expected score 0, inactive, not over; got %d %v %v", e.Score(), e.IsActive(), e.IsOver())
	}
	if e.State() != Idle {
		t.Errorf("Expected Idle, got %s", e.State())
	}
	for _, p := range want {
		if e.Food() == p {
			t.Errorf("Food placed on snake at %v", p)
		}
	}
}

func TestTickIsNoOpUntilStarted(t *testing.T) {
	e := newTestEngine(t)
	before := e.Snake()

	if r := e.Tick(); r.Outcome != NoTick {
		t.Errorf("Expected NoTick, got %s", r.Outcome)
	}
	if !samePoints(before, e.Snake()) {
		t.Error("Snake moved while idle")
	}
	if e.Ticks() != 0 {
		t.Errorf("Expected 0 ticks, got %d", e.Ticks())
	}
}

func TestFirstTickMovesRight(t *testing.T) {
	e := newTestEngine(t)
	parkFood(e)
	e.Start()

	r := e.Tick()
	if r.Outcome != Moved {
		t.Fatalf("Expected Moved, got %s", r.Outcome)
	}
	want := []types.Point{{X: 51, Y: 40}, {X: 50, Y: 40}, {X: 49, Y: 40}}
	if got := e.Snake(); !samePoints(got, want) {
		t.Errorf("Expected snake %v, got %v", want, got)
	}
	if e.Score() != 0 {
		t.Errorf("Expected score 0, got %d", e.Score())
	}
}

func TestHeadAdvancesOneCellInCurrentDirection(t *testing.T) {
	e := newTestEngine(t)
	parkFood(e)
	e.Start()

	turns := []types.Direction{types.RIGHT, types.UP, types.UP, types.LEFT, types.LEFT, types.DOWN, types.RIGHT}
	for _, d := range turns {
		prev := e.Head()
		prevLen := len(e.Snake())
		e.SetDirection(d)
		r := e.Tick()
		if r.Outcome != Moved {
			t.Fatalf("Expected Moved, got %s", r.Outcome)
		}
		if got := manhattan(prev, e.Head()); got != 1 {
			t.Errorf("Head jumped %d cells", got)
		}
		if e.Head() != prev.Add(e.Direction().ToPoint()) {
			t.Errorf("Head %v is not %v moved %s", e.Head(), prev, e.Direction())
		}
		if len(e.Snake()) != prevLen {
			t.Errorf("Length changed without food: %d -> %d", prevLen, len(e.Snake()))
		}
	}
}

func TestReverseDirectionIgnored(t *testing.T) {
	e := newTestEngine(t)
	parkFood(e)
	e.Start()

	e.SetDirection(types.LEFT)
	e.Tick()
	if e.Direction() != types.RIGHT {
		t.Errorf("Reverse turn applied: heading %s", e.Direction())
	}
	if e.Head() != (types.Point{X: 51, Y: 40}) {
		t.Errorf("Expected head (51,40), got %v", e.Head())
	}
	if e.IsOver() {
		t.Error("Reversal should not end the game")
	}
}

func TestLatestValidDirectionWins(t *testing.T) {
	e := newTestEngine(t)
	parkFood(e)
	e.Start()

	e.SetDirection(types.UP)
	// DOWN reverses the current direction (up) and is dropped.
	e.SetDirection(types.DOWN)
	if e.Direction() != types.UP {
		t.Errorf("Expected direction up before the tick, got %s", e.Direction())
	}
	e.Tick()

	if e.Direction() != types.UP {
		t.Errorf("Expected heading up, got %s", e.Direction())
	}
	if e.Head() != (types.Point{X: 50, Y: 39}) {
		t.Errorf("Expected head (50,39), got %v", e.Head())
	}
}

func TestTurnChecksLatestDirection(t *testing.T) {
	e := newTestEngine(t)
	parkFood(e)
	e.Start()

	// Heading right: UP is accepted, so LEFT is no longer a reversal.
	e.SetDirection(types.UP)
	e.SetDirection(types.LEFT)
	if e.Direction() != types.LEFT {
		t.Fatalf("Expected LEFT to replace UP, got %s", e.Direction())
	}

	r := e.Tick()
	if r.Outcome != HitSelf {
		t.Errorf("Expected the turn into the neck to hit the body, got %s at %v", r.Outcome, r.Head)
	}
}

func TestSetDirectionIgnoredWhenNotRunning(t *testing.T) {
	e := newTestEngine(t)
	parkFood(e)

	e.SetDirection(types.UP)
	e.Start()
	e.Tick()
	if e.Direction() != types.RIGHT {
		t.Errorf("Direction set while idle was applied: %s", e.Direction())
	}
}

func TestEatingFoodGrowsAndScores(t *testing.T) {
	var scores []int
	e := newTestEngine(t)
	e.SetListener(Listener{OnScoreChanged: func(s int) { scores = append(scores, s) }})
	e.Reset()
	if len(scores) != 1 || scores[0] != 0 {
		t.Fatalf("Expected reset to notify score 0, got %v", scores)
	}

	e.food = types.Point{X: 51, Y: 40}
	e.Start()

	r := e.Tick()
	if r.Outcome != Ate {
		t.Fatalf("Expected Ate, got %s", r.Outcome)
	}
	if e.Score() != 1 || r.Score != 1 {
		t.Errorf("Expected score 1, got %d (result %d)", e.Score(), r.Score)
	}
	want := []types.Point{{X: 51, Y: 40}, {X: 50, Y: 40}, {X: 49, Y: 40}, {X: 48, Y: 40}}
	if got := e.Snake(); !samePoints(got, want) {
		t.Errorf("Expected snake %v, got %v", want, got)
	}
	if r.Length != 4 {
		t.Errorf("Expected result length 4, got %d", r.Length)
	}
	if len(scores) != 2 || scores[1] != 1 {
		t.Errorf("Expected score notifications [0 1], got %v", scores)
	}
	for _, p := range e.Snake() {
		if p == e.Food() {
			t.Errorf("New food placed on snake at %v", p)
		}
	}
}

func TestWallCollision(t *testing.T) {
	overs := 0
	e := newTestEngine(t)
	e.SetListener(Listener{OnGameOver: func() { overs++ }})
	parkFood(e)
	e.food = types.Point{X: 99, Y: 79}
	e.snake = &entity.Snake{
		Body:      []types.Point{{X: 0, Y: 40}, {X: 1, Y: 40}, {X: 2, Y: 40}},
		Direction: types.LEFT,
	}
	e.pending = types.LEFT
	e.Start()

	r := e.Tick()
	if r.Outcome != HitWall {
		t.Fatalf("Expected HitWall, got %s", r.Outcome)
	}
	if !e.IsOver() || e.IsActive() {
		t.Errorf("Expected over and inactive, got over=%v active=%v", e.IsOver(), e.IsActive())
	}
	if e.State() != GameOver {
		t.Errorf("Expected GameOver, got %s", e.State())
	}
	if overs != 1 {
		t.Errorf("Expected one game over notification, got %d", overs)
	}
	if e.Head() != (types.Point{X: 0, Y: 40}) {
		t.Errorf("Snake moved into the wall: head %v", e.Head())
	}
}

func TestWallCollisionEachSide(t *testing.T) {
	tests := []struct {
		head types.Point
		dir  types.Direction
	}{
		{types.Point{X: 99, Y: 10}, types.RIGHT},
		{types.Point{X: 10, Y: 0}, types.UP},
		{types.Point{X: 10, Y: 79}, types.DOWN},
		{types.Point{X: 0, Y: 10}, types.LEFT},
	}
	for _, tt := range tests {
		e := newTestEngine(t)
		e.food = types.Point{X: 50, Y: 50}
		e.snake = &entity.Snake{Body: []types.Point{tt.head}, Direction: tt.dir}
		e.pending = tt.dir
		e.Start()
		if r := e.Tick(); r.Outcome != HitWall {
			t.Errorf("head %v heading %s: expected HitWall, got %s", tt.head, tt.dir, r.Outcome)
		}
	}
}

func TestSelfCollision(t *testing.T) {
	e := newTestEngine(t)
	parkFood(e)
	// Head at (10,10) heading up with the body curling around so that
	// turning left lands on a body cell that is not the tail.
	e.snake = &entity.Snake{
		Body: []types.Point{
			{X: 10, Y: 10}, {X: 10, Y: 11}, {X: 9, Y: 11}, {X: 9, Y: 10}, {X: 9, Y: 9}, {X: 8, Y: 9},
		},
		Direction: types.UP,
	}
	e.pending = types.UP
	e.Start()

	e.SetDirection(types.LEFT)
	r := e.Tick()
	if r.Outcome != HitSelf {
		t.Fatalf("Expected HitSelf, got %s", r.Outcome)
	}
	if !e.IsOver() || e.IsActive() {
		t.Error("Expected game over after self collision")
	}
}

func TestTailFollowingIsLegal(t *testing.T) {
	e := newTestEngine(t)
	parkFood(e)
	// A 2x2 square: moving up from (5,6) lands on the tail at (5,5).
	e.snake = &entity.Snake{
		Body:      []types.Point{{X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}, {X: 5, Y: 5}},
		Direction: types.LEFT,
	}
	e.pending = types.LEFT
	e.Start()
	e.SetDirection(types.UP)

	r := e.Tick()
	if r.Outcome != Moved {
		t.Fatalf("Expected Moved onto the vacating tail, got %s", r.Outcome)
	}
	want := []types.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}}
	if got := e.Snake(); !samePoints(got, want) {
		t.Errorf("Expected snake %v, got %v", want, got)
	}
}

func TestTickAfterGameOverIsNoOp(t *testing.T) {
	e := newTestEngine(t)
	e.food = types.Point{X: 50, Y: 50}
	e.snake = &entity.Snake{Body: []types.Point{{X: 99, Y: 0}}, Direction: types.RIGHT}
	e.pending = types.RIGHT
	e.Start()
	e.Tick()

	before := e.Snapshot()
	if r := e.Tick(); r.Outcome != NoTick {
		t.Errorf("Expected NoTick after game over, got %s", r.Outcome)
	}
	e.SetDirection(types.DOWN)
	e.Start()
	after := e.Snapshot()

	if !samePoints(before.Snake, after.Snake) || before.Food != after.Food ||
		before.Score != after.Score || before.Ticks != after.Ticks || after.State != GameOver {
		t.Errorf("State changed after game over: %+v -> %+v", before, after)
	}
	if e.IsActive() {
		t.Error("Start must not resume a finished game")
	}
}

func TestResetAfterGameOver(t *testing.T) {
	e := newTestEngine(t)
	e.food = types.Point{X: 51, Y: 40}
	e.Start()
	e.Tick()
	e.SetDirection(types.UP)
	for !e.IsOver() {
		e.Tick()
	}

	e.Reset()
	want := []types.Point{{X: 50, Y: 40}, {X: 49, Y: 40}, {X: 48, Y: 40}}
	if got := e.Snake(); !samePoints(got, want) {
		t.Errorf("Expected snake %v, got %v", want, got)
	}
	if e.Direction() != types.RIGHT || e.Score() != 0 || e.IsActive() || e.IsOver() || e.Ticks() != 0 {
		t.Errorf("Reset left state behind: dir=%s score=%d active=%v over=%v ticks=%d",
			e.Direction(), e.Score(), e.IsActive(), e.IsOver(), e.Ticks())
	}
	if e.Err() != nil {
		t.Errorf("Expected no error after reset, got %v", e.Err())
	}

	e.Start()
	if e.State() != Running {
		t.Errorf("Expected Running after reset and start, got %s", e.State())
	}
}

func TestBoardFullEndsGame(t *testing.T) {
	e, err := NewEngine(Config{Width: 4, Height: 4, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	// Snake snakes through every cell but (3,3), where the food sits.
	e.snake = &entity.Snake{
		Body: []types.Point{
			{X: 2, Y: 3}, {X: 1, Y: 3}, {X: 0, Y: 3},
			{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2},
			{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1},
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
		},
		Direction: types.RIGHT,
	}
	e.pending = types.RIGHT
	e.food = types.Point{X: 3, Y: 3}
	e.Start()

	r := e.Tick()
	if r.Outcome != BoardFull {
		t.Fatalf("Expected BoardFull, got %s", r.Outcome)
	}
	if !errors.Is(e.Err(), manager.ErrNoFreeCell) {
		t.Errorf("Expected ErrNoFreeCell, got %v", e.Err())
	}
	if !e.IsOver() || e.Score() != 1 || len(e.Snake()) != 16 {
		t.Errorf("Unexpected end state: over=%v score=%d len=%d", e.IsOver(), e.Score(), len(e.Snake()))
	}
	for _, p := range e.Snake() {
		if p == e.Food() {
			t.Errorf("Food %v left on the snake", e.Food())
		}
	}
	if e.Grid.Contains(e.Food()) {
		t.Errorf("Expected food off the board, got %v", e.Food())
	}
}

func TestLongRunInvariants(t *testing.T) {
	e, err := NewEngine(Config{Width: 12, Height: 10, Seed: 99})
	if err != nil {
		t.Fatal(err)
	}
	e.Start()

	// Steer in a fixed clockwise square spiral until something ends the game.
	pattern := []types.Direction{types.DOWN, types.LEFT, types.UP, types.RIGHT}
	for i := 0; i < 2000 && !e.IsOver(); i++ {
		if i%7 == 0 {
			e.SetDirection(pattern[(i/7)%len(pattern)])
		}
		prevLen := len(e.Snake())
		prevHead := e.Head()
		r := e.Tick()
		if r.Outcome.Ended() {
			break
		}

		if manhattan(prevHead, e.Head()) != 1 {
			t.Fatalf("tick %d: head jumped from %v to %v", i, prevHead, e.Head())
		}
		body := e.Snake()
		switch r.Outcome {
		case Ate:
			if len(body) != prevLen+1 {
				t.Fatalf("tick %d: ate but length %d -> %d", i, prevLen, len(body))
			}
		case Moved:
			if len(body) != prevLen {
				t.Fatalf("tick %d: moved but length %d -> %d", i, prevLen, len(body))
			}
		}
		seen := make(map[types.Point]bool, len(body))
		for j, p := range body {
			if seen[p] {
				t.Fatalf("tick %d: duplicate cell %v", i, p)
			}
			seen[p] = true
			if !e.Grid.Contains(p) {
				t.Fatalf("tick %d: cell %v off the board", i, p)
			}
			if j > 0 && manhattan(body[j-1], p) != 1 {
				t.Fatalf("tick %d: cells %v and %v not adjacent", i, body[j-1], p)
			}
		}
		if seen[e.Food()] {
			t.Fatalf("tick %d: food %v on the snake", i, e.Food())
		}
	}
}
