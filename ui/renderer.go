package ui

import (
	"fmt"

	"snake-classic/game"
	"snake-classic/game/types"
	"snake-classic/screens"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderWidth  = 2  // Board frame thickness
	footerHeight = 70 // Score and status lines under the board
	buttonWidth  = 220
	buttonHeight = 44
	buttonGap    = 10
	buttonTop    = 190
	recentShown  = 3
)

var (
	windowBackground = rl.NewColor(0xf0, 0xf0, 0xf0, 255)
	boardBackground  = rl.White
	frameColor       = rl.Black
	bodyColor        = rl.NewColor(0, 200, 0, 255)
	headColor        = rl.Black
	foodColor        = rl.NewColor(255, 0, 0, 255)
	titleColor       = rl.NewColor(255, 0, 0, 255)
	subtitleColor    = rl.NewColor(0x33, 0x33, 0x33, 255)
	buttonColor      = rl.NewColor(0x4c, 0xaf, 0x50, 255)
	buttonEdge       = rl.NewColor(0x38, 0x8e, 0x3c, 255)
	focusColor       = rl.NewColor(0x45, 0xa0, 0x49, 255)
	focusEdge        = rl.NewColor(0xff, 0x45, 0x00, 255)
)

// Renderer draws a screens.Shell. It only reads state.
type Renderer struct {
	cellSize     int32
	boardWidth   int32
	boardHeight  int32
	screenWidth  int32
	screenHeight int32
}

func NewRenderer(grid types.Grid, cellSize int) *Renderer {
	r := &Renderer{cellSize: int32(cellSize)}
	r.boardWidth = int32(grid.Width)*r.cellSize + 2*borderWidth
	r.boardHeight = int32(grid.Height)*r.cellSize + 2*borderWidth

	menuHeight := int32(buttonTop + len(screens.DefaultSpeeds)*(buttonHeight+buttonGap) + 60 + recentShown*22)
	r.screenWidth = r.boardWidth
	r.screenHeight = max(r.boardHeight+footerHeight, menuHeight)
	return r
}

// WindowSize is the pixel size the window should open with.
func (r *Renderer) WindowSize() (int32, int32) {
	return r.screenWidth, r.screenHeight
}

func (r *Renderer) Draw(s *screens.Shell) {
	rl.BeginDrawing()
	rl.ClearBackground(windowBackground)

	switch s.Screen() {
	case screens.SpeedSelect:
		r.drawMenu(s)
	case screens.Playing:
		r.drawBoard(s.Snapshot(), s.LastOutcome())
		r.drawFooter(s)
	}

	rl.EndDrawing()
}

// buttonRect is the on-screen area of the speed button at index i.
func (r *Renderer) buttonRect(i int) rl.Rectangle {
	x := (r.screenWidth - buttonWidth) / 2
	y := int32(buttonTop) + int32(i)*(buttonHeight+buttonGap)
	return rl.NewRectangle(float32(x), float32(y), buttonWidth, buttonHeight)
}

func (r *Renderer) drawMenu(s *screens.Shell) {
	r.centerText("SNAKE", 40, 48, titleColor)
	r.centerText("Select game speed", 110, 24, subtitleColor)
	if best := s.HighScore(); best > 0 {
		r.centerText(fmt.Sprintf("Best: %d", best), 145, 18, subtitleColor)
	}

	for i, speed := range s.Speeds() {
		rec := r.buttonRect(i)
		fill, edge, thick := buttonColor, buttonEdge, float32(2)
		if i == s.Focus() {
			fill, edge, thick = focusColor, focusEdge, 3
		}
		rl.DrawRectangleRec(rec, fill)
		rl.DrawRectangleLinesEx(rec, thick, edge)

		label := speed.Label
		fontSize := int32(20)
		w := rl.MeasureText(label, fontSize)
		rl.DrawText(label, int32(rec.X)+(buttonWidth-w)/2, int32(rec.Y)+(buttonHeight-fontSize)/2, fontSize, rl.White)
	}

	y := int32(r.buttonRect(len(s.Speeds())).Y) + 10
	if last, ok := s.LastScore(); ok {
		r.centerText(fmt.Sprintf("Last: %d  Avg: %.1f", last, s.AverageScore()), y, 18, subtitleColor)
		y += 30
	}
	for i, g := range s.RecentGames() {
		if i == recentShown {
			break
		}
		line := fmt.Sprintf("%d pts  %s  %s", g.Score, g.Speed, g.Cause)
		r.centerText(line, y, 16, subtitleColor)
		y += 22
	}
}

// HandleMouse focuses the speed button under the pointer and starts a game
// when it is clicked.
func (r *Renderer) HandleMouse(s *screens.Shell) error {
	if s.Screen() != screens.SpeedSelect {
		return nil
	}
	pos := rl.GetMousePosition()
	for i := range s.Speeds() {
		if !rl.CheckCollisionPointRec(pos, r.buttonRect(i)) {
			continue
		}
		s.Hover(i)
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			return s.Select(i)
		}
		return nil
	}
	return nil
}

func (r *Renderer) drawBoard(snap game.Snapshot, end game.Outcome) {
	rl.DrawRectangle(0, 0, r.boardWidth, r.boardHeight, boardBackground)
	rl.DrawRectangleLinesEx(
		rl.NewRectangle(0, 0, float32(r.boardWidth), float32(r.boardHeight)),
		borderWidth, frameColor)

	for i := len(snap.Snake) - 1; i >= 1; i-- {
		r.drawCell(snap.Snake[i], bodyColor)
	}
	r.drawCell(snap.Head, headColor)
	if snap.Grid.Contains(snap.Food) {
		r.drawCell(snap.Food, foodColor)
	}

	if snap.State == game.GameOver {
		fontSize := int32(30)
		text := "GAME OVER"
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, (r.boardWidth-w)/2, (r.boardHeight-fontSize)/2, fontSize, foodColor)

		cause := endText(end)
		w = rl.MeasureText(cause, 20)
		rl.DrawText(cause, (r.boardWidth-w)/2, (r.boardHeight+fontSize)/2+10, 20, frameColor)
	}
}

func (r *Renderer) drawCell(p types.Point, color rl.Color) {
	rl.DrawRectangle(
		borderWidth+int32(p.X)*r.cellSize,
		borderWidth+int32(p.Y)*r.cellSize,
		r.cellSize, r.cellSize, color)
}

func (r *Renderer) drawFooter(s *screens.Shell) {
	y := r.boardHeight + 10
	r.centerText(fmt.Sprintf("%s    Speed: %s", s.ScoreText(), s.Current().Label), y, 20, rl.Black)
	if msg := s.Message(); msg != "" {
		r.centerText(msg, y+30, 18, foodColor)
	}
}

func (r *Renderer) centerText(text string, y, fontSize int32, color rl.Color) {
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, (r.screenWidth-w)/2, y, fontSize, color)
}

func endText(o game.Outcome) string {
	switch o {
	case game.HitWall:
		return "You hit the wall"
	case game.HitSelf:
		return "You ran into yourself"
	case game.BoardFull:
		return "The board is full!"
	default:
		return ""
	}
}
