// Package screens drives the menu, gameplay and game over screens around a
// game.Engine. It knows nothing about the window toolkit: the caller feeds it
// key presses and the current time, and a renderer reads it back.
package screens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"snake-classic/game"
	"snake-classic/game/manager"
	"snake-classic/store"

	"github.com/rs/zerolog/log"
)

// ErrQuit is returned from HandleKey when the player asks to leave.
var ErrQuit = errors.New("quit")

// Screen identifies what the window is showing.
type Screen int

const (
	SpeedSelect Screen = iota
	Playing
)

func (s Screen) String() string {
	if s == Playing {
		return "playing"
	}
	return "speed select"
}

// maxCatchUp bounds the ticks run in one Advance after a stall.
const maxCatchUp = 8

const gameOverMessage = "Game Over! Press Enter to restart or ESC to quit"

// Shell owns the periodic driver and forwards input to the engine.
type Shell struct {
	ctx      context.Context
	engine   *game.Engine
	states   *manager.StateManager
	speeds   []SpeedPreset
	focus    int
	current  int
	screen   Screen
	lastTick time.Time
	score    string
	message  string
	lastEnd  game.Outcome
	now      func() time.Time
}

// NewShell wires the engine listener and starts on the speed menu with
// focus on the preset at index focus.
func NewShell(ctx context.Context, engine *game.Engine, states *manager.StateManager, speeds []SpeedPreset, focus int) (*Shell, error) {
	if err := ValidateSpeeds(speeds); err != nil {
		return nil, err
	}
	if focus < 0 || focus >= len(speeds) {
		return nil, fmt.Errorf("speed index %d out of range [0,%d)", focus, len(speeds))
	}

	s := &Shell{
		ctx:     ctx,
		engine:  engine,
		states:  states,
		speeds:  speeds,
		focus:   focus,
		current: focus,
		screen:  SpeedSelect,
		now:     time.Now,
	}
	engine.SetListener(game.Listener{
		OnScoreChanged: s.updateScore,
		OnGameOver:     s.showGameOver,
	})
	engine.Reset()
	return s, nil
}

// HandleKey applies one key press. It returns ErrQuit on Escape.
func (s *Shell) HandleKey(k Key) error {
	if k == KeyEscape {
		return ErrQuit
	}

	switch s.screen {
	case SpeedSelect:
		s.handleMenuKey(k)
	case Playing:
		if s.engine.IsOver() {
			if k == KeyEnter {
				s.backToSpeedSelect()
			}
			return nil
		}
		if d, ok := steer(k); ok {
			s.engine.SetDirection(d)
		}
	}
	return nil
}

func (s *Shell) handleMenuKey(k Key) {
	switch k {
	case KeyUp:
		s.focus = (s.focus - 1 + len(s.speeds)) % len(s.speeds)
	case KeyDown:
		s.focus = (s.focus + 1) % len(s.speeds)
	case KeyEnter:
		s.startGame(s.focus)
	}
}

// Hover moves the menu focus to index, as a pointer over a button does.
func (s *Shell) Hover(index int) {
	if s.screen == SpeedSelect && index >= 0 && index < len(s.speeds) {
		s.focus = index
	}
}

// Select starts a game at the preset index, as clicking its button does.
// It is ignored outside the speed menu.
func (s *Shell) Select(index int) error {
	if index < 0 || index >= len(s.speeds) {
		return fmt.Errorf("speed index %d out of range [0,%d)", index, len(s.speeds))
	}
	if s.screen != SpeedSelect {
		return nil
	}
	s.focus = index
	s.startGame(index)
	return nil
}

func (s *Shell) startGame(index int) {
	speed := s.speeds[index]
	s.screen = Playing
	s.message = ""
	s.engine.Reset()
	s.engine.Start()
	s.current = index
	s.lastTick = s.now()
	s.states.BeginGame()
	log.Info().Str("speed", speed.Label).Dur("interval", speed.Interval).Msg("starting game")
}

func (s *Shell) backToSpeedSelect() {
	s.screen = SpeedSelect
	s.message = ""
	s.engine.Reset()
	s.focus = s.current
}

// Advance runs every tick that is due at now. Ticks missed during a stall are
// replayed, up to maxCatchUp per call.
func (s *Shell) Advance(now time.Time) {
	if s.screen != Playing || !s.engine.IsActive() {
		return
	}
	interval := s.speeds[s.current].Interval
	for n := 0; n < maxCatchUp && now.Sub(s.lastTick) >= interval; n++ {
		s.lastTick = s.lastTick.Add(interval)
		r := s.engine.Tick()
		if r.Outcome.Ended() {
			s.recordGame(r)
			return
		}
	}
	if now.Sub(s.lastTick) >= interval {
		// Still behind after catching up: drop the backlog.
		s.lastTick = now
	}
}

func (s *Shell) recordGame(r game.Result) {
	s.lastEnd = r.Outcome
	speed := s.speeds[s.current]
	rec, err := s.states.EndGame(s.ctx, speed.Label, speed.Interval, r.Score, r.Length, s.engine.Ticks(), r.Outcome.String())
	if err != nil {
		log.Error().Err(err).Msg("record game")
		return
	}
	log.Info().
		Str("id", rec.ID).
		Int("score", rec.Score).
		Str("cause", rec.Cause).
		Dur("duration", rec.Duration()).
		Msg("game over")
}

func (s *Shell) updateScore(score int) {
	s.score = fmt.Sprintf("Score: %d", score)
}

func (s *Shell) showGameOver() {
	s.message = gameOverMessage
}

func (s *Shell) Screen() Screen {
	return s.screen
}

func (s *Shell) Speeds() []SpeedPreset {
	return s.speeds
}

// Focus is the highlighted menu entry.
func (s *Shell) Focus() int {
	return s.focus
}

// Current is the preset of the running or last game.
func (s *Shell) Current() SpeedPreset {
	return s.speeds[s.current]
}

func (s *Shell) ScoreText() string {
	return s.score
}

// Message is the line under the score, empty unless the game is over.
func (s *Shell) Message() string {
	return s.message
}

// LastOutcome is how the last finished game ended.
func (s *Shell) LastOutcome() game.Outcome {
	return s.lastEnd
}

func (s *Shell) HighScore() int {
	return s.states.GetHighScore()
}

// LastScore is the score of the previous game this session, if any.
func (s *Shell) LastScore() (int, bool) {
	return s.states.LastScore()
}

func (s *Shell) AverageScore() float64 {
	return s.states.GetAverageScore()
}

func (s *Shell) RecentGames() []store.GameRecord {
	return s.states.RecentGames()
}

func (s *Shell) Snapshot() game.Snapshot {
	return s.engine.Snapshot()
}
