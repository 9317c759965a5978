package manager

import (
	"context"
	"fmt"
	"time"

	"snake-classic/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	maxHistory = 50
	// maxRecent is how many finished games are kept for the menu.
	maxRecent = 5
)

// StateManager tracks scores across games in one session and hands finished
// games to the configured store.
type StateManager struct {
	store        store.Store
	highScore    int
	scoreHistory []int
	recent       []store.GameRecord
	startTime    time.Time
	now          func() time.Time
}

func NewStateManager(ctx context.Context, st store.Store) *StateManager {
	sm := &StateManager{
		store:        st,
		scoreHistory: make([]int, 0),
		now:          time.Now,
	}

	if best, err := st.Best(ctx); err != nil {
		log.Warn().Err(err).Msg("load best score")
	} else {
		sm.highScore = best
	}
	if recent, err := st.Recent(ctx, maxRecent); err != nil {
		log.Warn().Err(err).Msg("load recent games")
	} else {
		sm.recent = recent
	}

	return sm
}

// BeginGame marks the start of a game for duration bookkeeping.
func (sm *StateManager) BeginGame() {
	sm.startTime = sm.now()
}

// EndGame records a finished game and returns the stored record.
func (sm *StateManager) EndGame(ctx context.Context, speed string, interval time.Duration, score, length, ticks int, cause string) (store.GameRecord, error) {
	end := sm.now()
	start := sm.startTime
	if start.IsZero() {
		start = end
	}
	rec := store.GameRecord{
		ID:         uuid.New().String(),
		Speed:      speed,
		IntervalMS: int(interval / time.Millisecond),
		Score:      score,
		Length:     length,
		Ticks:      ticks,
		Cause:      cause,
		StartTime:  start,
		EndTime:    end,
	}

	sm.UpdateScore(score)
	sm.AddToHistory(score)
	sm.addRecent(rec)
	sm.startTime = time.Time{}

	if err := sm.store.Save(ctx, rec); err != nil {
		return rec, fmt.Errorf("save game %s: %w", rec.ID, err)
	}
	return rec, nil
}

func (sm *StateManager) UpdateScore(score int) {
	if score > sm.highScore {
		sm.highScore = score
	}
}

func (sm *StateManager) AddToHistory(score int) {
	if len(sm.scoreHistory) >= maxHistory {
		sm.scoreHistory = sm.scoreHistory[1:]
	}
	sm.scoreHistory = append(sm.scoreHistory, score)
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}

// GetAverageScore averages the session history, 0 when empty.
func (sm *StateManager) GetAverageScore() float64 {
	if len(sm.scoreHistory) == 0 {
		return 0
	}
	sum := 0
	for _, s := range sm.scoreHistory {
		sum += s
	}
	return float64(sum) / float64(len(sm.scoreHistory))
}

// LastScore is the score of the last game this session.
func (sm *StateManager) LastScore() (int, bool) {
	if len(sm.scoreHistory) == 0 {
		return 0, false
	}
	return sm.scoreHistory[len(sm.scoreHistory)-1], true
}

func (sm *StateManager) addRecent(rec store.GameRecord) {
	sm.recent = append([]store.GameRecord{rec}, sm.recent...)
	if len(sm.recent) > maxRecent {
		sm.recent = sm.recent[:maxRecent]
	}
}

// RecentGames returns the last finished games, newest first, including
// those loaded from the store.
func (sm *StateManager) RecentGames() []store.GameRecord {
	out := make([]store.GameRecord, len(sm.recent))
	copy(out, sm.recent)
	return out
}
