// Package store keeps finished game records across runs.
package store

import (
	"context"
	"errors"
	"sort"
	"time"
)

// ErrClosed is returned by a store used after Close.
var ErrClosed = errors.New("store closed")

// GameRecord is one finished game.
type GameRecord struct {
	ID         string    `json:"id"`
	Speed      string    `json:"speed"`
	IntervalMS int       `json:"intervalMs"`
	Score      int       `json:"score"`
	Length     int       `json:"length"`
	Ticks      int       `json:"ticks"`
	Cause      string    `json:"cause"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
}

// Duration is the wall-clock length of the game.
func (r GameRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Store persists game records.
type Store interface {
	// Save appends a finished game.
	Save(ctx context.Context, rec GameRecord) error
	// Best returns the highest score ever saved, 0 when empty.
	Best(ctx context.Context) (int, error)
	// Recent returns up to n records, newest first.
	Recent(ctx context.Context, n int) ([]GameRecord, error)
	Close() error
}

func bestOf(records []GameRecord) int {
	best := 0
	for _, r := range records {
		if r.Score > best {
			best = r.Score
		}
	}
	return best
}

func newestFirst(records []GameRecord, n int) []GameRecord {
	out := make([]GameRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EndTime.After(out[j].EndTime)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
