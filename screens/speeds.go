package screens

import (
	"errors"
	"fmt"
	"time"
)

// SpeedPreset names a tick interval offered on the start menu.
type SpeedPreset struct {
	Label    string
	Interval time.Duration
}

// DefaultSpeeds are listed slowest first.
var DefaultSpeeds = []SpeedPreset{
	{Label: "Very slow", Interval: 200 * time.Millisecond},
	{Label: "Slow", Interval: 150 * time.Millisecond},
	{Label: "Medium", Interval: 100 * time.Millisecond},
	{Label: "Fast", Interval: 50 * time.Millisecond},
	{Label: "Very fast", Interval: 25 * time.Millisecond},
	{Label: "Godlike", Interval: 15 * time.Millisecond},
	{Label: "Insane", Interval: 10 * time.Millisecond},
}

// ValidateSpeeds rejects an empty list or a non-positive interval.
func ValidateSpeeds(speeds []SpeedPreset) error {
	if len(speeds) == 0 {
		return errors.New("no speed presets")
	}
	for _, s := range speeds {
		if s.Interval <= 0 {
			return fmt.Errorf("speed %q: interval must be positive, got %s", s.Label, s.Interval)
		}
	}
	return nil
}
