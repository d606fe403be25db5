// Package model defines shared data structures.
package model

import "time"

// ReaderConfig defines playback settings.
type ReaderConfig struct {
	WPM         int
	ORPColor    string
	SpeedStep   int
	Jump        int
	Orientation time.Duration
}

// HistoryConfig defines filters for the reading history.
type HistoryConfig struct {
	Source string
	Last   int
}

// ReadingSession captures one interactive reading run.
type ReadingSession struct {
	ID         int64
	StartedAt  time.Time
	EndedAt    time.Time
	Source     string
	TotalWords int
	WordsRead  int
	FinalWPM   int
	Finished   bool
}

// Duration returns the wall-clock length of the session.
func (s ReadingSession) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// HistorySummary aggregates reading sessions.
type HistorySummary struct {
	Sessions   int
	Finished   int
	WordsRead  int
	DurationMs int64
}
