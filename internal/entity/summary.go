package entity

import "time"

// MatchSummary is the archived record of a concluded match.
type MatchSummary struct {
	Winner      int       `json:"winner"`
	Reason      string    `json:"reason"`
	Actions     int       `json:"actions"`
	WallsPlaced int       `json:"walls_placed"`
	Duration    int       `json:"duration_seconds"`
	FinishedAt  time.Time `json:"finished_at"`
}
