// Package session models raw match telemetry and reduces it to the named
// metrics the leaderboard tracks.
package session

import (
	"time"
)

// Metric names produced from session telemetry.
const (
	MetricAccuracy       = "accuracy"        // hit percentage, 0-100
	MetricReactionTime   = "reaction_time"   // mean milliseconds, lower is better
	MetricDecisionMaking = "decision_making" // sound-call percentage, 0-100
	MetricTeamwork       = "teamwork"        // comms follow-through percentage, 0-100
	MetricScore          = "score"           // accumulated match points
	MetricRounds         = "rounds"          // rounds played
	MetricWins           = "wins"            // rounds won
)

// Counters accumulate across sessions. Every other session metric is a
// gauge that reports the most recent session's level.
var Counters = map[string]bool{
	MetricScore:  true,
	MetricRounds: true,
	MetricWins:   true,
}

// Session is one recorded play session for a single player.
type Session struct {
	ID       string    `json:"id"`
	PlayerID string    `json:"player_id"`
	PlayedAt time.Time `json:"played_at"`
	Map      string    `json:"map,omitempty"`
	Rounds   []Round   `json:"rounds"`
}

// Round holds the raw event counts of one round. Reaction samples are in
// milliseconds.
type Round struct {
	Shots          int       `json:"shots"`
	Hits           int       `json:"hits"`
	ReactionsMs    []float64 `json:"reactions_ms,omitempty"`
	Decisions      int       `json:"decisions"`
	GoodDecisions  int       `json:"good_decisions"`
	Callouts       int       `json:"callouts"`
	CalloutWindows int       `json:"callout_windows"`
	Points         float64   `json:"points"`
	Won            bool      `json:"won"`
}

// Validate checks that a session carries enough to be applied.
func (s Session) Validate() error {
	if s.PlayerID == "" {
		return ErrMissingPlayer
	}
	if len(s.Rounds) == 0 {
		return ErrNoRounds
	}
	return nil
}
