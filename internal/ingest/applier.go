// Package ingest feeds recorded sessions into a leaderboard, one metric
// update at a time.
package ingest

import (
	"fmt"

	"github.com/openscrim/coachboard-go/internal/board"
	"github.com/openscrim/coachboard-go/internal/session"
)

// ApplyResult reports what one session did to the board.
type ApplyResult struct {
	PlayerID string
	Created  bool // session registered a new player
	Updated  int  // metric updates written for a known player
}

// Applier writes computed session metrics into a board. Gauges move to the
// session's level; counters accumulate. A first-seen player is registered
// with the session's full metric set.
//
// Apply reads current stats and then writes deltas, so sessions for the
// same player must come from one ordered source; Ingestor.Run provides
// that by sharding on player id. Distinct players apply concurrently
// without interference.
type Applier struct {
	Board *board.Leaderboard
}

// Apply folds one session into the board.
func (a *Applier) Apply(s session.Session) (ApplyResult, error) {
	if err := s.Validate(); err != nil {
		return ApplyResult{}, fmt.Errorf("ingest: apply session %s: %w", s.ID, err)
	}

	computed := session.Compute(s)
	res := ApplyResult{PlayerID: s.PlayerID}

	current, known := a.Board.GetPlayerStats(s.PlayerID)
	if !known {
		a.Board.AddPlayer(s.PlayerID, computed)
		res.Created = true
		return res, nil
	}

	for metric, value := range computed {
		delta := value
		if !session.Counters[metric] {
			// Gauge: write the difference so the board lands on the
			// session's level. Declines produce negative deltas.
			delta = value - current[metric]
		}
		a.Board.UpdateScore(s.PlayerID, metric, delta)
		res.Updated++
	}
	return res, nil
}
