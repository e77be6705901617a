package session

import (
	"github.com/openscrim/coachboard-go/internal/board"
)

// Compute reduces a session's rounds to the metric set it supports.
// Percentage gauges are only emitted when the underlying events occurred:
// a session with no shots fired says nothing about accuracy rather than
// reporting zero. Counters are always emitted.
func Compute(s Session) board.Metrics {
	var (
		shots, hits     int
		decisions, good int
		callouts, asks  int
		reactionSum     float64
		reactionN       int
		points          float64
		wins            int
	)

	for _, r := range s.Rounds {
		shots += r.Shots
		hits += r.Hits
		decisions += r.Decisions
		good += r.GoodDecisions
		callouts += r.Callouts
		asks += r.CalloutWindows
		for _, ms := range r.ReactionsMs {
			reactionSum += ms
			reactionN++
		}
		points += r.Points
		if r.Won {
			wins++
		}
	}

	m := make(board.Metrics)
	if shots > 0 {
		m[MetricAccuracy] = 100 * float64(hits) / float64(shots)
	}
	if reactionN > 0 {
		m[MetricReactionTime] = reactionSum / float64(reactionN)
	}
	if decisions > 0 {
		m[MetricDecisionMaking] = 100 * float64(good) / float64(decisions)
	}
	if asks > 0 {
		m[MetricTeamwork] = 100 * float64(callouts) / float64(asks)
	}
	m[MetricScore] = points
	m[MetricRounds] = float64(len(s.Rounds))
	m[MetricWins] = float64(wins)
	return m
}
