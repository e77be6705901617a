// Package coach classifies board stats into skill levels and produces
// template-based training recommendations from them.
package coach

import (
	"sort"

	"github.com/openscrim/coachboard-go/internal/board"
	"github.com/openscrim/coachboard-go/internal/session"
)

// Level classifies a player's standing on one metric.
type Level string

const (
	Beginner     Level = "beginner"
	Intermediate Level = "intermediate"
	Advanced     Level = "advanced"
)

// Priorities assigned to recommendations.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// Thresholds holds the level boundaries for one metric. With LowerBetter
// set the comparisons flip: larger values mean a weaker player.
type Thresholds struct {
	Beginner     float64
	Intermediate float64
	LowerBetter  bool
}

// MetricThresholds maps metric name -> level boundaries. Reaction time is
// measured in milliseconds, the percentage metrics on a 0-100 scale.
var MetricThresholds = map[string]Thresholds{
	session.MetricAccuracy:       {Beginner: 60, Intermediate: 80},
	session.MetricReactionTime:   {Beginner: 300, Intermediate: 200, LowerBetter: true},
	session.MetricDecisionMaking: {Beginner: 65, Intermediate: 85},
	session.MetricTeamwork:       {Beginner: 70, Intermediate: 85},
}

// DefaultThresholds applies to metrics without an entry in MetricThresholds.
var DefaultThresholds = Thresholds{Beginner: 50, Intermediate: 75}

// LevelFor classifies a metric value into a skill level.
func LevelFor(metric string, value float64) Level {
	t, ok := MetricThresholds[metric]
	if !ok {
		t = DefaultThresholds
	}

	if t.LowerBetter {
		switch {
		case value > t.Beginner:
			return Beginner
		case value > t.Intermediate:
			return Intermediate
		}
		return Advanced
	}

	switch {
	case value < t.Beginner:
		return Beginner
	case value < t.Intermediate:
		return Intermediate
	}
	return Advanced
}

// TargetFor returns the boundary a player should work toward: the next
// level's threshold. At advanced the current value comes back unchanged.
func TargetFor(metric string, value float64) float64 {
	t, ok := MetricThresholds[metric]
	if !ok {
		t = DefaultThresholds
	}

	switch LevelFor(metric, value) {
	case Beginner:
		return t.Beginner
	case Intermediate:
		return t.Intermediate
	}
	return value
}

// Strategy describes how to train one metric at one level.
type Strategy struct {
	Practices    []string
	DurationDays int
	Intensity    string
}

// StrategyTable maps metric -> level -> training strategy. Only metrics
// listed here are coachable; counters like score never appear.
var StrategyTable = map[string]map[Level]Strategy{
	session.MetricAccuracy: {
		Beginner: {
			Practices: []string{
				"Run basic aim drills for 15 minutes daily",
				"Work stationary targets before moving ones",
				"Use warmup maps with oversized targets",
			},
			DurationDays: 14,
			Intensity:    "low",
		},
		Intermediate: {
			Practices: []string{
				"Run precision aim drills for 20 minutes daily",
				"Add moving target tracking to each warmup",
				"Rotate aim trainer scenarios to avoid plateaus",
			},
			DurationDays: 21,
			Intensity:    "medium",
		},
		Advanced: {
			Practices: []string{
				"Run advanced aim routines for 30 minutes daily",
				"Drill flicks and micro-adjustments separately",
				"Scrim under pressure to lock technique in",
			},
			DurationDays: 28,
			Intensity:    "high",
		},
	},
	session.MetricReactionTime: {
		Beginner: {
			Practices: []string{
				"Run simple reaction drills for 10 minutes daily",
				"Use single-stimulus trainers first",
				"Keep a consistent warmup timing pattern",
			},
			DurationDays: 14,
			Intensity:    "low",
		},
		Intermediate: {
			Practices: []string{
				"Run varied reaction drills for 20 minutes daily",
				"Mix visual and audio stimulus types",
				"Track split times between sessions",
			},
			DurationDays: 21,
			Intensity:    "medium",
		},
		Advanced: {
			Practices: []string{
				"Run complex reaction scenarios for 25 minutes daily",
				"Drill multi-target acquisition",
				"Combine reaction work with decision calls",
			},
			DurationDays: 28,
			Intensity:    "high",
		},
	},
	session.MetricDecisionMaking: {
		Beginner: {
			Practices: []string{
				"Review your own replays for 15 minutes daily",
				"Drill basic engage-or-rotate calls",
				"Learn the standard decision trees for your role",
			},
			DurationDays: 14,
			Intensity:    "low",
		},
		Intermediate: {
			Practices: []string{
				"Study pro replays for 20 minutes daily",
				"Run situational awareness exercises",
				"Join structured scrims with a fixed role",
			},
			DurationDays: 21,
			Intensity:    "medium",
		},
		Advanced: {
			Practices: []string{
				"Study advanced tactics for 30 minutes daily",
				"Drill layered mid-round decision scenarios",
				"Lead the team's strategy review sessions",
			},
			DurationDays: 28,
			Intensity:    "high",
		},
	},
	session.MetricTeamwork: {
		Beginner: {
			Practices: []string{
				"Drill basic callout vocabulary",
				"Stick to your role's responsibilities",
				"Play casual team queues to build habits",
			},
			DurationDays: 14,
			Intensity:    "low",
		},
		Intermediate: {
			Practices: []string{
				"Drill structured comms protocols",
				"Run team coordination exercises",
				"Attend organized team practice",
			},
			DurationDays: 21,
			Intensity:    "medium",
		},
		Advanced: {
			Practices: []string{
				"Lead team coordination drills",
				"Design and call team strategies",
				"Organize and review scrim blocks",
			},
			DurationDays: 28,
			Intensity:    "high",
		},
	},
}

// Recommendation is one metric's training advice for one player.
type Recommendation struct {
	Metric       string   `json:"metric"`
	Current      float64  `json:"current"`
	Target       float64  `json:"target"`
	Level        Level    `json:"level"`
	Priority     string   `json:"priority"`
	Intensity    string   `json:"intensity"`
	DurationDays int      `json:"duration_days"`
	Practices    []string `json:"practices"`
}

// Recommend builds one recommendation per coachable metric the player has
// recorded and not yet mastered. Beginners get high priority. Results come
// back high priority first, widest gap first within a priority.
func Recommend(stats board.Metrics) []Recommendation {
	var recs []Recommendation
	for metric, levels := range StrategyTable {
		value, ok := stats[metric]
		if !ok {
			continue
		}
		level := LevelFor(metric, value)
		if level == Advanced {
			continue
		}

		strategy := levels[level]
		priority := PriorityMedium
		if level == Beginner {
			priority = PriorityHigh
		}
		recs = append(recs, Recommendation{
			Metric:       metric,
			Current:      value,
			Target:       TargetFor(metric, value),
			Level:        level,
			Priority:     priority,
			Intensity:    strategy.Intensity,
			DurationDays: strategy.DurationDays,
			Practices:    strategy.Practices,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority == PriorityHigh
		}
		gi, gj := gap(recs[i]), gap(recs[j])
		if gi != gj {
			return gi > gj
		}
		return recs[i].Metric < recs[j].Metric
	})
	return recs
}

func gap(r Recommendation) float64 {
	g := r.Target - r.Current
	if g < 0 {
		return -g
	}
	return g
}

// PlayerFocus pairs a ranked player with their most pressing
// recommendation. Focus is nil when nothing needs work.
type PlayerFocus struct {
	Rank     int             `json:"rank"`
	PlayerID string          `json:"player_id"`
	Value    float64         `json:"value"`
	Focus    *Recommendation `json:"focus,omitempty"`
}

// SquadReport ranks the board on one metric and attaches each ranked
// player's top recommendation.
func SquadReport(b *board.Leaderboard, metric string, topN int) []PlayerFocus {
	entries := b.GetTopPlayers(metric, topN)

	report := make([]PlayerFocus, 0, len(entries))
	for i, e := range entries {
		pf := PlayerFocus{
			Rank:     i + 1,
			PlayerID: e.PlayerID,
			Value:    e.Metrics[metric],
		}
		if recs := Recommend(e.Metrics); len(recs) > 0 {
			pf.Focus = &recs[0]
		}
		report = append(report, pf)
	}
	return report
}
