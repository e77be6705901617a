package coach

import (
	"github.com/openscrim/coachboard-go/internal/session"
)

// Drill is one concrete practice scenario.
type Drill struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	SuccessCriteria string `json:"success_criteria"`
	Difficulty      int    `json:"difficulty"` // 1 easy to 3 hard
}

// DrillTable maps metric -> level -> drills for that bracket.
var DrillTable = map[string]map[Level][]Drill{
	session.MetricAccuracy: {
		Beginner: {
			{
				Name:            "Basic Target Practice",
				Description:     "Hit 10 stationary targets within 45 seconds",
				SuccessCriteria: "Minimum 70% accuracy",
				Difficulty:      1,
			},
			{
				Name:            "Precision Control",
				Description:     "Hit 5 large targets in sequence without missing",
				SuccessCriteria: "No misses allowed",
				Difficulty:      1,
			},
		},
		Intermediate: {
			{
				Name:            "Moving Target Track",
				Description:     "Hit 15 moving targets within 30 seconds",
				SuccessCriteria: "Minimum 75% accuracy",
				Difficulty:      2,
			},
			{
				Name:            "Precision Flicks",
				Description:     "Hit 10 targets appearing at random within 20 seconds",
				SuccessCriteria: "Minimum 80% accuracy",
				Difficulty:      2,
			},
		},
		Advanced: {
			{
				Name:            "Speed Precision Challenge",
				Description:     "Hit 20 small moving targets within 25 seconds",
				SuccessCriteria: "Minimum 85% accuracy",
				Difficulty:      3,
			},
			{
				Name:            "Advanced Flick Training",
				Description:     "Hit 15 targets visible for half a second each",
				SuccessCriteria: "Minimum 90% accuracy",
				Difficulty:      3,
			},
		},
	},
	session.MetricReactionTime: {
		Beginner: {
			{
				Name:            "Basic Reaction Training",
				Description:     "React to 10 visual cues within 5 seconds each",
				SuccessCriteria: "Average reaction time under 400ms",
				Difficulty:      1,
			},
			{
				Name:            "Simple Choice Reaction",
				Description:     "Respond to differently colored targets correctly",
				SuccessCriteria: "Average reaction time under 450ms",
				Difficulty:      1,
			},
		},
		Intermediate: {
			{
				Name:            "Multi-Target Reaction",
				Description:     "React to simultaneous targets in order",
				SuccessCriteria: "Average reaction time under 300ms",
				Difficulty:      2,
			},
			{
				Name:            "Dynamic Response Training",
				Description:     "React to shifting target patterns",
				SuccessCriteria: "Average reaction time under 250ms",
				Difficulty:      2,
			},
		},
		Advanced: {
			{
				Name:            "Complex Reaction Challenge",
				Description:     "React to mixed stimulus types with distinct responses",
				SuccessCriteria: "Average reaction time under 200ms",
				Difficulty:      3,
			},
			{
				Name:            "Speed Precision Matrix",
				Description:     "React to grid targets with precision requirements",
				SuccessCriteria: "Average reaction time under 180ms",
				Difficulty:      3,
			},
		},
	},
	session.MetricDecisionMaking: {
		Beginner: {
			{
				Name:            "Basic Strategy Choices",
				Description:     "Pick correct responses to simple game situations",
				SuccessCriteria: "7 of 10 correct decisions",
				Difficulty:      1,
			},
			{
				Name:            "Resource Management Basics",
				Description:     "Allocate a limited economy across simple scenarios",
				SuccessCriteria: "70% efficient resource use",
				Difficulty:      1,
			},
		},
		Intermediate: {
			{
				Name:            "Tactical Decision Making",
				Description:     "Make optimal calls in layered combat scenarios",
				SuccessCriteria: "80% optimal decision rate",
				Difficulty:      2,
			},
			{
				Name:            "Strategic Planning Exercise",
				Description:     "Plan and execute a multi-step strategy",
				SuccessCriteria: "Objective completed within the time limit",
				Difficulty:      2,
			},
		},
		Advanced: {
			{
				Name:            "Advanced Tactical Simulator",
				Description:     "Handle multi-variable combat situations",
				SuccessCriteria: "90% optimal decision rate",
				Difficulty:      3,
			},
			{
				Name:            "Leadership Decision Challenge",
				Description:     "Make team-wide strategic calls under pressure",
				SuccessCriteria: "Team reaches the objective",
				Difficulty:      3,
			},
		},
	},
	session.MetricTeamwork: {
		Beginner: {
			{
				Name:            "Basic Communication Drill",
				Description:     "Relay simple information to teammates accurately",
				SuccessCriteria: "80% callout accuracy",
				Difficulty:      1,
			},
			{
				Name:            "Team Role Practice",
				Description:     "Execute role-specific tasks in a team context",
				SuccessCriteria: "All role tasks completed",
				Difficulty:      1,
			},
		},
		Intermediate: {
			{
				Name:            "Coordination Exercise",
				Description:     "Execute synchronized team movements",
				SuccessCriteria: "85% synchronization accuracy",
				Difficulty:      2,
			},
			{
				Name:            "Strategic Communication",
				Description:     "Coordinate complex maneuvers over comms",
				SuccessCriteria: "90% of coordinated plays land",
				Difficulty:      2,
			},
		},
		Advanced: {
			{
				Name:            "Team Leadership Drill",
				Description:     "Lead the team through multi-objective scenarios",
				SuccessCriteria: "All objectives with 90% team efficiency",
				Difficulty:      3,
			},
			{
				Name:            "Advanced Team Tactics",
				Description:     "Execute set strategies in high-pressure rounds",
				SuccessCriteria: "Win with optimal resource usage",
				Difficulty:      3,
			},
		},
	},
}

// Assignment is a drill scheduled for a specific player, with attempt and
// payoff estimates scaled to their gap.
type Assignment struct {
	Drill
	AdjustedDifficulty   float64 `json:"adjusted_difficulty"`
	EstimatedImprovement float64 `json:"estimated_improvement"`
	RecommendedAttempts  int     `json:"recommended_attempts"`
}

// Milestone is one step on the path from current level to target.
type Milestone struct {
	Step  int     `json:"step"`
	Level float64 `json:"level"`
}

// FocusArea groups the planned work for one metric.
type FocusArea struct {
	Metric            string       `json:"metric"`
	Level             Level        `json:"level"`
	TargetImprovement float64      `json:"target_improvement"`
	Assignments       []Assignment `json:"assignments"`
	Milestones        []Milestone  `json:"milestones"`
}

// Plan expands recommendations into concrete drill assignments with a
// four-step milestone path per metric.
func Plan(recs []Recommendation) []FocusArea {
	var plan []FocusArea
	for _, rec := range recs {
		drills := DrillTable[rec.Metric][rec.Level]
		if len(drills) == 0 {
			continue
		}

		area := FocusArea{
			Metric:            rec.Metric,
			Level:             rec.Level,
			TargetImprovement: rec.Target - rec.Current,
			Milestones:        milestones(rec),
		}
		adj := difficultyAdjustment(rec.Current, rec.Target)
		for _, d := range drills {
			area.Assignments = append(area.Assignments, Assignment{
				Drill:                d,
				AdjustedDifficulty:   float64(d.Difficulty) + adj,
				EstimatedImprovement: estimateImpact(d),
				RecommendedAttempts:  recommendedAttempts(d),
			})
		}
		plan = append(plan, area)
	}
	return plan
}

// difficultyAdjustment nudges drill difficulty by a tenth of the skill
// gap, capped at half a step either way. Lower-is-better metrics produce
// negative gaps and ease the drills instead.
func difficultyAdjustment(current, target float64) float64 {
	adj := (target - current) / 10
	if adj > 0.5 {
		return 0.5
	}
	if adj < -0.5 {
		return -0.5
	}
	return adj
}

// estimateImpact predicts relative improvement per successful completion.
func estimateImpact(d Drill) float64 {
	return 0.05 * (1 + 0.2*float64(d.Difficulty))
}

// recommendedAttempts scales five base attempts by difficulty, never
// dropping below three.
func recommendedAttempts(d Drill) int {
	attempts := int(5 * (1 + 0.5*float64(d.Difficulty)))
	if attempts < 3 {
		return 3
	}
	return attempts
}

func milestones(rec Recommendation) []Milestone {
	const steps = 4
	total := rec.Target - rec.Current

	ms := make([]Milestone, 0, steps)
	for i := 1; i <= steps; i++ {
		ms = append(ms, Milestone{
			Step:  i,
			Level: rec.Current + total*float64(i)/steps,
		})
	}
	return ms
}
