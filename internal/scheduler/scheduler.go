// Package scheduler turns a learning goal and a weekly time budget into a
// fixed list of study recommendations.
package scheduler

import "fmt"

// Goal is the technology the learner wants to focus on.
type Goal string

const (
	GoalPython Goal = "python"
	GoalJava   Goal = "java"
)

// Upper bounds (inclusive) of the light and medium tiers, in hours per week.
const (
	LightMaxHours  = 3
	MediumMaxHours = 7
)

// DisplayName returns the name used in recommendations; unknown goals fall back to "Tech".
func (g Goal) DisplayName() string {
	switch g {
	case GoalPython:
		return "Python"
	case GoalJava:
		return "Java"
	default:
		return "Tech"
	}
}

// Build returns the ordered, day-labelled plan for the goal. The result depends
// only on the goal and on which tier hoursPerWeek falls into.
func Build(goal Goal, hoursPerWeek int) []string {
	name := goal.DisplayName()

	switch {
	case hoursPerWeek <= LightMaxHours:
		return []string{
			fmt.Sprintf("Wed: 2 lessons in %s.", name),
			"Fri: Review lessons.",
		}
	case hoursPerWeek <= MediumMaxHours:
		return []string{
			fmt.Sprintf("Mon: 2 lessons in %s.", name),
			"Wed: 2 more lessons.",
			"Fri: Small project.",
		}
	default:
		return []string{
			fmt.Sprintf("Mon/Tue: 4 lessons in %s.", name),
			"Wed/Thu: Mini-project.",
			"Fri: Mock test.",
		}
	}
}
