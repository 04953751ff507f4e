package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		goal  Goal
		hours int
		want  []string
	}{
		{
			name:  "zero hours is light",
			goal:  GoalPython,
			hours: 0,
			want:  []string{"Wed: 2 lessons in Python.", "Fri: Review lessons."},
		},
		{
			name:  "light upper bound",
			goal:  GoalJava,
			hours: 3,
			want:  []string{"Wed: 2 lessons in Java.", "Fri: Review lessons."},
		},
		{
			name:  "medium lower bound",
			goal:  GoalPython,
			hours: 4,
			want:  []string{"Mon: 2 lessons in Python.", "Wed: 2 more lessons.", "Fri: Small project."},
		},
		{
			name:  "medium upper bound",
			goal:  GoalJava,
			hours: 7,
			want:  []string{"Mon: 2 lessons in Java.", "Wed: 2 more lessons.", "Fri: Small project."},
		},
		{
			name:  "intensive",
			goal:  GoalPython,
			hours: 8,
			want:  []string{"Mon/Tue: 4 lessons in Python.", "Wed/Thu: Mini-project.", "Fri: Mock test."},
		},
		{
			name:  "unknown goal falls back to Tech",
			goal:  Goal("rust"),
			hours: 20,
			want:  []string{"Mon/Tue: 4 lessons in Tech.", "Wed/Thu: Mini-project.", "Fri: Mock test."},
		},
		{
			name:  "empty goal",
			goal:  "",
			hours: 1,
			want:  []string{"Wed: 2 lessons in Tech.", "Fri: Review lessons."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.goal, tt.hours))
		})
	}
}

func TestBuildDependsOnlyOnTier(t *testing.T) {
	tiers := [][]int{{0, 1, 2, 3}, {4, 5, 6, 7}, {8, 9, 40, 168}}

	for _, goal := range []Goal{GoalPython, GoalJava, "other"} {
		for _, tier := range tiers {
			first := Build(goal, tier[0])
			for _, h := range tier[1:] {
				assert.Equal(t, first, Build(goal, h), "goal=%s hours=%d", goal, h)
			}
		}
	}
}
