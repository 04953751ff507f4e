package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"gorm.io/datatypes"

	"github.com/s/bitmentor/internal/metrics"
	"github.com/s/bitmentor/internal/models"
)

// TestResult is the outcome of a scored submission.
type TestResult struct {
	CourseID uint
	Score    int
	Correct  int
	Total    int
}

// TestSummary is one row of the mock-test listing.
type TestSummary struct {
	Course        models.Course
	QuestionCount int
	BestScore     int
	Attempted     bool
}

// Questions returns the course test with answers; correctness flags are not
// exposed to templates (see models.Answer).
func (s *Service) Questions(ctx context.Context, courseID uint) ([]models.Question, error) {
	if _, err := s.store.CourseByID(ctx, courseID); err != nil {
		return nil, notFound(err, "course %d", courseID)
	}
	questions, err := s.store.Questions(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// ScoreSubmission grades the selected answers of a course test.
//
// The score is the number of correct selected answers divided by the number of
// questions in the course (not the number answered), times 100, truncated.
// Every selected answer must belong to one of the course's questions and each
// question takes at most one answer. A course without questions scores 0.
func (s *Service) ScoreSubmission(ctx context.Context, userID, courseID uint, answerIDs []uint) (*TestResult, error) {
	if len(answerIDs) == 0 {
		return nil, ErrNoAnswersSubmitted
	}

	questions, err := s.Questions(ctx, courseID)
	if err != nil {
		return nil, err
	}

	result := &TestResult{CourseID: courseID, Total: len(questions)}
	selected := dedupe(answerIDs)

	if result.Total > 0 {
		type ref struct {
			questionID uint
			correct    bool
		}
		index := make(map[uint]ref)
		for _, q := range questions {
			for _, a := range q.Answers {
				index[a.ID] = ref{questionID: q.ID, correct: a.IsCorrect}
			}
		}

		answered := make(map[uint]bool, len(selected))
		for _, id := range selected {
			r, ok := index[id]
			if !ok {
				return nil, fmt.Errorf("answer %d: %w", id, ErrForeignAnswer)
			}
			if answered[r.questionID] {
				return nil, fmt.Errorf("question %d: %w", r.questionID, ErrMultipleAnswers)
			}
			answered[r.questionID] = true
			if r.correct {
				result.Correct++
			}
		}
		result.Score = percent(result.Correct, result.Total)
	}

	ids, err := json.Marshal(selected)
	if err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}
	attempt := &models.TestAttempt{
		UserID:    userID,
		CourseID:  courseID,
		Score:     result.Score,
		Correct:   result.Correct,
		Total:     result.Total,
		AnswerIDs: datatypes.JSON(ids),
		CreatedAt: s.now(),
	}
	if err := s.store.CreateAttempt(ctx, attempt); err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	metrics.TestScores.WithLabelValues(strconv.FormatUint(uint64(courseID), 10)).Observe(float64(result.Score))
	s.log.Info().
		Uint("user_id", userID).
		Uint("course_id", courseID).
		Int("score", result.Score).
		Msg("test scored")
	return result, nil
}

// Tests lists every course with its question count and the user's best score.
func (s *Service) Tests(ctx context.Context, userID uint) ([]TestSummary, error) {
	courses, err := s.store.Courses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	counts, err := s.store.QuestionCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("question counts: %w", err)
	}
	best, err := s.store.BestScores(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("best scores: %w", err)
	}

	out := make([]TestSummary, 0, len(courses))
	for _, c := range courses {
		score, attempted := best[c.ID]
		out = append(out, TestSummary{
			Course:        c,
			QuestionCount: counts[c.ID],
			BestScore:     score,
			Attempted:     attempted,
		})
	}
	return out, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
