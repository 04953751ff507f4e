package storage

import (
	"context"

	"github.com/s/bitmentor/internal/models"
	"gorm.io/gorm"
)

// Questions returns the course's questions with their answers, both in id order.
func (s *Storage) Questions(ctx context.Context, courseID uint) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id ASC")
		}).
		Where("course_id = ?", courseID).
		Order("id ASC").
		Find(&questions).Error
	return questions, err
}

// QuestionCounts maps course id to its number of questions.
func (s *Storage) QuestionCounts(ctx context.Context) (map[uint]int, error) {
	var rows []struct {
		CourseID uint
		N        int
	}
	err := s.db.WithContext(ctx).Model(&models.Question{}).
		Select("course_id, COUNT(*) AS n").
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.CourseID] = r.N
	}
	return counts, nil
}

func (s *Storage) CreateAttempt(ctx context.Context, attempt *models.TestAttempt) error {
	return s.db.WithContext(ctx).Create(attempt).Error
}

// BestScores maps course id to the user's highest recorded score.
func (s *Storage) BestScores(ctx context.Context, userID uint) (map[uint]int, error) {
	var rows []struct {
		CourseID uint
		Best     int
	}
	err := s.db.WithContext(ctx).Model(&models.TestAttempt{}).
		Select("course_id, MAX(score) AS best").
		Where("user_id = ?", userID).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	best := make(map[uint]int, len(rows))
	for _, r := range rows {
		best[r.CourseID] = r.Best
	}
	return best, nil
}
