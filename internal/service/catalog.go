package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/s/bitmentor/internal/metrics"
	"github.com/s/bitmentor/internal/models"
	"github.com/s/bitmentor/internal/storage"
)

// CourseDetail is the course page: ordered lessons plus the viewer's progress.
type CourseDetail struct {
	Course   models.Course
	Lessons  []models.Lesson
	Done     map[uint]bool
	Enrolled bool
	Progress int
}

func (s *Service) Courses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.store.Courses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *Service) Course(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.store.CourseByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "course %d", id)
	}
	return course, nil
}

// Lessons are sorted by module number, then lesson number.
func (s *Service) Lessons(ctx context.Context, courseID uint) ([]models.Lesson, error) {
	lessons, err := s.store.Lessons(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

func (s *Service) Enrollments(ctx context.Context, userID uint) ([]models.EnrollmentView, error) {
	rows, err := s.store.Enrollments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return rows, nil
}

// Enroll is idempotent: enrolling again keeps the existing row and its progress.
func (s *Service) Enroll(ctx context.Context, userID, courseID uint) error {
	if _, err := s.store.CourseByID(ctx, courseID); err != nil {
		return notFound(err, "course %d", courseID)
	}
	created, err := s.store.CreateEnrollment(ctx, userID, courseID)
	if err != nil {
		return fmt.Errorf("enroll: %w", err)
	}
	if created {
		metrics.Enrollments.Inc()
		s.log.Info().Uint("user_id", userID).Uint("course_id", courseID).Msg("user enrolled")
	}
	return nil
}

func (s *Service) CourseDetail(ctx context.Context, userID, courseID uint) (*CourseDetail, error) {
	course, err := s.store.CourseByID(ctx, courseID)
	if err != nil {
		return nil, notFound(err, "course %d", courseID)
	}
	lessons, err := s.store.Lessons(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	doneIDs, err := s.store.CompletedLessonIDs(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("completed lessons: %w", err)
	}

	detail := &CourseDetail{
		Course:  *course,
		Lessons: lessons,
		Done:    make(map[uint]bool, len(doneIDs)),
	}
	for _, id := range doneIDs {
		detail.Done[id] = true
	}

	enrollment, err := s.store.Enrollment(ctx, userID, courseID)
	switch {
	case err == nil:
		detail.Enrolled = true
		detail.Progress = enrollment.Progress
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("load enrollment: %w", err)
	}
	return detail, nil
}

// CompleteLesson marks the lesson as done and, for enrolled users, recomputes
// the course progress as the truncated percentage of finished lessons.
func (s *Service) CompleteLesson(ctx context.Context, userID, courseID, lessonID uint) error {
	lesson, err := s.store.LessonByID(ctx, lessonID)
	if err != nil {
		return notFound(err, "lesson %d", lessonID)
	}
	if lesson.CourseID != courseID {
		return fmt.Errorf("lesson %d in course %d: %w", lessonID, courseID, ErrNotFound)
	}

	return s.store.Transaction(ctx, func(tx *storage.Storage) error {
		if err := tx.MarkLessonDone(ctx, userID, lessonID); err != nil {
			return fmt.Errorf("mark lesson: %w", err)
		}

		_, err := tx.Enrollment(ctx, userID, courseID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// progress is only tracked for enrolled users
			return nil
		}
		if err != nil {
			return fmt.Errorf("load enrollment: %w", err)
		}

		total, err := tx.CountLessons(ctx, courseID)
		if err != nil {
			return fmt.Errorf("count lessons: %w", err)
		}
		done, err := tx.CompletedLessonIDs(ctx, userID, courseID)
		if err != nil {
			return fmt.Errorf("completed lessons: %w", err)
		}
		return tx.SetProgress(ctx, userID, courseID, percent(len(done), int(total)))
	})
}

// percent returns part/whole*100 truncated toward zero, or 0 when whole is 0.
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return part * 100 / whole
}
