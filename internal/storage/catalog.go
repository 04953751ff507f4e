package storage

import (
	"context"

	"github.com/s/bitmentor/internal/models"
	"gorm.io/gorm/clause"
)

func (s *Storage) Courses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := s.db.WithContext(ctx).Order("id ASC").Find(&courses).Error
	return courses, err
}

func (s *Storage) CourseByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := s.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// Lessons returns the course's lessons ordered by module, then lesson number.
func (s *Storage) Lessons(ctx context.Context, courseID uint) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := s.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("module_num ASC").Order("lesson_num ASC").
		Find(&lessons).Error
	return lessons, err
}

func (s *Storage) LessonByID(ctx context.Context, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := s.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// Enrollments lists the user's courses with progress.
func (s *Storage) Enrollments(ctx context.Context, userID uint) ([]models.EnrollmentView, error) {
	var rows []models.EnrollmentView
	err := s.db.WithContext(ctx).
		Table("enrollments").
		Select("courses.id AS course_id, courses.name, courses.description, courses.badge, enrollments.progress").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.user_id = ?", userID).
		Order("courses.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (s *Storage) Enrollment(ctx context.Context, userID, courseID uint) (*models.Enrollment, error) {
	var e models.Enrollment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEnrollment inserts the pair with zero progress unless it already exists.
// It reports whether a row was inserted.
func (s *Storage) CreateEnrollment(ctx context.Context, userID, courseID uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&models.Enrollment{UserID: userID, CourseID: courseID})
	return res.RowsAffected > 0, res.Error
}

func (s *Storage) SetProgress(ctx context.Context, userID, courseID uint, progress int) error {
	return s.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update("progress", progress).Error
}

// MarkLessonDone records the completion; a repeated mark is ignored.
func (s *Storage) MarkLessonDone(ctx context.Context, userID, lessonID uint) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CompletedLesson{UserID: userID, LessonID: lessonID}).Error
}

// CompletedLessonIDs returns the ids of the course's lessons finished by the user.
func (s *Storage) CompletedLessonIDs(ctx context.Context, userID, courseID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.CompletedLesson{}).
		Joins("JOIN lessons ON lessons.id = completed_lessons.lesson_id").
		Where("completed_lessons.user_id = ? AND lessons.course_id = ?", userID, courseID).
		Pluck("completed_lessons.lesson_id", &ids).Error
	return ids, err
}

func (s *Storage) CountLessons(ctx context.Context, courseID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&n).Error
	return n, err
}
