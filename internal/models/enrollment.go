package models

import "time"

// Enrollment links a user to a course. The composite key keeps one row per pair.
type Enrollment struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CourseID  uint `gorm:"primaryKey;autoIncrement:false" json:"course_id"`
	Progress  int  `gorm:"not null;default:0" json:"progress"`
	CreatedAt time.Time

	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}

// CompletedLesson marks a lesson as finished by a user.
type CompletedLesson struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	LessonID  uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}
