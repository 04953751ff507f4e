package models

import (
	"time"

	"gorm.io/datatypes"
)

type Question struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	CourseID uint   `gorm:"index" json:"course_id"`
	Text     string `json:"text"`

	Answers []Answer `json:"answers" gorm:"foreignKey:QuestionID"`
}

type Answer struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"index" json:"question_id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"-"`
}

// TestAttempt keeps the history of scored submissions.
type TestAttempt struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    uint           `gorm:"index"`
	CourseID  uint           `gorm:"index"`
	Score     int            `json:"score"`
	Correct   int            `json:"correct"`
	Total     int            `json:"total"`
	AnswerIDs datatypes.JSON `json:"answer_ids"`
	CreatedAt time.Time      `json:"created_at"`
}
