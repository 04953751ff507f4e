package database

import (
	"github.com/s/bitmentor/internal/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.CompletedLesson{},
		&models.Question{},
		&models.Answer{},
		&models.TestAttempt{},
		&models.Thread{},
		&models.Post{},
	)
}
