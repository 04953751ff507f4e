package models

import "time"

// User is a registered learner. PasswordHash holds a bcrypt hash; users created
// through Google sign-in get an unusable random hash.
type User struct {
	ID              uint   `gorm:"primaryKey"`
	GoogleID        string `gorm:"index;size:255"`
	Email           string `gorm:"uniqueIndex;size:255"`
	Name            string `gorm:"size:100"`
	PasswordHash    []byte `json:"-"`
	Bio             string
	ProfileImageURL string
	CreatedAt       time.Time
}
