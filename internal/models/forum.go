package models

import "time"

// Thread - forum topic, immutable once posted
type Thread struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    uint      `gorm:"index" json:"user_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

// Post - reply inside a thread
type Post struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Content   string    `json:"content"`
	UserID    uint      `gorm:"index" json:"user_id"`
	ThreadID  uint      `gorm:"index" json:"thread_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}
