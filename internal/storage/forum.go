package storage

import (
	"context"

	"github.com/s/bitmentor/internal/models"
)

const threadColumns = "threads.id, threads.title, threads.content, threads.user_id, threads.created_at, users.name AS author_name"

func (s *Storage) CreateThread(ctx context.Context, t *models.Thread) error {
	return s.db.WithContext(ctx).Omit("User").Create(t).Error
}

// Threads lists all threads, newest first.
func (s *Storage) Threads(ctx context.Context) ([]models.ThreadView, error) {
	var rows []models.ThreadView
	err := s.db.WithContext(ctx).
		Table("threads").
		Select(threadColumns).
		Joins("JOIN users ON users.id = threads.user_id").
		Order("threads.created_at DESC").Order("threads.id DESC").
		Scan(&rows).Error
	return rows, err
}

// Thread returns gorm.ErrRecordNotFound when no thread has the id.
func (s *Storage) Thread(ctx context.Context, id uint) (*models.ThreadView, error) {
	var row models.ThreadView
	err := s.db.WithContext(ctx).
		Table("threads").
		Select(threadColumns).
		Joins("JOIN users ON users.id = threads.user_id").
		Where("threads.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Storage) ThreadExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Thread{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (s *Storage) CreatePost(ctx context.Context, p *models.Post) error {
	return s.db.WithContext(ctx).Omit("User").Create(p).Error
}

// Posts lists the thread's replies, oldest first.
func (s *Storage) Posts(ctx context.Context, threadID uint) ([]models.PostView, error) {
	var rows []models.PostView
	err := s.db.WithContext(ctx).
		Table("posts").
		Select("posts.id, posts.thread_id, posts.content, posts.user_id, posts.created_at, users.name AS author_name").
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.thread_id = ?", threadID).
		Order("posts.created_at ASC").Order("posts.id ASC").
		Scan(&rows).Error
	return rows, err
}
