package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/s/bitmentor/internal/metrics"
	"github.com/s/bitmentor/internal/models"
)

type ThreadInput struct {
	Title   string `form:"title" validate:"required,max=200"`
	Content string `form:"content" validate:"required,max=10000"`
}

type ReplyInput struct {
	Content string `form:"content" validate:"required,max=10000"`
}

func (s *Service) CreateThread(ctx context.Context, userID uint, in ThreadInput) (uint, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if err := s.check(in); err != nil {
		return 0, err
	}

	thread := &models.Thread{
		Title:     in.Title,
		Content:   in.Content,
		UserID:    userID,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateThread(ctx, thread); err != nil {
		return 0, fmt.Errorf("create thread: %w", err)
	}
	metrics.ForumPosts.WithLabelValues("thread").Inc()
	return thread.ID, nil
}

// Threads are returned newest first.
func (s *Service) Threads(ctx context.Context) ([]models.ThreadView, error) {
	threads, err := s.store.Threads(ctx)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	return threads, nil
}

func (s *Service) Thread(ctx context.Context, id uint) (*models.ThreadView, error) {
	thread, err := s.store.Thread(ctx, id)
	if err != nil {
		return nil, notFound(err, "thread %d", id)
	}
	return thread, nil
}

// Posts are returned oldest first.
func (s *Service) Posts(ctx context.Context, threadID uint) ([]models.PostView, error) {
	posts, err := s.store.Posts(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *Service) Reply(ctx context.Context, threadID, userID uint, in ReplyInput) (uint, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := s.check(in); err != nil {
		return 0, err
	}

	exists, err := s.store.ThreadExists(ctx, threadID)
	if err != nil {
		return 0, fmt.Errorf("load thread: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("thread %d: %w", threadID, ErrNotFound)
	}

	post := &models.Post{
		Content:   in.Content,
		UserID:    userID,
		ThreadID:  threadID,
		CreatedAt: s.now(),
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return 0, fmt.Errorf("create post: %w", err)
	}
	metrics.ForumPosts.WithLabelValues("reply").Inc()
	return post.ID, nil
}
