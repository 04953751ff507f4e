package storage

import (
	"context"
	"errors"

	"github.com/s/bitmentor/internal/models"
	"gorm.io/gorm"
)

func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Storage) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UserByEmail matches the address exactly.
func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether a user already registered with email.
func (s *Storage) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

// UpdateProfile changes name and bio only.
func (s *Storage) UpdateProfile(ctx context.Context, id uint, name, bio string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "bio": bio})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SaveGoogleUser finds a user by Google ID, then by email; if found, it refreshes
// the name and picture, otherwise it creates the user.
func (s *Storage) SaveGoogleUser(ctx context.Context, info models.User) (*models.User, error) {
	db := s.db.WithContext(ctx)
	var existing models.User

	result := db.Where("google_id = ?", info.GoogleID).First(&existing)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		// A password account with the same email gets linked to the Google ID.
		result = db.Where("email = ?", info.Email).First(&existing)
	}

	switch {
	case result.Error == nil:
		updates := map[string]interface{}{
			"google_id":         info.GoogleID,
			"profile_image_url": info.ProfileImageURL,
		}
		if existing.Name == "" {
			updates["name"] = info.Name
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &existing, nil

	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		if err := db.Create(&info).Error; err != nil {
			return nil, err
		}
		return &info, nil

	default:
		return nil, result.Error
	}
}

// UserStats counts the user's enrollments, threads, posts and test attempts.
func (s *Storage) UserStats(ctx context.Context, userID uint) (models.UserStats, error) {
	db := s.db.WithContext(ctx)
	var stats models.UserStats

	counters := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.Enrollment{}, &stats.EnrolledCourses},
		{&models.Thread{}, &stats.ForumThreads},
		{&models.Post{}, &stats.ForumPosts},
		{&models.TestAttempt{}, &stats.TestAttempts},
	}
	for _, c := range counters {
		if err := db.Model(c.model).Where("user_id = ?", userID).Count(c.dst).Error; err != nil {
			return stats, err
		}
	}
	return stats, nil
}
