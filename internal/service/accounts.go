package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/s/bitmentor/internal/metrics"
	"github.com/s/bitmentor/internal/models"
)

type RegisterInput struct {
	Name     string `form:"fullname" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email,max=255"`
	Password string `form:"password" validate:"required,min=6,max=72"`
}

type ProfileInput struct {
	Name string `form:"fullname" validate:"required,max=100"`
	Bio  string `form:"bio" validate:"max=1000"`
}

// GoogleProfile is the subset of the Google userinfo response we keep.
type GoogleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Profile is a user together with their activity counters.
type Profile struct {
	User  models.User
	Stats models.UserStats
}

// Register creates an account. The email must not be in use.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := s.check(in); err != nil {
		return nil, err
	}

	taken, err := s.store.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	metrics.UsersRegistered.Inc()
	s.log.Info().Uint("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Authenticate returns ErrInvalidCredentials for an unknown email and for a
// wrong password alike.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.UserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// SignInWithGoogle finds or creates the account behind a Google profile.
func (s *Service) SignInWithGoogle(ctx context.Context, p GoogleProfile) (*models.User, error) {
	if p.ID == "" || p.Email == "" {
		return nil, ErrInvalidCredentials
	}

	// accounts created here can only sign in through Google
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.SaveGoogleUser(ctx, models.User{
		GoogleID:        p.ID,
		Email:           p.Email,
		Name:            p.Name,
		ProfileImageURL: p.Picture,
		PasswordHash:    hash,
		CreatedAt:       s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("save google user: %w", err)
	}
	return user, nil
}

func (s *Service) Profile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user %d", userID)
	}
	stats, err := s.store.UserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return &Profile{User: *user, Stats: stats}, nil
}

// UpdateProfile changes the user's name and bio and returns the updated user.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Bio = strings.TrimSpace(in.Bio)
	if err := s.check(in); err != nil {
		return nil, err
	}

	if err := s.store.UpdateProfile(ctx, userID, in.Name, in.Bio); err != nil {
		return nil, notFound(err, "user %d", userID)
	}
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user %d", userID)
	}
	return user, nil
}

// notFound maps gorm.ErrRecordNotFound to ErrNotFound and wraps anything else.
func notFound(err error, format string, args ...interface{}) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}
