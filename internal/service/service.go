// Package service holds the application use cases. Each exported method is one
// user-facing operation built on top of storage.
package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/s/bitmentor/internal/log"
	"github.com/s/bitmentor/internal/storage"
)

// Options tune a Service; zero values select defaults.
type Options struct {
	BcryptCost int
	Now        func() time.Time
	Logger     *zerolog.Logger
}

type Service struct {
	store      *storage.Storage
	validate   *validator.Validate
	bcryptCost int
	now        func() time.Time
	log        zerolog.Logger
}

func New(store *storage.Storage, opts Options) *Service {
	s := &Service{
		store:      store,
		validate:   newValidator(),
		bcryptCost: opts.BcryptCost,
		now:        opts.Now,
		log:        log.WithComponent("service"),
	}
	if s.bcryptCost == 0 {
		s.bcryptCost = bcrypt.DefaultCost
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	}
	return s
}

// Ping reports whether the backing database answers.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
