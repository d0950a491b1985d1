package userdata

import (
	"context"

	"go.uber.org/zap"
)

// Service handles user data operations.
type Service struct {
	store  *Store
	mirror Mirror
	logger *zap.Logger
}

// NewService creates a new user data service. mirror may be nil.
func NewService(store *Store, mirror Mirror, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		mirror: mirror,
		logger: logger,
	}
}

// Save merges body into the stored document. Mirror failures are logged only.
func (s *Service) Save(ctx context.Context, body []byte) error {
	written, err := s.store.Save(body)
	if err != nil {
		return err
	}

	if s.mirror != nil {
		if err := s.mirror.Put(ctx, written); err != nil {
			s.logger.Warn("Failed to mirror user data", zap.Error(err))
		}
	}
	return nil
}

// Load returns the stored document.
func (s *Service) Load() (Document, error) {
	return s.store.Load()
}
