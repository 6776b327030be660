package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/listkeeper-dev/listkeeper/internal/apperrors"
	"github.com/listkeeper-dev/listkeeper/internal/models"
	"gorm.io/gorm"
)

// GormSessionStore keeps sessions in the same database as the rest of the
// schema so every service instance sees the same auth state.
type GormSessionStore struct {
	db *gorm.DB
}

func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{db: db}
}

func (s *GormSessionStore) Create(ctx context.Context, session *models.Session) error {
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("%w: creating session: %v", apperrors.ErrStore, err)
	}
	return nil
}

func (s *GormSessionStore) Find(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session

	if err := s.db.WithContext(ctx).First(&session, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: fetching session: %v", apperrors.ErrStore, err)
	}

	return &session, nil
}

func (s *GormSessionStore) Delete(ctx context.Context, token string) error {
	// Idempotent: deleting an absent session is not an error.
	if err := s.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("%w: deleting session: %v", apperrors.ErrStore, err)
	}
	return nil
}

func (s *GormSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&models.Session{}, "expires_at <= ?", now)

	if result.Error != nil {
		return 0, fmt.Errorf("%w: purging sessions: %v", apperrors.ErrStore, result.Error)
	}

	return result.RowsAffected, nil
}
