// Package session issues and resolves server-side login sessions. The client
// only ever holds an opaque crypto-random token in an HttpOnly cookie; the
// authoritative record lives in the shared database so every instance can
// validate and revoke it.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/listkeeper-dev/listkeeper/internal/apperrors"
	"github.com/listkeeper-dev/listkeeper/internal/models"
	"github.com/listkeeper-dev/listkeeper/internal/store"
)

// CookieName is the name of the session cookie.
const CookieName = "listkeeper_session"

type Manager struct {
	sessions store.SessionStore
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(sessions store.SessionStore, ttl time.Duration) *Manager {
	return &Manager{
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// TTL returns the fixed session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create mints a new session for the user. Expiry is fixed at creation and
// never extended.
func (m *Manager) Create(ctx context.Context, userID uint) (*models.Session, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: m.now().Add(m.ttl),
	}

	if err := m.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Get resolves a token to a live session. Missing and expired sessions are
// both reported as ErrAuth; an expired row is deleted on the way out.
func (m *Manager) Get(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("no session token: %w", apperrors.ErrAuth)
	}

	session, err := m.sessions.Find(ctx, token)

	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("unknown session: %w", apperrors.ErrAuth)
		}
		return nil, err
	}

	if session.Expired(m.now()) {
		_ = m.sessions.Delete(ctx, token)
		return nil, fmt.Errorf("session expired: %w", apperrors.ErrAuth)
	}

	return session, nil
}

// Destroy removes the session. Safe to call when none exists.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.sessions.Delete(ctx, token)
}

// PurgeExpired sweeps expired rows and returns how many were removed.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	return m.sessions.DeleteExpired(ctx, m.now())
}
