// Package store is the data access layer: interfaces over the relational
// schema plus GORM-backed implementations. Every operation returns errors from
// the apperrors taxonomy; ownership scoping happens here, so a row owned by
// another account comes back as ErrNotFound.
package store

import (
	"context"
	"time"

	"github.com/listkeeper-dev/listkeeper/internal/models"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// ListSummary is a list row annotated with its live item count. The count is
// derived at read time, never stored.
type ListSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ItemCount   int    `json:"item_count"`
}

type ListStore interface {
	Create(ctx context.Context, list *models.List) error

	// FindOwned resolves a list by id for the given owner.
	FindOwned(ctx context.Context, id, ownerID uint) (*models.List, error)

	// ListWithCounts returns the owner's lists, newest first, each with its
	// current item count.
	ListWithCounts(ctx context.Context, ownerID uint) ([]ListSummary, error)

	// Update applies only the given columns to the owned list.
	Update(ctx context.Context, id, ownerID uint, fields map[string]interface{}) error

	// DeleteCascade removes the owned list and all its items in one
	// transaction, leaving no orphans.
	DeleteCascade(ctx context.Context, id, ownerID uint) error
}

type ItemStore interface {
	Create(ctx context.Context, item *models.Item) error

	// ByList returns the items of a list in creation order.
	ByList(ctx context.Context, listID uint) ([]models.Item, error)

	// FindOwned resolves an item by id, joined through its list to enforce
	// ownership.
	FindOwned(ctx context.Context, id, ownerID uint) (*models.Item, error)

	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Find(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
