package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/listkeeper-dev/listkeeper/internal/apperrors"
	"github.com/listkeeper-dev/listkeeper/internal/models"
	"gorm.io/gorm"
)

type GormItemStore struct {
	db *gorm.DB
}

func NewGormItemStore(db *gorm.DB) *GormItemStore {
	return &GormItemStore{db: db}
}

func (s *GormItemStore) Create(ctx context.Context, item *models.Item) error {
	if item.Status == "" {
		item.Status = models.StatusPending
	}

	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("%w: creating item: %v", apperrors.ErrStore, err)
	}

	return nil
}

func (s *GormItemStore) ByList(ctx context.Context, listID uint) ([]models.Item, error) {
	var items []models.Item

	err := s.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("id ASC").
		Find(&items).Error

	if err != nil {
		return nil, fmt.Errorf("%w: listing items: %v", apperrors.ErrStore, err)
	}

	return items, nil
}

func (s *GormItemStore) FindOwned(ctx context.Context, id, ownerID uint) (*models.Item, error) {
	var item models.Item

	err := s.db.WithContext(ctx).
		Joins("JOIN lists ON lists.id = items.list_id").
		Where("items.id = ? AND lists.owner_id = ?", id, ownerID).
		First(&item).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: fetching item: %v", apperrors.ErrStore, err)
	}

	return &item, nil
}

func (s *GormItemStore) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("%w: updating item: %v", apperrors.ErrStore, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("item %d: %w", id, apperrors.ErrNotFound)
	}

	return nil
}

func (s *GormItemStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Item{}, id)

	if result.Error != nil {
		return fmt.Errorf("%w: deleting item: %v", apperrors.ErrStore, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("item %d: %w", id, apperrors.ErrNotFound)
	}

	return nil
}
