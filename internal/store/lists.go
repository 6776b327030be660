package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/listkeeper-dev/listkeeper/internal/apperrors"
	"github.com/listkeeper-dev/listkeeper/internal/models"
	"gorm.io/gorm"
)

type GormListStore struct {
	db *gorm.DB
}

func NewGormListStore(db *gorm.DB) *GormListStore {
	return &GormListStore{db: db}
}

func (s *GormListStore) Create(ctx context.Context, list *models.List) error {
	if err := s.db.WithContext(ctx).Create(list).Error; err != nil {
		return fmt.Errorf("%w: creating list: %v", apperrors.ErrStore, err)
	}
	return nil
}

func (s *GormListStore) FindOwned(ctx context.Context, id, ownerID uint) (*models.List, error) {
	var list models.List

	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&list).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("list %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: fetching list: %v", apperrors.ErrStore, err)
	}

	return &list, nil
}

func (s *GormListStore) ListWithCounts(ctx context.Context, ownerID uint) ([]ListSummary, error) {
	var summaries []ListSummary

	err := s.db.WithContext(ctx).
		Model(&models.List{}).
		Select("lists.id, lists.title, lists.description, COUNT(items.id) AS item_count").
		Joins("LEFT JOIN items ON items.list_id = lists.id AND items.deleted_at IS NULL").
		Where("lists.owner_id = ?", ownerID).
		Group("lists.id").
		Order("lists.id DESC").
		Scan(&summaries).Error

	if err != nil {
		return nil, fmt.Errorf("%w: listing lists: %v", apperrors.ErrStore, err)
	}

	return summaries, nil
}

func (s *GormListStore) Update(ctx context.Context, id, ownerID uint, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).
		Model(&models.List{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("%w: updating list: %v", apperrors.ErrStore, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("list %d: %w", id, apperrors.ErrNotFound)
	}

	return nil
}

func (s *GormListStore) DeleteCascade(ctx context.Context, id, ownerID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list models.List

		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&list).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("list %d: %w", id, apperrors.ErrNotFound)
			}
			return fmt.Errorf("%w: fetching list: %v", apperrors.ErrStore, err)
		}

		if err := tx.Where("list_id = ?", list.ID).Delete(&models.Item{}).Error; err != nil {
			return fmt.Errorf("%w: deleting items: %v", apperrors.ErrStore, err)
		}

		if err := tx.Delete(&list).Error; err != nil {
			return fmt.Errorf("%w: deleting list: %v", apperrors.ErrStore, err)
		}

		return nil
	})

	return err
}
