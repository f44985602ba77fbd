package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
)

// GormLikeRepository implements LikeRepository using GORM
type GormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new GORM like repository
func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// Insert creates the like record. The unique index on
// (user_id, product_id, week_id) turns the insert into a conditional write.
func (r *GormLikeRepository) Insert(like *domain.Like) error {
	if err := r.db.Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

func (r *GormLikeRepository) Exists(userID, productID, weekID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Like{}).
		Where("user_id = ? AND product_id = ? AND week_id = ?", userID, productID, weekID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check like existence: %w", err)
	}
	return count > 0, nil
}

func (r *GormLikeRepository) FindProductIDsByUserAndWeek(userID, weekID string) ([]string, error) {
	var productIDs []string
	err := r.db.Model(&domain.Like{}).
		Where("user_id = ? AND week_id = ?", userID, weekID).
		Pluck("product_id", &productIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find liked products: %w", err)
	}
	return productIDs, nil
}

func (r *GormLikeRepository) CountByWeek(weekID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Like{}).Where("week_id = ?", weekID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}
