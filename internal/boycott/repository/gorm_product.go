package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{}, &domain.Vote{}, &domain.ArchivedVote{}, &domain.Like{})
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *GormProductRepository) FindByID(productID string) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.Where("product_id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func (r *GormProductRepository) FindByStatus(statuses ...string) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("status IN ?", statuses).Order("product_id").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products by status: %w", err)
	}
	return products, nil
}

// IncrementVotes applies the weekly and historical vote counters as a
// single storage-side delta, one UPDATE for all ballot products.
func (r *GormProductRepository) IncrementVotes(productIDs []string) error {
	result := r.db.Model(&domain.Product{}).
		Where("product_id IN ?", productIDs).
		UpdateColumns(map[string]interface{}{
			"current_week_votes":     gorm.Expr("current_week_votes + 1"),
			"total_historical_votes": gorm.Expr("total_historical_votes + 1"),
			"last_modified":          time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to increment vote counters: %w", result.Error)
	}
	if result.RowsAffected != int64(len(productIDs)) {
		return fmt.Errorf("vote counters updated for %d of %d products: %w",
			result.RowsAffected, len(productIDs), domain.ErrProductNotFound)
	}
	return nil
}

// IncrementLikes bumps weekly_likes as a storage-side delta and returns the
// new count from the same statement.
func (r *GormProductRepository) IncrementLikes(productID string) (int, error) {
	var count int
	err := r.db.Raw(
		`UPDATE products
		 SET weekly_likes = weekly_likes + 1, last_modified = ?
		 WHERE product_id = ?
		 RETURNING weekly_likes`,
		time.Now(), productID,
	).Scan(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to increment like counter: %w", err)
	}
	if count == 0 {
		// RETURNING yields no row for a missing product; weekly_likes is
		// at least 1 after a successful increment.
		var exists int64
		r.db.Model(&domain.Product{}).Where("product_id = ?", productID).Count(&exists)
		if exists == 0 {
			return 0, domain.ErrProductNotFound
		}
	}
	return count, nil
}

// ApplyRotation commits every product mutation of a weekly rotation inside
// one transaction so readers never observe a partially promoted list.
func (r *GormProductRepository) ApplyRotation(winners, others []domain.Product) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range winners {
			result := tx.Model(&domain.Product{}).
				Where("product_id = ?", p.ProductID).
				Updates(map[string]interface{}{
					"status":                 domain.StatusBoycotted,
					"is_previous_boycott":    true,
					"previous_boycott_weeks": p.PreviousBoycottWeeks,
					"current_week_votes":     0,
					"weekly_likes":           0,
					"last_modified":          p.LastModified,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("promote %s: %w", p.ProductID, domain.ErrProductNotFound)
			}
		}
		for _, p := range others {
			result := tx.Model(&domain.Product{}).
				Where("product_id = ?", p.ProductID).
				Updates(map[string]interface{}{
					"status":             domain.StatusActive,
					"current_week_votes": 0,
					"weekly_likes":       0,
					"last_modified":      p.LastModified,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("demote %s: %w", p.ProductID, domain.ErrProductNotFound)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to apply rotation batch: %w", err)
	}
	return nil
}

func (r *GormProductRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
