package domain

import "time"

// Like records that a user marked a product as skipped this week. At most
// one like exists per (user, product, week). Likes are not archived; only
// the weekly counter on the product resets at rotation.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_likes_user_product_week"`
	ProductID string    `json:"product_id" gorm:"not null;uniqueIndex:idx_likes_user_product_week"`
	WeekID    string    `json:"week_id" gorm:"not null;uniqueIndex:idx_likes_user_product_week;index"`
	Timestamp time.Time `json:"timestamp"`
}

// TableName specifies the table name
func (Like) TableName() string {
	return "likes"
}

// LikeRepository defines the contract for like data access.
type LikeRepository interface {
	// Insert creates the like iff no like exists for the
	// (UserID, ProductID, WeekID) key. Returns ErrConflict when the key is
	// already claimed.
	Insert(like *Like) error
	Exists(userID, productID, weekID string) (bool, error)
	FindProductIDsByUserAndWeek(userID, weekID string) ([]string, error)
	CountByWeek(weekID string) (int64, error)
}
