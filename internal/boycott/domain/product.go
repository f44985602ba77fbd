package domain

import (
	"time"

	"github.com/lib/pq"
)

// Product status values. Archived is reserved for future flows; rotation
// only ever moves products between active and boycotted.
const (
	StatusActive    = "active"
	StatusBoycotted = "boycotted"
	StatusArchived  = "archived"
)

// Product represents a consumer product on the weekly boycott ballot.
// Products are created by the external import pipeline and never deleted;
// the rotation job and the vote/like ledgers mutate counters and status.
type Product struct {
	ProductID            string         `json:"product_id" gorm:"primaryKey"`
	Name                 string         `json:"name" gorm:"not null"`
	Barcode              string         `json:"barcode" gorm:"index"`
	PriceRange           string         `json:"price_range"`
	Category             string         `json:"category"`
	Reason               string         `json:"reason"`
	ImageURL             string         `json:"image_url"`
	Status               string         `json:"status" gorm:"not null;default:'active';index"`
	CurrentWeekVotes     int            `json:"current_week_votes" gorm:"not null;default:0"`
	TotalHistoricalVotes int            `json:"total_historical_votes" gorm:"not null;default:0"`
	WeeklyLikes          int            `json:"weekly_likes" gorm:"not null;default:0"`
	IsPreviousBoycott    bool           `json:"is_previous_boycott" gorm:"not null;default:false"`
	PreviousBoycottWeeks pq.StringArray `json:"previous_boycott_weeks" gorm:"type:text[]"`
	LastModified         time.Time      `json:"last_modified"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// RankedProduct is a product annotated with its display score for read paths.
type RankedProduct struct {
	Product
	DisplayVotes int `json:"display_votes"`
}

// ProductRepository defines the contract for product data access.
//
// Counter increments must be applied as storage-side delta expressions,
// never as a read followed by an unconditional write, so concurrent
// increments from different users always sum correctly.
type ProductRepository interface {
	Create(product *Product) error
	FindByID(productID string) (*Product, error)
	FindByStatus(statuses ...string) ([]Product, error)
	IncrementVotes(productIDs []string) error
	IncrementLikes(productID string) (int, error)
	// ApplyRotation commits all product mutations of a weekly rotation as a
	// single atomic batch: either every update is visible or none is.
	ApplyRotation(winners, others []Product) error
	CountByStatus(status string) (int64, error)
}
