package query

import (
	"fmt"
	"time"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
)

// GetStatsQuery represents the query for weekly statistics
type GetStatsQuery struct{}

// Stats holds aggregate numbers for the current week
type Stats struct {
	WeekID            string `json:"week_id"`
	WeekLabel         string `json:"week_label"`
	BoycottedProducts int64  `json:"boycotted_products"`
	ActiveProducts    int64  `json:"active_products"`
	VotesThisWeek     int    `json:"votes_this_week"`
	LikesThisWeek     int64  `json:"likes_this_week"`
}

// GetStatsHandler handles the statistics query
type GetStatsHandler struct {
	products domain.ProductRepository
	votes    domain.VoteRepository
	likes    domain.LikeRepository
	now      func() time.Time
}

// NewGetStatsHandler creates a new statistics handler
func NewGetStatsHandler(products domain.ProductRepository, votes domain.VoteRepository, likes domain.LikeRepository) *GetStatsHandler {
	return &GetStatsHandler{products: products, votes: votes, likes: likes, now: time.Now}
}

// WithClock overrides the handler's clock. Test hook.
func (h *GetStatsHandler) WithClock(now func() time.Time) *GetStatsHandler {
	h.now = now
	return h
}

// Handle executes the statistics query
func (h *GetStatsHandler) Handle(_ GetStatsQuery) (*Stats, error) {
	now := h.now()
	weekID := domain.WeekID(now)

	boycotted, err := h.products.CountByStatus(domain.StatusBoycotted)
	if err != nil {
		return nil, fmt.Errorf("failed to count boycotted products: %w", err)
	}
	active, err := h.products.CountByStatus(domain.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count active products: %w", err)
	}
	votes, err := h.votes.FindByWeek(weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	likes, err := h.likes.CountByWeek(weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	return &Stats{
		WeekID:            weekID,
		WeekLabel:         domain.WeekLabel(now),
		BoycottedProducts: boycotted,
		ActiveProducts:    active,
		VotesThisWeek:     len(votes),
		LikesThisWeek:     likes,
	}, nil
}
