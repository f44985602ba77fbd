package query

import (
	"fmt"
	"time"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
)

// GetUserLikesQuery asks which products a user liked in the current week
type GetUserLikesQuery struct {
	UserID string
}

// GetUserLikesHandler handles the user likes query
type GetUserLikesHandler struct {
	likes domain.LikeRepository
	now   func() time.Time
}

// NewGetUserLikesHandler creates a new user likes handler
func NewGetUserLikesHandler(likes domain.LikeRepository) *GetUserLikesHandler {
	return &GetUserLikesHandler{likes: likes, now: time.Now}
}

// WithClock overrides the handler's clock. Test hook.
func (h *GetUserLikesHandler) WithClock(now func() time.Time) *GetUserLikesHandler {
	h.now = now
	return h
}

// Handle returns the product IDs the user liked this week.
func (h *GetUserLikesHandler) Handle(q GetUserLikesQuery) ([]string, error) {
	if q.UserID == "" {
		return nil, domain.NewValidationError("user is required")
	}
	productIDs, err := h.likes.FindProductIDsByUserAndWeek(q.UserID, domain.WeekID(h.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to load user likes: %w", err)
	}
	return productIDs, nil
}
