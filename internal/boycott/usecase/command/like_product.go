package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
	"github.com/boycottapp/weekly-boycott/pkg/logger"
)

// LikeProductCommand represents a user liking a product they skipped
type LikeProductCommand struct {
	UserID    string
	ProductID string
}

// LikeProductHandler handles the like product command
type LikeProductHandler struct {
	likes    domain.LikeRepository
	products domain.ProductRepository
	now      func() time.Time
}

// NewLikeProductHandler creates a new like product handler
func NewLikeProductHandler(likes domain.LikeRepository, products domain.ProductRepository) *LikeProductHandler {
	return &LikeProductHandler{likes: likes, products: products, now: time.Now}
}

// WithClock overrides the handler's clock. Test hook.
func (h *LikeProductHandler) WithClock(now func() time.Time) *LikeProductHandler {
	h.now = now
	return h
}

// Handle executes the like command and returns the product's new weekly
// like count. The like is claimed with a conditional write keyed by
// (user, product, week); a lost race surfaces as ErrAlreadyLiked.
func (h *LikeProductHandler) Handle(cmd LikeProductCommand) (int, error) {
	if cmd.UserID == "" {
		return 0, domain.NewValidationError("must be signed in to like a product")
	}
	if cmd.ProductID == "" {
		return 0, domain.NewValidationError("product is required")
	}

	now := h.now()
	like := &domain.Like{
		UserID:    cmd.UserID,
		ProductID: cmd.ProductID,
		WeekID:    domain.WeekID(now),
		Timestamp: now,
	}

	if err := h.likes.Insert(like); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return 0, domain.ErrAlreadyLiked
		}
		return 0, fmt.Errorf("failed to record like: %w", err)
	}

	count, err := h.products.IncrementLikes(cmd.ProductID)
	if err != nil {
		logger.Logger.Error().
			Err(err).
			Str("user_id", cmd.UserID).
			Str("product_id", cmd.ProductID).
			Str("week_id", like.WeekID).
			Msg("Like recorded but product counter not applied")
		return 0, fmt.Errorf("like recorded but counter not applied: %w", err)
	}

	return count, nil
}
