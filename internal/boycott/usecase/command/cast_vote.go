package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
	"github.com/boycottapp/weekly-boycott/pkg/logger"
)

// CastVoteCommand represents one user's weekly ballot submission
type CastVoteCommand struct {
	UserID     string
	ProductIDs []string
}

// CastVoteHandler handles the cast vote command
type CastVoteHandler struct {
	votes    domain.VoteRepository
	products domain.ProductRepository
	now      func() time.Time
}

// NewCastVoteHandler creates a new cast vote handler
func NewCastVoteHandler(votes domain.VoteRepository, products domain.ProductRepository) *CastVoteHandler {
	return &CastVoteHandler{votes: votes, products: products, now: time.Now}
}

// WithClock overrides the handler's clock. Test hook.
func (h *CastVoteHandler) WithClock(now func() time.Time) *CastVoteHandler {
	h.now = now
	return h
}

// Handle executes the cast vote command. The vote record is claimed with a
// single conditional write keyed by (user, week): two concurrent calls for
// the same user can never both succeed, regardless of interleaving.
func (h *CastVoteHandler) Handle(cmd CastVoteCommand) (*domain.Vote, error) {
	if cmd.UserID == "" {
		return nil, domain.NewValidationError("must be signed in to vote")
	}
	if len(cmd.ProductIDs) == 0 {
		return nil, domain.NewValidationError("select at least one product")
	}
	if len(cmd.ProductIDs) > domain.WeekVoteLimit {
		return nil, domain.NewValidationError(
			fmt.Sprintf("you can select up to %d products", domain.WeekVoteLimit))
	}
	seen := make(map[string]bool, len(cmd.ProductIDs))
	for _, id := range cmd.ProductIDs {
		if seen[id] {
			return nil, domain.NewValidationError("selection contains duplicate products")
		}
		seen[id] = true
	}

	now := h.now()
	vote := &domain.Vote{
		VoteID:     uuid.NewString(),
		UserID:     cmd.UserID,
		WeekID:     domain.WeekID(now),
		ProductIDs: cmd.ProductIDs,
		Timestamp:  now,
	}

	if err := h.votes.Insert(vote); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	// The vote record is durable at this point. A counter failure leaves
	// the products under-counting, which the uniqueness check cannot
	// detect later, so it must be surfaced for reconciliation.
	if err := h.products.IncrementVotes(cmd.ProductIDs); err != nil {
		logger.Logger.Error().
			Err(err).
			Str("vote_id", vote.VoteID).
			Str("user_id", cmd.UserID).
			Str("week_id", vote.WeekID).
			Strs("product_ids", cmd.ProductIDs).
			Msg("Vote recorded but product counters not applied")
		return nil, fmt.Errorf("vote %s recorded but counters not applied: %w", vote.VoteID, err)
	}

	return vote, nil
}
