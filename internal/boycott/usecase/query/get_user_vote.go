package query

import (
	"fmt"
	"time"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
)

// GetUserVoteQuery asks for a user's ballot in the current week
type GetUserVoteQuery struct {
	UserID string
}

// UserVoteResult reports whether and what the user voted this week
type UserVoteResult struct {
	HasVoted bool         `json:"has_voted"`
	WeekID   string       `json:"week_id"`
	Vote     *domain.Vote `json:"vote,omitempty"`
}

// GetUserVoteHandler handles the user vote query
type GetUserVoteHandler struct {
	votes domain.VoteRepository
	now   func() time.Time
}

// NewGetUserVoteHandler creates a new user vote handler
func NewGetUserVoteHandler(votes domain.VoteRepository) *GetUserVoteHandler {
	return &GetUserVoteHandler{votes: votes, now: time.Now}
}

// WithClock overrides the handler's clock. Test hook.
func (h *GetUserVoteHandler) WithClock(now func() time.Time) *GetUserVoteHandler {
	h.now = now
	return h
}

// Handle executes the user vote query
func (h *GetUserVoteHandler) Handle(q GetUserVoteQuery) (*UserVoteResult, error) {
	if q.UserID == "" {
		return nil, domain.NewValidationError("user is required")
	}
	weekID := domain.WeekID(h.now())
	vote, err := h.votes.FindByUserAndWeek(q.UserID, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user vote: %w", err)
	}
	return &UserVoteResult{
		HasVoted: vote != nil,
		WeekID:   weekID,
		Vote:     vote,
	}, nil
}
