package command

import (
	"context"
	"fmt"
	"time"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
	"github.com/boycottapp/weekly-boycott/pkg/logger"
)

// RotationNotifier receives the completion signal after a successful
// rotation. Implementations publish it to external observers; a failure to
// notify never fails the rotation itself.
type RotationNotifier interface {
	RotationCompleted(ctx context.Context, weekID string, winnerIDs []string) error
}

// RotationResult summarizes one weekly rotation run
type RotationResult struct {
	WeekID        string   `json:"week_id"`
	WinnerIDs     []string `json:"winner_ids"`
	Demoted       int      `json:"demoted"`
	ArchivedVotes int      `json:"archived_votes"`
}

// RunRotationHandler handles the weekly rotation job. It is designed to run
// exactly once per week boundary (Monday 00:00 UTC) under a single-flight
// external scheduler; overlapping runs must be serialized by the caller.
type RunRotationHandler struct {
	products domain.ProductRepository
	votes    domain.VoteRepository
	notifier RotationNotifier
	now      func() time.Time
}

// NewRunRotationHandler creates a new rotation handler
func NewRunRotationHandler(products domain.ProductRepository, votes domain.VoteRepository) *RunRotationHandler {
	return &RunRotationHandler{products: products, votes: votes, now: time.Now}
}

// WithNotifier attaches a completion notifier.
func (h *RunRotationHandler) WithNotifier(n RotationNotifier) *RunRotationHandler {
	h.notifier = n
	return h
}

// WithClock overrides the handler's clock. Test hook.
func (h *RunRotationHandler) WithClock(now func() time.Time) *RunRotationHandler {
	h.now = now
	return h
}

// Handle executes one weekly rotation:
//  1. rank all active and boycotted products by display score,
//  2. promote the top BoycottListSize to boycotted and demote the rest,
//     resetting weekly counters, as one atomic batch,
//  3. move the previous week's votes into the archive store.
//
// The product batch either commits fully or not at all, and the archive is
// a copy-then-delete move inside one transaction, so the job is safely
// re-runnable from scratch after any failure.
func (h *RunRotationHandler) Handle(ctx context.Context) (*RotationResult, error) {
	now := h.now()
	weekID := domain.WeekID(now)

	products, err := h.products.FindByStatus(domain.StatusActive, domain.StatusBoycotted)
	if err != nil {
		return nil, fmt.Errorf("failed to load rotation candidates: %w", err)
	}

	ranked := domain.RankDescending(products)

	cut := domain.BoycottListSize
	if cut > len(ranked) {
		cut = len(ranked)
	}
	winners := make([]domain.Product, cut)
	copy(winners, ranked[:cut])
	others := make([]domain.Product, len(ranked)-cut)
	copy(others, ranked[cut:])

	winnerIDs := make([]string, 0, len(winners))
	for i := range winners {
		winners[i].PreviousBoycottWeeks = append(winners[i].PreviousBoycottWeeks, weekID)
		winners[i].LastModified = now
		winnerIDs = append(winnerIDs, winners[i].ProductID)
	}
	for i := range others {
		others[i].LastModified = now
	}

	if err := h.products.ApplyRotation(winners, others); err != nil {
		return nil, fmt.Errorf("rotation batch for week %s failed: %w", weekID, err)
	}

	prevWeekID := domain.PreviousWeekID(now)
	archived, err := h.votes.ArchiveWeek(prevWeekID, now)
	if err != nil {
		// Products are already rotated; the archive move left every vote
		// in the live store, so the operator retries just this step.
		return nil, fmt.Errorf("vote archive for week %s failed: %w", prevWeekID, err)
	}

	result := &RotationResult{
		WeekID:        weekID,
		WinnerIDs:     winnerIDs,
		Demoted:       len(others),
		ArchivedVotes: archived,
	}

	logger.Logger.Info().
		Str("week_id", weekID).
		Strs("winners", winnerIDs).
		Int("demoted", result.Demoted).
		Int("archived_votes", archived).
		Msg("Weekly rotation completed")

	if h.notifier != nil {
		if err := h.notifier.RotationCompleted(ctx, weekID, winnerIDs); err != nil {
			logger.Logger.Warn().
				Err(err).
				Str("week_id", weekID).
				Msg("Failed to publish rotation completion event")
		}
	}

	return result, nil
}
