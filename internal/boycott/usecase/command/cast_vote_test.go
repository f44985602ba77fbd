package command

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
	"github.com/boycottapp/weekly-boycott/internal/boycott/repository"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC) // 2026-W09
	}
}

func seedProducts(t *testing.T, repo *repository.MemoryProductRepository, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, repo.Create(&domain.Product{
			ProductID: id,
			Name:      "Product " + id,
			Status:    domain.StatusActive,
		}))
	}
}

func TestCastVoteSuccess(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	votes := repository.NewMemoryVoteRepository()
	seedProducts(t, products, "p1", "p2", "p3")

	handler := NewCastVoteHandler(votes, products).WithClock(fixedClock())

	vote, err := handler.Handle(CastVoteCommand{UserID: "u1", ProductIDs: []string{"p1", "p2"}})
	require.NoError(t, err)
	assert.NotEmpty(t, vote.VoteID)
	assert.Equal(t, "2026-W09", vote.WeekID)

	stored, err := votes.FindByUserAndWeek("u1", "2026-W09")
	require.NoError(t, err)
	require.NotNil(t, stored)

	p1, err := products.FindByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 1, p1.CurrentWeekVotes)
	assert.Equal(t, 1, p1.TotalHistoricalVotes)

	p2, err := products.FindByID("p2")
	require.NoError(t, err)
	assert.Equal(t, 1, p2.CurrentWeekVotes)
}

func TestCastVoteTwiceSameWeekFails(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	votes := repository.NewMemoryVoteRepository()
	seedProducts(t, products, "p1", "p2", "p3")

	handler := NewCastVoteHandler(votes, products).WithClock(fixedClock())

	_, err := handler.Handle(CastVoteCommand{UserID: "u1", ProductIDs: []string{"p1", "p2"}})
	require.NoError(t, err)

	_, err = handler.Handle(CastVoteCommand{UserID: "u1", ProductIDs: []string{"p3"}})
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	// The rejected ballot must not touch counters.
	p3, err := products.FindByID("p3")
	require.NoError(t, err)
	assert.Equal(t, 0, p3.CurrentWeekVotes)
}

func TestCastVoteValidation(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	votes := repository.NewMemoryVoteRepository()
	seedProducts(t, products, "p1", "p2", "p3", "p4", "p5", "p6")

	handler := NewCastVoteHandler(votes, products).WithClock(fixedClock())

	tests := []struct {
		name string
		cmd  CastVoteCommand
	}{
		{"missing user", CastVoteCommand{ProductIDs: []string{"p1"}}},
		{"empty selection", CastVoteCommand{UserID: "u1", ProductIDs: nil}},
		{"over the limit", CastVoteCommand{UserID: "u1", ProductIDs: []string{"p1", "p2", "p3", "p4", "p5", "p6"}}},
		{"duplicate selection", CastVoteCommand{UserID: "u1", ProductIDs: []string{"p1", "p1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(tt.cmd)
			assert.True(t, domain.IsValidationError(err), "expected validation error, got %v", err)
		})
	}

	// None of the rejected ballots created a vote.
	stored, err := votes.FindByUserAndWeek("u1", "2026-W09")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestCastVoteAtLimitSucceeds(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	votes := repository.NewMemoryVoteRepository()
	seedProducts(t, products, "p1", "p2", "p3", "p4", "p5")

	handler := NewCastVoteHandler(votes, products).WithClock(fixedClock())

	_, err := handler.Handle(CastVoteCommand{
		UserID:     "u1",
		ProductIDs: []string{"p1", "p2", "p3", "p4", "p5"},
	})
	assert.NoError(t, err)
}

func TestCastVoteConcurrentSameUser(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	votes := repository.NewMemoryVoteRepository()
	seedProducts(t, products, "p1")

	handler := NewCastVoteHandler(votes, products).WithClock(fixedClock())

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = handler.Handle(CastVoteCommand{UserID: "u1", ProductIDs: []string{"p1"}})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent ballot may win")

	p1, err := products.FindByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 1, p1.CurrentWeekVotes, "losing ballots must not increment counters")
}

func TestCastVoteNextWeekAllowedAgain(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	votes := repository.NewMemoryVoteRepository()
	seedProducts(t, products, "p1")

	week1 := time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)
	week2 := week1.AddDate(0, 0, 7)

	handler := NewCastVoteHandler(votes, products).WithClock(func() time.Time { return week1 })
	_, err := handler.Handle(CastVoteCommand{UserID: "u1", ProductIDs: []string{"p1"}})
	require.NoError(t, err)

	handler.WithClock(func() time.Time { return week2 })
	_, err = handler.Handle(CastVoteCommand{UserID: "u1", ProductIDs: []string{"p1"}})
	assert.NoError(t, err, "a new week opens a new ballot")
}
