package query

import (
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

func TestListBoycottedRanksByDisplayScore(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	for _, p := range []domain.Product{
		{ProductID: "b1", Status: domain.StatusBoycotted, CurrentWeekVotes: 100},
		{ProductID: "b2", Status: domain.StatusBoycotted, CurrentWeekVotes: 80, IsPreviousBoycott: true},
		{ProductID: "active", Status: domain.StatusActive, CurrentWeekVotes: 500},
	} {
		prod := p
		require.NoError(t, products.Create(&prod))
	}

	handler := NewListBoycottedHandler(products)

	ranked, err := handler.Handle(ListBoycottedQuery{})
	require.NoError(t, err)
	require.Len(t, ranked, 2, "active products never appear in the boycott list")

	// b2's 80 votes score 120 with the bonus, ahead of b1's raw 100.
	assert.Equal(t, "b2", ranked[0].ProductID)
	assert.Equal(t, 120, ranked[0].DisplayVotes)
	assert.Equal(t, "b1", ranked[1].ProductID)
	assert.Equal(t, 100, ranked[1].DisplayVotes)
}

func TestListBoycottedEmpty(t *testing.T) {
	handler := NewListBoycottedHandler(repository.NewMemoryProductRepository())

	ranked, err := handler.Handle(ListBoycottedQuery{})
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestListVotableIncludesBoycottedAndActive(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	for _, p := range []domain.Product{
		{ProductID: "b1", Status: domain.StatusBoycotted, CurrentWeekVotes: 10},
		{ProductID: "a1", Status: domain.StatusActive, CurrentWeekVotes: 30},
		{ProductID: "gone", Status: domain.StatusArchived, CurrentWeekVotes: 99},
	} {
		prod := p
		require.NoError(t, products.Create(&prod))
	}

	handler := NewListVotableHandler(products)

	ranked, err := handler.Handle(ListVotableQuery{})
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "a1", ranked[0].ProductID)
	assert.Equal(t, "b1", ranked[1].ProductID)
}

func TestGetUserVote(t *testing.T) {
	votes := repository.NewMemoryVoteRepository()
	require.NoError(t, votes.Insert(&domain.Vote{
		VoteID:     "v1",
		UserID:     "u1",
		WeekID:     "2026-W09",
		ProductIDs: []string{"p1", "p2"},
	}))

	handler := NewGetUserVoteHandler(votes).WithClock(fixedClock())

	result, err := handler.Handle(GetUserVoteQuery{UserID: "u1"})
	require.NoError(t, err)
	assert.True(t, result.HasVoted)
	assert.Equal(t, "2026-W09", result.WeekID)
	require.NotNil(t, result.Vote)
	assert.Equal(t, []string{"p1", "p2"}, []string(result.Vote.ProductIDs))
}

func TestGetUserVoteNotVoted(t *testing.T) {
	votes := repository.NewMemoryVoteRepository()
	// A ballot from an earlier week does not count for this week.
	require.NoError(t, votes.Insert(&domain.Vote{
		VoteID: "v1", UserID: "u1", WeekID: "2026-W08", ProductIDs: []string{"p1"},
	}))

	handler := NewGetUserVoteHandler(votes).WithClock(fixedClock())

	result, err := handler.Handle(GetUserVoteQuery{UserID: "u1"})
	require.NoError(t, err)
	assert.False(t, result.HasVoted)
	assert.Nil(t, result.Vote)
}

func TestGetUserVoteRequiresUser(t *testing.T) {
	handler := NewGetUserVoteHandler(repository.NewMemoryVoteRepository()).WithClock(fixedClock())

	_, err := handler.Handle(GetUserVoteQuery{})
	assert.True(t, domain.IsValidationError(err))
}

func TestGetUserLikes(t *testing.T) {
	likes := repository.NewMemoryLikeRepository()
	require.NoError(t, likes.Insert(&domain.Like{UserID: "u1", ProductID: "p1", WeekID: "2026-W09"}))
	require.NoError(t, likes.Insert(&domain.Like{UserID: "u1", ProductID: "p2", WeekID: "2026-W09"}))
	require.NoError(t, likes.Insert(&domain.Like{UserID: "u1", ProductID: "p3", WeekID: "2026-W08"}))
	require.NoError(t, likes.Insert(&domain.Like{UserID: "u2", ProductID: "p1", WeekID: "2026-W09"}))

	handler := NewGetUserLikesHandler(likes).WithClock(fixedClock())

	productIDs, err := handler.Handle(GetUserLikesQuery{UserID: "u1"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, productIDs)
}

func TestGetUserLikesRequiresUser(t *testing.T) {
	handler := NewGetUserLikesHandler(repository.NewMemoryLikeRepository()).WithClock(fixedClock())

	_, err := handler.Handle(GetUserLikesQuery{})
	assert.True(t, domain.IsValidationError(err))
}

func TestGetStats(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	votes := repository.NewMemoryVoteRepository()
	likes := repository.NewMemoryLikeRepository()

	for _, p := range []domain.Product{
		{ProductID: "b1", Status: domain.StatusBoycotted},
		{ProductID: "b2", Status: domain.StatusBoycotted},
		{ProductID: "a1", Status: domain.StatusActive},
		{ProductID: "gone", Status: domain.StatusArchived},
	} {
		prod := p
		require.NoError(t, products.Create(&prod))
	}
	require.NoError(t, votes.Insert(&domain.Vote{VoteID: "v1", UserID: "u1", WeekID: "2026-W09", ProductIDs: []string{"b1"}}))
	require.NoError(t, votes.Insert(&domain.Vote{VoteID: "v2", UserID: "u2", WeekID: "2026-W09", ProductIDs: []string{"b2"}}))
	require.NoError(t, votes.Insert(&domain.Vote{VoteID: "v3", UserID: "u1", WeekID: "2026-W08", ProductIDs: []string{"b1"}}))
	require.NoError(t, likes.Insert(&domain.Like{UserID: "u1", ProductID: "b1", WeekID: "2026-W09"}))

	handler := NewGetStatsHandler(products, votes, likes).WithClock(fixedClock())

	stats, err := handler.Handle(GetStatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, "2026-W09", stats.WeekID)
	assert.Equal(t, "Week of Feb 23, 2026", stats.WeekLabel)
	assert.Equal(t, int64(2), stats.BoycottedProducts)
	assert.Equal(t, int64(1), stats.ActiveProducts)
	assert.Equal(t, 2, stats.VotesThisWeek)
	assert.Equal(t, int64(1), stats.LikesThisWeek)
}
