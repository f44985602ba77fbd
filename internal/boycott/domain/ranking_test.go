package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayScore(t *testing.T) {
	tests := []struct {
		name              string
		baseVotes         int
		isPreviousBoycott bool
		want              int
	}{
		{"no bonus", 100, false, 100},
		{"bonus applies multiplier", 100, true, 150},
		{"bonus result is floored", 333, true, 499},
		{"zero votes", 0, true, 0},
		{"odd count", 7, true, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayScore(tt.baseVotes, tt.isPreviousBoycott))
		})
	}
}

func TestRankDescending(t *testing.T) {
	products := []Product{
		{ProductID: "low", CurrentWeekVotes: 5},
		{ProductID: "high", CurrentWeekVotes: 50},
		{ProductID: "mid", CurrentWeekVotes: 20},
	}

	ranked := RankDescending(products)

	assert.Equal(t, "high", ranked[0].ProductID)
	assert.Equal(t, "mid", ranked[1].ProductID)
	assert.Equal(t, "low", ranked[2].ProductID)

	// Input slice untouched.
	assert.Equal(t, "low", products[0].ProductID)
}

func TestRankDescendingIsStable(t *testing.T) {
	products := []Product{
		{ProductID: "A", CurrentWeekVotes: 10},
		{ProductID: "B", CurrentWeekVotes: 10},
		{ProductID: "C", CurrentWeekVotes: 5},
	}

	ranked := RankDescending(products)

	assert.Equal(t, []string{"A", "B", "C"}, []string{
		ranked[0].ProductID, ranked[1].ProductID, ranked[2].ProductID,
	})
}

func TestRankDescendingAppliesBonus(t *testing.T) {
	// 100 votes with the incumbency bonus (150) outrank 120 raw votes.
	products := []Product{
		{ProductID: "challenger", CurrentWeekVotes: 120},
		{ProductID: "incumbent", CurrentWeekVotes: 100, IsPreviousBoycott: true},
	}

	ranked := RankDescending(products)

	assert.Equal(t, "incumbent", ranked[0].ProductID)
	assert.Equal(t, "challenger", ranked[1].ProductID)
}

func TestAnnotateScores(t *testing.T) {
	products := []Product{
		{ProductID: "p1", CurrentWeekVotes: 40, IsPreviousBoycott: true},
		{ProductID: "p2", CurrentWeekVotes: 40},
	}

	annotated := AnnotateScores(products)

	assert.Equal(t, 60, annotated[0].DisplayVotes)
	assert.Equal(t, 40, annotated[1].DisplayVotes)
	// Raw counter stays authoritative.
	assert.Equal(t, 40, annotated[0].CurrentWeekVotes)
}
