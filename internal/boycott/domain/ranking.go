package domain

import (
	"math"
	"sort"
)

// Voting and ranking constants. Fixed by product design, not configuration.
const (
	// WeekVoteLimit is the maximum number of products in one ballot.
	WeekVoteLimit = 5
	// BoycottListSize is how many products hold boycotted status each week.
	BoycottListSize = 5
	// BonusMultiplier rewards products already on the boycott list, giving
	// incumbents momentum and blunting vote-splitting against them.
	BonusMultiplier = 1.5
)

// DisplayScore returns the vote count used for ranking: the raw weekly
// count, multiplied by BonusMultiplier (floored) when the product carries
// the previous-boycott flag. The score is derived, never stored.
func DisplayScore(baseVotes int, isPreviousBoycott bool) int {
	if isPreviousBoycott {
		return int(math.Floor(float64(baseVotes) * BonusMultiplier))
	}
	return baseVotes
}

// RankDescending sorts products by display score, highest first. The sort
// is stable: equal scores keep their input order, so the same product set
// always ranks identically regardless of prior ordering.
func RankDescending(products []Product) []Product {
	ranked := make([]Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return DisplayScore(ranked[i].CurrentWeekVotes, ranked[i].IsPreviousBoycott) >
			DisplayScore(ranked[j].CurrentWeekVotes, ranked[j].IsPreviousBoycott)
	})
	return ranked
}

// AnnotateScores wraps products with their display score for read paths.
func AnnotateScores(products []Product) []RankedProduct {
	ranked := make([]RankedProduct, 0, len(products))
	for _, p := range products {
		ranked = append(ranked, RankedProduct{
			Product:      p,
			DisplayVotes: DisplayScore(p.CurrentWeekVotes, p.IsPreviousBoycott),
		})
	}
	return ranked
}
