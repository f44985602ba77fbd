package domain

import (
	"time"

	"github.com/lib/pq"
)

// Vote records one user's weekly ballot: up to WeekVoteLimit distinct
// products chosen in a single submission. At most one vote exists per
// (user, week); the repository enforces the key with a conditional write.
type Vote struct {
	VoteID     string         `json:"vote_id" gorm:"primaryKey"`
	UserID     string         `json:"user_id" gorm:"not null;uniqueIndex:idx_votes_user_week"`
	WeekID     string         `json:"week_id" gorm:"not null;uniqueIndex:idx_votes_user_week;index"`
	ProductIDs pq.StringArray `json:"product_ids" gorm:"type:text[];not null"`
	Timestamp  time.Time      `json:"timestamp"`
}

// TableName specifies the table name
func (Vote) TableName() string {
	return "votes"
}

// ArchivedVote is a vote moved out of the live store by the weekly
// rotation. The move is copy-then-delete: the archive row must be durable
// before the live row is removed.
type ArchivedVote struct {
	VoteID     string         `json:"vote_id" gorm:"primaryKey"`
	UserID     string         `json:"user_id" gorm:"not null;index"`
	WeekID     string         `json:"week_id" gorm:"not null;index"`
	ProductIDs pq.StringArray `json:"product_ids" gorm:"type:text[];not null"`
	Timestamp  time.Time      `json:"timestamp"`
	ArchivedAt time.Time      `json:"archived_at"`
}

// TableName specifies the table name
func (ArchivedVote) TableName() string {
	return "votes_archive"
}

// VoteRepository defines the contract for vote data access.
type VoteRepository interface {
	// Insert creates the vote iff no vote exists for (UserID, WeekID).
	// Returns ErrConflict when that key is already claimed; the check and
	// the insert are one conditional write, not a read-then-write.
	Insert(vote *Vote) error
	FindByUserAndWeek(userID, weekID string) (*Vote, error)
	FindByWeek(weekID string) ([]Vote, error)
	// ArchiveWeek moves every vote of the given week into the archive
	// store, stamping archivedAt. The move is atomic: a failure leaves all
	// votes in the live store so a retry can complete it.
	ArchiveWeek(weekID string, archivedAt time.Time) (int, error)
}
