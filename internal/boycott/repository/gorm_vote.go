package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
)

// GormVoteRepository implements VoteRepository using GORM
type GormVoteRepository struct {
	db *gorm.DB
}

// NewGormVoteRepository creates a new GORM vote repository
func NewGormVoteRepository(db *gorm.DB) *GormVoteRepository {
	return &GormVoteRepository{db: db}
}

// Insert creates the vote record. The unique index on (user_id, week_id)
// makes this a conditional write: a second insert for the same key fails
// at the database rather than racing an existence check.
func (r *GormVoteRepository) Insert(vote *domain.Vote) error {
	if err := r.db.Create(vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

func (r *GormVoteRepository) FindByUserAndWeek(userID, weekID string) (*domain.Vote, error) {
	var vote domain.Vote
	err := r.db.Where("user_id = ? AND week_id = ?", userID, weekID).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}
	return &vote, nil
}

func (r *GormVoteRepository) FindByWeek(weekID string) ([]domain.Vote, error) {
	var votes []domain.Vote
	if err := r.db.Where("week_id = ?", weekID).Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("failed to find votes for week: %w", err)
	}
	return votes, nil
}

// ArchiveWeek moves all votes of the given week into votes_archive. The
// copy and the delete run in one transaction, copy first, so a failure at
// any point leaves every vote in the live store for a clean retry.
func (r *GormVoteRepository) ArchiveWeek(weekID string, archivedAt time.Time) (int, error) {
	var archived int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var votes []domain.Vote
		if err := tx.Where("week_id = ?", weekID).Find(&votes).Error; err != nil {
			return err
		}
		if len(votes) == 0 {
			return nil
		}

		rows := make([]domain.ArchivedVote, 0, len(votes))
		for _, v := range votes {
			rows = append(rows, domain.ArchivedVote{
				VoteID:     v.VoteID,
				UserID:     v.UserID,
				WeekID:     v.WeekID,
				ProductIDs: v.ProductIDs,
				Timestamp:  v.Timestamp,
				ArchivedAt: archivedAt,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		if err := tx.Where("week_id = ?", weekID).Delete(&domain.Vote{}).Error; err != nil {
			return err
		}
		archived = len(rows)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to archive votes for week %s: %w", weekID, err)
	}
	return archived, nil
}
