package repository

import (
	"sync"
	"time"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
)

// In-memory implementations of the storage contracts. They back the mock
// mode of the service and every use-case test; the ledgers and the rotation
// job only ever see the domain interfaces, so swapping these for the GORM
// repositories is a wiring decision, not a code change.

// MemoryProductRepository implements ProductRepository in memory
type MemoryProductRepository struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	order    []string // insertion order, keeps listings deterministic
}

// NewMemoryProductRepository creates an empty in-memory product repository
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: make(map[string]*domain.Product)}
}

func (r *MemoryProductRepository) Create(product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ProductID]; ok {
		return domain.ErrConflict
	}
	p := *product
	r.products[product.ProductID] = &p
	r.order = append(r.order, product.ProductID)
	return nil
}

func (r *MemoryProductRepository) FindByID(productID string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *MemoryProductRepository) FindByStatus(statuses ...string) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}
	var products []domain.Product
	for _, id := range r.order {
		if p := r.products[id]; wanted[p.Status] {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (r *MemoryProductRepository) IncrementVotes(productIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range productIDs {
		if _, ok := r.products[id]; !ok {
			return domain.ErrProductNotFound
		}
	}
	now := time.Now()
	for _, id := range productIDs {
		p := r.products[id]
		p.CurrentWeekVotes++
		p.TotalHistoricalVotes++
		p.LastModified = now
	}
	return nil
}

func (r *MemoryProductRepository) IncrementLikes(productID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return 0, domain.ErrProductNotFound
	}
	p.WeeklyLikes++
	p.LastModified = time.Now()
	return p.WeeklyLikes, nil
}

func (r *MemoryProductRepository) ApplyRotation(winners, others []domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Validate the whole batch before touching anything: all or nothing.
	for _, p := range append(append([]domain.Product{}, winners...), others...) {
		if _, ok := r.products[p.ProductID]; !ok {
			return domain.ErrProductNotFound
		}
	}
	for _, p := range winners {
		stored := r.products[p.ProductID]
		stored.Status = domain.StatusBoycotted
		stored.IsPreviousBoycott = true
		stored.PreviousBoycottWeeks = append([]string{}, p.PreviousBoycottWeeks...)
		stored.CurrentWeekVotes = 0
		stored.WeeklyLikes = 0
		stored.LastModified = p.LastModified
	}
	for _, p := range others {
		stored := r.products[p.ProductID]
		stored.Status = domain.StatusActive
		stored.CurrentWeekVotes = 0
		stored.WeeklyLikes = 0
		stored.LastModified = p.LastModified
	}
	return nil
}

func (r *MemoryProductRepository) CountByStatus(status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, p := range r.products {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

// MemoryVoteRepository implements VoteRepository in memory
type MemoryVoteRepository struct {
	mu      sync.Mutex
	votes   map[string]domain.Vote // keyed by user|week
	archive []domain.ArchivedVote
}

// NewMemoryVoteRepository creates an empty in-memory vote repository
func NewMemoryVoteRepository() *MemoryVoteRepository {
	return &MemoryVoteRepository{votes: make(map[string]domain.Vote)}
}

func voteKey(userID, weekID string) string {
	return userID + "|" + weekID
}

func (r *MemoryVoteRepository) Insert(vote *domain.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := voteKey(vote.UserID, vote.WeekID)
	if _, ok := r.votes[key]; ok {
		return domain.ErrConflict
	}
	r.votes[key] = *vote
	return nil
}

func (r *MemoryVoteRepository) FindByUserAndWeek(userID, weekID string) (*domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.votes[voteKey(userID, weekID)]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *MemoryVoteRepository) FindByWeek(weekID string) ([]domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var votes []domain.Vote
	for _, v := range r.votes {
		if v.WeekID == weekID {
			votes = append(votes, v)
		}
	}
	return votes, nil
}

func (r *MemoryVoteRepository) ArchiveWeek(weekID string, archivedAt time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	archived := 0
	for key, v := range r.votes {
		if v.WeekID != weekID {
			continue
		}
		r.archive = append(r.archive, domain.ArchivedVote{
			VoteID:     v.VoteID,
			UserID:     v.UserID,
			WeekID:     v.WeekID,
			ProductIDs: v.ProductIDs,
			Timestamp:  v.Timestamp,
			ArchivedAt: archivedAt,
		})
		delete(r.votes, key)
		archived++
	}
	return archived, nil
}

// ArchivedVotes returns a snapshot of the archive store.
func (r *MemoryVoteRepository) ArchivedVotes() []domain.ArchivedVote {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ArchivedVote{}, r.archive...)
}

// MemoryLikeRepository implements LikeRepository in memory
type MemoryLikeRepository struct {
	mu    sync.Mutex
	likes map[string]domain.Like // keyed by user|product|week
	next  uint
}

// NewMemoryLikeRepository creates an empty in-memory like repository
func NewMemoryLikeRepository() *MemoryLikeRepository {
	return &MemoryLikeRepository{likes: make(map[string]domain.Like)}
}

func likeKey(userID, productID, weekID string) string {
	return userID + "|" + productID + "|" + weekID
}

func (r *MemoryLikeRepository) Insert(like *domain.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := likeKey(like.UserID, like.ProductID, like.WeekID)
	if _, ok := r.likes[key]; ok {
		return domain.ErrConflict
	}
	r.next++
	like.ID = r.next
	r.likes[key] = *like
	return nil
}

func (r *MemoryLikeRepository) Exists(userID, productID, weekID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.likes[likeKey(userID, productID, weekID)]
	return ok, nil
}

func (r *MemoryLikeRepository) FindProductIDsByUserAndWeek(userID, weekID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var productIDs []string
	for _, l := range r.likes {
		if l.UserID == userID && l.WeekID == weekID {
			productIDs = append(productIDs, l.ProductID)
		}
	}
	return productIDs, nil
}

func (r *MemoryLikeRepository) CountByWeek(weekID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, l := range r.likes {
		if l.WeekID == weekID {
			count++
		}
	}
	return count, nil
}
