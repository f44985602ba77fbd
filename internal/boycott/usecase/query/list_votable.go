package query

import (
	"fmt"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
)

// ListVotableQuery represents the query for all products open to voting
type ListVotableQuery struct{}

// ListVotableHandler handles the votable products query
type ListVotableHandler struct {
	products domain.ProductRepository
}

// NewListVotableHandler creates a new votable products handler
func NewListVotableHandler(products domain.ProductRepository) *ListVotableHandler {
	return &ListVotableHandler{products: products}
}

// Handle returns the current boycott list plus active candidates, ranked,
// so users can vote to keep boycotted products or add new ones.
func (h *ListVotableHandler) Handle(_ ListVotableQuery) ([]domain.RankedProduct, error) {
	products, err := h.products.FindByStatus(domain.StatusActive, domain.StatusBoycotted)
	if err != nil {
		return nil, fmt.Errorf("failed to load votable products: %w", err)
	}
	return domain.AnnotateScores(domain.RankDescending(products)), nil
}
