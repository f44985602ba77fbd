package query

import (
	"fmt"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
)

// ListBoycottedQuery represents the query for the current boycott list
type ListBoycottedQuery struct{}

// ListBoycottedHandler handles the boycott list query
type ListBoycottedHandler struct {
	products domain.ProductRepository
}

// NewListBoycottedHandler creates a new boycott list handler
func NewListBoycottedHandler(products domain.ProductRepository) *ListBoycottedHandler {
	return &ListBoycottedHandler{products: products}
}

// Handle returns the boycotted products ranked by display score. Ranking
// is applied at the read boundary; stored order is irrelevant.
func (h *ListBoycottedHandler) Handle(_ ListBoycottedQuery) ([]domain.RankedProduct, error) {
	products, err := h.products.FindByStatus(domain.StatusBoycotted)
	if err != nil {
		return nil, fmt.Errorf("failed to load boycott list: %w", err)
	}
	return domain.AnnotateScores(domain.RankDescending(products)), nil
}
