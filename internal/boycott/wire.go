//go:build wireinject
// +build wireinject

package boycott

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/boycottapp/weekly-boycott/internal/boycott/delivery/http"
	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
	"github.com/boycottapp/weekly-boycott/internal/boycott/repository"
	"github.com/boycottapp/weekly-boycott/internal/boycott/usecase/command"
	"github.com/boycottapp/weekly-boycott/internal/boycott/usecase/query"
	"github.com/boycottapp/weekly-boycott/pkg/cache"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepositoryWithTracing(db)
}

// ProvideVoteRepository provides the vote repository
func ProvideVoteRepository(db *gorm.DB) domain.VoteRepository {
	return repository.NewGormVoteRepository(db)
}

// ProvideLikeRepository provides the like repository
func ProvideLikeRepository(db *gorm.DB) domain.LikeRepository {
	return repository.NewGormLikeRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideVoteRepository,
	ProvideLikeRepository,
)

var UsecaseSet = wire.NewSet(
	command.NewCastVoteHandler,
	command.NewLikeProductHandler,
	command.NewRunRotationHandler,
	query.NewListBoycottedHandler,
	query.NewListVotableHandler,
	query.NewGetUserVoteHandler,
	query.NewGetUserLikesHandler,
	query.NewGetStatsHandler,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, listCache *cache.ListCache) (*httpDelivery.BoycottHandler, error) {
	wire.Build(
		RepositorySet,
		UsecaseSet,
		httpDelivery.NewBoycottHandlerWithDI,
	)
	return nil, nil
}
