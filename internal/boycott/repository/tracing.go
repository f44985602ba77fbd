package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
)

var tracer = otel.Tracer("boycott-repository")

// GormProductRepositoryWithTracing wraps GormProductRepository with tracing
type GormProductRepositoryWithTracing struct {
	*GormProductRepository
}

// NewGormProductRepositoryWithTracing creates a new repository with tracing
func NewGormProductRepositoryWithTracing(db *gorm.DB) *GormProductRepositoryWithTracing {
	return &GormProductRepositoryWithTracing{
		GormProductRepository: NewGormProductRepository(db),
	}
}

// FindByStatusWithContext traces the status-filtered product load.
func (r *GormProductRepositoryWithTracing) FindByStatusWithContext(ctx context.Context, statuses ...string) ([]domain.Product, error) {
	_, span := tracer.Start(ctx, "repository.FindByStatus",
		trace.WithAttributes(
			attribute.StringSlice("product.statuses", statuses),
		),
	)
	defer span.End()

	products, err := r.GormProductRepository.FindByStatus(statuses...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	return products, nil
}

// IncrementVotesWithContext traces the per-ballot counter increment.
func (r *GormProductRepositoryWithTracing) IncrementVotesWithContext(ctx context.Context, productIDs []string) error {
	_, span := tracer.Start(ctx, "repository.IncrementVotes",
		trace.WithAttributes(
			attribute.StringSlice("product.ids", productIDs),
		),
	)
	defer span.End()

	if err := r.GormProductRepository.IncrementVotes(productIDs); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// ApplyRotationWithContext traces the weekly rotation batch commit.
func (r *GormProductRepositoryWithTracing) ApplyRotationWithContext(ctx context.Context, winners, others []domain.Product) error {
	_, span := tracer.Start(ctx, "repository.ApplyRotation",
		trace.WithAttributes(
			attribute.Int("rotation.winners", len(winners)),
			attribute.Int("rotation.others", len(others)),
		),
	)
	defer span.End()

	if err := r.GormProductRepository.ApplyRotation(winners, others); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
