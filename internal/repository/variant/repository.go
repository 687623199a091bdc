package variant

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	ListActiveByProducts(ctx context.Context, productIDs []string) ([]domain.Variant, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Variant, error)
	UpsertBatch(ctx context.Context, productID string, variants []domain.Variant) error
}
