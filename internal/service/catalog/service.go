package catalog

import (
	"context"
	"io"
	"log"

	"storefront/internal/domain"
)

type Service struct {
	products productRepo
	variants variantRepo
	logger   *log.Logger
}

type productRepo interface {
	ListActive(ctx context.Context) ([]domain.Product, error)
}

type variantRepo interface {
	ListActiveByProducts(ctx context.Context, productIDs []string) ([]domain.Variant, error)
}

func New(products productRepo, variants variantRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{products: products, variants: variants, logger: logger}
}

// Load reads the active catalog and builds the projection. A failed load is
// not retried and never surfaces to the user: it yields an empty projection.
func (s *Service) Load(ctx context.Context) Projection {
	products, err := s.products.ListActive(ctx)
	if err != nil {
		s.logger.Printf("catalog: list products error=%v", err)
		return BuildProjection(nil, nil)
	}
	if len(products) == 0 {
		return BuildProjection(nil, nil)
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	variants, err := s.variants.ListActiveByProducts(ctx, ids)
	if err != nil {
		s.logger.Printf("catalog: list variants error=%v", err)
		return BuildProjection(products, nil)
	}

	return BuildProjection(products, variants)
}
