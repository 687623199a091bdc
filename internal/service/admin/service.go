package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
)

// Service backs the admin screens: product CRUD and per-weight price
// variants. All reads and writes go straight to the repositories.
type Service struct {
	products productRepo
	variants variantRepo
}

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type variantRepo interface {
	ListByProduct(ctx context.Context, productID string) ([]domain.Variant, error)
	UpsertBatch(ctx context.Context, productID string, variants []domain.Variant) error
}

func New(products productRepo, variants variantRepo) *Service {
	return &Service{products: products, variants: variants}
}

type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceARS    int64  `json:"priceArs"`
	ImageURL    string `json:"imageUrl"`
	Active      bool   `json:"isActive"`
}

type VariantInput struct {
	Kg         int     `json:"kg"`
	PricePerKg float64 `json:"pricePerKg"`
	Active     bool    `json:"isActive"`
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *Service) ListVariants(ctx context.Context, productID string) ([]domain.Variant, error) {
	return s.variants.ListByProduct(ctx, productID)
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name required")
	}
	if in.PriceARS < 0 {
		return nil, errors.New("price must not be negative")
	}
	return s.products.Create(ctx, domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		PriceARS:    in.PriceARS,
		ImageURL:    in.ImageURL,
		Active:      in.Active,
	})
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name required")
	}
	current, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = current.ImageURL
	}
	return s.products.Update(ctx, domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		PriceARS:    in.PriceARS,
		ImageURL:    imageURL,
		Active:      in.Active,
	})
}

// ToggleActive flips a product between active and paused.
func (s *Service) ToggleActive(ctx context.Context, id string) (*domain.Product, error) {
	current, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.products.SetActive(ctx, id, !current.Active); err != nil {
		return nil, err
	}
	current.Active = !current.Active
	return current, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// UpsertVariants writes the per-weight prices for one product, keyed on
// (product id, kg). Pack sizes outside the allowed set are rejected.
func (s *Service) UpsertVariants(ctx context.Context, productID string, in []VariantInput) error {
	if len(in) == 0 {
		return errors.New("variants required")
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}

	seen := make(map[int]bool, len(in))
	variants := make([]domain.Variant, 0, len(in))
	for _, v := range in {
		if !domain.ValidPackSize(v.Kg) {
			return fmt.Errorf("invalid pack size %d kg", v.Kg)
		}
		if v.PricePerKg < 0 {
			return errors.New("price per kg must not be negative")
		}
		if seen[v.Kg] {
			return fmt.Errorf("duplicate pack size %d kg", v.Kg)
		}
		seen[v.Kg] = true
		variants = append(variants, domain.Variant{
			ProductID:  productID,
			Kg:         v.Kg,
			PricePerKg: v.PricePerKg,
			Active:     v.Active,
		})
	}
	return s.variants.UpsertBatch(ctx, productID, variants)
}
