package shop

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/service/cart"
	"storefront/internal/service/catalog"
)

var (
	// ErrProductUnavailable is returned when a product has no active price
	// variants and therefore cannot be added to a cart.
	ErrProductUnavailable = errors.New("product has no price variants")
	// ErrProductNotFound is returned for unknown or paused products.
	ErrProductNotFound = errors.New("product not found")
)

// Service glues the catalog projection, the per-session carts and the
// checkout channel into the storefront operations the HTTP surface exposes.
type Service struct {
	catalog  *catalog.Service
	carts    *cart.Manager
	channel  cart.Channel
	business string
}

func New(cat *catalog.Service, carts *cart.Manager, channel cart.Channel, business string) *Service {
	return &Service{catalog: cat, carts: carts, channel: channel, business: business}
}

func (s *Service) Catalog(ctx context.Context) catalog.Projection {
	return s.catalog.Load(ctx)
}

// AddToCart resolves the variant for (product, kg) and adds one unit to the
// session cart. An unknown kg falls back to the smallest pack. Returns the
// toast notice shown to the buyer.
func (s *Service) AddToCart(ctx context.Context, sessionID, productID string, kg int) (string, error) {
	proj := s.catalog.Load(ctx)
	product, ok := proj.ProductByID(productID)
	if !ok {
		return "", ErrProductNotFound
	}
	if !proj.Available(productID) {
		return "", ErrProductUnavailable
	}

	v, ok := proj.FindVariant(productID, kg)
	if !ok {
		v = proj.VariantsByProduct[productID][0]
	}

	c := s.carts.Session(ctx, sessionID)
	c.Add(ctx, domain.ProductSnapshot{
		ID:       product.ID,
		Name:     product.Name,
		ImageURL: product.ImageURL,
	}, v.Kg, v.PricePerKg)

	return fmt.Sprintf("Agregado: %s", product.Name), nil
}

func (s *Service) Increment(ctx context.Context, sessionID, productID string, kg int) {
	s.carts.Session(ctx, sessionID).Increment(ctx, productID, kg)
}

func (s *Service) Decrement(ctx context.Context, sessionID, productID string, kg int) {
	s.carts.Session(ctx, sessionID).Decrement(ctx, productID, kg)
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) {
	s.carts.Session(ctx, sessionID).Clear(ctx)
}

func (s *Service) CartLines(ctx context.Context, sessionID string) ([]domain.CartLine, domain.CartTotals) {
	c := s.carts.Session(ctx, sessionID)
	return c.Lines(), c.Totals()
}

// Checkout validates the order, builds the WhatsApp link and clears the
// cart. The link is returned to the client, which performs the hand-off.
func (s *Service) Checkout(ctx context.Context, sessionID, name, city, notes string) (string, error) {
	c := s.carts.Session(ctx, sessionID)
	return c.Checkout(ctx, s.channel, s.business, name, city, notes)
}
