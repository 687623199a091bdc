package admin

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

type stubProductRepo struct {
	products   []domain.Product
	getResult  *domain.Product
	getErr     error
	created    *domain.Product
	updated    *domain.Product
	lastActive bool
	deletedID  string
}

func (s *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubProductRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.getResult, s.getErr
}

func (s *stubProductRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.created = &p
	p.ID = "new"
	return &p, nil
}

func (s *stubProductRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.updated = &p
	return &p, nil
}

func (s *stubProductRepo) SetActive(_ context.Context, _ string, active bool) error {
	s.lastActive = active
	return nil
}

func (s *stubProductRepo) Delete(_ context.Context, id string) error {
	s.deletedID = id
	return nil
}

type stubVariantRepo struct {
	variants     []domain.Variant
	upsertErr    error
	lastUpserted []domain.Variant
}

func (s *stubVariantRepo) ListByProduct(_ context.Context, _ string) ([]domain.Variant, error) {
	return s.variants, nil
}

func (s *stubVariantRepo) UpsertBatch(_ context.Context, _ string, variants []domain.Variant) error {
	s.lastUpserted = variants
	return s.upsertErr
}

func TestCreateProductValidation(t *testing.T) {
	svc := New(&stubProductRepo{}, &stubVariantRepo{})

	if _, err := svc.CreateProduct(context.Background(), ProductInput{Name: "   "}); err == nil || err.Error() != "name required" {
		t.Fatalf("expected name validation error, got %v", err)
	}
	if _, err := svc.CreateProduct(context.Background(), ProductInput{Name: "Oregano", PriceARS: -1}); err == nil || err.Error() != "price must not be negative" {
		t.Fatalf("expected price validation error, got %v", err)
	}
}

func TestCreateProductTrimsFields(t *testing.T) {
	repo := &stubProductRepo{}
	svc := New(repo, &stubVariantRepo{})

	p, err := svc.CreateProduct(context.Background(), ProductInput{Name: "  Oregano ", Description: " hoja entera ", Active: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "new" || repo.created.Name != "Oregano" || repo.created.Description != "hoja entera" {
		t.Fatalf("unexpected created product %+v", repo.created)
	}
}

func TestUpdateProductKeepsImageWhenOmitted(t *testing.T) {
	repo := &stubProductRepo{getResult: &domain.Product{ID: "p1", Name: "Oregano", ImageURL: "http://x/old.jpg"}}
	svc := New(repo, &stubVariantRepo{})

	if _, err := svc.UpdateProduct(context.Background(), "p1", ProductInput{Name: "Oregano", Active: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updated.ImageURL != "http://x/old.jpg" {
		t.Fatalf("image url dropped on update: %+v", repo.updated)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	repo := &stubProductRepo{getErr: domain.ErrNotFound}
	svc := New(repo, &stubVariantRepo{})

	if _, err := svc.UpdateProduct(context.Background(), "p1", ProductInput{Name: "Oregano"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestToggleActiveFlips(t *testing.T) {
	repo := &stubProductRepo{getResult: &domain.Product{ID: "p1", Active: true}}
	svc := New(repo, &stubVariantRepo{})

	p, err := svc.ToggleActive(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Active || repo.lastActive {
		t.Fatalf("expected toggle to pause the product")
	}
}

func TestUpsertVariantsValidation(t *testing.T) {
	repo := &stubProductRepo{getResult: &domain.Product{ID: "p1"}}
	svc := New(repo, &stubVariantRepo{})
	ctx := context.Background()

	if err := svc.UpsertVariants(ctx, "p1", nil); err == nil {
		t.Fatalf("expected error for empty batch")
	}
	if err := svc.UpsertVariants(ctx, "p1", []VariantInput{{Kg: 3, PricePerKg: 100}}); err == nil || err.Error() != "invalid pack size 3 kg" {
		t.Fatalf("expected pack size error, got %v", err)
	}
	if err := svc.UpsertVariants(ctx, "p1", []VariantInput{{Kg: 5, PricePerKg: -1}}); err == nil || err.Error() != "price per kg must not be negative" {
		t.Fatalf("expected price error, got %v", err)
	}
	if err := svc.UpsertVariants(ctx, "p1", []VariantInput{{Kg: 5, PricePerKg: 100}, {Kg: 5, PricePerKg: 200}}); err == nil || err.Error() != "duplicate pack size 5 kg" {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestUpsertVariantsUnknownProduct(t *testing.T) {
	svc := New(&stubProductRepo{getErr: domain.ErrNotFound}, &stubVariantRepo{})

	err := svc.UpsertVariants(context.Background(), "missing", []VariantInput{{Kg: 5, PricePerKg: 100}})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpsertVariantsHappyPath(t *testing.T) {
	variants := &stubVariantRepo{}
	svc := New(&stubProductRepo{getResult: &domain.Product{ID: "p1"}}, variants)

	err := svc.UpsertVariants(context.Background(), "p1", []VariantInput{
		{Kg: 1, PricePerKg: 2400, Active: true},
		{Kg: 5, PricePerKg: 2000, Active: true},
		{Kg: 25, PricePerKg: 1500, Active: false},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(variants.lastUpserted) != 3 {
		t.Fatalf("expected 3 upserted variants, got %d", len(variants.lastUpserted))
	}
	if variants.lastUpserted[2].Active {
		t.Fatalf("active flag not carried through")
	}
}
