package httpserver

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	tokenrepo "storefront/internal/repository/token"
	adminsvc "storefront/internal/service/admin"
	authsvc "storefront/internal/service/auth"
)

type memTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func (s *memTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := s.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	s.tokens[t.Token] = t
	return nil
}

func (s *memTokenRepo) Get(_ context.Context, tok string) (*tokenrepo.Token, error) {
	t, ok := s.tokens[tok]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (s *memTokenRepo) Delete(_ context.Context, tok string) error {
	delete(s.tokens, tok)
	return nil
}

type adminProductRepo struct {
	products []domain.Product
}

func (s *adminProductRepo) List(_ context.Context) ([]domain.Product, error) {
	return s.products, nil
}
func (s *adminProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (s *adminProductRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = "created"
	s.products = append(s.products, p)
	return &p, nil
}
func (s *adminProductRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}
func (s *adminProductRepo) SetActive(_ context.Context, _ string, _ bool) error { return nil }
func (s *adminProductRepo) Delete(_ context.Context, _ string) error            { return nil }

type adminVariantRepo struct {
	upserted []domain.Variant
}

func (s *adminVariantRepo) ListByProduct(_ context.Context, _ string) ([]domain.Variant, error) {
	return nil, nil
}
func (s *adminVariantRepo) UpsertBatch(_ context.Context, _ string, variants []domain.Variant) error {
	s.upserted = variants
	return nil
}

func adminRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := log.New(testWriter{}, "", 0)

	auth, err := authsvc.New("admin@shop.com", "secret123", &memTokenRepo{tokens: map[string]tokenrepo.Token{}})
	if err != nil {
		t.Fatalf("init auth: %v", err)
	}
	admin := adminsvc.New(&adminProductRepo{products: []domain.Product{{ID: "p1", Name: "Oregano", Active: true}}}, &adminVariantRepo{})
	router := buildRouter(logger, nil, Deps{Admin: admin, Auth: auth})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"email":"admin@shop.com","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return router, resp.Token
}

func doAdmin(router *gin.Engine, token, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router, _ := adminRouter(t)

	rec := doAdmin(router, "", http.MethodGet, "/admin/products", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doAdmin(router, "bogus", http.MethodGet, "/admin/products", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bogus token, got %d", rec.Code)
	}
}

func TestAdminLoginRejectsBadPassword(t *testing.T) {
	router, _ := adminRouter(t)

	rec := doAdmin(router, "", http.MethodPost, "/admin/login", `{"email":"admin@shop.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminProductCRUD(t *testing.T) {
	router, token := adminRouter(t)

	rec := doAdmin(router, token, http.MethodGet, "/admin/products", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Oregano") {
		t.Fatalf("list: %d %s", rec.Code, rec.Body.String())
	}

	rec = doAdmin(router, token, http.MethodPost, "/admin/products", `{"name":"Pimentón","priceArs":0,"isActive":true}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doAdmin(router, token, http.MethodPost, "/admin/products", `{"name":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create blank name: expected 400, got %d", rec.Code)
	}

	rec = doAdmin(router, token, http.MethodPost, "/admin/products/p1/toggle", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: expected 200, got %d", rec.Code)
	}

	rec = doAdmin(router, token, http.MethodDelete, "/admin/products/p1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
}

func TestAdminVariantUpsert(t *testing.T) {
	router, token := adminRouter(t)

	rec := doAdmin(router, token, http.MethodPut, "/admin/products/p1/variants",
		`{"variants":[{"kg":5,"pricePerKg":2000,"isActive":true},{"kg":10,"pricePerKg":1800,"isActive":true}]}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("upsert: expected 204, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doAdmin(router, token, http.MethodPut, "/admin/products/p1/variants",
		`{"variants":[{"kg":3,"pricePerKg":2000,"isActive":true}]}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "invalid pack size") {
		t.Fatalf("invalid pack size: expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doAdmin(router, token, http.MethodPut, "/admin/products/missing/variants",
		`{"variants":[{"kg":5,"pricePerKg":2000,"isActive":true}]}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown product: expected 404, got %d", rec.Code)
	}
}

func TestAdminLogout(t *testing.T) {
	router, token := adminRouter(t)

	rec := doAdmin(router, token, http.MethodPost, "/admin/logout", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", rec.Code)
	}

	rec = doAdmin(router, token, http.MethodGet, "/admin/products", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}
