package variant

import (
	"context"
	"io"
	"log"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListActiveByProducts(ctx context.Context, productIDs []string) ([]domain.Variant, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	const q = `
SELECT id::text, product_id::text, kg, price_per_kg, is_active, created_at
FROM product_variants
WHERE product_id = ANY($1) AND is_active = TRUE
ORDER BY kg ASC
`
	return r.queryMany(ctx, q, productIDs)
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID string) ([]domain.Variant, error) {
	const q = `
SELECT id::text, product_id::text, kg, price_per_kg, is_active, created_at
FROM product_variants
WHERE product_id = $1
ORDER BY kg ASC
`
	return r.queryMany(ctx, q, productID)
}

func (r *postgresRepo) queryMany(ctx context.Context, q string, args ...interface{}) ([]domain.Variant, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("variant repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Variant
	for rows.Next() {
		var v domain.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Kg, &v.PricePerKg, &v.Active, &v.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("variant repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

// UpsertBatch writes one row per pack size, keyed on (product_id, kg).
func (r *postgresRepo) UpsertBatch(ctx context.Context, productID string, variants []domain.Variant) error {
	const q = `
INSERT INTO product_variants (product_id, kg, price_per_kg, is_active)
VALUES ($1, $2, $3, $4)
ON CONFLICT (product_id, kg) DO UPDATE SET
    price_per_kg = EXCLUDED.price_per_kg,
    is_active = EXCLUDED.is_active
`
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, v := range variants {
		if _, err := tx.Exec(ctx, q, productID, v.Kg, v.PricePerKg, v.Active); err != nil {
			r.logger.Printf("variant repo: upsert product_id=%s kg=%d error=%v", productID, v.Kg, err)
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("variant repo: upserted product_id=%s count=%d", productID, len(variants))
	return nil
}
