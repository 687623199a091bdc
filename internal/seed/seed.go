package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type variantSeed struct {
	Kg         int
	PricePerKg float64
}

type productSeed struct {
	Name        string
	Description string
	Variants    []variantSeed
}

// Apply inserts basic seed data for manual testing. Products are looked up
// by name and variants upserted on (product_id, kg), so reruns are safe.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Name:        "Orégano",
			Description: "Orégano seleccionado, hoja entera",
			Variants: []variantSeed{
				{Kg: 1, PricePerKg: 2400},
				{Kg: 5, PricePerKg: 2000},
				{Kg: 10, PricePerKg: 1800},
			},
		},
		{
			Name:        "Pimentón dulce",
			Description: "Pimentón dulce molido",
			Variants: []variantSeed{
				{Kg: 1, PricePerKg: 3100},
				{Kg: 5, PricePerKg: 2800},
				{Kg: 25, PricePerKg: 2500},
			},
		},
		{
			Name:        "Ají molido",
			Description: "Ají molido con semilla",
			Variants: []variantSeed{
				{Kg: 1, PricePerKg: 2900},
				{Kg: 5, PricePerKg: 2600},
			},
		},
	}

	for _, p := range products {
		id, err := ensureProduct(ctx, pool, p)
		if err != nil {
			return fmt.Errorf("ensure product %s: %w", p.Name, err)
		}
		for _, v := range p.Variants {
			if err := upsertVariant(ctx, pool, id, v); err != nil {
				return fmt.Errorf("upsert variant %s %dkg: %w", p.Name, v.Kg, err)
			}
		}
	}

	return nil
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `SELECT id::text FROM products WHERE name = $1`, p.Name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	const q = `
INSERT INTO products (name, description, is_active)
VALUES ($1, $2, TRUE)
RETURNING id::text
`
	if err := pool.QueryRow(ctx, q, p.Name, p.Description).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertVariant(ctx context.Context, pool *pgxpool.Pool, productID string, v variantSeed) error {
	const q = `
INSERT INTO product_variants (product_id, kg, price_per_kg, is_active)
VALUES ($1, $2, $3, TRUE)
ON CONFLICT (product_id, kg) DO UPDATE SET price_per_kg = EXCLUDED.price_per_kg
`
	_, err := pool.Exec(ctx, q, productID, v.Kg, v.PricePerKg)
	return err
}
