package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

type ProductStore interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type VariantStore interface {
	UpsertBatch(ctx context.Context, productID string, variants []domain.Variant) error
}

// CSVImporter reads a supplier price list and creates or refreshes products
// together with their per-kg pack prices. Products are matched by name, so
// re-running the same file is safe.
type CSVImporter struct {
	reader   *csv.Reader
	products ProductStore
	variants VariantStore
}

func NewCSVImporter(r io.Reader, products ProductStore, variants VariantStore) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		products: products,
		variants: variants,
	}
}

type csvRow struct {
	Name       string
	Desc       string
	ImageURL   string
	Kg         int
	PricePerKg float64
}

type productGroup struct {
	Name     string
	Desc     string
	ImageURL string
	Packs    []domain.Variant
}

// Run parses CSV rows and saves products grouped by name. A row with a name
// starts a new product; rows with a blank name add pack prices to the
// current one. Returns the number of products saved.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	existing, err := i.existingByName(ctx)
	if err != nil {
		return 0, err
	}

	var (
		current  *productGroup
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.Name != "" {
			if current != nil {
				if err := i.save(ctx, current, existing); err != nil {
					return imported, err
				}
				imported++
			}
			current = &productGroup{Name: row.Name, Desc: row.Desc, ImageURL: row.ImageURL}
			if row.Kg != 0 {
				current.Packs = append(current.Packs, domain.Variant{Kg: row.Kg, PricePerKg: row.PricePerKg, Active: true})
			}
			continue
		}

		// Continuation rows carry extra pack prices for the current product.
		if current != nil && row.Kg != 0 {
			current.Packs = append(current.Packs, domain.Variant{Kg: row.Kg, PricePerKg: row.PricePerKg, Active: true})
		}
	}

	if current != nil {
		if err := i.save(ctx, current, existing); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) existingByName(ctx context.Context) (map[string]domain.Product, error) {
	products, err := i.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	byName := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byName[p.Name] = p
	}
	return byName, nil
}

func (i *CSVImporter) save(ctx context.Context, g *productGroup, existing map[string]domain.Product) error {
	if len(g.Packs) == 0 {
		return fmt.Errorf("no pack prices for %q", g.Name)
	}
	seen := make(map[int]bool, len(g.Packs))
	for _, v := range g.Packs {
		if !domain.ValidPackSize(v.Kg) {
			return fmt.Errorf("invalid pack size %d kg for %q", v.Kg, g.Name)
		}
		if v.PricePerKg <= 0 {
			return fmt.Errorf("invalid price for %q at %d kg", g.Name, v.Kg)
		}
		if seen[v.Kg] {
			return fmt.Errorf("duplicate pack size %d kg for %q", v.Kg, g.Name)
		}
		seen[v.Kg] = true
	}

	var productID string
	if p, ok := existing[g.Name]; ok {
		productID = p.ID
		if g.Desc != "" {
			p.Description = g.Desc
		}
		if g.ImageURL != "" {
			p.ImageURL = g.ImageURL
		}
		if _, err := i.products.Update(ctx, p); err != nil {
			return fmt.Errorf("update product %q: %w", g.Name, err)
		}
	} else {
		created, err := i.products.Create(ctx, domain.Product{
			Name:        g.Name,
			Description: g.Desc,
			ImageURL:    g.ImageURL,
			Active:      true,
		})
		if err != nil {
			return fmt.Errorf("create product %q: %w", g.Name, err)
		}
		productID = created.ID
		existing[g.Name] = *created
	}

	if err := i.variants.UpsertBatch(ctx, productID, g.Packs); err != nil {
		return fmt.Errorf("upsert packs for %q: %w", g.Name, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	name := pick(record, index, "name")
	desc := pick(record, index, "description")
	imageURL := pick(record, index, "image_url")
	kgStr := pick(record, index, "kg")
	priceStr := pick(record, index, "price_per_kg")

	if name == "" && kgStr == "" {
		return nil
	}

	var kg int
	if kgStr != "" {
		kg, _ = strconv.Atoi(kgStr)
	}
	var price float64
	if priceStr != "" {
		price, _ = strconv.ParseFloat(priceStr, 64)
	}

	return &csvRow{
		Name:       name,
		Desc:       desc,
		ImageURL:   imageURL,
		Kg:         kg,
		PricePerKg: price,
	}
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
