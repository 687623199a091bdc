package catalog

import (
	"sort"

	"storefront/internal/domain"
)

// Projection is the storefront view of the catalog: active products with
// their active variants grouped and ordered, plus the derived per-product
// selections. It is a pure value with no behavior beyond lookups.
type Projection struct {
	Products          []domain.Product
	VariantsByProduct map[string][]domain.Variant
	// DefaultKg is the initially selected pack per product: the smallest one.
	DefaultKg map[string]int
	// BestKg marks the pack with the lowest price per kg; ties keep the
	// first variant encountered in ascending-weight order.
	BestKg map[string]int
}

// BuildProjection derives the storefront projection from raw catalog rows.
// Inactive products and inactive variants are dropped; products without any
// active variant stay listed but have no default selection.
func BuildProjection(products []domain.Product, variants []domain.Variant) Projection {
	p := Projection{
		VariantsByProduct: make(map[string][]domain.Variant),
		DefaultKg:         make(map[string]int),
		BestKg:            make(map[string]int),
	}

	for _, prod := range products {
		if prod.Active {
			p.Products = append(p.Products, prod)
		}
	}

	for _, v := range variants {
		if !v.Active {
			continue
		}
		p.VariantsByProduct[v.ProductID] = append(p.VariantsByProduct[v.ProductID], v)
	}

	for id, vars := range p.VariantsByProduct {
		sort.SliceStable(vars, func(i, j int) bool { return vars[i].Kg < vars[j].Kg })
		p.DefaultKg[id] = vars[0].Kg
		best := vars[0]
		for _, v := range vars[1:] {
			if v.PricePerKg < best.PricePerKg {
				best = v
			}
		}
		p.BestKg[id] = best.Kg
	}

	return p
}

// FindVariant looks up a product's variant by pack size.
func (p Projection) FindVariant(productID string, kg int) (domain.Variant, bool) {
	for _, v := range p.VariantsByProduct[productID] {
		if v.Kg == kg {
			return v, true
		}
	}
	return domain.Variant{}, false
}

// Available reports whether the product can be added to a cart, i.e. it has
// at least one active variant.
func (p Projection) Available(productID string) bool {
	return len(p.VariantsByProduct[productID]) > 0
}

// ProductByID looks up an active product in the projection.
func (p Projection) ProductByID(id string) (domain.Product, bool) {
	for _, prod := range p.Products {
		if prod.ID == id {
			return prod, true
		}
	}
	return domain.Product{}, false
}
