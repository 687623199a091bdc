package domain

import "time"

// Variant is a priced, weight-specific purchasable unit of a product.
// At most one variant exists per (product, kg) pair.
type Variant struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	Kg         int       `json:"kg"`
	PricePerKg float64   `json:"pricePerKg"`
	Active     bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PackSizes lists the allowed variant weights in kg.
var PackSizes = []int{1, 5, 10, 25}

func ValidPackSize(kg int) bool {
	for _, size := range PackSizes {
		if kg == size {
			return true
		}
	}
	return false
}
