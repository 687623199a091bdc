package domain

// ProductSnapshot is the slice of a product captured into a cart line at
// add-time. Lines keep the price they were added with even if the catalog
// changes during the session.
type ProductSnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// CartLine is one (product, kg) entry in the cart. Line identity is the
// (product id, kg) pair, not the product id alone.
type CartLine struct {
	Product    ProductSnapshot `json:"product"`
	Kg         int             `json:"kg"`
	PricePerKg float64         `json:"pricePerKg"`
	Quantity   int             `json:"qty"`
}

func (l CartLine) Total() float64 {
	return float64(l.Kg) * l.PricePerKg * float64(l.Quantity)
}

// CartTotals are derived values, recomputed on every read.
type CartTotals struct {
	ItemCount  int     `json:"itemCount"`
	GrandTotal float64 `json:"grandTotal"`
}
