package cart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

// buildOrderMessage composes the deterministic order summary handed to the
// messaging channel: one bullet per line in insertion order, the grand
// total, then the buyer details.
func buildOrderMessage(lines []domain.CartLine, business, name, city, notes string) (string, error) {
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(city) == "" {
		return "", ErrBuyerInfo
	}
	if strings.TrimSpace(notes) == "" {
		notes = "-"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hola! Soy *%s* y quiero hacer este pedido en *%s*:\n\n", name, business)
	for _, l := range lines {
		fmt.Fprintf(&b, "• %s — %d kg ($%s/kg) x%d — $%s\n",
			l.Product.Name, l.Kg, FormatARS(l.PricePerKg), l.Quantity, FormatARS(l.Total()))
	}
	b.WriteString("\nEnvío: A coordinar por WhatsApp\n")
	fmt.Fprintf(&b, "TOTAL: $%s\n\n", FormatARS(totalsOf(lines).GrandTotal))
	b.WriteString("Datos para coordinar:\n")
	fmt.Fprintf(&b, "📍 Localidad: %s\n", city)
	fmt.Fprintf(&b, "📝 Observaciones: %s\n\n", notes)
	b.WriteString("Gracias!")
	return b.String(), nil
}

// FormatARS renders an amount the way Argentine storefronts print prices:
// dots grouping thousands, a comma before a fractional part, and no
// trailing zero padding ("2.000", "1.234,5", "0,05"). Rounding happens only
// here, at presentation.
func FormatARS(n float64) string {
	neg := n < 0
	cents := int64(math.Round(math.Abs(n) * 100))
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if frac != 0 {
		if frac%10 == 0 {
			fmt.Fprintf(&b, ",%d", frac/10)
		} else {
			fmt.Fprintf(&b, ",%02d", frac)
		}
	}
	return b.String()
}
