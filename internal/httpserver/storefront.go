package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/service/cart"
	"storefront/internal/service/shop"
)

const sessionCookie = "sid"

// sessionMiddleware ensures every storefront request carries a session id,
// issuing a cookie on first touch.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(sessionCookie, sid, 60*60*24*30, "/", "", false, true)
		}
		c.Set(sessionCookie, sid)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCookie)
}

type catalogProduct struct {
	domain.Product
	Variants  []domain.Variant `json:"variants"`
	DefaultKg int              `json:"defaultKg,omitempty"`
	BestKg    int              `json:"bestPriceKg,omitempty"`
	Available bool             `json:"available"`
}

func getCatalog(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		proj := svc.Catalog(c.Request.Context())

		out := make([]catalogProduct, 0, len(proj.Products))
		for _, p := range proj.Products {
			variants := proj.VariantsByProduct[p.ID]
			if variants == nil {
				variants = []domain.Variant{}
			}
			out = append(out, catalogProduct{
				Product:   p,
				Variants:  variants,
				DefaultKg: proj.DefaultKg[p.ID],
				BestKg:    proj.BestKg[p.ID],
				Available: proj.Available(p.ID),
			})
		}
		c.JSON(http.StatusOK, gin.H{"products": out})
	}
}

type cartResponse struct {
	Lines  []domain.CartLine `json:"lines"`
	Totals domain.CartTotals `json:"totals"`
	Toast  string            `json:"toast,omitempty"`
}

func cartBody(lines []domain.CartLine, totals domain.CartTotals, toast string) cartResponse {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return cartResponse{Lines: lines, Totals: totals, Toast: toast}
}

func getCart(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, totals := svc.CartLines(c.Request.Context(), sessionID(c))
		c.JSON(http.StatusOK, cartBody(lines, totals, ""))
	}
}

type lineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Kg        int    `json:"kg"`
}

func addLine(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req lineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}

		toast, err := svc.AddToCart(c.Request.Context(), sessionID(c), req.ProductID, req.Kg)
		if err != nil {
			switch {
			case errors.Is(err, shop.ErrProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			case errors.Is(err, shop.ErrProductUnavailable):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Este producto no tiene precios cargados. Cargalos desde Admin."})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		lines, totals := svc.CartLines(c.Request.Context(), sessionID(c))
		c.JSON(http.StatusOK, cartBody(lines, totals, toast))
	}
}

func changeLine(svc *shop.Service, delta int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req lineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}

		ctx := c.Request.Context()
		if delta > 0 {
			svc.Increment(ctx, sessionID(c), req.ProductID, req.Kg)
		} else {
			svc.Decrement(ctx, sessionID(c), req.ProductID, req.Kg)
		}

		lines, totals := svc.CartLines(ctx, sessionID(c))
		c.JSON(http.StatusOK, cartBody(lines, totals, ""))
	}
}

func clearCart(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.ClearCart(c.Request.Context(), sessionID(c))
		lines, totals := svc.CartLines(c.Request.Context(), sessionID(c))
		c.JSON(http.StatusOK, cartBody(lines, totals, ""))
	}
}

type checkoutRequest struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	Notes string `json:"notes"`
}

func checkout(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		link, err := svc.Checkout(c.Request.Context(), sessionID(c), req.Name, req.City, req.Notes)
		if err != nil {
			switch {
			case errors.Is(err, cart.ErrEmptyCart):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "El carrito está vacío"})
			case errors.Is(err, cart.ErrBuyerInfo):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Completá nombre y localidad"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"waLink": link})
	}
}
