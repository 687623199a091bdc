package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the storefront and admin surfaces.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = deps.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowCredentials = !corsCfg.AllowAllOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	if deps.Files != nil {
		router.Static("/uploads", deps.Files.Dir())
	}

	api := router.Group("/api", sessionMiddleware())
	{
		api.GET("/catalog", getCatalog(deps.Shop))
		api.GET("/cart", getCart(deps.Shop))
		api.POST("/cart/lines", addLine(deps.Shop))
		api.POST("/cart/lines/increment", changeLine(deps.Shop, +1))
		api.POST("/cart/lines/decrement", changeLine(deps.Shop, -1))
		api.DELETE("/cart", clearCart(deps.Shop))
		api.POST("/checkout", checkout(deps.Shop))
	}

	adm := router.Group("/admin")
	{
		adm.POST("/login", adminLogin(deps.Auth))

		protected := adm.Group("", authMiddleware(deps.Auth))
		protected.POST("/logout", adminLogout(deps.Auth))
		protected.GET("/products", listProducts(deps.Admin))
		protected.POST("/products", createProduct(deps.Admin))
		protected.PUT("/products/:id", updateProduct(deps.Admin))
		protected.DELETE("/products/:id", deleteProduct(deps.Admin))
		protected.POST("/products/:id/toggle", toggleProduct(deps.Admin))
		protected.GET("/products/:id/variants", listVariants(deps.Admin))
		protected.PUT("/products/:id/variants", upsertVariants(deps.Admin))
		protected.POST("/uploads", uploadImage(deps.Files))
	}

	return router
}
