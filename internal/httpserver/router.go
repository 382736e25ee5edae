package httpserver

import (
	"context"
	"net/http"
	"time"

	"azharstore/internal/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// buildRouter wires every route group: public storefront, cart, checkout,
// admin and delivery staff.
func buildRouter(logger zerolog.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.CORSOrigins) == 1 && deps.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = deps.CORSOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Cart-Owner")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/auth/login", loginHandler(deps))

		api.GET("/products", listProductsHandler(deps))
		api.GET("/products/:id", getProductHandler(deps))
		api.GET("/categories", listCategoriesHandler(deps))
		api.GET("/categories/:id", getCategoryHandler(deps))
		api.GET("/delivery-areas", listAreasHandler(deps))
		api.GET("/settings", getSettingsHandler(deps))
		api.POST("/orders", createOrderHandler(deps))

		cartGroup := api.Group("/cart")
		{
			cartGroup.GET("", getCartHandler(deps))
			cartGroup.DELETE("", clearCartHandler(deps))
			cartGroup.POST("/items", addCartItemHandler(deps))
			cartGroup.PUT("/items", updateCartItemHandler(deps))
			cartGroup.DELETE("/items", removeCartItemHandler(deps))
		}

		co := api.Group("/checkout")
		{
			co.POST("", openCheckoutHandler(deps))
			co.GET("/:id", getCheckoutHandler(deps))
			co.DELETE("/:id", closeCheckoutHandler(deps))
			co.PUT("/:id/customer", checkoutCustomerHandler(deps))
			co.PUT("/:id/method", checkoutMethodHandler(deps))
			co.PUT("/:id/area", checkoutAreaHandler(deps))
			co.POST("/:id/next", checkoutNextHandler(deps))
			co.POST("/:id/back", checkoutBackHandler(deps))
			co.POST("/:id/submit", checkoutSubmitHandler(deps))
		}

		admin := api.Group("/admin", requireSubject(deps.Auth))
		{
			admin.POST("/products", createProductHandler(deps))
			admin.PUT("/products/:id", updateProductHandler(deps))
			admin.DELETE("/products/:id", deleteProductHandler(deps))

			admin.POST("/categories", createCategoryHandler(deps))
			admin.PUT("/categories/:id", updateCategoryHandler(deps))
			admin.DELETE("/categories/:id", deleteCategoryHandler(deps))

			admin.POST("/customers", createCustomerHandler(deps))
			admin.GET("/customers", listCustomersHandler(deps))
			admin.GET("/customers/:id", getCustomerHandler(deps))
			admin.PUT("/customers/:id", updateCustomerHandler(deps))
			admin.DELETE("/customers/:id", deleteCustomerHandler(deps))

			admin.POST("/delivery-areas", createAreaHandler(deps))
			admin.PUT("/delivery-areas/:id", updateAreaHandler(deps))
			admin.DELETE("/delivery-areas/:id", deleteAreaHandler(deps))

			admin.POST("/orders", createOrderHandler(deps))
			admin.GET("/orders", listOrdersHandler(deps))
			admin.GET("/orders/:id", getOrderHandler(deps))
			admin.PATCH("/orders/:id/status", updateOrderStatusHandler(deps))
			admin.DELETE("/orders/:id", deleteOrderHandler(deps))

			admin.PUT("/settings", updateSettingsHandler(deps))
			admin.PUT("/system/delivery-password", updateDeliveryPasswordHandler(deps))
		}

		delivery := api.Group("/delivery", requireSubject(deps.Auth, auth.SubjectDelivery))
		{
			delivery.GET("/orders", listOrdersHandler(deps))
			delivery.GET("/orders/:id", getOrderHandler(deps))
			delivery.PATCH("/orders/:id/status", updateOrderStatusHandler(deps))
		}
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
