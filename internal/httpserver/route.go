package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/middleware/auth"
)

type Deps struct {
	CartHandler    *CartHTTP
	CatalogHandler *CatalogHTTP
	// JWTSecret enables the admin guard on product creation when non-empty.
	JWTSecret []byte
	// Ready reports whether the backing stores are reachable.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		if err := d.Ready(c.Request().Context()); err != nil {
			logging.FromContext(c.Request().Context()).Warn("readiness_error", "status", 503, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")

	cart := api.Group("/cart")
	cart.POST("", d.CartHandler.CreateCart)
	cart.GET("/by-user/:userId", d.CartHandler.GetCartByUser)
	cart.GET("/:id", d.CartHandler.GetCart)
	cart.PATCH("/:id", d.CartHandler.SetItemQuantity)
	cart.PATCH("/:id/decrement", d.CartHandler.DecrementItem)
	cart.DELETE("/:id", d.CartHandler.DeleteItem)
	cart.POST("/:id/add-item", d.CartHandler.AddItem)

	products := api.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	if len(d.JWTSecret) > 0 {
		products.POST("", d.CatalogHandler.CreateProduct, auth.RequireAdmin(d.JWTSecret))
	} else {
		products.POST("", d.CatalogHandler.CreateProduct)
	}
}
