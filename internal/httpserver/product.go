package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "id is not uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not uuid")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return serviceError(l, "get_product", err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	page, err := util.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))
	if err != nil {
		l.Warn("get_products_error", "status", 400, "reason", "invalid pagination", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	total, items, err := h.Svc.GetProducts(ctx, page)
	if err != nil {
		return serviceError(l, "get_products", err)
	}

	l.Info("get_products_success", "page", page.Number, "limit", page.Limit, "total", total)
	return c.JSON(http.StatusOK, transport.ProductsResponse{Products: items, TotalCount: total})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page, err := util.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))
	if err != nil {
		l.Warn("search_products_error", "status", 400, "reason", "invalid pagination", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	total, items, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), page)
	if err != nil {
		return serviceError(l, "search_products", err)
	}

	return c.JSON(http.StatusOK, transport.ProductsResponse{Products: items, TotalCount: total})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return serviceError(l, "create_product", err)
	}

	l.Info("create_product_success", "productID", product.ID)
	return c.JSON(http.StatusCreated, product)
}
