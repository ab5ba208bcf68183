package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) CreateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.create")

	var req transport.CreateCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.CreateCart(ctx, req.OwnerID)
	if err != nil {
		return serviceError(l, "create_cart", err)
	}

	l.Info("create_cart_success", "cartID", cart.ID)
	return c.JSON(http.StatusCreated, cart)
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_cart_error", "status", 400, "reason", "id is not uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not uuid")
	}

	cart, err := h.Svc.GetCart(ctx, id)
	if err != nil {
		return serviceError(l, "get_cart", err)
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) GetCartByUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_by_user")

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		l.Warn("get_cart_by_user_error", "status", 400, "reason", "userId is not uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "userId is not uuid")
	}

	cart, err := h.Svc.GetCartByOwner(ctx, userID)
	if err != nil {
		return serviceError(l, "get_cart_by_user", err)
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("add_item_error", "status", 400, "reason", "id is not uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not uuid")
	}

	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		l.Warn("add_item_error", "status", 400, "reason", "productId is not uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "productId is not uuid")
	}

	res, err := h.Svc.AddItem(ctx, cartID, productID, req.Quantity)
	if err != nil {
		return serviceError(l, "add_item", err)
	}

	if res.Created {
		l.Info("add_item_success", "itemID", res.Item.ID, "created", true)
		return c.JSON(http.StatusCreated, res.Item)
	}
	l.Info("add_item_success", "itemID", res.Item.ID, "created", false)
	return c.JSON(http.StatusOK, res.Item)
}

func (h *CartHTTP) SetItemQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.set_quantity")

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("set_quantity_error", "status", 400, "reason", "id is not uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not uuid")
	}

	var req transport.SetQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_quantity_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("set_quantity_error", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.Svc.SetItemQuantity(ctx, itemID, *req.Quantity)
	if err != nil {
		return serviceError(l, "set_quantity", err)
	}

	if res.Deleted {
		l.Info("set_quantity_success", "itemID", itemID, "deleted", true)
		return c.NoContent(http.StatusNoContent)
	}
	l.Info("set_quantity_success", "itemID", itemID, "quantity", res.Item.Quantity)
	return c.JSON(http.StatusOK, res.Item)
}

func (h *CartHTTP) DecrementItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.decrement")

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("decrement_item_error", "status", 400, "reason", "id is not uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not uuid")
	}

	res, err := h.Svc.DecrementItem(ctx, itemID)
	if err != nil {
		return serviceError(l, "decrement_item", err)
	}

	if res.Deleted {
		l.Info("decrement_item_success", "itemID", itemID, "deleted", true)
		return c.NoContent(http.StatusNoContent)
	}
	l.Info("decrement_item_success", "itemID", itemID, "quantity", res.Item.Quantity)
	return c.JSON(http.StatusOK, res.Item)
}

func (h *CartHTTP) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete_item")

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_item_error", "status", 400, "reason", "id is not uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not uuid")
	}

	if err := h.Svc.DeleteItem(ctx, itemID); err != nil {
		return serviceError(l, "delete_item", err)
	}

	l.Info("delete_item_success", "itemID", itemID)
	return c.NoContent(http.StatusNoContent)
}
