package transport

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
)

type CreateCartRequest struct {
	OwnerID *uuid.UUID `json:"ownerId"`
}

type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"gt=0,lte=10000"`
}

// SetQuantityRequest carries the exact quantity; zero removes the item.
// The lte bound matches models.MaxItemQuantity.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=10000"`
}

type CreateProductRequest struct {
	Name     string  `json:"name"      validate:"required,max=200"`
	Price    *int64  `json:"price"     validate:"required,gte=0"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
}

type ProductsResponse struct {
	Products   []models.Product `json:"products"`
	TotalCount int64            `json:"totalCount"`
}
