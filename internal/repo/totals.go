package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("cart_items.created_at ASC, cart_items.id ASC")
}

// recalculateTotals reloads the cart with its items and products, rewrites
// subtotal and total, and returns the refreshed cart. It must run in the same
// transaction as the item mutation it follows.
func recalculateTotals(tx *gorm.DB, cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Preload("Items", orderItems).Preload("Items.Product").
		First(&cart, "id = ?", cartID).Error; err != nil {
		return nil, notFound(err, ErrCartNotFound)
	}

	subtotal, total, err := models.CalculateTotals(cart.Items)
	if err != nil {
		return nil, err
	}

	if err := tx.Model(&models.Cart{}).Where("id = ?", cartID).
		Updates(map[string]any{"subtotal": subtotal, "total": total}).Error; err != nil {
		return nil, err
	}

	cart.Subtotal = subtotal
	cart.Total = total
	return &cart, nil
}

func (r *GormRepo) RecalculateTotals(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	var cart *models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCart(tx, cartID); err != nil {
			return err
		}
		var err error
		cart, err = recalculateTotals(tx, cartID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}
