package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/models"
)

// ItemResult is the outcome of a cart item mutation. Cart holds the totals
// written in the same transaction.
type ItemResult struct {
	Item    *models.CartItem
	Cart    *models.Cart
	Created bool
	Deleted bool
}

// lockCart checks the cart exists and, on postgres, holds its row lock until
// the transaction ends so mutations of one cart run one at a time.
func lockCart(tx *gorm.DB, cartID uuid.UUID) error {
	q := tx.Model(&models.Cart{}).Select("id").Where("id = ?", cartID)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var cart models.Cart
	if err := q.First(&cart).Error; err != nil {
		return notFound(err, ErrCartNotFound)
	}
	return nil
}

func findItem(tx *gorm.DB, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := tx.Preload("Product").First(&item, "id = ?", itemID).Error; err != nil {
		return nil, notFound(err, ErrItemNotFound)
	}
	return &item, nil
}

// lockItemCart locks the cart owning itemID and reads the item again under the lock.
func lockItemCart(tx *gorm.DB, itemID uuid.UUID) (*models.CartItem, error) {
	item, err := findItem(tx, itemID)
	if err != nil {
		return nil, err
	}
	if err := lockCart(tx, item.CartID); err != nil {
		return nil, err
	}
	return findItem(tx, itemID)
}

func (r *GormRepo) CreateCart(ctx context.Context, cart *models.Cart) error {
	if err := r.DB.WithContext(ctx).Create(cart).Error; err != nil {
		return duplicateKey(err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return nil
}

func (r *GormRepo) GetCart(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Preload("Items", orderItems).Preload("Items.Product").
		First(&cart, "id = ?", cartID).Error; err != nil {
		return nil, notFound(err, ErrCartNotFound)
	}
	return &cart, nil
}

func (r *GormRepo) GetCartByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Preload("Items", orderItems).Preload("Items.Product").
		First(&cart, "owner_id = ?", ownerID).Error; err != nil {
		return nil, notFound(err, ErrCartNotFound)
	}
	return &cart, nil
}

// AddItem increments the (cart, product) item by quantity or creates it. The
// resulting quantity may not exceed models.MaxItemQuantity.
func (r *GormRepo) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*ItemResult, error) {
	if quantity > models.MaxItemQuantity {
		return nil, ErrQuantityLimit
	}

	res := &ItemResult{}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCart(tx, cartID); err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrProductNotFound
		}

		var existing []int
		if err := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Limit(1).Pluck("quantity", &existing).Error; err != nil {
			return err
		}
		current := 0
		if len(existing) > 0 {
			current = existing[0]
		}
		if quantity > models.MaxItemQuantity-current {
			return ErrQuantityLimit
		}

		upd := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			item := models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
			if err := tx.Create(&item).Error; err != nil {
				return duplicateKey(err)
			}
			res.Created = true
		}

		var item models.CartItem
		if err := tx.Preload("Product").
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			First(&item).Error; err != nil {
			return err
		}
		res.Item = &item

		cart, err := recalculateTotals(tx, cartID)
		if err != nil {
			return err
		}
		res.Cart = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SetItemQuantity writes the exact quantity; zero removes the item.
func (r *GormRepo) SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*ItemResult, error) {
	if quantity > models.MaxItemQuantity {
		return nil, ErrQuantityLimit
	}

	res := &ItemResult{}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := lockItemCart(tx, itemID)
		if err != nil {
			return err
		}

		if quantity == 0 {
			if err := tx.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
				return err
			}
			res.Deleted = true
		} else {
			if err := tx.Model(&models.CartItem{}).Where("id = ?", item.ID).
				Update("quantity", quantity).Error; err != nil {
				return err
			}
			item.Quantity = quantity
		}
		res.Item = item

		cart, err := recalculateTotals(tx, item.CartID)
		if err != nil {
			return err
		}
		res.Cart = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *GormRepo) DecrementItem(ctx context.Context, itemID uuid.UUID) (*ItemResult, error) {
	res := &ItemResult{}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := lockItemCart(tx, itemID)
		if err != nil {
			return err
		}

		if item.Quantity <= 1 {
			if err := tx.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
				return err
			}
			item.Quantity = 0
			res.Deleted = true
		} else {
			if err := tx.Model(&models.CartItem{}).Where("id = ?", item.ID).
				Update("quantity", gorm.Expr("quantity - 1")).Error; err != nil {
				return err
			}
			item.Quantity--
		}
		res.Item = item

		cart, err := recalculateTotals(tx, item.CartID)
		if err != nil {
			return err
		}
		res.Cart = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *GormRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) (*ItemResult, error) {
	res := &ItemResult{Deleted: true}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := lockItemCart(tx, itemID)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
			return err
		}
		res.Item = item

		cart, err := recalculateTotals(tx, item.CartID)
		if err != nil {
			return err
		}
		res.Cart = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
