package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"          json:"id"`
	Email     string    `gorm:"uniqueIndex;not null"          json:"email"`
	Name      string    `gorm:"not null;default:''"           json:"name"`
	CreatedAt time.Time `                                     json:"createdAt"`
}

type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"          json:"id"`
	Name      string    `gorm:"uniqueIndex;not null"          json:"name"`
	Price     int64     `gorm:"not null;check:price >= 0"     json:"price"`
	ImageURL  *string   `gorm:"size:1024"                     json:"image_url"`
	CreatedAt time.Time `                                     json:"createdAt"`
	UpdatedAt time.Time `                                     json:"updatedAt"`
}

// Cart totals are derived from its items and rewritten after every item mutation.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"                            json:"id"`
	OwnerID   *uuid.UUID `gorm:"type:uuid;uniqueIndex"                           json:"ownerId"`
	Subtotal  int64      `gorm:"not null;default:0"                              json:"subtotal"`
	Total     int64      `gorm:"not null;default:0"                              json:"total"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"   json:"cartItems"`
	CreatedAt time.Time  `                                                       json:"createdAt"`
	UpdatedAt time.Time  `                                                       json:"updatedAt"`
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                            json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null" json:"cartId"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null" json:"productId"`
	Quantity  int       `gorm:"not null;check:quantity > 0"                     json:"quantity"`
	Product   *Product  `gorm:"foreignKey:ProductID"                            json:"product,omitempty"`
	CreatedAt time.Time `                                                       json:"createdAt"`
	UpdatedAt time.Time `                                                       json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

// All returns every model in migration order.
func All() []any {
	return []any{&User{}, &Product{}, &Cart{}, &CartItem{}}
}
