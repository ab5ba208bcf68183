package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *CartService) cartEvent(ctx context.Context, typ string, res *repo.ItemResult) {
	ev := events.CartEvent{
		Type:      typ,
		CartID:    res.Cart.ID,
		ItemID:    &res.Item.ID,
		ProductID: &res.Item.ProductID,
		Subtotal:  res.Cart.Subtotal,
		Total:     res.Cart.Total,
		At:        time.Now().UTC(),
	}
	if !res.Deleted {
		ev.Quantity = res.Item.Quantity
	}
	publish(ctx, s.Events, events.TopicCart, res.Cart.ID.String(), ev)
}

// CreateCart creates an empty cart, optionally bound to an existing user that
// owns no cart yet.
func (s *CartService) CreateCart(ctx context.Context, ownerID *uuid.UUID) (*models.Cart, error) {
	cart := &models.Cart{}

	if ownerID != nil {
		if *ownerID == uuid.Nil {
			return nil, fmt.Errorf("ownerId must not be nil uuid: %w", ErrValidation)
		}
		ok, err := s.Repo.UserExists(ctx, *ownerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, translate(repo.ErrUserNotFound)
		}

		_, err = s.Repo.GetCartByOwner(ctx, *ownerID)
		switch {
		case err == nil:
			return nil, fmt.Errorf("user already has a cart: %w", ErrConflict)
		case !errors.Is(err, repo.ErrCartNotFound):
			return nil, err
		}

		owner := *ownerID
		cart.OwnerID = &owner
	}

	if err := s.Repo.CreateCart(ctx, cart); err != nil {
		if errors.Is(translate(err), ErrConflict) {
			return nil, fmt.Errorf("user already has a cart: %w", ErrConflict)
		}
		return nil, err
	}

	publish(ctx, s.Events, events.TopicCart, cart.ID.String(), events.CartEvent{
		Type:   events.CartCreated,
		CartID: cart.ID,
		At:     time.Now().UTC(),
	})
	return cart, nil
}

func (s *CartService) GetCart(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	cart, err := s.Repo.GetCart(ctx, cartID)
	if err != nil {
		return nil, translate(err)
	}
	return cart, nil
}

func (s *CartService) GetCartByOwner(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	ok, err := s.Repo.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, translate(repo.ErrUserNotFound)
	}

	cart, err := s.Repo.GetCartByOwner(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*repo.ItemResult, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("productId must not be nil: %w", ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}
	if quantity > models.MaxItemQuantity {
		return nil, fmt.Errorf("quantity must not exceed %d: %w", models.MaxItemQuantity, ErrValidation)
	}

	res, err := s.Repo.AddItem(ctx, cartID, productID, quantity)
	if err != nil {
		return nil, translate(err)
	}

	typ := events.CartItemUpdated
	if res.Created {
		typ = events.CartItemAdded
	}
	s.cartEvent(ctx, typ, res)
	return res, nil
}

func (s *CartService) SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*repo.ItemResult, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative: %w", ErrValidation)
	}
	if quantity > models.MaxItemQuantity {
		return nil, fmt.Errorf("quantity must not exceed %d: %w", models.MaxItemQuantity, ErrValidation)
	}

	res, err := s.Repo.SetItemQuantity(ctx, itemID, quantity)
	if err != nil {
		return nil, translate(err)
	}

	typ := events.CartItemUpdated
	if res.Deleted {
		typ = events.CartItemRemoved
	}
	s.cartEvent(ctx, typ, res)
	return res, nil
}

func (s *CartService) DecrementItem(ctx context.Context, itemID uuid.UUID) (*repo.ItemResult, error) {
	res, err := s.Repo.DecrementItem(ctx, itemID)
	if err != nil {
		return nil, translate(err)
	}

	typ := events.CartItemUpdated
	if res.Deleted {
		typ = events.CartItemRemoved
	}
	s.cartEvent(ctx, typ, res)
	return res, nil
}

func (s *CartService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	res, err := s.Repo.DeleteItem(ctx, itemID)
	if err != nil {
		return translate(err)
	}

	s.cartEvent(ctx, events.CartItemRemoved, res)
	return nil
}
