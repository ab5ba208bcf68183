package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// translate maps repository errors onto the service sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrCartNotFound):
		return fmt.Errorf("cart not found: %w", ErrNotFound)
	case errors.Is(err, repo.ErrItemNotFound):
		return fmt.Errorf("cart item not found: %w", ErrNotFound)
	case errors.Is(err, repo.ErrProductNotFound):
		return fmt.Errorf("product not found: %w", ErrNotFound)
	case errors.Is(err, repo.ErrUserNotFound):
		return fmt.Errorf("user not found: %w", ErrNotFound)
	case errors.Is(err, repo.ErrQuantityLimit):
		return fmt.Errorf("quantity must not exceed %d: %w", models.MaxItemQuantity, ErrValidation)
	case errors.Is(err, models.ErrTotalsOverflow):
		return fmt.Errorf("cart total is too large: %w", ErrValidation)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("record not found: %w", ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("already exists: %w", ErrConflict)
	}
	return err
}
