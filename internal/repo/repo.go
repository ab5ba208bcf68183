package repo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound    = fmt.Errorf("cart: %w", gorm.ErrRecordNotFound)
	ErrItemNotFound    = fmt.Errorf("cart item: %w", gorm.ErrRecordNotFound)
	ErrProductNotFound = fmt.Errorf("product: %w", gorm.ErrRecordNotFound)
	ErrUserNotFound    = fmt.Errorf("user: %w", gorm.ErrRecordNotFound)

	ErrQuantityLimit = errors.New("cart item quantity limit exceeded")
)

type GormRepo struct {
	DB *gorm.DB
}

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// duplicateKey normalizes unique violations to gorm.ErrDuplicatedKey. The pgx
// dialector translates them itself; lib/pq and sqlite errors may arrive raw.
func duplicateKey(err error) error {
	if err == nil || errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", gorm.ErrDuplicatedKey, pqErr.Message)
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %s", gorm.ErrDuplicatedKey, err)
	}
	return err
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
