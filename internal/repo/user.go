package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
