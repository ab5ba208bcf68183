package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return &product, nil
}

// GetProducts returns one page of products ordered by name and the total row count.
func (r *GormRepo) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Order("name ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) ProductNameExists(ctx context.Context, name string) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, duplicateKey(err)
	}
	return prod, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchProducts is the database fallback for product search: a case-insensitive
// substring match on the name.
func (r *GormRepo) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
	where := `LOWER(name) LIKE ? ESCAPE '\'`

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where(where, pattern).
		Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where(where, pattern).
		Order("name ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}
