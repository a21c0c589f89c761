package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mkravtsov/storefront/internal/models"
)

const productWithCategory = "products.*, categories.name AS category_name"

func (r *GormRepo) ListProducts(ctx context.Context, search string, categoryID *uint) ([]models.ProductWithCategory, error) {
	q := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Select(productWithCategory).
		Joins("LEFT JOIN categories ON products.category_id = categories.id")

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			r.DB.Where("LOWER(products.name) LIKE ?", pattern).
				Or("LOWER(products.description) LIKE ?", pattern),
		)
	}
	if categoryID != nil {
		q = q.Where("products.category_id = ?", *categoryID)
	}

	var rows []models.ProductWithCategory
	if err := q.Order("products.id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) FeaturedProducts(ctx context.Context, limit int) ([]models.ProductWithCategory, error) {
	var rows []models.ProductWithCategory
	err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Select(productWithCategory).
		Joins("LEFT JOIN categories ON products.category_id = categories.id").
		Order("products.id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.ProductWithCategory, error) {
	var row models.ProductWithCategory
	err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Select(productWithCategory).
		Joins("LEFT JOIN categories ON products.category_id = categories.id").
		Where("products.id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormRepo) ListReviews(ctx context.Context, productID uint) ([]models.ReviewWithUser, error) {
	var rows []models.ReviewWithUser
	err := r.DB.WithContext(ctx).
		Model(&models.Review{}).
		Select("reviews.*, users.name AS user_name").
		Joins("LEFT JOIN users ON reviews.user_id = users.id").
		Where("reviews.product_id = ?", productID).
		Order("reviews.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateReview inserts the review and refreshes the product's denormalized
// rating and review_count in the same transaction.
func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).
			Where("id = ?", review.ProductID).
			Updates(map[string]interface{}{
				"rating": gorm.Expr(
					"(SELECT AVG(rating) FROM reviews WHERE product_id = ?)",
					review.ProductID,
				),
				"review_count": gorm.Expr(
					"(SELECT COUNT(*) FROM reviews WHERE product_id = ?)",
					review.ProductID,
				),
			}).Error
	})
}

func (r *GormRepo) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) UpdateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Save(product).Error
}

func (r *GormRepo) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}
