package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mkravtsov/storefront/internal/models"
)

func (r *GormRepo) GetCartLines(ctx context.Context, userID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Select("cart_items.id, cart_items.product_id, cart_items.quantity, products.name AS product_name, products.price, products.image_url").
		Joins("JOIN products ON cart_items.product_id = products.id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// AddToCart increments the existing (user, product) line or inserts a new
// one, atomically.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
				First(item).Error
		}
		return tx.Create(item).Error
	})
}

// UpdateQuantity sets the line's quantity, deleting the line when the new
// quantity drops to zero or below. The line must belong to the user.
func (r *GormRepo) UpdateQuantity(ctx context.Context, lineID, userID uint, quantity int) (deleted bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		if err := tx.Where("id = ? AND user_id = ?", lineID, userID).First(&item).Error; err != nil {
			return err
		}
		if quantity <= 0 {
			deleted = true
			return tx.Delete(&item).Error
		}
		return tx.Model(&item).Update("quantity", quantity).Error
	})
	return deleted, err
}

// RemoveLine deletes the line if it belongs to the user. Removing a line
// that no longer exists is a no-op.
func (r *GormRepo) RemoveLine(ctx context.Context, lineID, userID uint) error {
	return r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&models.CartItem{}).Error
}

func (r *GormRepo) CartCount(ctx context.Context, userID uint) (uint, error) {
	var count *uint
	err := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Select("SUM(quantity)").
		Where("user_id = ?", userID).
		Scan(&count).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	if count == nil {
		return 0, nil
	}
	return *count, nil
}
