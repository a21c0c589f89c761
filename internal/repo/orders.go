package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mkravtsov/storefront/internal/models"
)

// ErrEmptyCart is returned by PlaceOrder when the user has nothing to order.
var ErrEmptyCart = errors.New("cart is empty")

type checkoutLine struct {
	ProductID   uint
	Quantity    uint
	Price       float64
	ProductName string
}

func (r *GormRepo) checkoutLines(tx *gorm.DB, userID uint) ([]checkoutLine, error) {
	var lines []checkoutLine
	err := tx.Model(&models.CartItem{}).
		Select("cart_items.product_id, cart_items.quantity, products.price, products.name AS product_name").
		Joins("JOIN products ON cart_items.product_id = products.id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id ASC").
		Find(&lines).Error
	return lines, err
}

// PlaceOrder converts the user's cart into an order inside a single
// transaction. Stock is taken with a conditional decrement, so two
// concurrent placements can never both succeed against insufficient stock;
// the first failing line rolls back every write.
func (r *GormRepo) PlaceOrder(ctx context.Context, userID uint, info models.ShippingInfo) (*models.Order, []models.OrderItem, error) {
	var (
		order models.Order
		items []models.OrderItem
	)

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := r.checkoutLines(tx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		var total float64
		for _, line := range lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				Update("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &StockError{ProductName: line.ProductName}
			}
			total += float64(line.Quantity) * line.Price
		}

		order = models.Order{
			UserID:          userID,
			TotalAmount:     total,
			Status:          models.OrderStatusPending,
			PaymentMethod:   info.PaymentMethod,
			ShippingAddress: info.Address,
			City:            info.City,
			Zipcode:         info.Zipcode,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		items = make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &order, items, nil
}

func (r *GormRepo) GetOrderForUser(ctx context.Context, orderID, userID uint) (*models.Order, []models.OrderItemWithProduct, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, nil, err
	}

	var items []models.OrderItemWithProduct
	err = r.DB.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("order_items.*, products.name AS product_name, products.image_url").
		Joins("JOIN products ON order_items.product_id = products.id").
		Where("order_items.order_id = ?", orderID).
		Find(&items).Error
	if err != nil {
		return nil, nil, err
	}
	return &order, items, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint) ([]models.OrderSummary, error) {
	var orders []models.OrderSummary
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("orders.*, COUNT(order_items.id) AS item_count").
		Joins("LEFT JOIN order_items ON orders.id = order_items.order_id").
		Where("orders.user_id = ?", userID).
		Group("orders.id").
		Order("orders.created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
