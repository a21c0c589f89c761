package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkravtsov/storefront/internal/models"
	"github.com/mkravtsov/storefront/internal/repo"
)

type OrderRepo interface {
	GetCartLines(ctx context.Context, userID uint) ([]models.CartLine, error)
	PlaceOrder(ctx context.Context, userID uint, info models.ShippingInfo) (*models.Order, []models.OrderItem, error)
	GetOrderForUser(ctx context.Context, orderID, userID uint) (*models.Order, []models.OrderItemWithProduct, error)
	ListOrders(ctx context.Context, userID uint) ([]models.OrderSummary, error)
}

type OrderService struct {
	Repo OrderRepo
}

// Checkout returns the cart snapshot rendered on the checkout page.
func (s *OrderService) Checkout(ctx context.Context, userID uint) (*Cart, error) {
	lines, err := s.Repo.GetCartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	return &Cart{Lines: lines, Total: total}, nil
}

func (s *OrderService) Place(ctx context.Context, userID uint, info models.ShippingInfo) (*models.Order, []models.OrderItem, error) {
	if info.Address == "" || info.City == "" || info.Zipcode == "" {
		return nil, nil, fmt.Errorf("shipping address, city and zipcode required: %w", ErrValidation)
	}

	order, items, err := s.Repo.PlaceOrder(ctx, userID, info)
	if err != nil {
		if errors.Is(err, repo.ErrEmptyCart) {
			return nil, nil, ErrEmptyCart
		}
		var stockErr *repo.StockError
		if errors.As(err, &stockErr) {
			return nil, nil, fmt.Errorf("%s: %w", stockErr.ProductName, ErrInsufficientStock)
		}
		return nil, nil, err
	}
	return order, items, nil
}

type OrderDetail struct {
	Order models.Order                  `json:"order"`
	Items []models.OrderItemWithProduct `json:"items"`
}

// Details returns an order only when it belongs to the user; the
// confirmation page goes through the same check.
func (s *OrderService) Details(ctx context.Context, orderID, userID uint) (*OrderDetail, error) {
	order, items, err := s.Repo.GetOrderForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil, err
	}
	return &OrderDetail{Order: *order, Items: items}, nil
}

func (s *OrderService) History(ctx context.Context, userID uint) ([]models.OrderSummary, error) {
	return s.Repo.ListOrders(ctx, userID)
}
