package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkravtsov/storefront/internal/models"
)

type CartRepo interface {
	GetCartLines(ctx context.Context, userID uint) ([]models.CartLine, error)
	AddToCart(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, lineID, userID uint, quantity int) (bool, error)
	RemoveLine(ctx context.Context, lineID, userID uint) error
	CartCount(ctx context.Context, userID uint) (uint, error)
}

type CartService struct {
	Repo CartRepo
}

type Cart struct {
	Lines []models.CartLine `json:"lines"`
	Total float64           `json:"total"`
}

func (s *CartService) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	lines, err := s.Repo.GetCartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	return &Cart{Lines: lines, Total: total}, nil
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID, quantity uint) (*models.CartItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("product_id required: %w", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Repo.AddToCart(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity sets the line's quantity; zero or negative removes the
// line. The reported deletion lets the handler distinguish the outcomes.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, lineID uint, quantity int) (deleted bool, err error) {
	deleted, err = s.Repo.UpdateQuantity(ctx, lineID, userID, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("cart line %d: %w", lineID, ErrNotFound)
	}
	return deleted, err
}

func (s *CartService) Remove(ctx context.Context, userID, lineID uint) error {
	return s.Repo.RemoveLine(ctx, lineID, userID)
}

func (s *CartService) Count(ctx context.Context, userID uint) (uint, error) {
	return s.Repo.CartCount(ctx, userID)
}
