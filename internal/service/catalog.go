package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkravtsov/storefront/internal/models"
)

type CatalogRepo interface {
	ListProducts(ctx context.Context, search string, categoryID *uint) ([]models.ProductWithCategory, error)
	FeaturedProducts(ctx context.Context, limit int) ([]models.ProductWithCategory, error)
	GetProduct(ctx context.Context, id uint) (*models.ProductWithCategory, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListReviews(ctx context.Context, productID uint) ([]models.ReviewWithUser, error)
	CreateReview(ctx context.Context, review *models.Review) error
}

type CatalogService struct {
	Repo CatalogRepo
}

type ProductListing struct {
	Products   []models.ProductWithCategory `json:"products"`
	Categories []models.Category            `json:"categories"`
}

func (s *CatalogService) List(ctx context.Context, search string, categoryID *uint) (*ProductListing, error) {
	products, err := s.Repo.ListProducts(ctx, search, categoryID)
	if err != nil {
		return nil, err
	}
	categories, err := s.Repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductListing{Products: products, Categories: categories}, nil
}

func (s *CatalogService) Featured(ctx context.Context) ([]models.ProductWithCategory, error) {
	return s.Repo.FeaturedProducts(ctx, 4)
}

type ProductDetail struct {
	Product models.ProductWithCategory `json:"product"`
	Reviews []models.ReviewWithUser    `json:"reviews"`
}

func (s *CatalogService) Detail(ctx context.Context, productID uint) (*ProductDetail, error) {
	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}
	reviews, err := s.Repo.ListReviews(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Product: *product, Reviews: reviews}, nil
}

func (s *CatalogService) AddReview(ctx context.Context, userID, productID uint, rating int, comment string) (*models.Review, error) {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.Repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
