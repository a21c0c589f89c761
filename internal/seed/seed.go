package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkravtsov/storefront/internal/hash"
	"github.com/mkravtsov/storefront/internal/models"
)

type seedProduct struct {
	name        string
	description string
	price       float64
	category    uint
	imageURL    string
	stock       uint
}

var categories = []models.Category{
	{Name: "Electronics", Description: "Electronic devices and gadgets"},
	{Name: "Clothing", Description: "Fashion and apparel"},
	{Name: "Books", Description: "Books and literature"},
	{Name: "Home", Description: "Home and garden items"},
	{Name: "Sports", Description: "Sports and outdoor equipment"},
	{Name: "Other", Description: "Miscellaneous items"},
}

var products = []seedProduct{
	{"iPhone 15", "Latest iPhone with advanced features", 999.99, 1, "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=300&h=300&fit=crop", 50},
	{"MacBook Pro", "Powerful laptop for professionals", 1999.99, 1, "https://images.unsplash.com/photo-1541807084-5c52b6b3adef?w=300&h=300&fit=crop", 25},
	{"Samsung Galaxy S24", "Android flagship smartphone", 899.99, 1, "https://images.unsplash.com/photo-1610945415295-d9bbf067e59c?w=300&h=300&fit=crop", 40},
	{"iPad Air", "Versatile tablet for work and play", 599.99, 1, "https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0?w=300&h=300&fit=crop", 35},
	{"Sony WH-1000XM5", "Premium noise-canceling headphones", 349.99, 1, "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300&h=300&fit=crop", 60},
	{"Apple Watch Series 9", "Smartwatch with health features", 399.99, 1, "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=300&h=300&fit=crop", 45},
	{"Dell XPS 13", "Ultrabook laptop", 1299.99, 1, "https://images.unsplash.com/photo-1588872657578-7efd1f1555ed?w=300&h=300&fit=crop", 20},
	{"Google Pixel 8", "Pure Android experience", 699.99, 1, "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=300&h=300&fit=crop", 30},
	{"AirPods Pro", "Wireless earbuds with noise cancellation", 249.99, 1, "https://images.unsplash.com/photo-1606220945770-b5b6c2c9f188?w=300&h=300&fit=crop", 80},
	{"Kindle Paperwhite", "E-reader device", 129.99, 1, "https://images.unsplash.com/photo-1484788984921-03950022c9ef?w=300&h=300&fit=crop", 90},
	{"Logitech MX Master 3", "Wireless mouse", 99.99, 1, "https://images.unsplash.com/photo-1527814050087-3793815479db?w=300&h=300&fit=crop", 55},
	{"Nintendo Switch OLED", "Gaming console", 349.99, 1, "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=300&h=300&fit=crop", 70},
	{"Sony A7 III", "Mirrorless camera", 1999.99, 1, "https://images.unsplash.com/photo-1502920917128-1aa500764cbd?w=300&h=300&fit=crop", 8},
	{"GoPro HERO9", "Action camera", 399.99, 1, "https://images.unsplash.com/photo-1565849904461-04a58ad377e0?w=300&h=300&fit=crop", 25},
	{"Logitech C920", "Webcam", 79.99, 1, "https://images.unsplash.com/photo-1587825140708-dfaf72ae4b04?w=300&h=300&fit=crop", 45},
	{"Nike Air Max", "Comfortable running shoes", 129.99, 2, "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=300&h=300&fit=crop", 100},
	{"Levi's Jeans", "Classic denim jeans", 79.99, 2, "https://images.unsplash.com/photo-1542272604-787c3835535d?w=300&h=300&fit=crop", 75},
	{"Adidas Ultraboost", "Performance running shoes", 189.99, 2, "https://images.unsplash.com/photo-1606107557195-0e29a4b5b4aa?w=300&h=300&fit=crop", 65},
	{"H&M Cotton T-Shirt", "Basic cotton t-shirt", 19.99, 2, "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=300&h=300&fit=crop", 200},
	{"Zara Blazer", "Professional blazer", 89.99, 2, "https://images.unsplash.com/photo-1591047139829-d91aecb6caea?w=300&h=300&fit=crop", 40},
	{"Uniqlo Sweater", "Warm wool sweater", 49.99, 2, "https://images.unsplash.com/photo-1434389677669-e08b4cac3105?w=300&h=300&fit=crop", 85},
	{"Gap Hoodie", "Cotton blend hoodie", 39.99, 2, "https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=300&h=300&fit=crop", 110},
	{"Converse Chuck Taylor", "Classic canvas sneakers", 59.99, 2, "https://images.unsplash.com/photo-1607522370275-f14206abe5d3?w=300&h=300&fit=crop", 120},
	{"Vans Old Skool", "Skate shoes", 64.99, 2, "https://images.unsplash.com/photo-1525966222134-fcfa99b8ae77?w=300&h=300&fit=crop", 85},
	{"North Face Jacket", "Waterproof jacket", 149.99, 2, "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=300&h=300&fit=crop", 40},
	{"The Great Gatsby", "Classic American novel", 12.99, 3, "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=300&h=300&fit=crop", 200},
	{"To Kill a Mockingbird", "Award-winning novel", 14.99, 3, "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=300&h=300&fit=crop", 150},
	{"1984", "Dystopian novel by George Orwell", 13.99, 3, "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?w=300&h=300&fit=crop", 180},
	{"Pride and Prejudice", "Jane Austen classic", 11.99, 3, "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=300&h=300&fit=crop", 160},
	{"The Lord of the Rings", "Epic fantasy trilogy", 29.99, 3, "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=300&h=300&fit=crop", 120},
	{"Dune", "Science fiction classic", 16.99, 3, "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?w=300&h=300&fit=crop", 100},
	{"Atomic Habits", "Self-help book", 18.99, 3, "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?w=300&h=300&fit=crop", 90},
	{"Sapiens", "History of humankind", 19.99, 3, "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=300&h=300&fit=crop", 85},
	{"Project Hail Mary", "Science fiction", 17.99, 3, "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?w=300&h=300&fit=crop", 130},
	{"Dyson V15", "Cordless vacuum cleaner", 649.99, 4, "https://images.unsplash.com/photo-1558317374-067fb5f30001?w=300&h=300&fit=crop", 20},
	{"Instant Pot", "Multi-use pressure cooker", 99.99, 4, "https://images.unsplash.com/photo-1585515320310-259814833e62?w=300&h=300&fit=crop", 55},
	{"Philips Hue Starter Kit", "Smart lighting", 199.99, 4, "https://images.unsplash.com/photo-1558002038-1055907df827?w=300&h=300&fit=crop", 35},
	{"KitchenAid Mixer", "Stand mixer", 379.99, 4, "https://images.unsplash.com/photo-1578643463396-0997cb5328c1?w=300&h=300&fit=crop", 15},
	{"Nespresso Machine", "Coffee maker", 179.99, 4, "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=300&h=300&fit=crop", 45},
	{"Weber Grill", "Charcoal grill", 219.99, 4, "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=300&h=300&fit=crop", 25},
	{"Yoga Mat", "Non-slip exercise mat", 29.99, 5, "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=300&h=300&fit=crop", 150},
	{"Dumbbell Set", "Adjustable dumbbells", 149.99, 5, "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=300&h=300&fit=crop", 40},
	{"Tennis Racket", "Professional tennis racket", 189.99, 5, "https://images.unsplash.com/photo-1554068865-24cecd4e34b8?w=300&h=300&fit=crop", 30},
	{"Basketball", "Official size basketball", 29.99, 5, "https://images.unsplash.com/photo-1546519638-68e109498ffc?w=300&h=300&fit=crop", 95},
	{"Camping Tent", "4-person tent", 199.99, 5, "https://images.unsplash.com/photo-1504280390367-361c6d9f38f4?w=300&h=300&fit=crop", 20},
	{"Gift Card", "Store gift card", 50.00, 6, "https://images.unsplash.com/photo-1549465220-1a8b9238cd48?w=300&h=300&fit=crop", 500},
}

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin123"
)

// Run populates categories, products and the admin user. It is a no-op on
// a database that already has products.
func Run(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range categories {
			if err := tx.Create(&categories[i]).Error; err != nil {
				return fmt.Errorf("seed categories: %w", err)
			}
		}

		for _, p := range products {
			categoryID := p.category
			product := models.Product{
				Name:        p.name,
				Description: p.description,
				Price:       p.price,
				CategoryID:  &categoryID,
				ImageURL:    p.imageURL,
				Stock:       p.stock,
			}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("seed products: %w", err)
			}
		}

		passwordHash, err := hash.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		admin := models.User{
			Email:        adminEmail,
			PasswordHash: passwordHash,
			Name:         "Admin User",
			Role:         models.RoleAdmin,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		return nil
	})
}
