package models

// Read-side rows produced by joined queries.

type ProductWithCategory struct {
	Product
	CategoryName string `json:"category_name"`
}

type ReviewWithUser struct {
	Review
	UserName string `json:"user_name"`
}

type CartLine struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	Quantity    uint    `json:"quantity"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

type OrderSummary struct {
	Order
	ItemCount uint `json:"item_count"`
}

type OrderItemWithProduct struct {
	OrderItem
	ProductName string `json:"product_name"`
	ImageURL    string `json:"image_url"`
}

// ShippingInfo carries the checkout form fields that end up on the order.
// Card details are accepted by the endpoint but never persisted.
type ShippingInfo struct {
	Address       string `json:"address"`
	City          string `json:"city"`
	Zipcode       string `json:"zipcode"`
	PaymentMethod string `json:"payment_method"`
}

type SessionUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}
