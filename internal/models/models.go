package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsAdmin() bool { return r == RoleAdmin }

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Name         string    `gorm:"not null"                 json:"name"`
	Role         Role      `gorm:"not null;default:user"    json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null"                 json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null"                 json:"price"`
	CategoryID  *uint     `gorm:"index"                    json:"category_id"`
	ImageURL    string    `json:"image_url"`
	Stock       uint      `gorm:"not null;default:0"       json:"stock"`
	Rating      float64   `gorm:"not null;default:0"       json:"rating"`
	ReviewCount uint      `gorm:"not null;default:0"       json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"              json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_product;not null" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_user_product;not null" json:"product_id"`
	Quantity  uint      `gorm:"not null;default:1;check:quantity>0"   json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func (CartItem) TableName() string { return "cart_items" }

const OrderStatusPending = "pending"

type Order struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint      `gorm:"index;not null"           json:"user_id"`
	TotalAmount     float64   `gorm:"not null"                 json:"total_amount"`
	Status          string    `gorm:"not null;default:pending" json:"status"`
	PaymentMethod   string    `json:"payment_method"`
	ShippingAddress string    `json:"shipping_address"`
	City            string    `json:"city"`
	Zipcode         string    `json:"zipcode"`
	CreatedAt       time.Time `json:"created_at"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint `gorm:"index;not null"           json:"order_id"`
	ProductID uint `gorm:"not null"                 json:"product_id"`
	Quantity  uint `gorm:"not null"                 json:"quantity"`
	// Price is snapshotted at placement time, decoupled from the product's
	// current price.
	Price float64 `gorm:"not null" json:"price"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	ProductID uint      `gorm:"index;not null"           json:"product_id"`
	Rating    int       `gorm:"not null"                 json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Token     string `gorm:"uniqueIndex;not null"     json:"token"`
	UserID    uint   `gorm:"index;not null"           json:"user_id"`
	ExpiresAt int64  `gorm:"not null"                 json:"expires_at"`
	Revoked   bool   `gorm:"default:false"            json:"revoked"`
}
