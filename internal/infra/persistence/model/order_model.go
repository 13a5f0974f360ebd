package model

import (
	"time"

	"github.com/google/uuid"
)

// ShippingAddressJSON is the jsonb shape of an order's shipping address.
type ShippingAddressJSON struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// OrderModel mirrors the 'orders' table. The shipping address is a jsonb
// column; line items live in 'order_items' and are loaded via Preload.
type OrderModel struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status          string              `gorm:"type:varchar(20);not null;default:'pending'"`
	TotalAmount     float64             `gorm:"type:numeric(12,2);not null"`
	ShippingAddress ShippingAddressJSON `gorm:"type:jsonb;serializer:json"`
	PaymentMethod   string              `gorm:"type:varchar(20);not null"`
	PaymentStatus   string              `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentID       string              `gorm:"type:varchar(100)"`
	TrackingNumber  string              `gorm:"type:varchar(32)"`
	CancellationFee *float64            `gorm:"type:numeric(12,2)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []*OrderItemModel `gorm:"foreignKey:OrderID"`
	User  *UserModel        `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Price is the unit price
// at the time the order was placed.
type OrderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
	Price     float64   `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
