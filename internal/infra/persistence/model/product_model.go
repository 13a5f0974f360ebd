package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. Images and Specifications are
// stored as jsonb columns via the GORM JSON serializer.
type ProductModel struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name           string            `gorm:"type:varchar(255);not null"`
	Brand          string            `gorm:"type:varchar(100);not null;index"`
	Model          string            `gorm:"type:varchar(100)"`
	Storage        string            `gorm:"type:varchar(50)"`
	Color          string            `gorm:"type:varchar(50)"`
	Category       string            `gorm:"type:varchar(100);index"`
	Description    string            `gorm:"type:text"`
	Price          float64           `gorm:"type:numeric(12,2);not null"`
	OriginalPrice  *float64          `gorm:"type:numeric(12,2)"`
	StockQuantity  int               `gorm:"not null;default:0"`
	Condition      string            `gorm:"type:varchar(20);not null;default:'new'"`
	Images         []string          `gorm:"type:jsonb;serializer:json"`
	Specifications map[string]string `gorm:"type:jsonb;serializer:json"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
