package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProductCondition describes the physical state of a listed handset.
type ProductCondition string

const (
	ConditionNew         ProductCondition = "new"
	ConditionUsed        ProductCondition = "used"
	ConditionRefurbished ProductCondition = "refurbished"
)

// Product is a mobile phone listing. StockQuantity is the only field the
// order lifecycle mutates: it is reserved (decremented) at order creation
// and restored at cancellation, and never drops below zero.
type Product struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	OriginalPrice  *float64          `json:"original_price,omitempty"`
	Brand          string            `json:"brand"`
	Model          string            `json:"model"`
	Storage        string            `json:"storage"`
	Color          string            `json:"color"`
	Condition      ProductCondition  `json:"condition"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
	StockQuantity  int               `json:"stock_quantity"`
	Category       string            `json:"category"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// InStock reports whether at least the requested quantity is available.
func (p *Product) InStock(quantity int) bool {
	return p.StockQuantity >= quantity
}
