package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCancellationFee_Tiers(t *testing.T) {
	tests := []struct {
		name        string
		totalAmount float64
		want        float64
	}{
		{"small order", 10000, 3000},
		{"just below first boundary", 49999, 3000},
		{"first boundary", 50000, 5000},
		{"just below second boundary", 79999, 5000},
		{"second boundary", 80000, 8000},
		{"just below third boundary", 149999, 8000},
		{"third boundary", 150000, 10000},
		{"flagship order", 400000, 10000},
		{"zero total", 0, 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CancellationFee(tt.totalAmount))
		})
	}
}

func TestOrder_IsCancellable(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{OrderStatusPending, true},
		{OrderStatusConfirmed, true},
		{OrderStatusProcessing, true},
		{OrderStatusShipped, false},
		{OrderStatusDelivered, false},
		{OrderStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			order := &Order{Status: tt.status}
			assert.Equal(t, tt.want, order.IsCancellable())
		})
	}
}

func TestProduct_InStock(t *testing.T) {
	p := &Product{StockQuantity: 3}

	assert.True(t, p.InStock(1))
	assert.True(t, p.InStock(3))
	assert.False(t, p.InStock(4))
}
