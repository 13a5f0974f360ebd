package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayfastSignature_Deterministic(t *testing.T) {
	fields := []field{
		{"merchant_id", "10042915"},
		{"m_payment_id", "order-123"},
		{"amount", "92000.00"},
		{"passphrase", "hunter2"},
	}

	first := payfastSignature(fields)
	second := payfastSignature(fields)

	assert.Equal(t, first, second)
	assert.Len(t, first, 32) // hex md5
}

func TestPayfastSignature_SkipsEmptyFields(t *testing.T) {
	withEmpty := []field{
		{"merchant_id", "10042915"},
		{"name_last", ""},
		{"amount", "92000.00"},
	}
	withoutEmpty := []field{
		{"merchant_id", "10042915"},
		{"amount", "92000.00"},
	}

	assert.Equal(t, payfastSignature(withoutEmpty), payfastSignature(withEmpty))
}

func TestPayfastSignature_SensitiveToValueAndOrder(t *testing.T) {
	base := []field{{"amount", "92000.00"}, {"m_payment_id", "order-123"}}
	changedValue := []field{{"amount", "92000.01"}, {"m_payment_id", "order-123"}}
	changedOrder := []field{{"m_payment_id", "order-123"}, {"amount", "92000.00"}}

	assert.NotEqual(t, payfastSignature(base), payfastSignature(changedValue))
	assert.NotEqual(t, payfastSignature(base), payfastSignature(changedOrder))
}

func TestPayfastSignature_URLEncodesValues(t *testing.T) {
	plain := []field{{"item_name", "Mobile Shop Order #7"}}
	// Encoding is part of the signed bytes: '#' and ' ' must not pass through raw.
	assert.NotEqual(t, payfastSignature(plain), payfastSignature([]field{{"item_name", "Mobile Shop Order 47"}}))
}

func TestJazzcashSecureHash_Deterministic(t *testing.T) {
	req := &jazzcashRequest{
		Version:       "1.1",
		TxnType:       "MWALLET",
		Language:      "EN",
		MerchantID:    "MC10001",
		Password:      "pw",
		TxnRefNo:      "order-123",
		Amount:        "9200000",
		TxnCurrency:   "PKR",
		TxnDateTime:   "20260829120000",
		BillReference: "order-123",
		Description:   "Payment for Order #order-123",
		TxnExpiryTime: "20260829123000",
		ReturnURL:     "http://localhost:8080/payment/callback",
	}

	first := jazzcashSecureHash("apikey", "salt", req)
	second := jazzcashSecureHash("apikey", "salt", req)

	require.Equal(t, first, second)
	assert.Len(t, first, 64) // hex sha256

	req.Amount = "9200001"
	assert.NotEqual(t, first, jazzcashSecureHash("apikey", "salt", req))
}
