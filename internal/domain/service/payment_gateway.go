// Package service defines interfaces for external collaborators consumed by
// the use case layer (payment gateways, tracking number generation).
package service

import "context"

// CustomerInfo identifies the paying customer to the gateway.
type CustomerInfo struct {
	Name  string
	Email string
	Phone string
}

// CardInfo carries the card details entered at checkout. Validate with the
// predicates in internal/domain/payment before ever building a request.
type CardInfo struct {
	Number      string
	ExpiryMonth string
	ExpiryYear  string
	CVV         string
	Name        string
}

// BillingAddress is the billing destination sent to the gateway.
type BillingAddress struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

// PaymentRequest is the gateway-neutral payment instruction. Amount is in
// PKR; each adapter encodes it the way its wire protocol expects.
type PaymentRequest struct {
	Amount   float64
	Currency string
	OrderID  string
	Customer CustomerInfo
	Card     CardInfo
	Billing  BillingAddress
}

// PaymentResponse is the gateway-neutral outcome. Success=false with a nil
// transport error is a declined payment, not a system failure.
type PaymentResponse struct {
	Success       bool
	TransactionID string
	Error         string
	Message       string
}

// PaymentGateway normalizes the configured external payment provider behind
// a single contract. Which provider backs the instance is decided once at
// construction from configuration, never per call.
type PaymentGateway interface {
	// ProcessPayment dispatches a payment and interprets the provider's
	// own success code into a normalized response.
	ProcessPayment(ctx context.Context, req *PaymentRequest) (*PaymentResponse, error)

	// VerifyPayment checks the state of a previously initiated payment.
	VerifyPayment(ctx context.Context, transactionID string) (*PaymentResponse, error)

	// RefundPayment refunds a captured payment, fully or partially.
	RefundPayment(ctx context.Context, transactionID string, amount float64) (*PaymentResponse, error)
}
