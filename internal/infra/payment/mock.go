package payment

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain/service"
)

const mockSuccessRate = 0.9

const txnAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// mockOutcomes simulates a gateway for development and for non-production
// fallback when the real provider is unreachable.
type mockOutcomes struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newMockOutcomes() *mockOutcomes {
	return &mockOutcomes{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// outcome succeeds with probability 0.9 and returns a synthetic transaction
// id carrying the given prefix, or fails with a fixed message.
func (m *mockOutcomes) outcome(prefix string) *service.PaymentResponse {
	m.mu.Lock()
	success := m.rng.Float64() < mockSuccessRate
	suffix := m.randomSuffix(9)
	m.mu.Unlock()

	if !success {
		return &service.PaymentResponse{
			Success: false,
			Error:   "Payment failed",
			Message: "Your payment could not be processed. Please try again.",
		}
	}

	return &service.PaymentResponse{
		Success:       true,
		TransactionID: fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix),
		Message:       "Payment processed successfully (Mock)",
	}
}

func (m *mockOutcomes) randomSuffix(n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(txnAlphabet[m.rng.Intn(len(txnAlphabet))])
	}

	return b.String()
}
