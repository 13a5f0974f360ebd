// Package tracking generates shipment tracking labels for outgoing orders.
package tracking

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain/service"
)

const (
	prefix         = "MS"
	randomLength   = 4
	randomAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator returns the tracking number generator used when an order
// first transitions into shipped.
func NewGenerator() service.TrackingNumberGenerator {
	return &generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// Generate produces "MS" + the last 6 digits of the current unix-millis +
// 4 random uppercase alphanumerics. Two shipments labelled within the same
// millisecond can collide on the time part and, rarely, on the random
// suffix too; the label is for display and carrier lookup, not identity.
func (g *generator) Generate() string {
	millis := strconv.FormatInt(g.now().UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}

	var suffix strings.Builder
	suffix.Grow(randomLength)
	g.mu.Lock()
	for range randomLength {
		suffix.WriteByte(randomAlphabet[g.rng.Intn(len(randomAlphabet))])
	}
	g.mu.Unlock()

	return prefix + millis + suffix.String()
}
