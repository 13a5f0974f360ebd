// Package delivery defines the contract every transport entrypoint
// (HTTP server, future workers) exposes to the application runner.
package delivery

import "context"

// Delivery is a long-running transport serving requests until the context
// is cancelled or the fx lifecycle stops it.
type Delivery interface {
	Serve(ctx context.Context) error
}
