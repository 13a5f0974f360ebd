// Package lifecycle holds shared constants for application start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown of managed resources
// (database pool ping, HTTP server drain).
const DefaultTimeout = 10 * time.Second
