// Package lifecycle holds shared constants for process start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds startup probes and graceful shutdown of managed
// resources (HTTP server, database, cache connections).
const DefaultTimeout = 10 * time.Second
