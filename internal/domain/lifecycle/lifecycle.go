// Package lifecycle holds shared start/stop settings.
package lifecycle

import "time"

// DefaultTimeout bounds fx start/stop hooks such as DB pings and server shutdown.
const DefaultTimeout = 10 * time.Second
