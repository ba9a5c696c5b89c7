// Package types provides shared value types used across the enterprise
// SDK, most notably the HealthStatus reported by plugins.
package types
