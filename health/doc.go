// Package health provides reusable health check functions for plugin
// variants. It offers standardized ways to verify provider reachability
// without each variant reimplementing the probing logic.
package health
