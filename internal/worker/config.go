// Package worker provides background job processing for AutoCare.
package worker

import (
	"time"
)

// ReconcileConfig holds configuration for the maintenance reconcile job.
type ReconcileConfig struct {
	// Concurrency is the number of vehicles reconciled in parallel.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for reconciling one vehicle.
	// Default: 30 seconds
	Timeout time.Duration
}

// DefaultReconcileConfig returns the default reconcile configuration.
func DefaultReconcileConfig() ReconcileConfig {
	return ReconcileConfig{
		Concurrency: 3,
		Timeout:     30 * time.Second,
	}
}

func (c ReconcileConfig) withDefaults() ReconcileConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = 3
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}
