package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/autocare/autocare/internal/maintenance"
	"github.com/autocare/autocare/internal/vehicle"
)

// ReconcileJob recomputes maintenance alert statuses for every vehicle.
type ReconcileJob struct {
	config      ReconcileConfig
	logger      zerolog.Logger
	vehicles    vehicle.Repository
	maintenance *maintenance.Service

	metrics *ReconcileMetrics
}

// ReconcileMetrics tracks reconcile job statistics.
type ReconcileMetrics struct {
	mu sync.RWMutex

	// Counters
	TotalRuns            int64
	VehiclesReconciled   int64
	VehiclesFailed       int64
	StatusTransitions    int64
	NotificationsEmitted int64

	// Timings
	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// ReconcileJobConfig holds configuration for creating a ReconcileJob.
type ReconcileJobConfig struct {
	Config             ReconcileConfig
	Logger             zerolog.Logger
	Vehicles           vehicle.Repository
	MaintenanceService *maintenance.Service
}

// NewReconcileJob creates a new reconcile job processor.
func NewReconcileJob(cfg ReconcileJobConfig) *ReconcileJob {
	return &ReconcileJob{
		config:      cfg.Config.withDefaults(),
		logger:      cfg.Logger,
		vehicles:    cfg.Vehicles,
		maintenance: cfg.MaintenanceService,
		metrics:     &ReconcileMetrics{},
	}
}

// ReconcileRunResult contains the result of one reconcile run.
type ReconcileRunResult struct {
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalVehicles int
	Successful    int
	Failed        int
	Transitions   int
	Notifications int
	Errors        []ReconcileError
}

// ReconcileError represents an error while reconciling one vehicle.
type ReconcileError struct {
	VehicleID string
	Error     string
}

// Run reconciles every registered vehicle using a worker pool.
func (j *ReconcileJob) Run(ctx context.Context) *ReconcileRunResult {
	startTime := time.Now()
	result := &ReconcileRunResult{StartTime: startTime}

	vehicles, err := j.vehicles.ListAll(ctx)
	if err != nil {
		j.logger.Error().Err(err).Msg("unable to list vehicles for reconcile")
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(startTime)
		result.Errors = append(result.Errors, ReconcileError{Error: err.Error()})
		return result
	}
	result.TotalVehicles = len(vehicles)

	j.logger.Info().
		Int("total_vehicles", result.TotalVehicles).
		Int("concurrency", j.config.Concurrency).
		Msg("starting maintenance reconcile job")

	// Create work channels
	idsChan := make(chan string, len(vehicles))
	resultsChan := make(chan vehicleResult, len(vehicles))

	// Start workers
	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.reconcileWorker(ctx, idsChan, resultsChan)
		}()
	}

	// Send vehicles to workers
	for _, v := range vehicles {
		idsChan <- v.ID
	}
	close(idsChan)

	// Wait for workers to complete
	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Collect results
	for vr := range resultsChan {
		if vr.err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ReconcileError{
				VehicleID: vr.vehicleID,
				Error:     vr.err.Error(),
			})
			continue
		}
		result.Successful++
		result.Transitions += vr.transitions
		result.Notifications += vr.notifications
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("transitions", result.Transitions).
		Int("notifications", result.Notifications).
		Msg("maintenance reconcile job completed")

	return result
}

type vehicleResult struct {
	vehicleID     string
	transitions   int
	notifications int
	err           error
}

func (j *ReconcileJob) reconcileWorker(ctx context.Context, ids <-chan string, results chan<- vehicleResult) {
	for id := range ids {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.reconcileVehicle(ctx, id)
		}
	}
}

func (j *ReconcileJob) reconcileVehicle(ctx context.Context, vehicleID string) vehicleResult {
	vehicleCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	res, err := j.maintenance.ReconcileVehicle(vehicleCtx, vehicleID, time.Now())
	if err != nil {
		return vehicleResult{vehicleID: vehicleID, err: err}
	}

	if res.Changed {
		atomic.AddInt64(&j.metrics.StatusTransitions, int64(len(res.UpdatedEvents)))
	}

	return vehicleResult{
		vehicleID:     vehicleID,
		transitions:   len(res.UpdatedEvents),
		notifications: len(res.Notifications),
	}
}

func (j *ReconcileJob) updateMetrics(result *ReconcileRunResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.VehiclesReconciled += int64(result.Successful)
	j.metrics.VehiclesFailed += int64(result.Failed)
	j.metrics.NotificationsEmitted += int64(result.Notifications)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *ReconcileJob) GetMetrics() ReconcileMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return ReconcileMetrics{
		TotalRuns:            j.metrics.TotalRuns,
		VehiclesReconciled:   j.metrics.VehiclesReconciled,
		VehiclesFailed:       j.metrics.VehiclesFailed,
		StatusTransitions:    atomic.LoadInt64(&j.metrics.StatusTransitions),
		NotificationsEmitted: j.metrics.NotificationsEmitted,
		LastRunAt:            j.metrics.LastRunAt,
		LastRunDuration:      j.metrics.LastRunDuration,
		TotalDuration:        j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *ReconcileJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":            m.TotalRuns,
		"vehicles_reconciled":   m.VehiclesReconciled,
		"vehicles_failed":       m.VehiclesFailed,
		"status_transitions":    m.StatusTransitions,
		"notifications_emitted": m.NotificationsEmitted,
		"last_run_at":           m.LastRunAt,
		"last_run_duration":     m.LastRunDuration.String(),
		"total_duration":        m.TotalDuration.String(),
	}
}
