package jobs

import (
	"fmt"
	"log/slog"

	"dinein/internal/core/application/usecases/commands"
	"dinein/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reservationSweepJob *ReservationSweepJob
	orderSyncJob        *OrderSyncJob
}

// NewJobManager creates a new job manager with all required jobs. The
// reservation sweep can be switched off for deployments that do not take
// reservations.
func NewJobManager(
	sweepHandler commands.ReleaseExpiredReservationsCommandHandler,
	cache ports.OrderCache,
	orderUoWFactory commands.OrderUoWFactory,
	sweepEnabled bool,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{
		orderSyncJob: NewOrderSyncJob(cache, orderUoWFactory, logger),
	}
	if sweepEnabled {
		jm.reservationSweepJob = NewReservationSweepJob(sweepHandler, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.reservationSweepJob != nil {
		if err := jm.reservationSweepJob.Start(); err != nil {
			return fmt.Errorf("failed to start reservation sweep job: %w", err)
		}
	}

	if err := jm.orderSyncJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		if jm.reservationSweepJob != nil {
			jm.reservationSweepJob.Stop()
		}
		return fmt.Errorf("failed to start order sync job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderSyncJob.Stop()
	if jm.reservationSweepJob != nil {
		jm.reservationSweepJob.Stop()
	}
}
