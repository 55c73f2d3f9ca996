package jobs

import (
	"context"
	"log/slog"

	"dinein/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReservationSweepJob releases reservations whose hold window has lapsed.
// Runs at the top of every minute; a reservation is held for two hours, so
// minute granularity is more than enough.
type ReservationSweepJob struct {
	handler commands.ReleaseExpiredReservationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewReservationSweepJob creates the sweep job.
func NewReservationSweepJob(
	handler commands.ReleaseExpiredReservationsCommandHandler,
	logger *slog.Logger,
) *ReservationSweepJob {
	return &ReservationSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "reservation_sweep_job"),
	}
}

// Start schedules the sweep to run every minute.
func (j *ReservationSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewReleaseExpiredReservationsCommand()

		released, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Reservation sweep failed", "error", err)
			return
		}

		if released > 0 {
			j.logger.InfoContext(ctx, "Expired reservations released", "count", released)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reservation sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *ReservationSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reservation sweep job stopped")
}
