package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dinein/internal/core/application/usecases/commands"
	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/ports"
	"dinein/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// OrderSyncJob flushes cached order edits to the durable store. Item edits
// on placed orders land in the cache first; when the durable update cannot
// follow, the order is marked dirty and this job catches it up. Runs every
// fifteen seconds.
type OrderSyncJob struct {
	cache      ports.OrderCache
	uowFactory commands.OrderUoWFactory
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOrderSyncJob creates the sync job.
func NewOrderSyncJob(
	cache ports.OrderCache,
	uowFactory commands.OrderUoWFactory,
	logger *slog.Logger,
) *OrderSyncJob {
	return &OrderSyncJob{
		cache:      cache,
		uowFactory: uowFactory,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "order_sync_job"),
	}
}

// Start schedules the sync to run every fifteen seconds.
func (j *OrderSyncJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", func() {
		j.run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order sync job started (running every 15 seconds)")
	return nil
}

// Stop stops the sync job.
func (j *OrderSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order sync job stopped")
}

// run drains the dirty set. Each order is flushed in its own transaction so
// one bad order does not block the rest of the set.
func (j *OrderSyncJob) run(ctx context.Context) {
	ids, err := j.cache.DirtyOrderIDs(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order sync failed to read dirty set", "error", err)
		return
	}

	flushed := 0
	for _, id := range ids {
		if err = j.flush(ctx, id); err != nil {
			j.logger.ErrorContext(ctx, "Order sync failed", "orderID", id.String(), "error", err)
			continue
		}
		flushed++
	}

	if flushed > 0 {
		j.logger.InfoContext(ctx, "Dirty orders flushed", "count", flushed)
	}
}

func (j *OrderSyncJob) flush(ctx context.Context, orderID kernel.UUID) error {
	aggregate, err := j.cache.Get(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		// The snapshot expired before the flush ran. There is nothing left
		// to write, so retrying forever would never make progress.
		j.logger.WarnContext(ctx, "Dirty order snapshot expired, dropping mark",
			"orderID", orderID.String())
		return j.cache.ClearDirty(ctx, orderID)
	}
	if err != nil {
		return err
	}

	uow := j.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return j.cache.ClearDirty(ctx, orderID)
}
