// Package jobs provides scheduled background tasks for the dine-in system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations behind the table and order lifecycles.
//
// # Available Jobs
//
// 1. ReservationSweepJob - Runs every minute to release reservations whose hold window lapsed
// 2. OrderSyncJob - Runs every 15 seconds to flush dirty cached orders to the durable store
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(sweepHandler, orderCache, orderUoWFactory, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The sweep job logs failures and reports how many reservations it released
// - The sync job flushes each dirty order in its own transaction, so one bad
//   order never blocks the rest of the set
// - Failed job starts will stop any already running jobs
package jobs
