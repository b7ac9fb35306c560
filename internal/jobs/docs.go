// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. UnclaimedOrderWatchdogJob - once a minute, raises the unclaimed alert for
//     the newest order that has waited past the threshold without a claimant
//  2. HeartbeatJob - every ten seconds, sends a heartbeat to live viewers and
//     prunes the ones that stopped accepting writes
//
// # Usage
//
//	jobManager := jobs.NewJobManager(detectHandler, hub, jobs.Schedules{}, time.Now, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six-field cron expressions with a leading seconds field.
// Every job runs with SkipIfStillRunning, so a slow tick is never overlapped
// by the next one, and with Recover, so a panic does not stop the scheduler.
//
// # Error Handling
//
// The watchdog ignores commands.ErrNoOverdueOrder and logs every other
// failure; the next tick retries.
package jobs
