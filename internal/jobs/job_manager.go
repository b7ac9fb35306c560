package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Schedules holds six-field cron expressions (seconds first). Empty fields
// fall back to the defaults.
type Schedules struct {
	Watchdog  string
	Heartbeat string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	watchdog  *UnclaimedOrderWatchdogJob
	heartbeat *HeartbeatJob
}

func NewJobManager(
	detector UnclaimedOrderDetector,
	hub Heartbeater,
	schedules Schedules,
	clock func() time.Time,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		watchdog:  NewUnclaimedOrderWatchdogJob(detector, schedules.Watchdog, clock, logger),
		heartbeat: NewHeartbeatJob(hub, schedules.Heartbeat, logger),
	}
}

// StartAll starts all scheduled jobs. If one fails to start, the ones already
// running are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.heartbeat.Start(); err != nil {
		return fmt.Errorf("failed to start heartbeat job: %w", err)
	}

	if err := jm.watchdog.Start(); err != nil {
		jm.heartbeat.Stop()
		return fmt.Errorf("failed to start unclaimed order watchdog: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs, waiting for running ticks.
func (jm *JobManager) StopAll() {
	jm.watchdog.Stop()
	jm.heartbeat.Stop()
}

// Watchdog exposes the watchdog for status reporting.
func (jm *JobManager) Watchdog() *UnclaimedOrderWatchdogJob {
	return jm.watchdog
}

func newCron(logger *slog.Logger) *cron.Cron {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))
	return cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
}
