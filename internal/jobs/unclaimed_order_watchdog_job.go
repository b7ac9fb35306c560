package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"printdesk/internal/core/application/usecases/commands"
	"printdesk/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// DefaultWatchdogSchedule checks for overdue orders once a minute.
const DefaultWatchdogSchedule = "0 * * * * *"

// UnclaimedOrderDetector is satisfied by commands.DetectUnclaimedOrderCommandHandler.
type UnclaimedOrderDetector interface {
	Handle(ctx context.Context, command commands.DetectUnclaimedOrderCommand) (order.Snapshot, error)
}

// WatchdogCursor records the watchdog's progress. It is informational; the
// alert flag on the order is what prevents repeat alerts.
type WatchdogCursor struct {
	LastRunAt        time.Time
	LastAlertedOrder string
	LastAlertedAt    time.Time
}

// UnclaimedOrderWatchdogJob raises at most one unclaimed-order alert per tick.
// Ticks never overlap: a tick still running when the next one is due causes
// the next one to be skipped.
type UnclaimedOrderWatchdogJob struct {
	detector UnclaimedOrderDetector
	schedule string
	clock    func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger

	mu     sync.Mutex
	cursor WatchdogCursor
}

func NewUnclaimedOrderWatchdogJob(
	detector UnclaimedOrderDetector,
	schedule string,
	clock func() time.Time,
	logger *slog.Logger,
) *UnclaimedOrderWatchdogJob {
	if schedule == "" {
		schedule = DefaultWatchdogSchedule
	}
	if clock == nil {
		clock = time.Now
	}
	logger = logger.With("component", "unclaimed_order_watchdog_job")
	return &UnclaimedOrderWatchdogJob{
		detector: detector,
		schedule: schedule,
		clock:    clock,
		cron:     newCron(logger),
		logger:   logger,
	}
}

// Start schedules the scan.
func (j *UnclaimedOrderWatchdogJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Unclaimed order watchdog started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running tick to finish.
func (j *UnclaimedOrderWatchdogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Unclaimed order watchdog stopped")
}

// RunOnce performs a single scan. Failures are logged; the next tick retries.
func (j *UnclaimedOrderWatchdogJob) RunOnce(ctx context.Context) {
	startedAt := j.clock()
	snapshot, err := j.detector.Handle(ctx, commands.NewDetectUnclaimedOrderCommand())

	j.mu.Lock()
	defer j.mu.Unlock()
	j.cursor.LastRunAt = startedAt

	switch {
	case errors.Is(err, commands.ErrNoOverdueOrder):
	case err != nil:
		j.logger.ErrorContext(ctx, "Unclaimed order scan failed", "error", err)
	default:
		j.cursor.LastAlertedOrder = snapshot.ID
		j.cursor.LastAlertedAt = startedAt
		j.logger.InfoContext(ctx, "Unclaimed order alert raised",
			"order_id", snapshot.ID, "submitted_at", snapshot.SubmittedAt)
	}
}

// Cursor returns a copy of the current progress.
func (j *UnclaimedOrderWatchdogJob) Cursor() WatchdogCursor {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cursor
}
