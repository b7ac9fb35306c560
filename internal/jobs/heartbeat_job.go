package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultHeartbeatSchedule is every ten seconds.
const DefaultHeartbeatSchedule = "*/10 * * * * *"

// Heartbeater is satisfied by *live.Hub. Heartbeat returns the number of
// connections it pruned.
type Heartbeater interface {
	Heartbeat() int
}

// HeartbeatJob keeps live connections warm and lets the hub drop the ones
// that stopped accepting writes.
type HeartbeatJob struct {
	hub      Heartbeater
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewHeartbeatJob(hub Heartbeater, schedule string, logger *slog.Logger) *HeartbeatJob {
	if schedule == "" {
		schedule = DefaultHeartbeatSchedule
	}
	logger = logger.With("component", "heartbeat_job")
	return &HeartbeatJob{
		hub:      hub,
		schedule: schedule,
		cron:     newCron(logger),
		logger:   logger,
	}
}

func (j *HeartbeatJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.RunOnce); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Heartbeat job started", "schedule", j.schedule)
	return nil
}

func (j *HeartbeatJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Heartbeat job stopped")
}

// RunOnce sends one heartbeat and logs how many dead connections it pruned.
func (j *HeartbeatJob) RunOnce() {
	pruned := j.hub.Heartbeat()
	j.logger.DebugContext(context.Background(), "Heartbeat sent", "pruned", pruned)
}
