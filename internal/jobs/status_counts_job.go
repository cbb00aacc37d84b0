package jobs

import (
	"context"
	"log/slog"

	"notpickedup/internal/core/application/usecases/queries"
	"notpickedup/internal/support/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultStatusCountsSchedule runs the refresh once a minute.
const DefaultStatusCountsSchedule = "0 * * * * *"

// StatusCountsRefresher reloads the cached counts.
type StatusCountsRefresher interface {
	Refresh(ctx context.Context) (queries.StatusCounts, error)
}

// StatusCountsJob periodically refreshes the status count cache.
type StatusCountsJob struct {
	refresher StatusCountsRefresher
	schedule  string
	metrics   *metrics.Metrics
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStatusCountsJob creates the job. An empty schedule uses DefaultStatusCountsSchedule.
func NewStatusCountsJob(
	refresher StatusCountsRefresher,
	schedule string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *StatusCountsJob {
	if schedule == "" {
		schedule = DefaultStatusCountsSchedule
	}
	return &StatusCountsJob{
		refresher: refresher,
		schedule:  schedule,
		metrics:   m,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "status_counts_job"),
	}
}

// Start schedules the job. An invalid schedule is returned as an error.
func (j *StatusCountsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status counts job started", "schedule", j.schedule)
	return nil
}

// Run performs one refresh.
func (j *StatusCountsJob) Run(ctx context.Context) {
	counts, err := j.refresher.Refresh(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Status counts refresh failed", "error", err)
		return
	}

	if j.metrics != nil {
		j.metrics.StatusOrders.Reset()
		for key, n := range counts {
			j.metrics.StatusOrders.WithLabelValues(key.String()).Set(float64(n))
		}
	}
	j.logger.DebugContext(ctx, "Status counts refreshed", "statuses", len(counts))
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (j *StatusCountsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Status counts job stopped")
}
