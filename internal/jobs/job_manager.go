package jobs

import (
	"fmt"
	"log/slog"

	"notpickedup/internal/support/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	statusCountsJob *StatusCountsJob
}

// NewJobManager creates the manager with every job of the service.
func NewJobManager(
	refresher StatusCountsRefresher,
	statusCountsSchedule string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		statusCountsJob: NewStatusCountsJob(refresher, statusCountsSchedule, m, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.statusCountsJob.Start(); err != nil {
		return fmt.Errorf("failed to start status counts job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.statusCountsJob.Stop()
}
