// Package jobs provides scheduled background tasks.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules and
// are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(statusCounts, schedule, m, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// StatusCountsJob reloads the per-status order counts shown next to every
// status in the admin list and exports them as a gauge.
package jobs
