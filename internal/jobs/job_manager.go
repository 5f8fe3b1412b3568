package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	staleClaimReportJob *StaleClaimReportJob
}

// NewJobManager wires every job to its dependencies.
func NewJobManager(
	staleClaims StaleClaimsReader,
	staleClaimAfter time.Duration,
	staleClaimSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleClaimReportJob: NewStaleClaimReportJob(staleClaims, staleClaimAfter, staleClaimSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.staleClaimReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale claim report job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running reports to finish.
func (jm *JobManager) StopAll() {
	jm.staleClaimReportJob.Stop()
}
