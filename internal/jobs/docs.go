// Package jobs provides scheduled background tasks for the bakery service.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field and are
// started and stopped together through JobManager:
//
//	jobManager := jobs.NewJobManager(staleClaimsHandler, 2*time.Hour, "0 */5 * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// StaleClaimReportJob logs orders stuck in preparing or in_transit longer
// than the configured threshold. Claims do not expire, so the report is the
// only signal a supervisor gets about an abandoned order.
package jobs
