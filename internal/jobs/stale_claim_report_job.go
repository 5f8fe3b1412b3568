package jobs

import (
	"context"
	"log/slog"
	"time"

	"bakery/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StaleClaimsReader is satisfied by queries.GetStaleClaimsQueryHandler.
type StaleClaimsReader interface {
	Handle(ctx context.Context, query queries.GetStaleClaimsQuery) (queries.GetStaleClaimsQueryResponse, error)
}

// StaleClaimReportJob logs claimed orders whose owner has not moved them for too long.
// It never releases a claim; a supervisor cancels by hand if needed.
type StaleClaimReportJob struct {
	reader    StaleClaimsReader
	olderThan time.Duration
	schedule  string
	now       func() time.Time
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewStaleClaimReportJob(
	reader StaleClaimsReader,
	olderThan time.Duration,
	schedule string,
	logger *slog.Logger,
) *StaleClaimReportJob {
	return &StaleClaimReportJob{
		reader:    reader,
		olderThan: olderThan,
		schedule:  schedule,
		now:       func() time.Time { return time.Now().UTC() },
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stale_claim_report_job"),
	}
}

// Start schedules the report. The schedule is a six field cron expression.
func (j *StaleClaimReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale claim report failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale claim report job started",
		"schedule", j.schedule, "older_than", j.olderThan.String())
	return nil
}

// Run performs a single report and returns how many stale claims it found.
func (j *StaleClaimReportJob) Run(ctx context.Context) (int, error) {
	now := j.now()
	query, err := queries.NewGetStaleClaimsQuery(j.olderThan, now)
	if err != nil {
		return 0, err
	}

	resp, err := j.reader.Handle(ctx, query)
	if err != nil {
		return 0, err
	}

	for _, claim := range resp.Claims {
		j.logger.WarnContext(ctx, "Order claim is stale",
			"order_id", claim.OrderID.String(),
			"state", claim.State.String(),
			"owner_staff_id", claim.Owner.String(),
			"idle", now.Sub(claim.UpdatedAt).Round(time.Second).String(),
		)
	}
	return len(resp.Claims), nil
}

func (j *StaleClaimReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale claim report job stopped")
}
