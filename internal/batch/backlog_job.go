package batch

import (
	"bank-backoffice/internal/domain/accountrequest"
	"bank-backoffice/internal/domain/loan"
	"bank-backoffice/internal/infrastructure/monitoring"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	KindAccountRequest = "account_request"
	KindLoan           = "loan"
)

// BacklogReport is one run's count of work waiting for an employee.
type BacklogReport struct {
	PendingAccountRequests int
	PendingLoans           int
}

func (r BacklogReport) Total() int {
	return r.PendingAccountRequests + r.PendingLoans
}

// PendingBacklogJob publishes how many account requests and loans are waiting
// for a decision and warns when the queue grows past the threshold.
type PendingBacklogJob struct {
	requestRepo   accountrequest.Repository
	loanRepo      loan.Repository
	warnThreshold int
	logger        *slog.Logger
}

func NewPendingBacklogJob(
	requestRepo accountrequest.Repository,
	loanRepo loan.Repository,
	warnThreshold int,
	logger *slog.Logger,
) *PendingBacklogJob {
	if requestRepo == nil || loanRepo == nil || logger == nil {
		panic("PendingBacklogJob dependencies cannot be nil")
	}
	return &PendingBacklogJob{
		requestRepo:   requestRepo,
		loanRepo:      loanRepo,
		warnThreshold: warnThreshold,
		logger:        logger.With("job", "PendingBacklog"),
	}
}

func (j *PendingBacklogJob) Run(ctx context.Context) (BacklogReport, error) {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting pending backlog job.")

	var (
		wg                 sync.WaitGroup
		report             BacklogReport
		requestErr, loanErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		report.PendingAccountRequests, requestErr = j.requestRepo.CountPending(ctx)
	}()
	go func() {
		defer wg.Done()
		report.PendingLoans, loanErr = j.loanRepo.CountPending(ctx)
	}()
	wg.Wait()

	if requestErr == nil {
		monitoring.SetPendingRequests(KindAccountRequest, report.PendingAccountRequests)
	} else {
		j.logger.ErrorContext(ctx, "Failed to count pending account requests", slog.Any("error", requestErr))
	}
	if loanErr == nil {
		monitoring.SetPendingRequests(KindLoan, report.PendingLoans)
	} else {
		j.logger.ErrorContext(ctx, "Failed to count pending loans", slog.Any("error", loanErr))
	}

	if err := errors.Join(requestErr, loanErr); err != nil {
		return report, fmt.Errorf("pending backlog job failed: %w", err)
	}

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("pending_account_requests", report.PendingAccountRequests),
		slog.Int("pending_loans", report.PendingLoans),
	)
	if j.warnThreshold > 0 && report.Total() > j.warnThreshold {
		summaryLog.WarnContext(ctx, "Pending backlog is above threshold.", slog.Int("threshold", j.warnThreshold))
	} else {
		summaryLog.InfoContext(ctx, "Pending backlog job finished.")
	}
	return report, nil
}
