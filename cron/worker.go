package cron

import (
	"context"
	"fmt"
	"time"

	"clubhouse/services/billing"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StatementWorker generates last month's statements on a cron schedule.
type StatementWorker struct {
	cron    *cron.Cron
	billing billing.BillingService
	logger  *zap.Logger
	now     func() time.Time
}

// NewStatementWorker registers the statement job under spec (standard
// five-field cron syntax).
func NewStatementWorker(spec string, svc billing.BillingService, logger *zap.Logger) (*StatementWorker, error) {
	w := &StatementWorker{
		cron:    cron.New(),
		billing: svc,
		logger:  logger,
		now:     time.Now,
	}
	if _, err := w.cron.AddFunc(spec, w.run); err != nil {
		return nil, fmt.Errorf("invalid statement schedule %q: %w", spec, err)
	}
	return w, nil
}

func (w *StatementWorker) Start() {
	w.logger.Info("[StatementWorker] starting")
	w.cron.Start()
}

// Stop waits for a running job to finish or ctx to expire.
func (w *StatementWorker) Stop(ctx context.Context) {
	select {
	case <-w.cron.Stop().Done():
	case <-ctx.Done():
		w.logger.Warn("[StatementWorker] stop timed out")
	}
}

func (w *StatementWorker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	year, month := billing.PreviousMonth(w.now())
	created, err := w.billing.GenerateMonthly(ctx, year, month)
	if err != nil {
		w.logger.Error("[StatementWorker] statement generation failed",
			zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		return
	}
	w.logger.Info("[StatementWorker] statements generated",
		zap.Int("year", year), zap.Int("month", month), zap.Int("created", len(created)))
}
