package cron

import (
	"context"
	"testing"
	"time"

	"clubhouse/models"

	"go.uber.org/zap"
)

type recordingBilling struct {
	calls [][2]int
}

func (r *recordingBilling) GenerateMonthly(_ context.Context, year, month int) ([]models.Statement, error) {
	r.calls = append(r.calls, [2]int{year, month})
	return nil, nil
}

func (r *recordingBilling) MarkPaid(context.Context, string) (*models.Statement, error) {
	return nil, nil
}

func (r *recordingBilling) List(context.Context, models.StatementFilter) ([]models.Statement, error) {
	return nil, nil
}

func TestStatementWorkerBillsPreviousMonth(t *testing.T) {
	svc := &recordingBilling{}
	w, err := NewStatementWorker("0 2 1 * *", svc, zap.NewNop())
	if err != nil {
		t.Fatalf("NewStatementWorker: %v", err)
	}
	w.now = func() time.Time { return time.Date(2025, 1, 1, 2, 0, 0, 0, time.UTC) }

	w.run()
	if len(svc.calls) != 1 || svc.calls[0] != [2]int{2024, 12} {
		t.Errorf("GenerateMonthly calls = %v, want [[2024 12]]", svc.calls)
	}
}

func TestStatementWorkerRejectsBadSchedule(t *testing.T) {
	if _, err := NewStatementWorker("every month", &recordingBilling{}, zap.NewNop()); err == nil {
		t.Error("expected an error for an invalid cron spec")
	}
}
