package worker

import (
	"context"
	"log/slog"
	"time"

	"pfm/internal/core"
	"pfm/internal/ledger"
	"pfm/internal/services"
)

// AlertWorker periodically rolls lapsed budget periods forward and
// surfaces budgets that crossed their alert threshold or limit.
// Notifications are emitted as structured log events; a delivery channel
// can hang off the same hook later.
type AlertWorker struct {
	ledger  ledger.BudgetStore
	budgets *services.BudgetService
	now     func() time.Time
}

func NewAlertWorker(store ledger.BudgetStore, budgets *services.BudgetService) *AlertWorker {
	return &AlertWorker{
		ledger:  store,
		budgets: budgets,
		now:     time.Now,
	}
}

// Run blocks, checking on every tick until the context ends.
func (w *AlertWorker) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First pass immediately so a restart doesn't delay alerts by a
	// full interval.
	w.checkAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.checkAll(ctx)
		}
	}
}

func (w *AlertWorker) checkAll(ctx context.Context) {
	now := w.now()
	if err := w.budgets.ReanchorPeriods(ctx, now); err != nil {
		slog.ErrorContext(ctx, "Failed to reanchor budget periods", "error", err)
	}

	users, err := w.ledger.ListBudgetUsers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list budget users", "error", err)
		return
	}

	for _, userID := range users {
		usages, err := w.budgets.ListWithUsage(ctx, userID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to compute budget usage",
				"user_id", userID, "error", err)
			continue
		}
		for _, u := range usages {
			w.report(ctx, u)
		}
	}
}

func (w *AlertWorker) report(ctx context.Context, u services.BudgetUsage) {
	b := u.Budget
	if !b.NotificationsEnabled {
		return
	}

	switch {
	case core.IsExceeded(u.Spent, b.Limit):
		slog.WarnContext(ctx, "Budget exceeded",
			"user_id", b.UserID,
			"budget_id", b.ID,
			"primary_category", b.Category,
			"spent_cents", u.Spent.Cents,
			"limit_cents", b.Limit.Cents,
			"utilization", u.Utilization)
	case core.ShouldAlert(u.Spent, b.Limit, b.AlertThreshold):
		slog.WarnContext(ctx, "Budget nearing limit",
			"user_id", b.UserID,
			"budget_id", b.ID,
			"primary_category", b.Category,
			"spent_cents", u.Spent.Cents,
			"limit_cents", b.Limit.Cents,
			"utilization", u.Utilization,
			"threshold", b.AlertThreshold)
	}
}
