// Package worker hosts the background job handlers driven by AMQP and
// timers.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pfm/internal/amqp"
	"pfm/internal/ledger"
	"pfm/internal/provider"
	"pfm/internal/services"
)

// SyncWorker pulls provider transactions for one account and reconciles
// them into the ledger.
type SyncWorker struct {
	ledger     ledger.Store
	source     provider.TransactionSource
	reconciler *services.Reconciler
	dashboards *services.DashboardService
}

// NewSyncWorker wires the handler. dashboards may be nil when no summary
// cache is in play.
func NewSyncWorker(store ledger.Store, source provider.TransactionSource, reconciler *services.Reconciler, dashboards *services.DashboardService) *SyncWorker {
	return &SyncWorker{
		ledger:     store,
		source:     source,
		reconciler: reconciler,
		dashboards: dashboards,
	}
}

// HandleSyncMessage processes one account sync job. A partial batch is
// logged and acked: the failed records were rejected by validation and
// would fail again on redelivery. Any other error propagates so the
// delivery is nacked and retried.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.AccountSyncMessage) error {
	account, err := w.ledger.GetAccount(ctx, msg.UserID, msg.AccountID)
	if err != nil {
		return fmt.Errorf("resolve account %d: %w", msg.AccountID, err)
	}
	if !account.Active {
		slog.WarnContext(ctx, "Skipping sync for inactive account",
			"job_id", msg.JobID, "account_id", account.ID)
		return nil
	}

	batch, err := w.source.Transactions(ctx, account.AccessToken, msg.StartDate, msg.EndDate)
	if err != nil {
		return fmt.Errorf("fetch provider transactions: %w", err)
	}

	result, err := w.reconciler.Reconcile(ctx, account.UserID, account.ID, batch)
	if err != nil {
		var partial *services.PartialSyncError
		if !errors.As(err, &partial) {
			return fmt.Errorf("reconcile batch: %w", err)
		}
		slog.WarnContext(ctx, "Batch reconciled partially",
			"job_id", msg.JobID,
			"account_id", account.ID,
			"succeeded", partial.Succeeded,
			"failed", partial.Failed)
	}

	if err := w.ledger.MarkAccountSynced(ctx, account.ID, msg.Timestamp); err != nil {
		return fmt.Errorf("mark account synced: %w", err)
	}
	if w.dashboards != nil {
		w.dashboards.Invalidate(account.UserID)
	}

	slog.InfoContext(ctx, "Account sync finished",
		"job_id", msg.JobID,
		"account_id", account.ID,
		"written", result.Succeeded,
		"failed", result.Failed)
	return nil
}
