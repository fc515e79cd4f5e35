package services

import (
	"context"
	"fmt"
	"log/slog"

	"pfm/internal/core"
	"pfm/internal/ledger"
)

// ReconcileResult reports one batch ingestion. IDs holds the ledger row
// id of every successfully written record, in input order.
type ReconcileResult struct {
	IDs       []int64
	Succeeded int
	Failed    int
}

// PartialSyncError marks a batch where some records were written and
// some were not. The written records stay written.
type PartialSyncError struct {
	Succeeded int
	Failed    int
}

func (e *PartialSyncError) Error() string {
	return fmt.Sprintf("partial sync: %d succeeded, %d failed", e.Succeeded, e.Failed)
}

// Reconciler folds provider transaction batches into the ledger. Each
// record is classified and upserted by its external id, so redelivering
// the same batch is a no-op for already-seen records.
type Reconciler struct {
	ledger ledger.TransactionStore
}

func NewReconciler(store ledger.TransactionStore) *Reconciler {
	return &Reconciler{ledger: store}
}

// Reconcile ingests one batch for one account. Records are processed
// independently: a bad record is counted and skipped, never aborting the
// rest of the batch. Context cancellation does abort, returning what was
// written so far alongside ctx.Err().
func (r *Reconciler) Reconcile(ctx context.Context, userID, accountID int64, batch []core.RawTransaction) (ReconcileResult, error) {
	var result ReconcileResult

	for _, raw := range batch {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := raw.Validate(); err != nil {
			slog.WarnContext(ctx, "Skipping invalid provider record",
				"external_id", raw.ExternalID, "error", err)
			result.Failed++
			continue
		}

		tags := raw.Categories
		if len(tags) == 0 {
			tags = []string{string(core.CategoryUncategorized)}
		}

		t := core.Transaction{
			UserID:         userID,
			AccountID:      accountID,
			ExternalID:     raw.ExternalID,
			Amount:         raw.Amount,
			Date:           raw.Date,
			AuthorizedDate: raw.AuthorizedDate,
			Name:           raw.Name,
			MerchantName:   raw.MerchantName,
			RawCategories:  tags,
			Category:       core.Classify(raw.Name, raw.Categories),
			Pending:        raw.Pending,
		}

		id, err := r.ledger.UpsertTransaction(ctx, t)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to write provider record",
				"external_id", raw.ExternalID, "error", err)
			result.Failed++
			continue
		}
		result.IDs = append(result.IDs, id)
		result.Succeeded++
	}

	if result.Failed > 0 {
		return result, &PartialSyncError{Succeeded: result.Succeeded, Failed: result.Failed}
	}
	return result, nil
}
