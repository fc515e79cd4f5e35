// Package provider abstracts the upstream transaction feed. Production
// would put a real aggregator client here; the file source replays
// recorded fixtures for local runs and tests.
package provider

import (
	"context"
	"time"

	"pfm/internal/core"
)

// TransactionSource fetches a date range of transactions for one access
// token. Implementations own pagination and return the full batch.
type TransactionSource interface {
	Transactions(ctx context.Context, accessToken string, start, end time.Time) ([]core.RawTransaction, error)
}
