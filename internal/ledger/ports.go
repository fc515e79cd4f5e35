// Package ledger defines the durable transaction ledger and its
// collaborator contracts: range-filtered reads, grouped-sum aggregation
// and an atomic upsert keyed by external transaction id.
package ledger

import (
	"context"
	"time"

	"pfm/internal/core"
)

const (
	GroupByCategory GroupBy = "category"
	GroupByMerchant GroupBy = "merchant"
	GroupByAccount  GroupBy = "account"
)

type (
	// GroupBy selects the grouping key for spending analytics.
	GroupBy string

	// TransactionFilter narrows a ledger listing. Zero times mean
	// unbounded; From/To are inclusive.
	TransactionFilter struct {
		From      time.Time
		To        time.Time
		Category  core.Category
		AccountID int64
		Limit     int
		Offset    int
	}
)

// TransactionStore is the ledger collaborator for transaction rows.
//
// UpsertTransaction must be atomic with respect to concurrent upserts of
// the same external id (provider redelivery race); on conflict it
// overwrites every provider-sourced field and preserves the manual flag
// and notes. The external-id lookup is deliberately not scoped to account
// or user: a record may move accounts upstream across re-links.
type TransactionStore interface {
	FindByExternalID(ctx context.Context, externalID string) (core.Transaction, error)
	UpsertTransaction(ctx context.Context, t core.Transaction) (int64, error)
	InsertTransaction(ctx context.Context, t core.Transaction) (int64, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error

	GetTransaction(ctx context.Context, userID, id int64) (core.Transaction, error)
	ListTransactions(ctx context.Context, userID int64, f TransactionFilter) ([]core.Transaction, int64, error)
	ListUserTransactions(ctx context.Context, userID int64) ([]core.Transaction, error)

	// SumCategoryOutflow sums positive amounts for one category over the
	// inclusive range [from, to].
	SumCategoryOutflow(ctx context.Context, userID int64, category core.Category, from, to time.Time) (core.Money, error)
	// WindowTotals splits the half-open window [from, to) by sign:
	// income = sum of abs(amount) where amount < 0, expenses = sum of
	// amount where amount > 0.
	WindowTotals(ctx context.Context, userID int64, from, to time.Time) (income, expenses core.Money, err error)
	// CategoryOutflowTotals groups positive amounts in [from, to) by
	// category, summed, descending by total.
	CategoryOutflowTotals(ctx context.Context, userID int64, from, to time.Time) ([]core.CategorySpend, error)
	// MonthlyTrends groups transactions dated from or later by calendar
	// month, ascending by (year, month).
	MonthlyTrends(ctx context.Context, userID int64, from time.Time) ([]core.MonthlyTrend, error)
	// RecentTransactions returns the newest entries first with account
	// display fields resolved.
	RecentTransactions(ctx context.Context, userID int64, limit int) ([]core.RecentTransaction, error)
	// GroupedOutflow groups positive amounts by the given key over an
	// optional inclusive range, descending by total, capped at limit
	// groups.
	GroupedOutflow(ctx context.Context, userID int64, groupBy GroupBy, from, to time.Time, limit int) ([]core.SpendingGroup, error)
}

// AccountStore is the ledger collaborator for linked accounts.
type AccountStore interface {
	// UpsertAccount inserts or refreshes by the globally unique
	// (item id, external account id) pair.
	UpsertAccount(ctx context.Context, a core.Account) (int64, error)
	GetAccount(ctx context.Context, userID, id int64) (core.Account, error)
	ListActiveAccounts(ctx context.Context, userID int64) ([]core.Account, error)
	DeactivateAccount(ctx context.Context, userID, id int64) error
	MarkAccountSynced(ctx context.Context, id int64, at time.Time) error
}

// BudgetStore is the ledger collaborator for budgets.
type BudgetStore interface {
	InsertBudget(ctx context.Context, b core.Budget) (int64, error)
	GetBudget(ctx context.Context, userID, id int64) (core.Budget, error)
	FindActiveBudget(ctx context.Context, userID int64, category core.Category, period core.PeriodKind) (core.Budget, error)
	ListActiveBudgets(ctx context.Context, userID int64) ([]core.Budget, error)
	UpdateBudget(ctx context.Context, b core.Budget) error
	DeactivateBudget(ctx context.Context, userID, id int64) error
	UpdateBudgetPeriod(ctx context.Context, id int64, start, end time.Time) error
	// ListBudgetUsers returns the distinct owners of active budgets.
	ListBudgetUsers(ctx context.Context) ([]int64, error)
}

// Store is the full ledger surface.
type Store interface {
	TransactionStore
	AccountStore
	BudgetStore
	Close() error
}
