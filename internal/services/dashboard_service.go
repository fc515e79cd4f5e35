package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pfm/internal/cache"
	"pfm/internal/core"
	"pfm/internal/ledger"
)

const (
	// trendMonths is how many calendar months the dashboard trend
	// covers, current month included.
	trendMonths = 6

	recentTransactionLimit = 10

	// maxSpendingGroups caps the analytics result size.
	maxSpendingGroups = 20
)

type dashboardLedger interface {
	ledger.TransactionStore
	ledger.AccountStore
}

// DashboardService assembles the per-user overview from ledger
// aggregates. Summaries are cached briefly since the underlying data
// only moves on sync.
type DashboardService struct {
	ledger  dashboardLedger
	summary cache.Cache[core.DashboardSummary]
	now     func() time.Time
}

func NewDashboardService(store dashboardLedger, summaryCache cache.Cache[core.DashboardSummary]) *DashboardService {
	return &DashboardService{
		ledger:  store,
		summary: summaryCache,
		now:     time.Now,
	}
}

// Summarize builds the dashboard for one user: balances across active
// accounts, the current calendar month's income/expense split and
// savings rate, per-category spending, a six-month trend and the latest
// transactions.
func (s *DashboardService) Summarize(ctx context.Context, userID int64) (core.DashboardSummary, error) {
	key := strconv.FormatInt(userID, 10)
	if s.summary != nil {
		if cached, ok := s.summary.Get(key); ok {
			return cached, nil
		}
	}

	now := s.now().UTC()
	monthStart := core.StartOfMonth(now)
	nextMonth := monthStart.AddDate(0, 1, 0)

	accounts, err := s.ledger.ListActiveAccounts(ctx, userID)
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("list accounts: %w", err)
	}
	var balance core.Money
	for _, a := range accounts {
		balance = balance.Add(a.CurrentBalance)
	}

	income, expenses, err := s.ledger.WindowTotals(ctx, userID, monthStart, nextMonth)
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("month totals: %w", err)
	}

	byCategory, err := s.ledger.CategoryOutflowTotals(ctx, userID, monthStart, nextMonth)
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("category totals: %w", err)
	}

	trendStart := monthStart.AddDate(0, -(trendMonths - 1), 0)
	trends, err := s.ledger.MonthlyTrends(ctx, userID, trendStart)
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("monthly trends: %w", err)
	}

	recent, err := s.ledger.RecentTransactions(ctx, userID, recentTransactionLimit)
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("recent transactions: %w", err)
	}

	summary := core.DashboardSummary{
		TotalBalance:       balance,
		MonthlyIncome:      income,
		MonthlyExpenses:    expenses,
		SavingsRate:        core.SavingsRate(income, expenses),
		ActiveAccounts:     len(accounts),
		CategorySpending:   byCategory,
		MonthlyTrends:      trends,
		RecentTransactions: recent,
	}
	if s.summary != nil {
		s.summary.Set(key, summary)
	}
	return summary, nil
}

// Invalidate drops the cached summary for a user, typically after a
// sync lands new transactions.
func (s *DashboardService) Invalidate(userID int64) {
	if s.summary != nil {
		s.summary.Delete(strconv.FormatInt(userID, 10))
	}
}

// SpendingAnalytics groups outflows by category, merchant or account
// over an optional inclusive date range.
func (s *DashboardService) SpendingAnalytics(ctx context.Context, userID int64, groupBy ledger.GroupBy, from, to time.Time) ([]core.SpendingGroup, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, core.ErrInvalidDateRange
	}
	switch groupBy {
	case ledger.GroupByCategory, ledger.GroupByMerchant, ledger.GroupByAccount:
	case "":
		groupBy = ledger.GroupByCategory
	default:
		return nil, fmt.Errorf("unknown grouping %q", groupBy)
	}

	groups, err := s.ledger.GroupedOutflow(ctx, userID, groupBy, from, to, maxSpendingGroups)
	if err != nil {
		return nil, fmt.Errorf("grouped outflow: %w", err)
	}
	return groups, nil
}
