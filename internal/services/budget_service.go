package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"pfm/internal/core"
	"pfm/internal/ledger"
)

// DefaultAlertThreshold is the utilization percent at which a budget
// starts alerting when the caller did not pick one.
const DefaultAlertThreshold = 80

// BudgetUsage pairs a budget with its spending over the current period.
type BudgetUsage struct {
	Budget      core.Budget
	Spent       core.Money
	Remaining   core.Money
	Utilization int
}

type budgetLedger interface {
	ledger.BudgetStore
	ledger.TransactionStore
}

// BudgetService owns the budget lifecycle and usage math.
type BudgetService struct {
	ledger budgetLedger
	now    func() time.Time
}

func NewBudgetService(store budgetLedger) *BudgetService {
	return &BudgetService{ledger: store, now: time.Now}
}

// Create activates a new budget anchored at the current time. At most
// one active budget may exist per (user, category, period) triple.
func (s *BudgetService) Create(ctx context.Context, b core.Budget) (core.Budget, error) {
	if b.AlertThreshold == 0 {
		b.AlertThreshold = DefaultAlertThreshold
	}
	b.Active = true
	b.NotificationsEnabled = true

	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	if _, err := s.ledger.FindActiveBudget(ctx, b.UserID, b.Category, b.Period); err == nil {
		return core.Budget{}, core.ErrDuplicateBudget
	} else if !errors.Is(err, core.ErrNotFound) {
		return core.Budget{}, fmt.Errorf("check duplicate budget: %w", err)
	}

	b.StartDate, b.EndDate = core.ComputePeriod(b.Period, s.now())

	id, err := s.ledger.InsertBudget(ctx, b)
	if err != nil {
		return core.Budget{}, fmt.Errorf("insert budget: %w", err)
	}
	b.ID = id
	return b, nil
}

// BudgetUpdate carries the mutable budget fields; nil means unchanged.
type BudgetUpdate struct {
	Limit                *core.Money
	AlertThreshold       *int
	NotificationsEnabled *bool
}

func (s *BudgetService) Update(ctx context.Context, userID, id int64, upd BudgetUpdate) (core.Budget, error) {
	b, err := s.ledger.GetBudget(ctx, userID, id)
	if err != nil {
		return core.Budget{}, err
	}

	if upd.Limit != nil {
		b.Limit = *upd.Limit
	}
	if upd.AlertThreshold != nil {
		b.AlertThreshold = *upd.AlertThreshold
	}
	if upd.NotificationsEnabled != nil {
		b.NotificationsEnabled = *upd.NotificationsEnabled
	}

	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	if err := s.ledger.UpdateBudget(ctx, b); err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	return b, nil
}

// Delete deactivates the budget, keeping the row for history.
func (s *BudgetService) Delete(ctx context.Context, userID, id int64) error {
	return s.ledger.DeactivateBudget(ctx, userID, id)
}

func (s *BudgetService) Get(ctx context.Context, userID, id int64) (core.Budget, error) {
	return s.ledger.GetBudget(ctx, userID, id)
}

// Spend computes one budget's usage. Spending counts only outflows in
// the budget's category over [StartDate, EndDate]; a zero EndDate means
// the window is still open and is clamped to now.
func (s *BudgetService) Spend(ctx context.Context, b core.Budget) (BudgetUsage, error) {
	end := b.EndDate
	if end.IsZero() {
		end = s.now()
	}

	spent, err := s.ledger.SumCategoryOutflow(ctx, b.UserID, b.Category, b.StartDate, end)
	if err != nil {
		return BudgetUsage{}, fmt.Errorf("sum budget spending: %w", err)
	}

	return BudgetUsage{
		Budget:      b,
		Spent:       spent,
		Remaining:   core.Remaining(b.Limit, spent),
		Utilization: core.UtilizationPercent(spent, b.Limit),
	}, nil
}

// ListWithUsage returns the user's active budgets with their spending
// resolved concurrently.
func (s *BudgetService) ListWithUsage(ctx context.Context, userID int64) ([]BudgetUsage, error) {
	budgets, err := s.ledger.ListActiveBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	usages := make([]BudgetUsage, len(budgets))
	g, gctx := errgroup.WithContext(ctx)
	for i, b := range budgets {
		i, b := i, b
		g.Go(func() error {
			u, err := s.Spend(gctx, b)
			if err != nil {
				return err
			}
			usages[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return usages, nil
}

// ReanchorPeriods rolls every active budget whose period has lapsed
// forward to a fresh window anchored at now. Meant to run periodically
// from the alert worker.
func (s *BudgetService) ReanchorPeriods(ctx context.Context, now time.Time) error {
	users, err := s.ledger.ListBudgetUsers(ctx)
	if err != nil {
		return fmt.Errorf("list budget users: %w", err)
	}

	for _, userID := range users {
		budgets, err := s.ledger.ListActiveBudgets(ctx, userID)
		if err != nil {
			return fmt.Errorf("list budgets for user %d: %w", userID, err)
		}
		for _, b := range budgets {
			if b.EndDate.IsZero() || !b.EndDate.Before(now) {
				continue
			}
			start, end := core.ComputePeriod(b.Period, now)
			if err := s.ledger.UpdateBudgetPeriod(ctx, b.ID, start, end); err != nil {
				return fmt.Errorf("reanchor budget %d: %w", b.ID, err)
			}
		}
	}
	return nil
}
