package ledger

import (
	"context"
	"math"
	"sort"
	"strconv"
	"sync"
	"time"

	"pfm/internal/core"
)

// MemoryStore is a mutex-guarded Store used for tests and local runs
// without a database file. It mirrors the SQLite ordering and conflict
// semantics.
type MemoryStore struct {
	mu sync.RWMutex

	transactions map[int64]core.Transaction
	accounts     map[int64]core.Account
	budgets      map[int64]core.Budget

	nextTransactionID int64
	nextAccountID     int64
	nextBudgetID      int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[int64]core.Transaction),
		accounts:     make(map[int64]core.Account),
		budgets:      make(map[int64]core.Budget),
	}
}

func (s *MemoryStore) Close() error { return nil }

// --- transactions ---

func (s *MemoryStore) FindByExternalID(ctx context.Context, externalID string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.transactions {
		if t.ExternalID != "" && t.ExternalID == externalID {
			return t, nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

func (s *MemoryStore) UpsertTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ExternalID != "" {
		for id, existing := range s.transactions {
			if existing.ExternalID != t.ExternalID {
				continue
			}
			// Overwrite provider-sourced fields, keep local edits.
			t.ID = id
			t.Manual = existing.Manual
			t.Notes = existing.Notes
			s.transactions[id] = t
			return id, nil
		}
	}

	s.nextTransactionID++
	t.ID = s.nextTransactionID
	s.transactions[t.ID] = t
	return t.ID, nil
}

func (s *MemoryStore) InsertTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTransactionID++
	t.ID = s.nextTransactionID
	s.transactions[t.ID] = t
	return t.ID, nil
}

func (s *MemoryStore) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.transactions[t.ID]
	if !ok {
		return core.ErrNotFound
	}
	existing.Amount = t.Amount
	existing.Date = t.Date
	existing.Name = t.Name
	existing.MerchantName = t.MerchantName
	existing.RawCategories = t.RawCategories
	existing.Category = t.Category
	existing.Pending = t.Pending
	existing.Notes = t.Notes
	s.transactions[t.ID] = existing
	return nil
}

func (s *MemoryStore) DeleteTransaction(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *MemoryStore) GetTransaction(ctx context.Context, userID, id int64) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transactions[id]
	if !ok || t.UserID != userID {
		return core.Transaction{}, core.ErrNotFound
	}
	return t, nil
}

func matchesFilter(t core.Transaction, f TransactionFilter) bool {
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Date.After(f.To) {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.AccountID != 0 && t.AccountID != f.AccountID {
		return false
	}
	return true
}

func sortNewestFirst(ts []core.Transaction) {
	sort.Slice(ts, func(i, j int) bool {
		if !ts[i].Date.Equal(ts[j].Date) {
			return ts[i].Date.After(ts[j].Date)
		}
		return ts[i].ID > ts[j].ID
	})
}

func (s *MemoryStore) ListTransactions(ctx context.Context, userID int64, f TransactionFilter) ([]core.Transaction, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []core.Transaction
	for _, t := range s.transactions {
		if t.UserID == userID && matchesFilter(t, f) {
			matched = append(matched, t)
		}
	}
	sortNewestFirst(matched)

	total := int64(len(matched))
	if f.Limit > 0 {
		if f.Offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[f.Offset:]
		if len(matched) > f.Limit {
			matched = matched[:f.Limit]
		}
	}
	return matched, total, nil
}

func (s *MemoryStore) ListUserTransactions(ctx context.Context, userID int64) ([]core.Transaction, error) {
	out, _, err := s.ListTransactions(ctx, userID, TransactionFilter{})
	return out, err
}

func (s *MemoryStore) SumCategoryOutflow(ctx context.Context, userID int64, category core.Category, from, to time.Time) (core.Money, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cents int64
	for _, t := range s.transactions {
		if t.UserID != userID || t.Category != category || t.Amount.Cents <= 0 {
			continue
		}
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		cents += t.Amount.Cents
	}
	return core.Money{Cents: cents}, nil
}

func (s *MemoryStore) WindowTotals(ctx context.Context, userID int64, from, to time.Time) (core.Money, core.Money, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var income, expenses int64
	for _, t := range s.transactions {
		if t.UserID != userID || t.Date.Before(from) || !t.Date.Before(to) {
			continue
		}
		if t.Amount.Cents < 0 {
			income += -t.Amount.Cents
		} else if t.Amount.Cents > 0 {
			expenses += t.Amount.Cents
		}
	}
	return core.Money{Cents: income}, core.Money{Cents: expenses}, nil
}

func (s *MemoryStore) CategoryOutflowTotals(ctx context.Context, userID int64, from, to time.Time) ([]core.CategorySpend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[core.Category]int64)
	for _, t := range s.transactions {
		if t.UserID != userID || t.Amount.Cents <= 0 {
			continue
		}
		if t.Date.Before(from) || !t.Date.Before(to) {
			continue
		}
		totals[t.Category] += t.Amount.Cents
	}

	out := make([]core.CategorySpend, 0, len(totals))
	for c, cents := range totals {
		out = append(out, core.CategorySpend{Category: c, Total: core.Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Cents != out[j].Total.Cents {
			return out[i].Total.Cents > out[j].Total.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (s *MemoryStore) MonthlyTrends(ctx context.Context, userID int64, from time.Time) ([]core.MonthlyTrend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type bucket struct{ year, month int }
	totals := make(map[bucket]*core.MonthlyTrend)
	for _, t := range s.transactions {
		if t.UserID != userID || t.Date.Before(from) {
			continue
		}
		b := bucket{t.Date.Year(), int(t.Date.Month())}
		tr, ok := totals[b]
		if !ok {
			tr = &core.MonthlyTrend{Year: b.year, Month: time.Month(b.month)}
			totals[b] = tr
		}
		if t.Amount.Cents < 0 {
			tr.Income.Cents += -t.Amount.Cents
		} else if t.Amount.Cents > 0 {
			tr.Expenses.Cents += t.Amount.Cents
		}
	}

	out := make([]core.MonthlyTrend, 0, len(totals))
	for _, tr := range totals {
		out = append(out, *tr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

func (s *MemoryStore) RecentTransactions(ctx context.Context, userID int64, limit int) ([]core.RecentTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []core.Transaction
	for _, t := range s.transactions {
		if t.UserID == userID {
			if _, ok := s.accounts[t.AccountID]; ok {
				matched = append(matched, t)
			}
		}
	}
	sortNewestFirst(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]core.RecentTransaction, 0, len(matched))
	for _, t := range matched {
		a := s.accounts[t.AccountID]
		out = append(out, core.RecentTransaction{
			Transaction:     t,
			AccountName:     a.Name,
			InstitutionName: a.InstitutionName,
		})
	}
	return out, nil
}

func (s *MemoryStore) GroupedOutflow(ctx context.Context, userID int64, groupBy GroupBy, from, to time.Time, limit int) ([]core.SpendingGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type agg struct {
		cents int64
		count int64
	}
	totals := make(map[string]*agg)
	ranged := !from.IsZero() && !to.IsZero()
	for _, t := range s.transactions {
		if t.UserID != userID || t.Amount.Cents <= 0 {
			continue
		}
		if ranged && (t.Date.Before(from) || t.Date.After(to)) {
			continue
		}
		var key string
		switch groupBy {
		case GroupByMerchant:
			key = t.MerchantName
		case GroupByAccount:
			key = strconv.FormatInt(t.AccountID, 10)
		default:
			key = string(t.Category)
		}
		a, ok := totals[key]
		if !ok {
			a = &agg{}
			totals[key] = a
		}
		a.cents += t.Amount.Cents
		a.count++
	}

	out := make([]core.SpendingGroup, 0, len(totals))
	for key, a := range totals {
		g := core.SpendingGroup{
			Key:   key,
			Total: core.Money{Cents: a.cents},
			Count: a.count,
		}
		g.Average = core.Money{Cents: int64(math.Round(float64(a.cents) / float64(a.count)))}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Cents != out[j].Total.Cents {
			return out[i].Total.Cents > out[j].Total.Cents
		}
		return out[i].Key < out[j].Key
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- accounts ---

func (s *MemoryStore) UpsertAccount(ctx context.Context, a core.Account) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.accounts {
		if existing.ItemID != a.ItemID || existing.ExternalID != a.ExternalID {
			continue
		}
		a.ID = id
		a.Active = existing.Active
		s.accounts[id] = a
		return id, nil
	}

	s.nextAccountID++
	a.ID = s.nextAccountID
	a.Active = true
	s.accounts[a.ID] = a
	return a.ID, nil
}

func (s *MemoryStore) GetAccount(ctx context.Context, userID, id int64) (core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok || a.UserID != userID {
		return core.Account{}, core.ErrNotFound
	}
	return a, nil
}

func (s *MemoryStore) ListActiveAccounts(ctx context.Context, userID int64) ([]core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []core.Account
	for _, a := range s.accounts {
		if a.UserID == userID && a.Active {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) DeactivateAccount(ctx context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok || a.UserID != userID {
		return core.ErrNotFound
	}
	a.Active = false
	s.accounts[id] = a
	return nil
}

func (s *MemoryStore) MarkAccountSynced(ctx context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return core.ErrNotFound
	}
	a.LastSynced = at
	s.accounts[id] = a
	return nil
}

// --- budgets ---

func (s *MemoryStore) InsertBudget(ctx context.Context, b core.Budget) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.Active {
		for _, existing := range s.budgets {
			if existing.Active && existing.UserID == b.UserID &&
				existing.Category == b.Category && existing.Period == b.Period {
				return 0, core.ErrDuplicateBudget
			}
		}
	}

	s.nextBudgetID++
	b.ID = s.nextBudgetID
	s.budgets[b.ID] = b
	return b.ID, nil
}

func (s *MemoryStore) GetBudget(ctx context.Context, userID, id int64) (core.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.budgets[id]
	if !ok || b.UserID != userID {
		return core.Budget{}, core.ErrNotFound
	}
	return b, nil
}

func (s *MemoryStore) FindActiveBudget(ctx context.Context, userID int64, category core.Category, period core.PeriodKind) (core.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.budgets {
		if b.Active && b.UserID == userID && b.Category == category && b.Period == period {
			return b, nil
		}
	}
	return core.Budget{}, core.ErrNotFound
}

func (s *MemoryStore) ListActiveBudgets(ctx context.Context, userID int64) ([]core.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []core.Budget
	for _, b := range s.budgets {
		if b.UserID == userID && b.Active {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MemoryStore) UpdateBudget(ctx context.Context, b core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.budgets[b.ID]
	if !ok || existing.UserID != b.UserID {
		return core.ErrNotFound
	}
	existing.Limit = b.Limit
	existing.AlertThreshold = b.AlertThreshold
	existing.NotificationsEnabled = b.NotificationsEnabled
	s.budgets[b.ID] = existing
	return nil
}

func (s *MemoryStore) DeactivateBudget(ctx context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.budgets[id]
	if !ok || b.UserID != userID {
		return core.ErrNotFound
	}
	b.Active = false
	s.budgets[id] = b
	return nil
}

func (s *MemoryStore) UpdateBudgetPeriod(ctx context.Context, id int64, start, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.budgets[id]
	if !ok {
		return core.ErrNotFound
	}
	b.StartDate = start
	b.EndDate = end
	s.budgets[id] = b
	return nil
}

func (s *MemoryStore) ListBudgetUsers(ctx context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[int64]bool)
	var out []int64
	for _, b := range s.budgets {
		if b.Active && !seen[b.UserID] {
			seen[b.UserID] = true
			out = append(out, b.UserID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
