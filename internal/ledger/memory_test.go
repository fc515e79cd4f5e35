package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"pfm/internal/core"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestMemoryStoreUpsertPreservesLocalEdits(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.UpsertTransaction(ctx, core.Transaction{
		UserID:     1,
		AccountID:  1,
		ExternalID: "ext-1",
		Amount:     core.Money{Cents: 1250},
		Date:       date(2025, time.March, 10),
		Name:       "Uber 072515 SF",
		Category:   core.Category("Transportation"),
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// Simulate a local edit, then a provider redelivery of the same record.
	edited, _ := s.GetTransaction(ctx, 1, id)
	edited.Notes = "airport ride"
	if err := s.UpdateTransaction(ctx, edited); err != nil {
		t.Fatalf("update: %v", err)
	}

	id2, err := s.UpsertTransaction(ctx, core.Transaction{
		UserID:     1,
		AccountID:  1,
		ExternalID: "ext-1",
		Amount:     core.Money{Cents: 1300},
		Date:       date(2025, time.March, 11),
		Name:       "Uber 072515 SF",
		Category:   core.Category("Transportation"),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if id2 != id {
		t.Fatalf("expected same id on redelivery, got %d and %d", id, id2)
	}

	got, err := s.GetTransaction(ctx, 1, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount.Cents != 1300 {
		t.Errorf("amount not refreshed: got %d", got.Amount.Cents)
	}
	if got.Notes != "airport ride" {
		t.Errorf("notes lost on redelivery: got %q", got.Notes)
	}
}

func TestMemoryStoreUpsertKeepsManualFlag(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.InsertTransaction(ctx, core.Transaction{
		UserID:     1,
		AccountID:  1,
		ExternalID: "ext-9",
		Amount:     core.Money{Cents: 4200},
		Date:       date(2025, time.March, 2),
		Name:       "Farmers market",
		Category:   core.Category("Food and Drink"),
		Manual:     true,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := s.UpsertTransaction(ctx, core.Transaction{
		UserID:     1,
		AccountID:  1,
		ExternalID: "ext-9",
		Amount:     core.Money{Cents: 4300},
		Date:       date(2025, time.March, 2),
		Name:       "Farmers market",
		Category:   core.Category("Food and Drink"),
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := s.GetTransaction(ctx, 1, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Manual {
		t.Error("manual flag lost on redelivery")
	}
	if got.Amount.Cents != 4300 {
		t.Errorf("amount not refreshed: got %d", got.Amount.Cents)
	}
}

func TestMemoryStoreUpsertWithoutExternalIDAlwaysInserts(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tx := core.Transaction{
		UserID:    1,
		AccountID: 1,
		Amount:    core.Money{Cents: 500},
		Date:      date(2025, time.March, 1),
		Name:      "Cash withdrawal",
		Category:  core.CategoryUncategorized,
	}
	id1, err := s.UpsertTransaction(ctx, tx)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	id2, err := s.UpsertTransaction(ctx, tx)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if id1 == id2 {
		t.Error("transactions without external ids must not collide")
	}
}

func TestMemoryStoreListTransactionsFilterAndPaging(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i, day := range []int{1, 2, 3, 4, 5} {
		_, err := s.InsertTransaction(ctx, core.Transaction{
			UserID:    1,
			AccountID: 1,
			Amount:    core.Money{Cents: int64(100 * (i + 1))},
			Date:      date(2025, time.April, day),
			Name:      "Coffee",
			Category:  core.Category("Food and Drink"),
		})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	// Someone else's row must never leak in.
	if _, err := s.InsertTransaction(ctx, core.Transaction{
		UserID: 2, AccountID: 9, Amount: core.Money{Cents: 999},
		Date: date(2025, time.April, 3), Name: "Other", Category: core.CategoryUncategorized,
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, total, err := s.ListTransactions(ctx, 1, TransactionFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(got) != 2 {
		t.Fatalf("page size = %d, want 2", len(got))
	}
	// Newest first, so offset 1 starts at April 4.
	if got[0].Date.Day() != 4 || got[1].Date.Day() != 3 {
		t.Errorf("unexpected page order: %v, %v", got[0].Date, got[1].Date)
	}

	ranged, total, err := s.ListTransactions(ctx, 1, TransactionFilter{
		From: core.StartOfDay(date(2025, time.April, 2)),
		To:   core.EndOfDay(date(2025, time.April, 4)),
	})
	if err != nil {
		t.Fatalf("list ranged: %v", err)
	}
	if total != 3 || len(ranged) != 3 {
		t.Errorf("ranged list = %d rows (total %d), want 3", len(ranged), total)
	}
}

func TestMemoryStoreWindowTotalsSplitsBySign(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rows := []struct {
		cents int64
		day   int
	}{
		{-500000, 1}, // paycheck
		{20000, 5},
		{15000, 12},
		{-2500, 20}, // refund
		{30000, 31}, // next month boundary is exclusive below
	}
	for _, r := range rows {
		if _, err := s.InsertTransaction(ctx, core.Transaction{
			UserID: 7, AccountID: 1,
			Amount:   core.Money{Cents: r.cents},
			Date:     date(2025, time.May, r.day),
			Name:     "row",
			Category: core.CategoryUncategorized,
		}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	from := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)
	income, expenses, err := s.WindowTotals(ctx, 7, from, to)
	if err != nil {
		t.Fatalf("window totals: %v", err)
	}
	if income.Cents != 502500 {
		t.Errorf("income = %d, want 502500", income.Cents)
	}
	if expenses.Cents != 35000 {
		t.Errorf("expenses = %d, want 35000", expenses.Cents)
	}
}

func TestMemoryStoreCategoryTotalsOrdering(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	seed := []struct {
		cat   core.Category
		cents int64
	}{
		{"Food and Drink", 12000},
		{"Transportation", 30000},
		{"Shopping", 30000},
		{"Food and Drink", 8000},
	}
	for _, r := range seed {
		if _, err := s.InsertTransaction(ctx, core.Transaction{
			UserID: 1, AccountID: 1,
			Amount: core.Money{Cents: r.cents}, Date: date(2025, time.June, 10),
			Name: "row", Category: r.cat,
		}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	got, err := s.CategoryOutflowTotals(ctx, 1,
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("category totals: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d categories, want 3", len(got))
	}
	// Ties break alphabetically: Shopping before Transportation.
	if got[0].Category != "Shopping" || got[1].Category != "Transportation" {
		t.Errorf("unexpected order: %s, %s", got[0].Category, got[1].Category)
	}
	if got[2].Category != "Food and Drink" || got[2].Total.Cents != 20000 {
		t.Errorf("merged total wrong: %s = %d", got[2].Category, got[2].Total.Cents)
	}
}

func TestMemoryStoreBudgetUniqueness(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	b := core.Budget{
		UserID:   1,
		Category: core.Category("Food and Drink"),
		Limit:    core.Money{Cents: 60000},
		Period:   core.Monthly,
		Active:   true,
	}
	if _, err := s.InsertBudget(ctx, b); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.InsertBudget(ctx, b); !errors.Is(err, core.ErrDuplicateBudget) {
		t.Fatalf("expected ErrDuplicateBudget, got %v", err)
	}

	// A weekly budget for the same category is a different triple.
	b.Period = core.Weekly
	if _, err := s.InsertBudget(ctx, b); err != nil {
		t.Fatalf("insert weekly: %v", err)
	}

	// Deactivating frees the triple for a replacement.
	users, err := s.ListBudgetUsers(ctx)
	if err != nil || len(users) != 1 || users[0] != 1 {
		t.Fatalf("budget users = %v (%v)", users, err)
	}
	if err := s.DeactivateBudget(ctx, 1, 1); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	b.Period = core.Monthly
	if _, err := s.InsertBudget(ctx, b); err != nil {
		t.Fatalf("reinsert after deactivate: %v", err)
	}
}

func TestMemoryStoreAccountUpsertKeepsActiveFlag(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a := core.Account{
		UserID:          3,
		ItemID:          "item-1",
		ExternalID:      "acc-1",
		Name:            "Checking",
		InstitutionName: "First National",
		Kind:            core.AccountDepository,
		CurrentBalance:  core.Money{Cents: 120000},
	}
	id, err := s.UpsertAccount(ctx, a)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.DeactivateAccount(ctx, 3, id); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	a.CurrentBalance = core.Money{Cents: 110000}
	id2, err := s.UpsertAccount(ctx, a)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if id2 != id {
		t.Fatalf("expected stable id, got %d then %d", id, id2)
	}
	active, err := s.ListActiveAccounts(ctx, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 0 {
		t.Error("refresh must not reactivate an unlinked account")
	}
}
