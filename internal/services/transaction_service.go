package services

import (
	"context"
	"fmt"

	"pfm/internal/core"
	"pfm/internal/ledger"
)

// DefaultPageSize bounds transaction listings when the caller did not
// pick a limit.
const DefaultPageSize = 50

type transactionLedger interface {
	ledger.TransactionStore
	ledger.AccountStore
}

// TransactionService owns manual ledger entries and listing. Provider
// entries arrive through the Reconciler instead and may only have their
// notes and category touched here.
type TransactionService struct {
	ledger transactionLedger
}

func NewTransactionService(store transactionLedger) *TransactionService {
	return &TransactionService{ledger: store}
}

// CreateManual records a user-entered transaction against one of the
// user's own accounts. The category is derived from the name unless the
// caller picked one.
func (s *TransactionService) CreateManual(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.Manual = true
	t.ExternalID = ""
	if t.Category == "" {
		t.Category = core.Classify(t.Name, t.RawCategories)
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if _, err := s.ledger.GetAccount(ctx, t.UserID, t.AccountID); err != nil {
		return core.Transaction{}, fmt.Errorf("resolve account: %w", err)
	}

	id, err := s.ledger.InsertTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	t.ID = id
	return t, nil
}

// TransactionUpdate carries the mutable fields; nil means unchanged.
type TransactionUpdate struct {
	Amount   *core.Money
	Name     *string
	Category *core.Category
	Notes    *string
}

// Update edits a transaction. Manual entries accept any field; provider
// entries only the notes and category, since everything else is
// overwritten on the next sync anyway.
func (s *TransactionService) Update(ctx context.Context, userID, id int64, upd TransactionUpdate) (core.Transaction, error) {
	t, err := s.ledger.GetTransaction(ctx, userID, id)
	if err != nil {
		return core.Transaction{}, err
	}

	if !t.Manual && (upd.Amount != nil || upd.Name != nil) {
		return core.Transaction{}, core.ErrImmutableRecord
	}

	if upd.Amount != nil {
		t.Amount = *upd.Amount
	}
	if upd.Name != nil {
		t.Name = *upd.Name
		if upd.Category == nil {
			// The name drives classification for manual entries.
			t.Category = core.Classify(t.Name, t.RawCategories)
		}
	}
	if upd.Category != nil {
		t.Category = *upd.Category
	}
	if upd.Notes != nil {
		t.Notes = *upd.Notes
	}

	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if err := s.ledger.UpdateTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	return t, nil
}

// Delete removes a manual entry. Provider entries cannot be deleted
// locally or they would resurrect on the next sync.
func (s *TransactionService) Delete(ctx context.Context, userID, id int64) error {
	t, err := s.ledger.GetTransaction(ctx, userID, id)
	if err != nil {
		return err
	}
	if !t.Manual {
		return core.ErrImmutableRecord
	}
	return s.ledger.DeleteTransaction(ctx, t.ID)
}

func (s *TransactionService) Get(ctx context.Context, userID, id int64) (core.Transaction, error) {
	return s.ledger.GetTransaction(ctx, userID, id)
}

// List returns a filtered page newest-first plus the unpaged total.
func (s *TransactionService) List(ctx context.Context, userID int64, f ledger.TransactionFilter) ([]core.Transaction, int64, error) {
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return nil, 0, core.ErrInvalidDateRange
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.ledger.ListTransactions(ctx, userID, f)
}

// SetCategory reassigns one transaction to a category, bypassing the
// keyword classifier.
func (s *TransactionService) SetCategory(ctx context.Context, userID, id int64, category core.Category) (core.Transaction, error) {
	if category == "" {
		return core.Transaction{}, core.ErrEmptyCategory
	}
	return s.Update(ctx, userID, id, TransactionUpdate{Category: &category})
}

// Recategorize re-runs the classifier over the user's whole ledger and
// rewrites categories that changed, returning how many rows moved.
// Useful after the keyword table gains entries.
func (s *TransactionService) Recategorize(ctx context.Context, userID int64) (int64, error) {
	all, err := s.ledger.ListUserTransactions(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list transactions: %w", err)
	}

	var updated int64
	for _, t := range all {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		next := core.Classify(t.Name, t.RawCategories)
		if next == t.Category {
			continue
		}
		t.Category = next
		if err := s.ledger.UpdateTransaction(ctx, t); err != nil {
			return updated, fmt.Errorf("recategorize transaction %d: %w", t.ID, err)
		}
		updated++
	}
	return updated, nil
}
