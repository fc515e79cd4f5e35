package core

import (
	"errors"
	"testing"
	"time"
)

func TestBudgetValidate(t *testing.T) {
	good := Budget{
		UserID:         1,
		Category:       CategoryShopping,
		Limit:          Money{60000},
		Period:         Monthly,
		AlertThreshold: 80,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Budget)
		wantErr error
	}{
		{"missing owner", func(b *Budget) { b.UserID = 0 }, ErrMissingOwner},
		{"empty category", func(b *Budget) { b.Category = " " }, ErrEmptyCategory},
		{"zero limit", func(b *Budget) { b.Limit = Money{0} }, ErrInvalidLimit},
		{"negative limit", func(b *Budget) { b.Limit = Money{-100} }, ErrInvalidLimit},
		{"unknown period", func(b *Budget) { b.Period = "daily" }, ErrInvalidPeriod},
		{"threshold too high", func(b *Budget) { b.AlertThreshold = 101 }, ErrInvalidThreshold},
		{"threshold negative", func(b *Budget) { b.AlertThreshold = -1 }, ErrInvalidThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := good
			tt.mutate(&b)
			if err := b.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		UserID:    1,
		AccountID: 2,
		Amount:    Money{4250},
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Name:      "Starbucks Coffee",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		mutate  func(*Transaction)
		wantErr error
	}{
		{func(x *Transaction) { x.UserID = 0 }, ErrMissingOwner},
		{func(x *Transaction) { x.AccountID = 0 }, ErrMissingAccount},
		{func(x *Transaction) { x.Name = "" }, ErrEmptyName},
		{func(x *Transaction) { x.Date = time.Time{} }, ErrInvalidDate},
		{func(x *Transaction) { x.Amount = Money{0} }, ErrInvalidAmount},
	}
	for i, tt := range bads {
		x := good
		tt.mutate(&x)
		if err := x.Validate(); !errors.Is(err, tt.wantErr) {
			t.Errorf("case %d: Validate() = %v, want %v", i, err, tt.wantErr)
		}
	}
}

func TestAccountValidate(t *testing.T) {
	good := Account{
		UserID:     1,
		ItemID:     "item-1",
		ExternalID: "acc-1",
		Name:       "Checking",
		Kind:       AccountDepository,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := good
	bad.Kind = "savings-ish"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidAccountKind) {
		t.Errorf("Validate() = %v, want %v", err, ErrInvalidAccountKind)
	}

	bad = good
	bad.ExternalID = ""
	if err := bad.Validate(); !errors.Is(err, ErrMissingExternalID) {
		t.Errorf("Validate() = %v, want %v", err, ErrMissingExternalID)
	}
}

func TestRawTransactionValidate(t *testing.T) {
	good := RawTransaction{
		ExternalID: "t1",
		Amount:     Money{4250},
		Date:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Name:       "Starbucks Coffee",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bad := good
	bad.ExternalID = ""
	if err := bad.Validate(); !errors.Is(err, ErrMissingExternalID) {
		t.Errorf("Validate() = %v, want %v", err, ErrMissingExternalID)
	}
}
