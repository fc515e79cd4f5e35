package core

import (
	"strings"
	"time"
)

const (
	Weekly  PeriodKind = "weekly"
	Monthly PeriodKind = "monthly"
	Yearly  PeriodKind = "yearly"
)

const (
	AccountDepository AccountKind = "depository"
	AccountCredit     AccountKind = "credit"
	AccountLoan       AccountKind = "loan"
	AccountInvestment AccountKind = "investment"
	AccountOther      AccountKind = "other"
)

type (
	// PeriodKind is the rolling window over which a budget is measured.
	PeriodKind string

	// AccountKind mirrors the provider's account type taxonomy.
	AccountKind string

	// Category is a normalized internal spending category.
	Category string

	Money struct {
		Cents int64
	}

	// Account is a linked financial account. The (ItemID, ExternalID)
	// pair is globally unique. Accounts are soft-deleted via Active so
	// historical transactions stay valid.
	Account struct {
		ID               int64
		UserID           int64
		ItemID           string // provider item id
		ExternalID       string // provider account id
		AccessToken      string // provider access credential, never logged
		Name             string
		InstitutionName  string
		Kind             AccountKind
		CurrentBalance   Money
		AvailableBalance Money
		CreditLimit      Money
		Currency         string
		Active           bool
		LastSynced       time.Time
	}

	// Transaction is a single ledger entry. Sign convention is fixed by
	// the provider: negative = inflow, positive = outflow. ExternalID is
	// empty for manually entered transactions and is otherwise the
	// global deduplication key.
	Transaction struct {
		ID             int64
		UserID         int64
		AccountID      int64
		ExternalID     string
		Amount         Money
		Date           time.Time
		AuthorizedDate time.Time // zero when the provider omitted it
		Name           string
		MerchantName   string
		RawCategories  []string
		Category       Category
		Pending        bool
		Manual         bool
		Notes          string
	}

	// Budget is a per-user spending limit for one category over one
	// period kind. At most one active budget may exist per
	// (user, category, period) triple.
	Budget struct {
		ID                   int64
		UserID               int64
		Category             Category
		Limit                Money
		Period               PeriodKind
		StartDate            time.Time
		EndDate              time.Time
		AlertThreshold       int // percent, 0-100
		Active               bool
		NotificationsEnabled bool
	}

	// RawTransaction is one record of a provider batch, already
	// assembled by the provider client (pagination is its problem).
	RawTransaction struct {
		ExternalID      string
		Amount          Money
		Date            time.Time
		AuthorizedDate  time.Time
		Name            string
		MerchantName    string
		Categories      []string
		Pending         bool
		PaymentChannel  string
		TransactionType string
	}
)

// Valid reports whether k is a known period kind.
func (k PeriodKind) Valid() bool {
	switch k {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Valid reports whether k is a known account kind.
func (k AccountKind) Valid() bool {
	switch k {
	case AccountDepository, AccountCredit, AccountLoan, AccountInvestment, AccountOther:
		return true
	}
	return false
}

func (a Account) Validate() error {
	if a.UserID == 0 {
		return ErrMissingOwner
	}
	if a.ItemID == "" || a.ExternalID == "" {
		return ErrMissingExternalID
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Kind.Valid() {
		return ErrInvalidAccountKind
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.UserID == 0 {
		return ErrMissingOwner
	}
	if t.AccountID == 0 {
		return ErrMissingAccount
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if t.Amount.Cents == 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (b Budget) Validate() error {
	if b.UserID == 0 {
		return ErrMissingOwner
	}
	if strings.TrimSpace(string(b.Category)) == "" {
		return ErrEmptyCategory
	}
	if b.Limit.Cents <= 0 {
		return ErrInvalidLimit
	}
	if !b.Period.Valid() {
		return ErrInvalidPeriod
	}
	if b.AlertThreshold < 0 || b.AlertThreshold > 100 {
		return ErrInvalidThreshold
	}
	return nil
}

func (r RawTransaction) Validate() error {
	if r.ExternalID == "" {
		return ErrMissingExternalID
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if r.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
