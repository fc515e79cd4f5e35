package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"pfm/internal/core"
)

const fixtureDateLayout = "2006-01-02"

// fixtureRecord is the on-disk shape of one replayed transaction.
// Amounts are decimal strings to keep fixtures hand-editable.
type fixtureRecord struct {
	ExternalID     string   `json:"external_id"`
	Amount         string   `json:"amount"`
	Date           string   `json:"date"`
	AuthorizedDate string   `json:"authorized_date,omitempty"`
	Name           string   `json:"name"`
	MerchantName   string   `json:"merchant_name,omitempty"`
	Categories     []string `json:"categories,omitempty"`
	Pending        bool     `json:"pending,omitempty"`
	PaymentChannel string   `json:"payment_channel,omitempty"`
}

// FileSource serves transactions from a JSON fixture keyed by access
// token. The file is read once, on first use.
type FileSource struct {
	path string

	mu     sync.Mutex
	loaded map[string][]fixtureRecord
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) load() (map[string][]fixtureRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded != nil {
		return s.loaded, nil
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", s.path, err)
	}
	var byToken map[string][]fixtureRecord
	if err := json.Unmarshal(raw, &byToken); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", s.path, err)
	}
	s.loaded = byToken
	return byToken, nil
}

// Transactions returns the fixture records for the token dated within
// [start, end], compared at day precision.
func (s *FileSource) Transactions(ctx context.Context, accessToken string, start, end time.Time) ([]core.RawTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byToken, err := s.load()
	if err != nil {
		return nil, err
	}

	records, ok := byToken[accessToken]
	if !ok {
		return nil, fmt.Errorf("%w: unknown access token", core.ErrUpstream)
	}

	from := core.StartOfDay(start)
	to := core.EndOfDay(end)

	var out []core.RawTransaction
	for _, rec := range records {
		raw, err := rec.toRaw()
		if err != nil {
			return nil, fmt.Errorf("fixture record %s: %w", rec.ExternalID, err)
		}
		if raw.Date.Before(from) || raw.Date.After(to) {
			continue
		}
		out = append(out, raw)
	}
	return out, nil
}

func (r fixtureRecord) toRaw() (core.RawTransaction, error) {
	cents, err := core.ParseDecimalToCents(r.Amount)
	if err != nil {
		return core.RawTransaction{}, fmt.Errorf("amount %q: %w", r.Amount, err)
	}
	date, err := time.ParseInLocation(fixtureDateLayout, r.Date, time.UTC)
	if err != nil {
		return core.RawTransaction{}, fmt.Errorf("date %q: %w", r.Date, err)
	}
	var authorized time.Time
	if r.AuthorizedDate != "" {
		authorized, err = time.ParseInLocation(fixtureDateLayout, r.AuthorizedDate, time.UTC)
		if err != nil {
			return core.RawTransaction{}, fmt.Errorf("authorized date %q: %w", r.AuthorizedDate, err)
		}
	}
	return core.RawTransaction{
		ExternalID:     r.ExternalID,
		Amount:         core.Money{Cents: cents},
		Date:           date,
		AuthorizedDate: authorized,
		Name:           r.Name,
		MerchantName:   r.MerchantName,
		Categories:     r.Categories,
		Pending:        r.Pending,
		PaymentChannel: r.PaymentChannel,
	}, nil
}
