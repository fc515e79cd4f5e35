package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"pfm/internal/core"

	_ "modernc.org/sqlite"
)

// timeLayout is how timestamps are stored: UTC, second precision, and
// lexicographically ordered so range predicates work on text.
const timeLayout = "2006-01-02 15:04:05"

// SQLiteStore is the production ledger backed by a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeTags(s string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil
	}
	return tags
}

// --- transactions ---

const transactionColumns = `id, user_id, account_id, external_id, amount_cents, date,
	authorized_date, name, merchant_name, raw_categories, primary_category,
	pending, manual, notes`

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var (
		t          core.Transaction
		externalID sql.NullString
		date       string
		authorized string
		rawTags    string
	)
	err := row.Scan(&t.ID, &t.UserID, &t.AccountID, &externalID, &t.Amount.Cents,
		&date, &authorized, &t.Name, &t.MerchantName, &rawTags, &t.Category,
		&t.Pending, &t.Manual, &t.Notes)
	if err != nil {
		return core.Transaction{}, err
	}
	t.ExternalID = externalID.String
	t.Date = parseTime(date)
	t.AuthorizedDate = parseTime(authorized)
	t.RawCategories = decodeTags(rawTags)
	return t, nil
}

func nullableExternalID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func (s *SQLiteStore) FindByExternalID(ctx context.Context, externalID string) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE external_id = ?`, externalID)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("find transaction by external id: %w", err)
	}
	return t, nil
}

// UpsertTransaction inserts the record or, when the external id already
// exists, overwrites every provider-sourced field in one atomic
// statement. The manual flag and notes are not in the update set and so
// survive redelivery.
func (s *SQLiteStore) UpsertTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, account_id, external_id, amount_cents, date,
			authorized_date, name, merchant_name, raw_categories, primary_category, pending)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(external_id) WHERE external_id IS NOT NULL DO UPDATE SET
			user_id = excluded.user_id,
			account_id = excluded.account_id,
			amount_cents = excluded.amount_cents,
			date = excluded.date,
			authorized_date = excluded.authorized_date,
			name = excluded.name,
			merchant_name = excluded.merchant_name,
			raw_categories = excluded.raw_categories,
			primary_category = excluded.primary_category,
			pending = excluded.pending,
			updated_at = datetime('now')
		RETURNING id`,
		t.UserID, t.AccountID, nullableExternalID(t.ExternalID), t.Amount.Cents,
		fmtTime(t.Date), fmtTime(t.AuthorizedDate), t.Name, t.MerchantName,
		encodeTags(t.RawCategories), t.Category, t.Pending)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("upsert transaction: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) InsertTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (user_id, account_id, external_id, amount_cents, date,
			authorized_date, name, merchant_name, raw_categories, primary_category,
			pending, manual, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.AccountID, nullableExternalID(t.ExternalID), t.Amount.Cents,
		fmtTime(t.Date), fmtTime(t.AuthorizedDate), t.Name, t.MerchantName,
		encodeTags(t.RawCategories), t.Category, t.Pending, t.Manual, t.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert transaction id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET amount_cents = ?, date = ?, name = ?, merchant_name = ?,
			raw_categories = ?, primary_category = ?, pending = ?, notes = ?,
			updated_at = datetime('now')
		WHERE id = ?`,
		t.Amount.Cents, fmtTime(t.Date), t.Name, t.MerchantName,
		encodeTags(t.RawCategories), t.Category, t.Pending, t.Notes, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) GetTransaction(ctx context.Context, userID, id int64) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) ListTransactions(ctx context.Context, userID int64, f TransactionFilter) ([]core.Transaction, int64, error) {
	where := `WHERE user_id = ?`
	args := []any{userID}
	if !f.From.IsZero() {
		where += ` AND date >= ?`
		args = append(args, fmtTime(f.From))
	}
	if !f.To.IsZero() {
		where += ` AND date <= ?`
		args = append(args, fmtTime(f.To))
	}
	if f.Category != "" {
		where += ` AND primary_category = ?`
		args = append(args, f.Category)
	}
	if f.AccountID != 0 {
		where += ` AND account_id = ?`
		args = append(args, f.AccountID)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions ` + where +
		` ORDER BY date DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(f.Limit) + ` OFFSET ` + strconv.Itoa(f.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (s *SQLiteStore) ListUserTransactions(ctx context.Context, userID int64) ([]core.Transaction, error) {
	out, _, err := s.ListTransactions(ctx, userID, TransactionFilter{})
	return out, err
}

func (s *SQLiteStore) SumCategoryOutflow(ctx context.Context, userID int64, category core.Category, from, to time.Time) (core.Money, error) {
	var cents int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0) FROM transactions
		WHERE user_id = ? AND primary_category = ? AND amount_cents > 0
			AND date >= ? AND date <= ?`,
		userID, category, fmtTime(from), fmtTime(to)).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum category outflow: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

func (s *SQLiteStore) WindowTotals(ctx context.Context, userID int64, from, to time.Time) (core.Money, core.Money, error) {
	var income, expenses int64
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN amount_cents < 0 THEN -amount_cents ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN amount_cents > 0 THEN amount_cents ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = ? AND date >= ? AND date < ?`,
		userID, fmtTime(from), fmtTime(to)).Scan(&income, &expenses)
	if err != nil {
		return core.Money{}, core.Money{}, fmt.Errorf("window totals: %w", err)
	}
	return core.Money{Cents: income}, core.Money{Cents: expenses}, nil
}

func (s *SQLiteStore) CategoryOutflowTotals(ctx context.Context, userID int64, from, to time.Time) ([]core.CategorySpend, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT primary_category, SUM(amount_cents) AS total
		FROM transactions
		WHERE user_id = ? AND amount_cents > 0 AND date >= ? AND date < ?
		GROUP BY primary_category
		ORDER BY total DESC, primary_category ASC`,
		userID, fmtTime(from), fmtTime(to))
	if err != nil {
		return nil, fmt.Errorf("category outflow totals: %w", err)
	}
	defer rows.Close()

	var out []core.CategorySpend
	for rows.Next() {
		var cs core.CategorySpend
		if err := rows.Scan(&cs.Category, &cs.Total.Cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) MonthlyTrends(ctx context.Context, userID int64, from time.Time) ([]core.MonthlyTrend, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			CAST(strftime('%Y', date) AS INTEGER) AS y,
			CAST(strftime('%m', date) AS INTEGER) AS m,
			COALESCE(SUM(CASE WHEN amount_cents < 0 THEN -amount_cents ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN amount_cents > 0 THEN amount_cents ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = ? AND date >= ?
		GROUP BY y, m
		ORDER BY y ASC, m ASC`,
		userID, fmtTime(from))
	if err != nil {
		return nil, fmt.Errorf("monthly trends: %w", err)
	}
	defer rows.Close()

	var out []core.MonthlyTrend
	for rows.Next() {
		var (
			tr    core.MonthlyTrend
			month int
		)
		if err := rows.Scan(&tr.Year, &month, &tr.Income.Cents, &tr.Expenses.Cents); err != nil {
			return nil, fmt.Errorf("scan trend: %w", err)
		}
		tr.Month = time.Month(month)
		out = append(out, tr)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) RecentTransactions(ctx context.Context, userID int64, limit int) ([]core.RecentTransaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.account_id, t.external_id, t.amount_cents, t.date,
			t.authorized_date, t.name, t.merchant_name, t.raw_categories,
			t.primary_category, t.pending, t.manual, t.notes,
			a.name, a.institution_name
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.user_id = ?
		ORDER BY t.date DESC, t.id DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	defer rows.Close()

	var out []core.RecentTransaction
	for rows.Next() {
		var (
			rt         core.RecentTransaction
			externalID sql.NullString
			date       string
			authorized string
			rawTags    string
		)
		err := rows.Scan(&rt.ID, &rt.UserID, &rt.AccountID, &externalID,
			&rt.Amount.Cents, &date, &authorized, &rt.Name, &rt.MerchantName,
			&rawTags, &rt.Category, &rt.Pending, &rt.Manual, &rt.Notes,
			&rt.AccountName, &rt.InstitutionName)
		if err != nil {
			return nil, fmt.Errorf("scan recent transaction: %w", err)
		}
		rt.ExternalID = externalID.String
		rt.Date = parseTime(date)
		rt.AuthorizedDate = parseTime(authorized)
		rt.RawCategories = decodeTags(rawTags)
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GroupedOutflow(ctx context.Context, userID int64, groupBy GroupBy, from, to time.Time, limit int) ([]core.SpendingGroup, error) {
	var keyExpr string
	switch groupBy {
	case GroupByMerchant:
		keyExpr = "merchant_name"
	case GroupByAccount:
		keyExpr = "CAST(account_id AS TEXT)"
	default:
		keyExpr = "primary_category"
	}

	where := `WHERE user_id = ? AND amount_cents > 0`
	args := []any{userID}
	if !from.IsZero() && !to.IsZero() {
		where += ` AND date >= ? AND date <= ?`
		args = append(args, fmtTime(from), fmtTime(to))
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+keyExpr+` AS grp, SUM(amount_cents) AS total, COUNT(*) AS cnt
		FROM transactions `+where+`
		GROUP BY grp
		ORDER BY total DESC, grp ASC
		LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("grouped outflow: %w", err)
	}
	defer rows.Close()

	var out []core.SpendingGroup
	for rows.Next() {
		var g core.SpendingGroup
		if err := rows.Scan(&g.Key, &g.Total.Cents, &g.Count); err != nil {
			return nil, fmt.Errorf("scan spending group: %w", err)
		}
		if g.Count > 0 {
			g.Average = core.Money{Cents: int64(math.Round(float64(g.Total.Cents) / float64(g.Count)))}
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// --- accounts ---

const accountColumns = `id, user_id, item_id, external_id, access_token, name,
	institution_name, kind, current_balance_cents, available_balance_cents,
	credit_limit_cents, currency, active, last_synced`

func scanAccount(row interface{ Scan(...any) error }) (core.Account, error) {
	var (
		a      core.Account
		synced string
	)
	err := row.Scan(&a.ID, &a.UserID, &a.ItemID, &a.ExternalID, &a.AccessToken,
		&a.Name, &a.InstitutionName, &a.Kind, &a.CurrentBalance.Cents,
		&a.AvailableBalance.Cents, &a.CreditLimit.Cents, &a.Currency,
		&a.Active, &synced)
	if err != nil {
		return core.Account{}, err
	}
	a.LastSynced = parseTime(synced)
	return a, nil
}

func (s *SQLiteStore) UpsertAccount(ctx context.Context, a core.Account) (int64, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (user_id, item_id, external_id, access_token, name,
			institution_name, kind, current_balance_cents, available_balance_cents,
			credit_limit_cents, currency, active, last_synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT(item_id, external_id) DO UPDATE SET
			name = excluded.name,
			institution_name = excluded.institution_name,
			kind = excluded.kind,
			current_balance_cents = excluded.current_balance_cents,
			available_balance_cents = excluded.available_balance_cents,
			credit_limit_cents = excluded.credit_limit_cents,
			currency = excluded.currency,
			last_synced = excluded.last_synced,
			updated_at = datetime('now')
		RETURNING id`,
		a.UserID, a.ItemID, a.ExternalID, a.AccessToken, a.Name,
		a.InstitutionName, a.Kind, a.CurrentBalance.Cents,
		a.AvailableBalance.Cents, a.CreditLimit.Cents, a.Currency,
		fmtTime(a.LastSynced))

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("upsert account: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) GetAccount(ctx context.Context, userID, id int64) (core.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ? AND user_id = ?`, id, userID)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Account{}, core.ErrNotFound
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

func (s *SQLiteStore) ListActiveAccounts(ctx context.Context, userID int64) ([]core.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = ? AND active = 1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list active accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeactivateAccount(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET active = 0, updated_at = datetime('now')
		WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deactivate account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) MarkAccountSynced(ctx context.Context, id int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET last_synced = ?, updated_at = datetime('now')
		WHERE id = ?`, fmtTime(at), id)
	if err != nil {
		return fmt.Errorf("mark account synced: %w", err)
	}
	return nil
}

// --- budgets ---

const budgetColumns = `id, user_id, category, limit_cents, period, start_date,
	end_date, alert_threshold, active, notifications_enabled`

func scanBudget(row interface{ Scan(...any) error }) (core.Budget, error) {
	var (
		b     core.Budget
		start string
		end   string
	)
	err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.Limit.Cents, &b.Period,
		&start, &end, &b.AlertThreshold, &b.Active, &b.NotificationsEnabled)
	if err != nil {
		return core.Budget{}, err
	}
	b.StartDate = parseTime(start)
	b.EndDate = parseTime(end)
	return b, nil
}

func (s *SQLiteStore) InsertBudget(ctx context.Context, b core.Budget) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (user_id, category, limit_cents, period, start_date,
			end_date, alert_threshold, active, notifications_enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.UserID, b.Category, b.Limit.Cents, b.Period, fmtTime(b.StartDate),
		fmtTime(b.EndDate), b.AlertThreshold, b.Active, b.NotificationsEnabled)
	if err != nil {
		return 0, fmt.Errorf("insert budget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert budget id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) GetBudget(ctx context.Context, userID, id int64) (core.Budget, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, core.ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

func (s *SQLiteStore) FindActiveBudget(ctx context.Context, userID int64, category core.Category, period core.PeriodKind) (core.Budget, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+budgetColumns+` FROM budgets
		WHERE user_id = ? AND category = ? AND period = ? AND active = 1`,
		userID, category, period)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, core.ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("find active budget: %w", err)
	}
	return b, nil
}

func (s *SQLiteStore) ListActiveBudgets(ctx context.Context, userID int64) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+budgetColumns+` FROM budgets
		WHERE user_id = ? AND active = 1
		ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list active budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdateBudget(ctx context.Context, b core.Budget) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE budgets SET limit_cents = ?, alert_threshold = ?,
			notifications_enabled = ?, updated_at = datetime('now')
		WHERE id = ? AND user_id = ?`,
		b.Limit.Cents, b.AlertThreshold, b.NotificationsEnabled, b.ID, b.UserID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeactivateBudget(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE budgets SET active = 0, updated_at = datetime('now')
		WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deactivate budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) UpdateBudgetPeriod(ctx context.Context, id int64, start, end time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE budgets SET start_date = ?, end_date = ?, updated_at = datetime('now')
		WHERE id = ?`, fmtTime(start), fmtTime(end), id)
	if err != nil {
		return fmt.Errorf("update budget period: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListBudgetUsers(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT user_id FROM budgets WHERE active = 1 ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list budget users: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
