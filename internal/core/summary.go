package core

import (
	"math"
	"time"
)

// CategorySpend is an outflow total for one category.
type CategorySpend struct {
	Category Category
	Total    Money
}

// MonthlyTrend holds the income/expense split for one calendar month.
type MonthlyTrend struct {
	Year     int
	Month    time.Month
	Income   Money // sum of abs(amount) where amount < 0
	Expenses Money // sum of amount where amount > 0
}

// RecentTransaction is a ledger entry with its account display fields
// resolved for presentation.
type RecentTransaction struct {
	Transaction
	AccountName     string
	InstitutionName string
}

// SpendingGroup is one row of a grouped spending analytics result.
type SpendingGroup struct {
	Key     string
	Total   Money
	Count   int64
	Average Money
}

// DashboardSummary aggregates a user's ledger for the dashboard.
type DashboardSummary struct {
	TotalBalance       Money
	MonthlyIncome      Money
	MonthlyExpenses    Money
	SavingsRate        float64 // percent, one decimal
	ActiveAccounts     int
	CategorySpending   []CategorySpend
	MonthlyTrends      []MonthlyTrend
	RecentTransactions []RecentTransaction
}

// SavingsRate returns (income - expenses) / income as a percentage rounded
// to one decimal, or 0 when income is zero.
func SavingsRate(income, expenses Money) float64 {
	if income.Cents == 0 {
		return 0
	}
	rate := float64(income.Cents-expenses.Cents) / float64(income.Cents) * 100
	return math.Round(rate*10) / 10
}
