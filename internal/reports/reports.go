// Package reports derives summary statistics and chart buckets from
// transaction records.
//
// Everything here is computed fresh on every request, there is no
// caching layer to keep consistent.
package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/financegenie/backend/internal/models"
	"github.com/financegenie/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// Stats are the aggregated totals for a set of transactions.
type Stats struct {
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	Balance     decimal.Decimal `json:"balance"`
	SavingsRate float64         `json:"savingsRate"` // percent, rounded to one decimal
}

// Summarize sums the transactions by type.
//
// The savings rate is defined as 0 when there is no income, avoiding a
// division by zero.
func Summarize(transactions []models.Transaction) Stats {
	var income, expense decimal.Decimal

	for _, t := range transactions {
		switch t.Type {
		case models.TypeIncome:
			income = income.Add(t.Amount)
		case models.TypeExpense:
			expense = expense.Add(t.Amount)
		}
	}

	return Stats{
		Income:      income,
		Expense:     expense,
		Balance:     income.Sub(expense),
		SavingsRate: savingsRate(income, expense),
	}
}

// savingsRate returns ((income - expense) / income) * 100 rounded to
// one decimal, or 0 when income is zero.
func savingsRate(income, expense decimal.Decimal) float64 {
	if income.IsZero() {
		return 0
	}

	rate, _ := income.Sub(expense).Div(income).Mul(hundred).Round(1).Float64()
	return rate
}

// MonthStats are the aggregated totals for the current month.
type MonthStats struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Saving  decimal.Decimal `json:"saving"`
	Rate    float64         `json:"rate"`
}

// ChartData are the chart-ready buckets for the dashboard.
//
// Index 0 of the monthly slices is January. DailyExpenses is a 12x31
// grid of expense totals with the calendar day minus one as day index;
// day 31 of shorter months is simply never populated.
type ChartData struct {
	MonthlyIncome  []decimal.Decimal   `json:"monthlyIncome"`
	MonthlyExpense []decimal.Decimal   `json:"monthlyExpense"`
	DailyExpenses  [][]decimal.Decimal `json:"allMonthDailyExpenses"`
}

// Dashboard is the full dashboard aggregation.
type Dashboard struct {
	Stats     MonthStats `json:"stats"`
	ChartData ChartData  `json:"chartData"`
}

// BuildDashboard partitions the current year's transactions into
// monthly and daily buckets and derives the current-month stats.
func BuildDashboard(transactions []models.Transaction, now time.Time) Dashboard {
	chart := ChartData{
		MonthlyIncome:  zeroBuckets(12),
		MonthlyExpense: zeroBuckets(12),
		DailyExpenses:  make([][]decimal.Decimal, 12),
	}
	for month := range chart.DailyExpenses {
		chart.DailyExpenses[month] = zeroBuckets(31)
	}

	currentYear := now.Year()

	for _, t := range transactions {
		if t.Date.Year() != currentYear {
			continue
		}

		month := int(t.Date.Month()) - 1
		day := t.Date.Day() - 1

		switch t.Type {
		case models.TypeIncome:
			chart.MonthlyIncome[month] = chart.MonthlyIncome[month].Add(t.Amount)
		case models.TypeExpense:
			chart.MonthlyExpense[month] = chart.MonthlyExpense[month].Add(t.Amount)
			chart.DailyExpenses[month][day] = chart.DailyExpenses[month][day].Add(t.Amount)
		}
	}

	currentMonth := int(now.Month()) - 1
	income := chart.MonthlyIncome[currentMonth]
	expense := chart.MonthlyExpense[currentMonth]

	return Dashboard{
		Stats: MonthStats{
			Income:  income,
			Expense: expense,
			Saving:  income.Sub(expense),
			Rate:    savingsRate(income, expense),
		},
		ChartData: chart,
	}
}

func zeroBuckets(n int) []decimal.Decimal {
	buckets := make([]decimal.Decimal, n)
	for i := range buckets {
		buckets[i] = decimal.Zero
	}

	return buckets
}

// sortFields maps the sortable API field names to database columns.
var sortFields = map[string]string{
	"date":      "date",
	"amount":    "amount",
	"name":      "name",
	"createdAt": "created_at",
}

// TransactionFilter narrows and orders a user's transaction list.
type TransactionFilter struct {
	Query  string    // case-insensitive substring match on the name
	Date   types.Day // exact calendar day match
	SortBy string    // one of date, amount, name, createdAt; defaults to date
	Order  string    // asc or desc; defaults to desc
}

// Scope applies the filter to a gorm query.
func (f TransactionFilter) Scope(db *gorm.DB) *gorm.DB {
	q := db

	if f.Query != "" {
		q = q.Where("LOWER(name) LIKE ?", fmt.Sprintf("%%%s%%", strings.ToLower(f.Query)))
	}

	// The day filter is a half-open interval [day 00:00, day+1 00:00).
	if !f.Date.IsZero() {
		q = q.Where("date >= ?", f.Date.Time()).Where("date < ?", f.Date.AddDays(1).Time())
	}

	column, ok := sortFields[f.SortBy]
	if !ok {
		column = "date"
	}

	direction := "DESC"
	if f.Order == "asc" {
		direction = "ASC"
	}

	return q.Order(fmt.Sprintf("%s %s", column, direction))
}

// SortableFields returns the field names accepted by the filter.
func SortableFields() []string {
	fields := make([]string, 0, len(sortFields))
	for field := range sortFields {
		fields = append(fields, field)
	}

	slices.Sort(fields)
	return fields
}
