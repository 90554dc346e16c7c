// Package report implements the derived-aggregation layer: pure functions
// that turn a snapshot of expense records plus a filter selection into the
// totals, groupings and series shown on the reports screen. Every operation
// is deterministic, side-effect-free and safe for concurrent use; state is
// re-derived from scratch on each call.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gastos-app/gastos-backend/internal/domain"
)

// DefaultTrailingMonths is the window of the monthly comparison chart
const DefaultTrailingMonths = 6

// Budget utilization tiers. Thresholds are fixed, not configurable.
type UtilizationStatus string

const (
	StatusOK       UtilizationStatus = "ok"
	StatusWarning  UtilizationStatus = "warning"
	StatusExceeded UtilizationStatus = "exceeded"
)

var (
	warningThreshold  = decimal.NewFromInt(80)
	exceededThreshold = decimal.NewFromInt(100)
	hundred           = decimal.NewFromInt(100)
)

// CategoryTotal is one slice of the per-category distribution
type CategoryTotal struct {
	Category domain.Category `json:"category"`
	Name     string          `json:"name"`
	Emoji    string          `json:"emoji"`
	Color    string          `json:"color"`
	Total    decimal.Decimal `json:"total"`
}

// UserTotal is one slice of the per-user distribution
type UserTotal struct {
	UserID uuid.UUID       `json:"userId"`
	Name   string          `json:"name"`
	Total  decimal.Decimal `json:"total"`
}

// DayTotal is one point of the daily series
type DayTotal struct {
	Day   int             `json:"day"`
	Total decimal.Decimal `json:"total"`
}

// MonthTotal is one bar of the trailing-month series
type MonthTotal struct {
	Label string          `json:"label"`
	Month int             `json:"month"`
	Year  int             `json:"year"`
	Total decimal.Decimal `json:"total"`
}

// Split is the necessary/unnecessary partition of a period total
type Split struct {
	Necessary   decimal.Decimal `json:"necessary"`
	Unnecessary decimal.Decimal `json:"unnecessary"`
}

// Utilization describes how much of the month's budget is spent. Percent is
// clamped at 100 for display; Remaining carries the unclamped overrun.
type Utilization struct {
	Percent   decimal.Decimal   `json:"percent"`
	Remaining decimal.Decimal   `json:"remaining"`
	Status    UtilizationStatus `json:"status"`
}

// Spanish short month names, January first
var monthLabels = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// MonthLabel returns the short display name for a month (1-12)
func MonthLabel(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthLabels[month-1]
}

// countable reports whether an expense may contribute to a sum. Records with
// non-positive amounts can exist in legacy stored data and must never
// corrupt a total.
func countable(e *domain.Expense) bool {
	return e != nil && e.Amount.IsPositive()
}

// FilterByPeriod returns the expenses whose occurrence falls in the given
// calendar month and year, owned by userID when non-nil, preserving input
// order. Membership is month+year equality, not a rolling window. An
// out-of-range month or year matches nothing and is not an error.
func FilterByPeriod(expenses []*domain.Expense, month, year int, userID *uuid.UUID) []*domain.Expense {
	out := make([]*domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e == nil {
			continue
		}
		if int(e.OccurredAt.Month()) != month || e.OccurredAt.Year() != year {
			continue
		}
		if userID != nil && e.UserID != *userID {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Total sums the amounts of the given expenses. Empty input yields zero.
func Total(expenses []*domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if countable(e) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// Count returns the number of expenses
func Count(expenses []*domain.Expense) int {
	return len(expenses)
}

// NecessarySplit partitions the total by the necessity flag. Unnecessary is
// derived as total minus necessary so that necessary + unnecessary always
// equals Total exactly.
func NecessarySplit(expenses []*domain.Expense) Split {
	total := Total(expenses)
	necessary := decimal.Zero
	for _, e := range expenses {
		if countable(e) && e.Necessary {
			necessary = necessary.Add(e.Amount)
		}
	}
	return Split{
		Necessary:   necessary,
		Unnecessary: total.Sub(necessary),
	}
}

// ByCategory sums amounts per category, iterating the fixed category set in
// its canonical display order. Categories with a zero total are omitted.
// Expenses with an unknown category are skipped here; they still count
// toward Total.
func ByCategory(expenses []*domain.Expense) []CategoryTotal {
	totals := make(map[domain.Category]decimal.Decimal, len(domain.Categories))
	for _, e := range expenses {
		if !countable(e) {
			continue
		}
		if t, ok := totals[e.Category]; ok {
			totals[e.Category] = t.Add(e.Amount)
		} else {
			totals[e.Category] = e.Amount
		}
	}

	out := make([]CategoryTotal, 0, len(domain.Categories))
	for _, info := range domain.Categories {
		total, ok := totals[info.ID]
		if !ok || total.IsZero() {
			continue
		}
		out = append(out, CategoryTotal{
			Category: info.ID,
			Name:     info.Name,
			Emoji:    info.Emoji,
			Color:    info.Color,
			Total:    total,
		})
	}
	return out
}

// ByUser sums the period's amounts per owning user. The user set and its
// order come from the unfiltered full history (first appearance), so a user
// keeps a stable position across report views. Zero totals are omitted.
func ByUser(periodExpenses, allExpenses []*domain.Expense) []UserTotal {
	type userRef struct {
		id   uuid.UUID
		name string
	}
	var order []userRef
	seen := make(map[uuid.UUID]bool)
	for _, e := range allExpenses {
		if e == nil || seen[e.UserID] {
			continue
		}
		seen[e.UserID] = true
		order = append(order, userRef{id: e.UserID, name: e.UserName})
	}

	totals := make(map[uuid.UUID]decimal.Decimal)
	for _, e := range periodExpenses {
		if !countable(e) {
			continue
		}
		if t, ok := totals[e.UserID]; ok {
			totals[e.UserID] = t.Add(e.Amount)
		} else {
			totals[e.UserID] = e.Amount
		}
	}

	out := make([]UserTotal, 0, len(order))
	for _, u := range order {
		total, ok := totals[u.id]
		if !ok || total.IsZero() {
			continue
		}
		out = append(out, UserTotal{UserID: u.id, Name: u.name, Total: total})
	}
	return out
}

// DailySeries buckets period expenses by calendar day of month and returns
// the buckets in ascending numeric day order regardless of input order.
func DailySeries(periodExpenses []*domain.Expense) []DayTotal {
	totals := make(map[int]decimal.Decimal)
	for _, e := range periodExpenses {
		if !countable(e) {
			continue
		}
		day := e.OccurredAt.Day()
		if t, ok := totals[day]; ok {
			totals[day] = t.Add(e.Amount)
		} else {
			totals[day] = e.Amount
		}
	}

	days := make([]int, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Ints(days)

	out := make([]DayTotal, 0, len(days))
	for _, day := range days {
		out = append(out, DayTotal{Day: day, Total: totals[day]})
	}
	return out
}

// TrailingMonths returns per-month totals for the n calendar months ending
// at the anchor month, chronological ascending, most recent last. The series
// is whole-system: no user filter applies. Year boundaries roll over.
func TrailingMonths(allExpenses []*domain.Expense, n int, anchor time.Time) []MonthTotal {
	if n <= 0 {
		return []MonthTotal{}
	}

	// Normalize to the first of the anchor month so AddDate cannot skip a
	// short month when the anchor falls on day 29-31.
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())

	out := make([]MonthTotal, 0, n)
	for offset := -(n - 1); offset <= 0; offset++ {
		m := first.AddDate(0, offset, 0)
		month, year := int(m.Month()), m.Year()
		out = append(out, MonthTotal{
			Label: MonthLabel(month),
			Month: month,
			Year:  year,
			Total: Total(FilterByPeriod(allExpenses, month, year, nil)),
		})
	}
	return out
}

// BudgetUtilization derives the budget figures for a period total. A nil
// budget yields nil: no budget means utilization is absent, not zero. The
// status tier comes from the unclamped ratio; only Percent is clamped.
func BudgetUtilization(periodTotal decimal.Decimal, budget *decimal.Decimal) *Utilization {
	if budget == nil || !budget.IsPositive() {
		return nil
	}

	raw := periodTotal.Div(*budget).Mul(hundred)

	status := StatusOK
	switch {
	case raw.GreaterThanOrEqual(exceededThreshold):
		status = StatusExceeded
	case raw.GreaterThanOrEqual(warningThreshold):
		status = StatusWarning
	}

	percent := raw
	if percent.GreaterThan(hundred) {
		percent = hundred
	}

	return &Utilization{
		Percent:   percent,
		Remaining: budget.Sub(periodTotal),
		Status:    status,
	}
}
