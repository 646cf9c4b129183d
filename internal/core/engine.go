package core

import (
	"sort"
	"strings"
)

// FilterAll is the wildcard value accepted by ApplyFilters.
const FilterAll = "all"

// BaseCategories is the fixed vocabulary always offered in filters,
// regardless of what the user has recorded.
var BaseCategories = []string{"Salary", "Food", "Travel", "Shopping", "Bills", "Other"}

// Chart colors are a pure function of transaction type.
const (
	ColorIncome  = "#2e7d32"
	ColorExpense = "#c62828"
)

// Summary holds the totals derived from a filtered transaction set.
type Summary struct {
	Income     Money
	Expense    Money
	Balance    Money
	SpentPct   int
	BalancePct int
}

// ChartSlice is one wedge of the breakdown chart.
type ChartSlice struct {
	Label string
	Value Money
	Color string
}

// AvailableMonths returns the distinct YYYY-MM keys present in txs,
// most recent first.
func AvailableMonths(txs []Transaction) []string {
	seen := make(map[string]struct{}, len(txs))
	var months []string
	for _, t := range txs {
		key := t.Date.MonthKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		months = append(months, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// AvailableCategories returns the union of the base vocabulary and every
// category present in txs, in ascending lexical order.
func AvailableCategories(txs []Transaction) []string {
	seen := make(map[string]struct{}, len(BaseCategories)+len(txs))
	var cats []string
	for _, c := range BaseCategories {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			cats = append(cats, c)
		}
	}
	for _, t := range txs {
		if _, ok := seen[t.Category]; !ok {
			seen[t.Category] = struct{}{}
			cats = append(cats, t.Category)
		}
	}
	sort.Strings(cats)
	return cats
}

// ApplyFilters keeps a transaction iff the month filter matches its date's
// YYYY-MM prefix and the category filter matches exactly. Either filter may
// be FilterAll. Order is preserved, so applying the same filter twice yields
// the same subsequence as applying it once.
func ApplyFilters(txs []Transaction, month, category string) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if month != FilterAll && t.Date.MonthKey() != month {
			continue
		}
		if category != FilterAll && t.Category != category {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Summarize computes income/expense totals, the balance, and the two
// progress-bar percentages over a filtered transaction set.
//
// SpentPct is expense as a share of income, clamped to [0,100]; with no
// income it is 100 when anything was spent and 0 otherwise. BalancePct is
// the remaining share of income; a negative balance reports its magnitude.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Type {
		case Income:
			s.Income.Cents += t.Amount.Cents
		case Expense:
			s.Expense.Cents += t.Amount.Cents
		}
	}
	s.Balance.Cents = s.Income.Cents - s.Expense.Cents

	if s.Income.Cents == 0 {
		if s.Expense.Cents > 0 {
			s.SpentPct = 100
		}
		return s
	}

	s.SpentPct = clampPct(roundPct(s.Expense.Cents, s.Income.Cents))
	bal := roundPct(s.Balance.Cents, s.Income.Cents)
	if bal > 100 {
		bal = 100
	}
	if bal < -100 {
		bal = -100
	}
	if bal < 0 {
		bal = -bal
	}
	s.BalancePct = bal
	return s
}

// GroupForChart groups transactions by their type:category composite key and
// sums each group. Keys are sorted lexically; the color depends only on the
// transaction type.
func GroupForChart(txs []Transaction) []ChartSlice {
	sums := make(map[string]int64)
	for _, t := range txs {
		sums[string(t.Type)+":"+t.Category] += t.Amount.Cents
	}
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	slices := make([]ChartSlice, 0, len(keys))
	for _, k := range keys {
		color := ColorExpense
		if strings.HasPrefix(k, string(Income)+":") {
			color = ColorIncome
		}
		slices = append(slices, ChartSlice{Label: k, Value: Money{Cents: sums[k]}, Color: color})
	}
	return slices
}

// SortForTable orders transactions by date descending. The sort is stable so
// transactions sharing a date keep their insertion order.
func SortForTable(txs []Transaction) []Transaction {
	out := append([]Transaction(nil), txs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

// roundPct returns part/whole as a percentage, rounded half away from zero.
func roundPct(part, whole int64) int {
	if whole == 0 {
		return 0
	}
	scaled := part * 100
	half := whole / 2
	if scaled >= 0 {
		return int((scaled + half) / whole)
	}
	return int((scaled - half) / whole)
}

func clampPct(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
