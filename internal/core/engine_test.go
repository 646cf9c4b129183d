package core

import (
	"reflect"
	"testing"
)

func tx(id, date, category string, typ TxType, cents int64) Transaction {
	d, _ := ParseDate(date)
	return Transaction{ID: id, Title: id, Amount: Money{Cents: cents}, Date: d, Category: category, Type: typ}
}

func TestAvailableMonths(t *testing.T) {
	txs := []Transaction{
		tx("a", "2024-01-05", "Food", Expense, 100),
		tx("b", "2024-03-01", "Bills", Expense, 100),
		tx("c", "2024-01-20", "Salary", Income, 100),
		tx("d", "2023-12-31", "Food", Expense, 100),
	}
	got := AvailableMonths(txs)
	want := []string{"2024-03", "2024-01", "2023-12"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if months := AvailableMonths(nil); len(months) != 0 {
		t.Fatalf("expected no months, got %v", months)
	}
}

func TestAvailableCategories(t *testing.T) {
	txs := []Transaction{
		tx("a", "2024-01-05", "Food", Expense, 100),
		tx("b", "2024-01-06", "Crypto", Expense, 100),
	}
	got := AvailableCategories(txs)
	want := []string{"Bills", "Crypto", "Food", "Other", "Salary", "Shopping", "Travel"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestApplyFilters(t *testing.T) {
	txs := []Transaction{
		tx("a", "2024-01-05", "Food", Expense, 100),
		tx("b", "2024-02-01", "Food", Expense, 100),
		tx("c", "2024-01-09", "Bills", Expense, 100),
	}
	cases := []struct {
		month, category string
		wantIDs         []string
	}{
		{FilterAll, FilterAll, []string{"a", "b", "c"}},
		{"2024-01", FilterAll, []string{"a", "c"}},
		{FilterAll, "Food", []string{"a", "b"}},
		{"2024-01", "Food", []string{"a"}},
		{"2025-06", FilterAll, nil},
	}
	for i, tc := range cases {
		got := ApplyFilters(txs, tc.month, tc.category)
		var ids []string
		for _, x := range got {
			ids = append(ids, x.ID)
		}
		if !reflect.DeepEqual(ids, tc.wantIDs) {
			t.Fatalf("case %d expected %v, got %v", i, tc.wantIDs, ids)
		}
		// Idempotent: filtering the result again changes nothing.
		again := ApplyFilters(got, tc.month, tc.category)
		if !reflect.DeepEqual(again, got) {
			t.Fatalf("case %d filter not idempotent", i)
		}
	}
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		name           string
		incomeCents    int64
		expenseCents   int64
		wantSpentPct   int
		wantBalancePct int
	}{
		{"quarter spent", 100000, 25000, 25, 75},
		{"no income, spending", 0, 5000, 100, 0},
		{"empty", 0, 0, 0, 0},
		{"overspent", 100000, 125000, 100, 25}, // negative balance reported by magnitude
		{"all spent", 100000, 100000, 100, 0},
	}
	for _, tc := range cases {
		var txs []Transaction
		if tc.incomeCents > 0 {
			txs = append(txs, tx("i", "2024-01-01", "Salary", Income, tc.incomeCents))
		}
		if tc.expenseCents > 0 {
			txs = append(txs, tx("e", "2024-01-02", "Food", Expense, tc.expenseCents))
		}
		s := Summarize(txs)
		if s.Income.Cents != tc.incomeCents || s.Expense.Cents != tc.expenseCents {
			t.Fatalf("%s: totals mismatch: %+v", tc.name, s)
		}
		if s.Balance.Cents != tc.incomeCents-tc.expenseCents {
			t.Fatalf("%s: expected balance %d, got %d", tc.name, tc.incomeCents-tc.expenseCents, s.Balance.Cents)
		}
		if s.SpentPct != tc.wantSpentPct {
			t.Fatalf("%s: expected spent %d%%, got %d%%", tc.name, tc.wantSpentPct, s.SpentPct)
		}
		if s.BalancePct != tc.wantBalancePct {
			t.Fatalf("%s: expected balance %d%%, got %d%%", tc.name, tc.wantBalancePct, s.BalancePct)
		}
	}
}

func TestSummarizeRounding(t *testing.T) {
	// 333/1000 rounds to 33, 335/1000 rounds half up to 34.
	s := Summarize([]Transaction{
		tx("i", "2024-01-01", "Salary", Income, 1000),
		tx("e", "2024-01-02", "Food", Expense, 333),
	})
	if s.SpentPct != 33 {
		t.Fatalf("expected 33, got %d", s.SpentPct)
	}
	s = Summarize([]Transaction{
		tx("i", "2024-01-01", "Salary", Income, 1000),
		tx("e", "2024-01-02", "Food", Expense, 335),
	})
	if s.SpentPct != 34 {
		t.Fatalf("expected 34, got %d", s.SpentPct)
	}
}

func TestGroupForChart(t *testing.T) {
	txs := []Transaction{
		tx("a", "2024-01-05", "Food", Expense, 300),
		tx("b", "2024-01-06", "Food", Expense, 200),
		tx("c", "2024-01-07", "Salary", Income, 1000),
		tx("d", "2024-01-08", "Bills", Expense, 50),
	}
	got := GroupForChart(txs)
	want := []ChartSlice{
		{Label: "expense:Bills", Value: Money{Cents: 50}, Color: ColorExpense},
		{Label: "expense:Food", Value: Money{Cents: 500}, Color: ColorExpense},
		{Label: "income:Salary", Value: Money{Cents: 1000}, Color: ColorIncome},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSortForTable(t *testing.T) {
	txs := []Transaction{
		tx("a", "2024-01-05", "Food", Expense, 100),
		tx("b", "2024-01-09", "Food", Expense, 100),
		tx("c", "2024-01-05", "Bills", Expense, 100),
		tx("d", "2024-02-01", "Food", Expense, 100),
	}
	got := SortForTable(txs)
	var ids []string
	for _, x := range got {
		ids = append(ids, x.ID)
	}
	// Ties on 2024-01-05 keep insertion order: a before c.
	want := []string{"d", "b", "a", "c"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	// Input slice untouched.
	if txs[0].ID != "a" {
		t.Fatalf("input mutated: %v", txs)
	}
}
