package dashboard

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

var (
	sessA = core.Session{UserID: "userA", Name: "A", Email: "a@x.com"}
	sessB = core.Session{UserID: "userB", Name: "B", Email: "b@x.com"}
)

func newService() (*Service, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestAddStoresAbsoluteAmount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	added, err := svc.Add(ctx, sessA, core.Transaction{
		Title:    "Tea",
		Amount:   core.Money{Cents: -5000},
		Date:     core.NewDate(2024, 1, 5),
		Category: "Food",
		Type:     core.Expense,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.Amount.Cents != 5000 {
		t.Fatalf("expected absolute 5000 cents, got %d", added.Amount.Cents)
	}
	if added.ID == "" {
		t.Fatalf("expected generated id")
	}

	txs, _ := svc.List(ctx, sessA)
	if len(txs) != 1 || txs[0].ID != added.ID {
		t.Fatalf("expected persisted transaction, got %v", txs)
	}

	cats := core.AvailableCategories(txs)
	found := false
	for _, c := range cats {
		if c == "Food" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Food in categories, got %v", cats)
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Add(ctx, sessA, core.Transaction{
		Title:    "",
		Amount:   core.Money{Cents: 100},
		Date:     core.NewDate(2024, 1, 5),
		Category: "Food",
		Type:     core.Expense,
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if txs, _ := svc.List(ctx, sessA); len(txs) != 0 {
		t.Fatalf("invalid transaction persisted: %v", txs)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	first, err := svc.Add(ctx, sessA, core.Transaction{
		Title: "Tea", Amount: core.Money{Cents: 100},
		Date: core.NewDate(2024, 1, 5), Category: "Food", Type: core.Expense,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := svc.Add(ctx, sessA, core.Transaction{
		Title: "Rent", Amount: core.Money{Cents: 90000},
		Date: core.NewDate(2024, 1, 1), Category: "Bills", Type: core.Expense,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.Remove(ctx, sessA, first.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	txs, _ := svc.List(ctx, sessA)
	if len(txs) != 1 || txs[0].ID != second.ID {
		t.Fatalf("expected exactly one remaining record, got %v", txs)
	}

	// Absent id is a no-op.
	if err := svc.Remove(ctx, sessA, "no-such-id"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if txs, _ := svc.List(ctx, sessA); len(txs) != 1 {
		t.Fatalf("no-op remove changed the collection: %v", txs)
	}
}

func TestEnsureSeed(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	if err := svc.EnsureSeed(ctx, sessA); err != nil {
		t.Fatalf("seed: %v", err)
	}
	txs, _ := svc.List(ctx, sessA)
	if len(txs) == 0 {
		t.Fatalf("expected starter transactions")
	}
	for _, tx := range txs {
		if tx.Date.MonthKey() != "2024-06" {
			t.Fatalf("seed not dated in current month: %v", tx.Date)
		}
	}

	// Second call must not duplicate.
	before := len(txs)
	if err := svc.EnsureSeed(ctx, sessA); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if txs, _ := svc.List(ctx, sessA); len(txs) != before {
		t.Fatalf("seed ran twice")
	}
}

func TestUsersNeverObserveEachOther(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Add(ctx, sessA, core.Transaction{
		Title: "A only", Amount: core.Money{Cents: 100},
		Date: core.NewDate(2024, 1, 5), Category: "Food", Type: core.Expense,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	txsB, err := svc.List(ctx, sessB)
	if err != nil {
		t.Fatalf("list B: %v", err)
	}
	if len(txsB) != 0 {
		t.Fatalf("user B observed user A's records: %v", txsB)
	}
}

func TestBuildView(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	add := func(title string, cents int64, date, category string, typ core.TxType) {
		d, _ := core.ParseDate(date)
		if _, err := svc.Add(ctx, sessA, core.Transaction{
			Title: title, Amount: core.Money{Cents: cents}, Date: d, Category: category, Type: typ,
		}); err != nil {
			t.Fatalf("add %s: %v", title, err)
		}
	}
	add("Salary", 100000, "2024-01-01", "Salary", core.Income)
	add("Tea", 25000, "2024-01-05", "Food", core.Expense)
	add("Flight", 40000, "2024-02-10", "Travel", core.Expense)

	v, err := svc.BuildView(ctx, sessA, "2024-01", core.FilterAll)
	if err != nil {
		t.Fatalf("build view: %v", err)
	}

	if v.Summary.Income != 1000 || v.Summary.Expense != 250 || v.Summary.Balance != 750 {
		t.Fatalf("summary mismatch: %+v", v.Summary)
	}
	if v.Summary.SpentPct != 25 || v.Summary.BalancePct != 75 {
		t.Fatalf("percentage mismatch: %+v", v.Summary)
	}
	if len(v.Rows) != 2 {
		t.Fatalf("expected 2 filtered rows, got %v", v.Rows)
	}
	// Table is date-descending.
	if v.Rows[0].Title != "Tea" || v.Rows[1].Title != "Salary" {
		t.Fatalf("rows out of order: %v", v.Rows)
	}
	// Month list covers the whole collection, newest first.
	if len(v.Months) != 2 || v.Months[0] != "2024-02" || v.Months[1] != "2024-01" {
		t.Fatalf("months mismatch: %v", v.Months)
	}
	if len(v.Chart) != 2 {
		t.Fatalf("expected 2 chart slices, got %v", v.Chart)
	}
	if v.Chart[0].Label != "expense:Food" || v.Chart[1].Label != "income:Salary" {
		t.Fatalf("chart order mismatch: %v", v.Chart)
	}
}
