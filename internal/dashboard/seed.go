package dashboard

import (
	"time"

	"fintrack/internal/core"

	"github.com/google/uuid"
)

// starterTransactions returns the fixed seed set, dated inside the month of
// the given time so a fresh dashboard shows current data.
func starterTransactions(now time.Time) []core.Transaction {
	year, month := now.Year(), int(now.Month())
	mk := func(title string, cents int64, day int, category string, typ core.TxType) core.Transaction {
		return core.Transaction{
			ID:       uuid.NewString(),
			Title:    title,
			Amount:   core.Money{Cents: cents},
			Date:     core.NewDate(year, month, day),
			Category: category,
			Type:     typ,
		}
	}
	return []core.Transaction{
		mk("Monthly salary", 300000, 1, "Salary", core.Income),
		mk("Groceries", 12050, 3, "Food", core.Expense),
		mk("Electricity bill", 6025, 4, "Bills", core.Expense),
		mk("Bus pass", 4000, 5, "Travel", core.Expense),
	}
}
