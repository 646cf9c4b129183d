package dashboard

import (
	"context"
	"fmt"

	"fintrack/internal/core"
)

// View is the derived dashboard model handed to the renderer: summary
// numbers, progress percentages, chart slices and the filtered table, plus
// the filter vocabularies.
type View struct {
	Month      string      `json:"month"`
	Category   string      `json:"category"`
	Months     []string    `json:"months"`
	Categories []string    `json:"categories"`
	Summary    SummaryView `json:"summary"`
	Chart      []SliceView `json:"chart"`
	Rows       []RowView   `json:"transactions"`
}

type SummaryView struct {
	Income     float64 `json:"income"`
	Expense    float64 `json:"expense"`
	Balance    float64 `json:"balance"`
	SpentPct   int     `json:"spentPct"`
	BalancePct int     `json:"balancePct"`
}

type SliceView struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type RowView struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Type     string  `json:"type"`
}

// BuildView loads the owner's transactions and runs the aggregation engine
// over the filtered subset. Month and category lists are derived from the
// full collection, never from other users' data.
func (s *Service) BuildView(ctx context.Context, sess core.Session, month, category string) (*View, error) {
	txs, err := s.txs.LoadTransactions(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	filtered := core.ApplyFilters(txs, month, category)
	summary := core.Summarize(filtered)

	v := &View{
		Month:      month,
		Category:   category,
		Months:     core.AvailableMonths(txs),
		Categories: core.AvailableCategories(txs),
		Summary: SummaryView{
			Income:     summary.Income.Units(),
			Expense:    summary.Expense.Units(),
			Balance:    summary.Balance.Units(),
			SpentPct:   summary.SpentPct,
			BalancePct: summary.BalancePct,
		},
	}

	for _, slice := range core.GroupForChart(filtered) {
		v.Chart = append(v.Chart, SliceView{
			Label: slice.Label,
			Value: slice.Value.Units(),
			Color: slice.Color,
		})
	}

	for _, t := range core.SortForTable(filtered) {
		v.Rows = append(v.Rows, RowView{
			ID:       t.ID,
			Title:    t.Title,
			Amount:   t.Amount.Units(),
			Date:     t.Date.String(),
			Category: t.Category,
			Type:     string(t.Type),
		})
	}

	return v, nil
}
