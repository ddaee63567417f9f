package pipeline

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Spender is one row of the top-spenders table.
type Spender struct {
	ClientID int             `json:"client_id"`
	Name     string          `json:"name"`
	Total    decimal.Decimal `json:"total"`
}

// TopSpenders sums transaction amounts per client inside the window, joins
// back to client names, and keeps the n largest totals. Ties keep the order
// in which the clients first appeared in the transaction data. Transactions
// referencing an unknown client are dropped by the join, as in the source
// dashboard.
func (p *Pipeline) TopSpenders(window DateRange, n int) []Spender {
	totals := make(map[int]decimal.Decimal)
	var order []int // first-seen order, the tie-break
	for _, t := range p.snap.Transactions {
		if !window.Contains(t.Date) {
			continue
		}
		if _, seen := totals[t.ClientID]; !seen {
			order = append(order, t.ClientID)
		}
		totals[t.ClientID] = totals[t.ClientID].Add(t.Amount)
	}

	spenders := make([]Spender, 0, len(order))
	for _, clientID := range order {
		client, ok := p.byClient[clientID]
		if !ok {
			continue
		}
		spenders = append(spenders, Spender{
			ClientID: clientID,
			Name:     client.Name,
			Total:    totals[clientID],
		})
	}

	sort.SliceStable(spenders, func(i, j int) bool {
		return spenders[i].Total.GreaterThan(spenders[j].Total)
	})
	if len(spenders) > n {
		spenders = spenders[:n]
	}
	return spenders
}

// DailyTotal is one point of the amount-over-time line chart.
type DailyTotal struct {
	Date  string          `json:"date"` // calendar date, time discarded
	Total decimal.Decimal `json:"total"`
}

// DailyTotals sums transaction amounts per calendar date, ascending. Dates
// with no transactions produce no row; the chart shows gaps, not zeros.
func (p *Pipeline) DailyTotals() []DailyTotal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range p.snap.Transactions {
		day := t.Date.Format("2006-01-02")
		totals[day] = totals[day].Add(t.Amount)
	}

	result := make([]DailyTotal, 0, len(totals))
	for day, total := range totals {
		result = append(result, DailyTotal{Date: day, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

// ScatterPoint is one transaction inside the scatter-plot window.
type ScatterPoint struct {
	TransactionID int             `json:"transaction_id"`
	ClientID      int             `json:"client_id"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
}

// Scatter returns the transactions inside the window, ordered by date then
// id so the output is stable under input reordering.
func (p *Pipeline) Scatter(window DateRange) []ScatterPoint {
	points := make([]ScatterPoint, 0)
	for _, t := range p.snap.Transactions {
		if !window.Contains(t.Date) {
			continue
		}
		points = append(points, ScatterPoint{
			TransactionID: t.TransactionID,
			ClientID:      t.ClientID,
			Date:          t.Date,
			Amount:        t.Amount,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if !points[i].Date.Equal(points[j].Date) {
			return points[i].Date.Before(points[j].Date)
		}
		return points[i].TransactionID < points[j].TransactionID
	})
	return points
}
