package pipeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/npardra/clientdash/pkg/model"
)

// Overview is the quick-statistics row at the top of the dashboard.
type Overview struct {
	TotalClients      int             `json:"total_clients"`
	ActiveMemberships int             `json:"active_memberships"`
	TotalTransactions int             `json:"total_transactions"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Join              JoinStats       `json:"join_stats"`
}

// Overview computes the headline counts. Distinct ids, not row counts, so
// duplicated documents don't inflate the numbers.
func (p *Pipeline) Overview() Overview {
	clientIDs := make(map[int]struct{}, len(p.snap.Clients))
	for _, c := range p.snap.Clients {
		clientIDs[c.ClientID] = struct{}{}
	}

	// Active memberships are counted over the client-membership inner join,
	// so an active membership pointing at a missing client doesn't count.
	activeIDs := make(map[int]struct{})
	for _, m := range p.clientMemberships() {
		if m.Status == model.StatusActive {
			activeIDs[m.MembershipID] = struct{}{}
		}
	}

	txIDs := make(map[int]struct{}, len(p.snap.Transactions))
	total := decimal.Zero
	for _, t := range p.snap.Transactions {
		txIDs[t.TransactionID] = struct{}{}
		total = total.Add(t.Amount)
	}

	return Overview{
		TotalClients:      len(clientIDs),
		ActiveMemberships: len(activeIDs),
		TotalTransactions: len(txIDs),
		TotalAmount:       total,
		Join:              p.JoinCoverage(),
	}
}

// MonthlyCounts holds signups and enrollments for one (year, month) pair.
type MonthlyCounts struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	Signups     int `json:"signups"`     // clients whose join date falls in the month
	Enrollments int `json:"enrollments"` // memberships whose start date falls in the month
}

// Monthly counts clients joined and memberships started in the selected
// month. The two selectors are independent but share the same pair here.
func (p *Pipeline) Monthly(year int, month time.Month) MonthlyCounts {
	counts := MonthlyCounts{Year: year, Month: int(month)}
	for _, c := range p.snap.Clients {
		if c.DateJoined.Year() == year && c.DateJoined.Month() == month {
			counts.Signups++
		}
	}
	for _, m := range p.snap.Memberships {
		if m.StartDate.Year() == year && m.StartDate.Month() == month {
			counts.Enrollments++
		}
	}
	return counts
}
