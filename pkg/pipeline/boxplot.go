package pipeline

import (
	"sort"

	"github.com/npardra/clientdash/pkg/model"
)

// TierSpending is the box-plot summary of transaction amounts for one tier.
type TierSpending struct {
	Tier     string    `json:"tier"`
	Count    int       `json:"count"`
	Min      float64   `json:"min"`
	Q1       float64   `json:"q1"`
	Median   float64   `json:"median"`
	Q3       float64   `json:"q3"`
	Max      float64   `json:"max"`
	Outliers []float64 `json:"outliers,omitempty"` // beyond the 1.5-IQR fences
}

// SpendingByTier groups transaction amounts by the owning client's
// membership tier and summarizes each group for a box plot. Each transaction
// is attributed to exactly one membership, the client's earliest by id, so a
// client holding several memberships doesn't duplicate its spending across
// tiers. Tiers come back in the fixed order, empty ones included.
func (p *Pipeline) SpendingByTier() []TierSpending {
	earliest := p.earliestMembershipPerClient()

	amounts := make(map[string][]float64)
	for _, t := range p.snap.Transactions {
		m, ok := earliest[t.ClientID]
		if !ok {
			continue // no membership, no tier to plot under
		}
		v, _ := t.Amount.Float64()
		amounts[m.Tier] = append(amounts[m.Tier], v)
	}

	result := make([]TierSpending, 0, len(model.TierOrder))
	for _, tier := range model.TierOrder {
		result = append(result, summarize(tier, amounts[tier]))
	}
	return result
}

// summarize computes the five-number summary plus 1.5-IQR outliers.
func summarize(tier string, values []float64) TierSpending {
	ts := TierSpending{Tier: tier, Count: len(values)}
	if len(values) == 0 {
		return ts
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	ts.Min = sorted[0]
	ts.Max = sorted[len(sorted)-1]
	ts.Q1 = quantile(sorted, 0.25)
	ts.Median = quantile(sorted, 0.5)
	ts.Q3 = quantile(sorted, 0.75)

	iqr := ts.Q3 - ts.Q1
	lo := ts.Q1 - 1.5*iqr
	hi := ts.Q3 + 1.5*iqr
	for _, v := range sorted {
		if v < lo || v > hi {
			ts.Outliers = append(ts.Outliers, v)
		}
	}
	return ts
}

// quantile interpolates linearly between closest ranks on a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lower := int(pos)
	frac := pos - float64(lower)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}
