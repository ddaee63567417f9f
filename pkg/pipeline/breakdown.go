package pipeline

import (
	"sort"

	"github.com/npardra/clientdash/pkg/model"
)

// BreakdownSlice is one slice of the membership pie chart.
type BreakdownSlice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MembershipBreakdown classifies every client as "Has Membership" or
// "No Membership". A client counts as "No Membership" only when its
// first-seen membership carries that literal tier; clients with no
// membership row at all classify as "Has Membership", matching the
// left-join-then-compare semantics of the source dashboard.
func (p *Pipeline) MembershipBreakdown() []BreakdownSlice {
	first := p.firstMembershipPerClient()

	has, none := 0, 0
	for _, c := range p.snap.Clients {
		if m, ok := first[c.ClientID]; ok && m.Tier == model.TierNone {
			none++
		} else {
			has++
		}
	}
	return []BreakdownSlice{
		{Label: "Has Membership", Count: has},
		{Label: model.TierNone, Count: none},
	}
}

// TierCount is one bar of the tier distribution chart.
type TierCount struct {
	Tier  string `json:"tier"`
	Count int    `json:"count"`
}

// TierCounts returns membership frequency per tier, always in the fixed tier
// order with empty tiers included. Out-of-vocabulary tiers are appended
// after the known ones, alphabetically.
func (p *Pipeline) TierCounts() []TierCount {
	counts := make(map[string]int)
	for _, m := range p.snap.Memberships {
		counts[m.Tier]++
	}

	result := make([]TierCount, 0, len(model.TierOrder))
	for _, tier := range model.TierOrder {
		result = append(result, TierCount{Tier: tier, Count: counts[tier]})
		delete(counts, tier)
	}

	extras := make([]string, 0, len(counts))
	for tier := range counts {
		extras = append(extras, tier)
	}
	sort.Strings(extras)
	for _, tier := range extras {
		result = append(result, TierCount{Tier: tier, Count: counts[tier]})
	}
	return result
}

// CountryCount is one region of the choropleth.
type CountryCount struct {
	CountryCode string `json:"country_code"`
	Count       int    `json:"count"`
}

// CountryCounts groups clients by resolved alpha-3 code, descending by
// count. Clients whose nationality resolved to nothing are excluded here but
// still present in every other aggregate.
func (p *Pipeline) CountryCounts() []CountryCount {
	counts := make(map[string]int)
	for _, c := range p.clients {
		if c.CountryCode != "" {
			counts[c.CountryCode]++
		}
	}

	result := make([]CountryCount, 0, len(counts))
	for code, n := range counts {
		result = append(result, CountryCount{CountryCode: code, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].CountryCode < result[j].CountryCode
	})
	return result
}

// AgeBucket is one bar of the age histogram.
type AgeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AgeHistogram buckets clients into the seven fixed age bins. The axis order
// never changes and empty bins stay in the output.
func (p *Pipeline) AgeHistogram() []AgeBucket {
	counts := make(map[string]int)
	for _, c := range p.clients {
		if c.Age < 0 {
			continue // birthdate in the future or absent
		}
		counts[model.AgeBin(c.Age)]++
	}

	result := make([]AgeBucket, 0, len(model.AgeBinLabels))
	for _, label := range model.AgeBinLabels {
		result = append(result, AgeBucket{Label: label, Count: counts[label]})
	}
	return result
}
