package pipeline

import (
	"time"

	"github.com/npardra/clientdash/pkg/config"
)

// Dashboard is the full render payload: every widget computed from one
// snapshot under one set of selections.
type Dashboard struct {
	GeneratedAt         time.Time        `json:"generated_at"`
	Overview            Overview         `json:"overview"`
	Monthly             MonthlyCounts    `json:"monthly"`
	Retention           Retention        `json:"retention"`
	MembershipBreakdown []BreakdownSlice `json:"membership_breakdown"`
	TierCounts          []TierCount      `json:"tier_counts"`
	CountryCounts       []CountryCount   `json:"country_counts"`
	AgeGroups           []AgeBucket      `json:"age_groups"`
	Birthdays           []BirthdayRow    `json:"birthdays"`
	TopSpenders         []Spender        `json:"top_spenders"`
	DailyTotals         []DailyTotal     `json:"daily_totals"`
	SpendingByTier      []TierSpending   `json:"spending_by_tier"`
	Scatter             []ScatterPoint   `json:"scatter"`
}

// DefaultSelections returns the selector values shown before the user
// touches a picker: October 2024 and two trailing-365-day windows.
func DefaultSelections(now time.Time) Selections {
	window := TrailingWindow(now, config.DefaultWindowDays)
	return Selections{
		Month:         config.DefaultMonth,
		Year:          config.DefaultYear,
		SpendWindow:   window,
		ScatterWindow: window,
	}
}

// Dashboard runs every aggregation under the given selections.
func (p *Pipeline) Dashboard(sel Selections) Dashboard {
	return Dashboard{
		GeneratedAt:         p.now,
		Overview:            p.Overview(),
		Monthly:             p.Monthly(sel.Year, sel.Month),
		Retention:           p.RetentionRate(),
		MembershipBreakdown: p.MembershipBreakdown(),
		TierCounts:          p.TierCounts(),
		CountryCounts:       p.CountryCounts(),
		AgeGroups:           p.AgeHistogram(),
		Birthdays:           p.UpcomingBirthdays(),
		TopSpenders:         p.TopSpenders(sel.SpendWindow, config.TopSpenderCount),
		DailyTotals:         p.DailyTotals(),
		SpendingByTier:      p.SpendingByTier(),
		Scatter:             p.Scatter(sel.ScatterWindow),
	}
}
