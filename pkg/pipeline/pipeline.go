// Package pipeline computes every dashboard aggregate from one snapshot.
// A Pipeline is a pure function of (snapshot, now, selections): it holds no
// connection, caches nothing across renders, and never mutates the snapshot.
package pipeline

import (
	"time"

	"github.com/npardra/clientdash/pkg/model"
)

// CountryResolver maps a nationality string to an ISO-3166 alpha-3 code,
// reporting ok=false for no match. Satisfied by geo.Resolver and the
// per-render geo.Session.
type CountryResolver interface {
	Alpha3(nationality string) (string, bool)
}

// EnrichedClient is a client with the derived fields recomputed each render.
type EnrichedClient struct {
	model.Client
	Age               int    `json:"age"`
	CountryCode       string `json:"country_code,omitempty"` // empty when unresolved
	DaysUntilBirthday int    `json:"days_until_birthday"`
	BirthdayToday     bool   `json:"birthday_today"`
}

// Pipeline runs the aggregations for one render over one snapshot.
type Pipeline struct {
	snap *model.Snapshot
	now  time.Time

	clients  []EnrichedClient
	byClient map[int]*EnrichedClient
}

// New enriches the snapshot's clients (age, country code, birthday distance)
// and returns a pipeline evaluated at now. The resolver may be nil, in which
// case no country codes resolve; everything else still works.
func New(snap *model.Snapshot, now time.Time, resolver CountryResolver) *Pipeline {
	p := &Pipeline{
		snap:     snap,
		now:      now,
		clients:  make([]EnrichedClient, 0, len(snap.Clients)),
		byClient: make(map[int]*EnrichedClient, len(snap.Clients)),
	}

	for _, c := range snap.Clients {
		// Age -1 marks an unknown birthdate so the histogram can skip it.
		ec := EnrichedClient{Client: c, Age: -1}
		if resolver != nil {
			if code, ok := resolver.Alpha3(c.Nationality); ok {
				ec.CountryCode = code
			}
		}
		if !c.Birthdate.IsZero() {
			ec.Age = model.Age(c.Birthdate, now)
			ec.DaysUntilBirthday = daysUntilBirthday(c.Birthdate, now)
			ec.BirthdayToday = ec.DaysUntilBirthday == 0
		}
		p.clients = append(p.clients, ec)
	}
	for i := range p.clients {
		p.byClient[p.clients[i].ClientID] = &p.clients[i]
	}

	return p
}

// Clients returns the enriched client set for this render.
func (p *Pipeline) Clients() []EnrichedClient {
	return p.clients
}

// DateRange is a closed [Start, End] interval over transaction dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the closed interval.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Selections are the user-adjustable widget inputs for one render.
type Selections struct {
	Month         time.Month
	Year          int
	SpendWindow   DateRange
	ScatterWindow DateRange
}

// TrailingWindow returns the closed interval covering the given number of
// days up to now.
func TrailingWindow(now time.Time, days int) DateRange {
	return DateRange{Start: now.AddDate(0, 0, -days), End: now}
}
