// Package geo maps free-text nationality strings to ISO-3166 alpha-3 country
// codes. Resolution is best-effort and lossy: anything that doesn't match the
// reference table resolves to no code, never to an error.
package geo

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/pariz/gountries"
)

// Fuzzy matches further than this fraction of the query length are rejected.
// "Untied States" should match, "Atlantis" should not.
const maxDistanceRatio = 0.34

// Resolver resolves nationality strings against the gountries reference
// table. It is read-only after construction and safe for concurrent use;
// build it once per process and open a Session per render for memoized
// lookups.
type Resolver struct {
	query *gountries.Query
	names []nameEntry
}

type nameEntry struct {
	name   string // normalized
	alpha3 string
}

// NewResolver builds a resolver over the embedded country-name table.
func NewResolver() *Resolver {
	query := gountries.New()
	var names []nameEntry
	for _, country := range query.FindAllCountries() {
		alpha3 := country.Alpha3
		for _, n := range countryNames(country) {
			if n == "" {
				continue
			}
			names = append(names, nameEntry{name: normalize(n), alpha3: alpha3})
		}
	}
	return &Resolver{query: query, names: names}
}

// Alpha3 returns the ISO-3166 alpha-3 code for a nationality string, or
// ok=false when nothing in the reference table is close enough.
func (r *Resolver) Alpha3(nationality string) (string, bool) {
	key := normalize(nationality)
	if key == "" {
		return "", false
	}
	return r.resolve(key, nationality)
}

func (r *Resolver) resolve(key, original string) (string, bool) {
	// Exact lookup first: gountries matches common and official names
	// case-insensitively.
	if country, err := r.query.FindCountryByName(original); err == nil {
		return country.Alpha3, true
	}
	if country, err := r.query.FindCountryByAlpha(original); err == nil {
		return country.Alpha3, true
	}

	// Fuzzy fallback: closest name by edit distance, within the ratio fence.
	best, bestDist := "", -1
	for _, entry := range r.names {
		d := levenshtein.ComputeDistance(key, entry.name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = entry.alpha3, d
		}
	}
	if bestDist < 0 {
		return "", false
	}
	limit := int(float64(len(key)) * maxDistanceRatio)
	if bestDist > limit {
		return "", false
	}
	return best, true
}

// Session memoizes lookups over a shared Resolver. A session lives for one
// render, so repeated nationalities within a snapshot resolve once and
// nothing is cached across renders. Not safe for concurrent use.
type Session struct {
	resolver *Resolver
	memo     map[string]memoEntry
}

type memoEntry struct {
	alpha3 string
	ok     bool
}

// Session opens a fresh memoizing view for one render.
func (r *Resolver) Session() *Session {
	return &Session{resolver: r, memo: make(map[string]memoEntry)}
}

// Alpha3 resolves through the session's memo.
func (s *Session) Alpha3(nationality string) (string, bool) {
	key := normalize(nationality)
	if key == "" {
		return "", false
	}
	if hit, seen := s.memo[key]; seen {
		return hit.alpha3, hit.ok
	}

	code, ok := s.resolver.resolve(key, nationality)
	s.memo[key] = memoEntry{alpha3: code, ok: ok}
	return code, ok
}

func countryNames(c gountries.Country) []string {
	return []string{c.Name.Common, c.Name.Official}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
