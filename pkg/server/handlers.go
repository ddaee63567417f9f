// Package server exposes the dashboard aggregates over HTTP. Every request
// is an independent render: load a fresh snapshot, run the pipeline, return
// JSON. Nothing is cached between requests.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/npardra/clientdash/pkg/config"
	"github.com/npardra/clientdash/pkg/geo"
	"github.com/npardra/clientdash/pkg/httpx"
	"github.com/npardra/clientdash/pkg/loader"
	"github.com/npardra/clientdash/pkg/model"
	"github.com/npardra/clientdash/pkg/pipeline"
)

const selectorDateLayout = "2006-01-02"

// Handler serves the dashboard endpoints.
type Handler struct {
	loader   loader.SnapshotLoader
	resolver *geo.Resolver
	clock    func() time.Time
}

// NewHandler wires a snapshot loader and a country resolver into a handler.
func NewHandler(l loader.SnapshotLoader, resolver *geo.Resolver) *Handler {
	return &Handler{
		loader:   l,
		resolver: resolver,
		clock:    time.Now,
	}
}

// render loads a fresh snapshot and builds the pipeline for one request.
// Each render opens its own resolver session: the country table is shared
// read-only across goroutines, the lookup memo is not.
func (h *Handler) render(r *http.Request) (*pipeline.Pipeline, error) {
	ctx, cancel := context.WithTimeout(r.Context(), config.LoadTimeout)
	defer cancel()

	snap, err := h.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	var resolver pipeline.CountryResolver
	if h.resolver != nil {
		resolver = h.resolver.Session()
	}
	return pipeline.New(snap, h.clock(), resolver), nil
}

// respondLoadError maps the loader error taxonomy onto HTTP statuses:
// unreachable data source is an upstream failure, a bad row is ours.
func respondLoadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrConnection):
		httpx.RespondError(w, http.StatusBadGateway, err)
	case errors.Is(err, model.ErrParse):
		httpx.RespondError(w, http.StatusInternalServerError, err)
	default:
		httpx.RespondError(w, http.StatusInternalServerError, err)
	}
}

// parseSelections reads the widget selector params, falling back to the
// documented defaults for anything omitted.
func (h *Handler) parseSelections(query url.Values) (pipeline.Selections, error) {
	sel := pipeline.DefaultSelections(h.clock())

	if v := query.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return sel, fmt.Errorf("invalid month %q: want 1-12", v)
		}
		sel.Month = time.Month(month)
	}
	if v := query.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return sel, fmt.Errorf("invalid year %q", v)
		}
		sel.Year = year
	}

	var err error
	if sel.SpendWindow, err = parseWindow(query, "spend_start", "spend_end", sel.SpendWindow); err != nil {
		return sel, err
	}
	if sel.ScatterWindow, err = parseWindow(query, "scatter_start", "scatter_end", sel.ScatterWindow); err != nil {
		return sel, err
	}
	return sel, nil
}

// parseWindow overrides either bound of a default window from query params.
func parseWindow(query url.Values, startKey, endKey string, window pipeline.DateRange) (pipeline.DateRange, error) {
	if v := query.Get(startKey); v != "" {
		t, err := time.Parse(selectorDateLayout, v)
		if err != nil {
			return window, fmt.Errorf("invalid %s %q: want YYYY-MM-DD", startKey, v)
		}
		window.Start = t
	}
	if v := query.Get(endKey); v != "" {
		t, err := time.Parse(selectorDateLayout, v)
		if err != nil {
			return window, fmt.Errorf("invalid %s %q: want YYYY-MM-DD", endKey, v)
		}
		// Closed interval: include the whole end day.
		window.End = t.Add(24*time.Hour - time.Nanosecond)
	}
	if window.End.Before(window.Start) {
		return window, fmt.Errorf("%s must not be after %s", startKey, endKey)
	}
	return window, nil
}

// HandleDashboard runs the full render: every widget from one fresh
// snapshot under the request's selections.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sel, err := h.parseSelections(r.URL.Query())
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, err)
		return
	}

	p, err := h.render(r)
	if err != nil {
		respondLoadError(w, err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, p.Dashboard(sel))
}

// HandleOverview returns the quick-statistics counters.
func (h *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	p, err := h.render(r)
	if err != nil {
		respondLoadError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, p.Overview())
}

// HandleMonthly returns signup and enrollment counts for the selected month.
func (h *Handler) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	sel, err := h.parseSelections(r.URL.Query())
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, err)
		return
	}
	p, err := h.render(r)
	if err != nil {
		respondLoadError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, p.Monthly(sel.Year, sel.Month))
}

// HandleRetention returns the membership retention metric.
func (h *Handler) HandleRetention(w http.ResponseWriter, r *http.Request) {
	p, err := h.render(r)
	if err != nil {
		respondLoadError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, p.RetentionRate())
}

// HandleMembershipBreakdown returns the has/no membership pie slices.
func (h *Handler) HandleMembershipBreakdown(w http.ResponseWriter, r *http.Request) {
	p, err := h.render(r)
	if err != nil {
		respondLoadError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, p.MembershipBreakdown())
}

// HandleTiers returns membership counts per tier in fixed tier order.
func (h *Handler) HandleTiers(w http.ResponseWriter, r *http.Request) {
	p, err := h.render(r)
	if err != nil {
		respondLoadError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, p.TierCounts())
}

// HandleCountries returns choropleth counts per resolved country code.
func (h *Handler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	p, err := h.render(r)
	if err != nil {
		respondLoadError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, p.CountryCounts())
}

// HandleAgeGroups returns the age histogram over the seven fixed bins.
func (h *Handler) HandleAgeGroups(w http.ResponseWriter, r *http.Request) {
	p, err := h.render(r)
	if err != nil {
		respondLoadError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, p.AgeHistogram())
}

// HandleBirthdays returns the upcoming-birthdays table.
func (h *Handler) HandleBirthdays(w http.ResponseWriter, r *http.Request) {
	p, err := h.render(r)
	if err != nil {
		respondLoadError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, p.UpcomingBirthdays())
}

// HandleTopSpenders returns the top-5 spenders inside the spend window.
func (h *Handler) HandleTopSpenders(w http.ResponseWriter, r *http.Request) {
	sel, err := h.parseSelections(r.URL.Query())
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, err)
		return
	}
	p, err := h.render(r)
	if err != nil {
		respondLoadError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, p.TopSpenders(sel.SpendWindow, config.TopSpenderCount))
}

// HandleDailyTotals returns the amount-over-time line chart rows.
func (h *Handler) HandleDailyTotals(w http.ResponseWriter, r *http.Request) {
	p, err := h.render(r)
	if err != nil {
		respondLoadError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, p.DailyTotals())
}

// HandleSpendingByTier returns the per-tier box-plot summaries.
func (h *Handler) HandleSpendingByTier(w http.ResponseWriter, r *http.Request) {
	p, err := h.render(r)
	if err != nil {
		respondLoadError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, p.SpendingByTier())
}

// HandleScatter returns the transactions inside the scatter window.
func (h *Handler) HandleScatter(w http.ResponseWriter, r *http.Request) {
	sel, err := h.parseSelections(r.URL.Query())
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, err)
		return
	}
	p, err := h.render(r)
	if err != nil {
		respondLoadError(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, p.Scatter(sel.ScatterWindow))
}
