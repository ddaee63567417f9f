package pipeline

import (
	"fmt"
	"math"

	"github.com/npardra/clientdash/pkg/model"
)

// Retention is the all-time membership retention metric.
type Retention struct {
	Rate    float64 `json:"rate"`    // percentage, two-decimal precision
	Display string  `json:"display"` // e.g. "65.38%"
	Active  int     `json:"active"`
	Total   int     `json:"total"`
	NoData  bool    `json:"no_data"` // true when there are zero memberships
}

// RetentionRate computes active distinct memberships over total distinct
// memberships as a percentage. Zero memberships reports 0% with the no-data
// flag set instead of dividing by zero.
func (p *Pipeline) RetentionRate() Retention {
	totalIDs := make(map[int]struct{}, len(p.snap.Memberships))
	for _, m := range p.snap.Memberships {
		totalIDs[m.MembershipID] = struct{}{}
	}

	activeIDs := make(map[int]struct{})
	for _, m := range p.clientMemberships() {
		if m.Status == model.StatusActive {
			activeIDs[m.MembershipID] = struct{}{}
		}
	}

	ret := Retention{Active: len(activeIDs), Total: len(totalIDs)}
	if ret.Total == 0 {
		ret.NoData = true
		ret.Display = "0.00%"
		return ret
	}

	rate := float64(ret.Active) / float64(ret.Total) * 100
	ret.Rate = math.Round(rate*100) / 100
	ret.Display = fmt.Sprintf("%.2f%%", rate)
	return ret
}
