package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/npardra/clientdash/pkg/geo"
	"github.com/npardra/clientdash/pkg/model"
)

func TestMembershipBreakdown(t *testing.T) {
	p := testPipeline()

	slices := p.MembershipBreakdown()
	require.Len(t, slices, 2)
	require.Equal(t, "Has Membership", slices[0].Label)
	require.Equal(t, model.TierNone, slices[1].Label)

	// Client 3's first membership carries the literal "No Membership" tier;
	// client 4 has no membership row at all and still classifies as "Has
	// Membership" under the left-join-then-compare rule.
	require.Equal(t, 3, slices[0].Count)
	require.Equal(t, 1, slices[1].Count)
}

func TestMembershipBreakdown_FirstMembershipWins(t *testing.T) {
	snap := &model.Snapshot{
		Clients: []model.Client{{ClientID: 1}},
		Memberships: []model.Membership{
			{MembershipID: 1, ClientID: 1, Tier: model.TierNone},
			{MembershipID: 2, ClientID: 1, Tier: model.TierGold}, // deduplicated away
		},
	}
	slices := New(snap, testNow, nil).MembershipBreakdown()
	require.Equal(t, 0, slices[0].Count)
	require.Equal(t, 1, slices[1].Count)
}

func TestTierCounts_FixedOrderWithEmptyTiers(t *testing.T) {
	p := testPipeline()

	counts := p.TierCounts()
	require.Len(t, counts, len(model.TierOrder))

	var tiers []string
	for _, tc := range counts {
		tiers = append(tiers, tc.Tier)
	}
	require.Equal(t, model.TierOrder, tiers)

	byTier := make(map[string]int)
	for _, tc := range counts {
		byTier[tc.Tier] = tc.Count
	}
	require.Equal(t, 1, byTier[model.TierNone])
	require.Equal(t, 1, byTier[model.TierBronze])
	require.Equal(t, 1, byTier[model.TierSilver])
	require.Equal(t, 1, byTier[model.TierGold])
	require.Equal(t, 0, byTier[model.TierPlatinum]) // empty tier still present
}

func TestCountryCounts_ExcludesUnresolvedButKeepsClientElsewhere(t *testing.T) {
	snap := testSnapshot()
	p := New(snap, testNow, geo.NewResolver())

	counts := p.CountryCounts()
	codes := make(map[string]int)
	for _, c := range counts {
		codes[c.CountryCode] = c.Count
	}
	require.Equal(t, 1, codes["BRA"])
	require.Equal(t, 1, codes["DEU"])
	require.Equal(t, 1, codes["JPN"])
	require.NotContains(t, codes, "") // Atlantis resolves to nothing

	// The unresolved client still counts in the overview.
	require.Equal(t, 4, p.Overview().TotalClients)
}

func TestAgeHistogram_FixedAxis(t *testing.T) {
	p := testPipeline()

	buckets := p.AgeHistogram()
	var labels []string
	total := 0
	for _, b := range buckets {
		labels = append(labels, b.Label)
		total += b.Count
	}
	require.Equal(t, model.AgeBinLabels, labels)
	// Ages at testNow: 35 (Ana, birthday today), 39 (Ben), 24 (Caro), 67 (Dan).
	require.Equal(t, 4, total)

	byLabel := make(map[string]int)
	for _, b := range buckets {
		byLabel[b.Label] = b.Count
	}
	require.Equal(t, 1, byLabel["19-25"])
	require.Equal(t, 1, byLabel["26-35"])
	require.Equal(t, 1, byLabel["36-45"])
	require.Equal(t, 1, byLabel["65+"])
	require.Equal(t, 0, byLabel["0-18"])
}
