package model

// Membership tiers, lowest to highest. "No Membership" is a real tier value
// in the source data, not an absence marker.
const (
	TierNone     = "No Membership"
	TierBronze   = "Bronze"
	TierSilver   = "Silver"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"
)

// TierOrder is the fixed display order for every tier-keyed widget,
// regardless of which tiers appear in the data.
var TierOrder = []string{TierNone, TierBronze, TierSilver, TierGold, TierPlatinum}

// TierRank returns the position of a tier in TierOrder, or len(TierOrder)
// for values outside the vocabulary so they sort last.
func TierRank(tier string) int {
	for i, t := range TierOrder {
		if t == tier {
			return i
		}
	}
	return len(TierOrder)
}
