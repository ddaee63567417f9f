package pipeline

import "github.com/npardra/clientdash/pkg/model"

// clientMemberships is the inner join of clients and memberships on client
// id: one element per (client, membership) pair. Memberships whose client_id
// has no matching client are dropped here and counted in JoinStats instead
// of disappearing silently.
func (p *Pipeline) clientMemberships() []model.Membership {
	joined := make([]model.Membership, 0, len(p.snap.Memberships))
	for _, m := range p.snap.Memberships {
		if _, ok := p.byClient[m.ClientID]; ok {
			joined = append(joined, m)
		}
	}
	return joined
}

// JoinStats reports foreign-key coverage across the three collections. The
// collections are fetched independently, so referential integrity is checked
// explicitly at join time rather than trusted.
type JoinStats struct {
	OrphanMemberships  int `json:"orphan_memberships"`  // membership rows with no matching client
	OrphanTransactions int `json:"orphan_transactions"` // transaction rows with no matching client
}

// JoinCoverage counts rows that reference a client id absent from the
// clients collection.
func (p *Pipeline) JoinCoverage() JoinStats {
	var stats JoinStats
	for _, m := range p.snap.Memberships {
		if _, ok := p.byClient[m.ClientID]; !ok {
			stats.OrphanMemberships++
		}
	}
	for _, t := range p.snap.Transactions {
		if _, ok := p.byClient[t.ClientID]; !ok {
			stats.OrphanTransactions++
		}
	}
	return stats
}

// firstMembershipPerClient deduplicates memberships to the first one seen per
// client, in collection order.
func (p *Pipeline) firstMembershipPerClient() map[int]model.Membership {
	first := make(map[int]model.Membership)
	for _, m := range p.snap.Memberships {
		if _, seen := first[m.ClientID]; !seen {
			first[m.ClientID] = m
		}
	}
	return first
}

// earliestMembershipPerClient picks the membership with the lowest id per
// client. Used to attribute spending to a single tier when a client holds
// several memberships.
func (p *Pipeline) earliestMembershipPerClient() map[int]model.Membership {
	earliest := make(map[int]model.Membership)
	for _, m := range p.snap.Memberships {
		cur, seen := earliest[m.ClientID]
		if !seen || m.MembershipID < cur.MembershipID {
			earliest[m.ClientID] = m
		}
	}
	return earliest
}
