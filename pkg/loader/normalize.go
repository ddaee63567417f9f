package loader

import (
	"fmt"

	"github.com/npardra/clientdash/pkg/model"
)

// Normalize coerces wire records into model entities. Coercion is strict:
// the first bad identifier or date aborts the whole load, naming the
// collection and row so the bad document can be found. There is no row-level
// recovery by design.
func Normalize(clients []wireClient, memberships []wireMembership, transactions []wireTransaction) (*model.Snapshot, error) {
	snap := &model.Snapshot{
		Clients:      make([]model.Client, 0, len(clients)),
		Memberships:  make([]model.Membership, 0, len(memberships)),
		Transactions: make([]model.Transaction, 0, len(transactions)),
	}

	for i, raw := range clients {
		clientID, err := coerceClientID(raw.ClientID)
		if err != nil {
			return nil, fmt.Errorf("clients row %d: %w", i, err)
		}
		birthdate, err := coerceDate(raw.Birthdate)
		if err != nil {
			return nil, fmt.Errorf("clients row %d (client %d): %w", i, clientID, err)
		}
		joined, err := coerceDate(raw.DateJoined)
		if err != nil {
			return nil, fmt.Errorf("clients row %d (client %d): %w", i, clientID, err)
		}
		snap.Clients = append(snap.Clients, model.Client{
			ClientID:    clientID,
			Name:        raw.Name,
			Birthdate:   birthdate,
			Nationality: raw.Nationality,
			DateJoined:  joined,
		})
	}

	for i, raw := range memberships {
		membershipID, err := coerceID("membership id", raw.MembershipID)
		if err != nil {
			return nil, fmt.Errorf("memberships row %d: %w", i, err)
		}
		clientID, err := coerceClientID(raw.ClientID)
		if err != nil {
			return nil, fmt.Errorf("memberships row %d (membership %d): %w", i, membershipID, err)
		}
		start, err := coerceDate(raw.StartDate)
		if err != nil {
			return nil, fmt.Errorf("memberships row %d (membership %d): %w", i, membershipID, err)
		}
		end, err := coerceDate(raw.EndDate)
		if err != nil {
			return nil, fmt.Errorf("memberships row %d (membership %d): %w", i, membershipID, err)
		}
		snap.Memberships = append(snap.Memberships, model.Membership{
			MembershipID: membershipID,
			ClientID:     clientID,
			Tier:         raw.Tier,
			Status:       raw.Status,
			StartDate:    start,
			EndDate:      end,
		})
	}

	for i, raw := range transactions {
		transactionID, err := coerceID("transaction id", raw.TransactionID)
		if err != nil {
			return nil, fmt.Errorf("transactions row %d: %w", i, err)
		}
		clientID, err := coerceClientID(raw.ClientID)
		if err != nil {
			return nil, fmt.Errorf("transactions row %d (transaction %d): %w", i, transactionID, err)
		}
		amount, err := coerceAmount(raw.Amount)
		if err != nil {
			return nil, fmt.Errorf("transactions row %d (transaction %d): %w", i, transactionID, err)
		}
		date, err := coerceDate(raw.Date)
		if err != nil {
			return nil, fmt.Errorf("transactions row %d (transaction %d): %w", i, transactionID, err)
		}
		snap.Transactions = append(snap.Transactions, model.Transaction{
			TransactionID: transactionID,
			ClientID:      clientID,
			Amount:        amount,
			Date:          date,
		})
	}

	return snap, nil
}
