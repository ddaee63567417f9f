// Package model defines the three dashboard entities, the tier and age-bin
// vocabularies, and the strict coercion rules applied when a snapshot is
// normalized.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is one row of the clients collection after normalization.
type Client struct {
	ClientID    int       `json:"client_id"`
	Name        string    `json:"name"`
	Birthdate   time.Time `json:"birthdate"`
	Nationality string    `json:"nationality"`
	DateJoined  time.Time `json:"date_joined"`
}

// Membership is one row of the memberships collection after normalization.
// Many memberships may reference one client; typically one is active.
type Membership struct {
	MembershipID int       `json:"membership_id"`
	ClientID     int       `json:"client_id"`
	Tier         string    `json:"tier"`
	Status       string    `json:"status"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
}

// Transaction is one row of the transactions collection after normalization.
type Transaction struct {
	TransactionID int             `json:"transaction_id"`
	ClientID      int             `json:"client_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
}

// Snapshot is the full record set fetched from the data source at the start
// of one render cycle. It is never mutated after loading; every render works
// on a fresh one.
type Snapshot struct {
	Clients      []Client
	Memberships  []Membership
	Transactions []Transaction
}

// StatusActive is the membership status counted toward retention.
const StatusActive = "ACTIVE"
