package pipeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/npardra/clientdash/pkg/model"
)

// Fixed evaluation time for every pipeline test.
var testNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// testSnapshot builds a small but fully connected fixture: four clients,
// four memberships across three tiers, transactions spread over two months.
func testSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Clients: []model.Client{
			{ClientID: 1, Name: "Ana", Birthdate: day(1990, 3, 15), Nationality: "Brazil", DateJoined: day(2024, 10, 2)},
			{ClientID: 2, Name: "Ben", Birthdate: day(1985, 7, 1), Nationality: "Germany", DateJoined: day(2024, 10, 20)},
			{ClientID: 3, Name: "Caro", Birthdate: day(2000, 3, 16), Nationality: "Atlantis", DateJoined: day(2023, 5, 1)},
			{ClientID: 4, Name: "Dan", Birthdate: day(1958, 1, 2), Nationality: "Japan", DateJoined: day(2022, 1, 15)},
		},
		Memberships: []model.Membership{
			{MembershipID: 10, ClientID: 1, Tier: model.TierGold, Status: model.StatusActive, StartDate: day(2024, 10, 3)},
			{MembershipID: 11, ClientID: 2, Tier: model.TierBronze, Status: "EXPIRED", StartDate: day(2023, 2, 1)},
			{MembershipID: 12, ClientID: 3, Tier: model.TierNone, Status: model.StatusActive, StartDate: day(2023, 5, 2)},
			{MembershipID: 13, ClientID: 1, Tier: model.TierSilver, Status: "EXPIRED", StartDate: day(2022, 6, 1)},
		},
		Transactions: []model.Transaction{
			{TransactionID: 100, ClientID: 1, Amount: amt("50.00"), Date: day(2025, 1, 10)},
			{TransactionID: 101, ClientID: 2, Amount: amt("20.00"), Date: day(2025, 1, 10)},
			{TransactionID: 102, ClientID: 1, Amount: amt("30.50"), Date: day(2025, 2, 1)},
			{TransactionID: 103, ClientID: 3, Amount: amt("5.00"), Date: day(2024, 12, 25)},
			{TransactionID: 104, ClientID: 4, Amount: amt("100.00"), Date: day(2023, 1, 1)}, // outside trailing year
		},
	}
}

func testPipeline() *Pipeline {
	return New(testSnapshot(), testNow, nil)
}
