package loader

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/npardra/clientdash/pkg/model"
)

func TestConfigValidate(t *testing.T) {
	require.NoError(t, Config{URI: "mongodb://localhost", Database: "analytics"}.Validate())

	err := Config{Database: "analytics"}.Validate()
	require.True(t, errors.Is(err, model.ErrConfig))

	err = Config{URI: "mongodb://localhost"}.Validate()
	require.True(t, errors.Is(err, model.ErrConfig))

	_, err = NewMongo(Config{})
	require.True(t, errors.Is(err, model.ErrConfig))
}

func TestNormalize_MixedWireTypes(t *testing.T) {
	clients := []wireClient{
		{ClientID: "1,234", Name: "Ana", Birthdate: "1990-03-15", Nationality: "Brazil", DateJoined: "2024-10-02"},
		{ClientID: int32(2), Name: "Ben", Birthdate: primitive.NewDateTimeFromTime(time.Date(1985, 7, 1, 0, 0, 0, 0, time.UTC)), DateJoined: "2024-10-20"},
		{ClientID: float64(3), Name: "Caro", Birthdate: "2000-03-16", DateJoined: "2023-05-01"},
	}
	memberships := []wireMembership{
		{MembershipID: 10, ClientID: "1,234", Tier: model.TierGold, Status: model.StatusActive, StartDate: "2024-10-03"},
	}
	transactions := []wireTransaction{
		{TransactionID: 100, ClientID: int64(2), Amount: 49.99, Date: "2025-01-10"},
		{TransactionID: 101, ClientID: "3", Amount: "12.50", Date: "2025-01-11"},
	}

	snap, err := Normalize(clients, memberships, transactions)
	require.NoError(t, err)

	require.Len(t, snap.Clients, 3)
	require.Equal(t, 1234, snap.Clients[0].ClientID)
	require.Equal(t, 2, snap.Clients[1].ClientID)
	require.Equal(t, time.Date(1985, 7, 1, 0, 0, 0, 0, time.UTC), snap.Clients[1].Birthdate)
	require.Equal(t, 3, snap.Clients[2].ClientID)

	require.Len(t, snap.Memberships, 1)
	require.Equal(t, 1234, snap.Memberships[0].ClientID)
	// end_date absent on the document coerces to the zero time.
	require.True(t, snap.Memberships[0].EndDate.IsZero())

	require.Len(t, snap.Transactions, 2)
	require.Equal(t, "49.99", snap.Transactions[0].Amount.String())
	require.Equal(t, "12.5", snap.Transactions[1].Amount.String())
}

func TestNormalize_StringRowIDs(t *testing.T) {
	memberships := []wireMembership{
		{MembershipID: "2,001", ClientID: int32(1), Tier: model.TierSilver, Status: model.StatusActive, StartDate: "2024-11-01"},
	}
	transactions := []wireTransaction{
		{TransactionID: "3002", ClientID: int32(1), Amount: 5.0, Date: "2025-01-10"},
	}

	snap, err := Normalize(nil, memberships, transactions)
	require.NoError(t, err)
	require.Equal(t, 2001, snap.Memberships[0].MembershipID)
	require.Equal(t, 3002, snap.Transactions[0].TransactionID)
}

func TestNormalize_BadRowIDNamesTheRow(t *testing.T) {
	memberships := []wireMembership{
		{MembershipID: "m-10", ClientID: int32(1), Tier: model.TierGold, Status: model.StatusActive, StartDate: "2024-10-03"},
	}
	_, err := Normalize(nil, memberships, nil)
	require.True(t, errors.Is(err, model.ErrParse))
	require.Contains(t, err.Error(), "memberships row 0")
	require.Contains(t, err.Error(), "membership id")

	transactions := []wireTransaction{
		{TransactionID: 4.5, ClientID: int32(1), Amount: 5.0, Date: "2025-01-10"},
	}
	_, err = Normalize(nil, nil, transactions)
	require.True(t, errors.Is(err, model.ErrParse))
	require.Contains(t, err.Error(), "transactions row 0")
	require.Contains(t, err.Error(), "transaction id")
}

func TestNormalize_BadClientIDAbortsLoad(t *testing.T) {
	clients := []wireClient{
		{ClientID: "not-a-number", Name: "Broken"},
	}
	_, err := Normalize(clients, nil, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, model.ErrParse))
	require.Contains(t, err.Error(), "clients row 0")
}

func TestNormalize_BadDateNamesTheRow(t *testing.T) {
	transactions := []wireTransaction{
		{TransactionID: 7, ClientID: int32(1), Amount: 5.0, Date: "yesterday-ish"},
	}
	_, err := Normalize(nil, nil, transactions)
	require.True(t, errors.Is(err, model.ErrParse))
	require.Contains(t, err.Error(), "transaction 7")
}

func TestCoerceClientID(t *testing.T) {
	id, err := coerceClientID(float64(12))
	require.NoError(t, err)
	require.Equal(t, 12, id)

	// Fractional ids are corrupt, not truncatable.
	_, err = coerceClientID(float64(12.5))
	require.True(t, errors.Is(err, model.ErrParse))

	_, err = coerceClientID(true)
	require.True(t, errors.Is(err, model.ErrParse))
}

func TestCoerceAmount_Decimal128(t *testing.T) {
	d128, err := primitive.ParseDecimal128("19.95")
	require.NoError(t, err)

	amount, err := coerceAmount(d128)
	require.NoError(t, err)
	require.Equal(t, "19.95", amount.String())
}
