package loader

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/npardra/clientdash/pkg/model"
)

// Wire records mirror the raw BSON documents. The source collections are not
// schema-clean: client_id shows up as a comma-grouped string on some rows and
// a number on others, and dates arrive as strings or BSON datetimes. The
// loose fields are decoded as interface{} and coerced strictly afterwards.

type wireClient struct {
	ClientID    interface{} `bson:"client_id"`
	Name        string      `bson:"name"`
	Birthdate   interface{} `bson:"birthdate"`
	Nationality string      `bson:"nationality"`
	DateJoined  interface{} `bson:"date_joined"`
}

type wireMembership struct {
	MembershipID interface{} `bson:"membership_id"`
	ClientID     interface{} `bson:"client_id"`
	Tier         string      `bson:"tier"`
	Status       string      `bson:"status"`
	StartDate    interface{} `bson:"start_date"`
	EndDate      interface{} `bson:"end_date"`
}

type wireTransaction struct {
	TransactionID interface{} `bson:"transaction_id"`
	ClientID      interface{} `bson:"client_id"`
	Amount        interface{} `bson:"amount"`
	Date          interface{} `bson:"date"`
}

// coerceID converts whatever BSON type an identifier arrived as into an int,
// stripping thousands separators from string forms. Every id column in the
// source data is as loosely typed as client_id, so they all route through
// here.
func coerceID(field string, v interface{}) (int, error) {
	switch id := v.(type) {
	case string:
		return model.ParseID(field, id)
	case int:
		return id, nil
	case int32:
		return int(id), nil
	case int64:
		return int(id), nil
	case float64:
		if id != float64(int(id)) {
			return 0, fmt.Errorf("%w: %s %v is not an integer", model.ErrParse, field, id)
		}
		return int(id), nil
	default:
		return 0, fmt.Errorf("%w: %s has unsupported type %T", model.ErrParse, field, v)
	}
}

func coerceClientID(v interface{}) (int, error) {
	return coerceID("client id", v)
}

// coerceDate converts a date-bearing field. A nil value (field absent on the
// document) coerces to the zero time rather than failing the render.
func coerceDate(v interface{}) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, nil
	case string:
		return model.ParseDate(d)
	case primitive.DateTime:
		return d.Time().UTC(), nil
	case time.Time:
		return d.UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("%w: date has unsupported type %T", model.ErrParse, v)
	}
}

// coerceAmount converts a currency value into a decimal.
func coerceAmount(v interface{}) (decimal.Decimal, error) {
	switch a := v.(type) {
	case float64:
		return decimal.NewFromFloat(a), nil
	case int32:
		return decimal.NewFromInt32(a), nil
	case int64:
		return decimal.NewFromInt(a), nil
	case string:
		d, err := decimal.NewFromString(a)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", model.ErrParse, a)
		}
		return d, nil
	case primitive.Decimal128:
		d, err := decimal.NewFromString(a.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: amount %v is not a number", model.ErrParse, a)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: amount has unsupported type %T", model.ErrParse, v)
	}
}
