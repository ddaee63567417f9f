package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date layouts accepted for date-bearing fields, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ParseID strips thousands-separator commas from an identifier field and
// converts the result to a signed integer. "1,234" parses to 1234. Anything
// with a non-integer residue is an ErrParse naming the field.
func ParseID(field, raw string) (int, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	id, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrParse, field, raw)
	}
	return id, nil
}

// ParseClientID parses the client-identifier field.
func ParseClientID(raw string) (int, error) {
	return ParseID("client id", raw)
}

// ParseDate parses a date-bearing field using the accepted layouts.
func ParseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", ErrParse, raw)
}
