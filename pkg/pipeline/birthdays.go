package pipeline

import (
	"sort"
	"time"
)

// BirthdayRow is one row of the upcoming-birthdays table.
type BirthdayRow struct {
	ClientID          int       `json:"client_id"`
	Name              string    `json:"name"`
	Birthdate         time.Time `json:"birthdate"`
	DaysUntilBirthday int       `json:"days_until_birthday"`
	Today             bool      `json:"today"`
}

// UpcomingBirthdays lists every client with a known birthdate, ascending by
// days until the next occurrence. Clients whose birthday is the current date
// come first with the today flag set. Nothing is persisted; the whole table
// is recomputed each render.
func (p *Pipeline) UpcomingBirthdays() []BirthdayRow {
	rows := make([]BirthdayRow, 0, len(p.clients))
	for _, c := range p.clients {
		if c.Birthdate.IsZero() {
			continue
		}
		rows = append(rows, BirthdayRow{
			ClientID:          c.ClientID,
			Name:              c.Name,
			Birthdate:         c.Birthdate,
			DaysUntilBirthday: c.DaysUntilBirthday,
			Today:             c.BirthdayToday,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].DaysUntilBirthday != rows[j].DaysUntilBirthday {
			return rows[i].DaysUntilBirthday < rows[j].DaysUntilBirthday
		}
		return rows[i].ClientID < rows[j].ClientID
	})
	return rows
}

// daysUntilBirthday computes whole days from now's calendar date to the next
// occurrence of the birthdate's month and day. A birthday landing on today
// is 0. Leap-day birthdates observe on March 1 in non-leap years (Go's date
// normalization).
func daysUntilBirthday(birthdate, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := time.Date(now.Year(), birthdate.Month(), birthdate.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(now.Year()+1, birthdate.Month(), birthdate.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(today).Hours() / 24)
}
