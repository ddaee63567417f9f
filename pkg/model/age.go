package model

import "time"

// AgeBinLabels is the fixed histogram axis, in display order. Empty bins are
// still rendered.
var AgeBinLabels = []string{"0-18", "19-25", "26-35", "36-45", "46-55", "56-65", "65+"}

// Upper bound (inclusive) for each bin except the open-ended last one.
var ageBinUpper = []int{18, 25, 35, 45, 55, 65}

// Age returns completed years between birthdate and now, floor-dividing days
// by the mean year length so leap years don't drift the result.
func Age(birthdate, now time.Time) int {
	days := now.Sub(birthdate).Hours() / 24
	return int(days / 365.25)
}

// AgeBin maps a non-negative age to exactly one of the seven bins. The
// mapping is total: every age >= 0 lands somewhere, 65+ catches the rest.
func AgeBin(age int) string {
	for i, upper := range ageBinUpper {
		if age <= upper {
			return AgeBinLabels[i]
		}
	}
	return AgeBinLabels[len(AgeBinLabels)-1]
}
