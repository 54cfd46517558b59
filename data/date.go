package data

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseEventDate parses the setlist source's DD-MM-YYYY date format.
func ParseEventDate(date string) (year, month, day int, err error) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("event date '%s' is not DD-MM-YYYY", date)
	}
	day, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad day in event date '%s': %w", date, err)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad month in event date '%s': %w", date, err)
	}
	year, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad year in event date '%s': %w", date, err)
	}
	return year, month, day, nil
}

// YearOf extracts the year from a DD-MM-YYYY date, or zero when the
// date is malformed.
func YearOf(date string) int {
	year, _, _, err := ParseEventDate(date)
	if err != nil {
		return 0
	}
	return year
}

// CompareEventDates orders two DD-MM-YYYY dates chronologically,
// returning -1, 0, or 1. Lexicographic comparison would be wrong for
// any two dates in different months, since the day comes first in this
// format. Malformed dates sort before all well-formed ones.
func CompareEventDates(a, b string) int {
	ay, am, ad, aerr := ParseEventDate(a)
	by, bm, bd, berr := ParseEventDate(b)
	if aerr != nil || berr != nil {
		switch {
		case aerr != nil && berr != nil:
			return 0
		case aerr != nil:
			return -1
		default:
			return 1
		}
	}
	for _, pair := range [][2]int{{ay, by}, {am, bm}, {ad, bd}} {
		if pair[0] < pair[1] {
			return -1
		}
		if pair[0] > pair[1] {
			return 1
		}
	}
	return 0
}
