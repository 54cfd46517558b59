// Package yearsflag provides a flag.Value that accumulates a list of
// years from comma-separated values, like "-years 1972,1977".
package yearsflag

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

func New(defaults ...int) *YearsFlag {
	return &YearsFlag{defaults: defaults}
}

type YearsFlag struct {
	defaults []int
	values   []int
}

// List returns the selected years in ascending order, falling back to
// the defaults when the flag was never set.
func (yf *YearsFlag) List() []int {
	if len(yf.values) == 0 {
		return yf.defaults
	}
	out := make([]int, len(yf.values))
	copy(out, yf.values)
	sort.Ints(out)
	return out
}

func (yf *YearsFlag) String() string {
	strs := make([]string, len(yf.List()))
	for i, year := range yf.List() {
		strs[i] = strconv.Itoa(year)
	}
	return strings.Join(strs, ", ")
}

func (yf *YearsFlag) Set(value string) error {
	for _, str := range strings.Split(value, ",") {
		str = strings.TrimSpace(str)
		if str == "" {
			continue
		}
		year, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("bad year '%s'", str)
		}
		if year < 1900 || year > 2100 {
			return fmt.Errorf("implausible year %d", year)
		}
		yf.values = append(yf.values, year)
	}
	return nil
}
