package data

import "testing"

func TestEraForYear(t *testing.T) {
	cases := []struct {
		year int
		want string
	}{
		{1965, "Primal Era"},
		{1967, "Primal Era"},
		{1972, "Europe '72 Era"},
		{1975, "Hiatus"},
		{1977, "Return + '77 Era"},
		{1986, "Brent Early Era"},
		{1995, "Vince Era"},
		{1996, "Unknown Era"},
		{1964, "Unknown Era"},
		{0, "Unknown Era"},
	}
	for _, c := range cases {
		if got := EraForYear(c.year); got != c.want {
			t.Errorf("EraForYear(%d) = %q, want %q", c.year, got, c.want)
		}
	}
}
