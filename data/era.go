package data

// eras maps contiguous year ranges to the display labels used
// throughout the app. Display context only; nothing keys off these
// strings.
var eras = []struct {
	from, to int
	label    string
}{
	{1965, 1967, "Primal Era"},
	{1968, 1970, "Pigpen Peak Era"},
	{1971, 1972, "Europe '72 Era"},
	{1973, 1974, "Wall of Sound Era"},
	{1975, 1975, "Hiatus"},
	{1976, 1978, "Return + '77 Era"},
	{1979, 1986, "Brent Early Era"},
	{1987, 1990, "Brent Late Era"},
	{1991, 1995, "Vince Era"},
}

// EraForYear returns the era label for a year, or "Unknown Era" for
// years outside every range (including the zero year from malformed
// dates).
func EraForYear(year int) string {
	for _, era := range eras {
		if year >= era.from && year <= era.to {
			return era.label
		}
	}
	return "Unknown Era"
}
