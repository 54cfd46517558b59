package data

import "time"

// A SongIndexEntry aggregates every known performance of one song, keyed
// by its normalized slug. The display title is the first-seen spelling;
// other spellings accumulate in AltTitles in the order they were seen.
type SongIndexEntry struct {
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	AltTitles []string   `json:"altTitles"`
	Shows     []ShowInfo `json:"shows"`

	// TotalPerformances always equals len(Shows). It exists as its own
	// field so stored and serialized entries carry the count without
	// the show list needing to be loaded.
	TotalPerformances int `json:"totalPerformances"`

	// FirstPerformance and LastPerformance hold copies of the
	// chronologically earliest and latest ShowInfo in Shows. Ties keep
	// the occurrence that was folded in first.
	FirstPerformance *ShowInfo `json:"firstPerformance"`
	LastPerformance  *ShowInfo `json:"lastPerformance"`
}

// ShowInfo records one performance occurrence of a song.
type ShowInfo struct {
	// ID is the setlist source's identifier for the show. A more
	// specific archive identifier may replace it downstream.
	ID string `json:"id"`

	// Date is in the setlist source's DD-MM-YYYY convention, not ISO.
	Date string `json:"date"`

	Venue Venue `json:"venue"`

	// Year is parsed out of Date; zero when Date is malformed.
	Year int `json:"year"`

	// Era is a display label derived from Year. See era.go.
	Era string `json:"era"`
}

type Venue struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// A SongIndex is the denormalized search structure the builder produces.
// It is replaced wholesale on rebuild, never mutated in place.
type SongIndex struct {
	// BuildID identifies one builder run in logs and stored copies.
	BuildID string `json:"buildId,omitempty"`

	Songs       []SongIndexEntry `json:"songs"`
	LastUpdated time.Time        `json:"lastUpdated"`

	// TotalShows counts raw setlists processed, one per setlist item on
	// each fetched page. It is not deduplicated by show: if the source
	// emits two setlists for one show, both count.
	TotalShows int `json:"totalShows"`
}

// A Setlist is one show's worth of raw setlist data as returned by a
// setlist source, reduced to the fields the builder folds. Missing
// venue fields are left empty here; the builder applies "Unknown ..."
// defaults.
type Setlist struct {
	ID        string
	EventDate string // DD-MM-YYYY
	Venue     Venue
	Sets      []SetlistSet
}

// A SetlistSet is one set (or encore) within a setlist, in performance
// order.
type SetlistSet struct {
	Name  string
	Songs []string
}
