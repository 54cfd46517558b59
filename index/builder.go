package index

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/amonks/setstats/data"
	"github.com/amonks/setstats/limiter"
	"github.com/google/uuid"
)

// A Builder drives one full index build: for each configured year it
// pages through the act's setlists and folds every song occurrence into
// a SongIndex.
//
// The builder is strictly sequential, one page fetch at a time, with
// explicit pacing between requests. The upstream setlist service
// enforces rate limits, and concurrent fetches get accounts throttled
// or banned; do not parallelize this.
type Builder struct {
	Source SetlistSource

	// ActID is the setlist source's identifier for the act, fixed per
	// deployment.
	ActID string

	// Years bounds the remote load. The builder only ever fetches the
	// years listed here, at most MaxPages pages each.
	Years    []int
	MaxPages int

	Pacer limiter.Pacer
}

// Build runs a complete index build and returns whatever accumulated.
// It never fails past its own boundary: a rate-limited year cools down
// and is abandoned, any other fetch failure is logged and abandons the
// year, and the fold continues with the next one. Completeness has to
// be judged from TotalShows and len(Songs) against expectation.
//
// Entries are folded in strict source order (year ascending, page
// ascending, setlist order, set order, song order); the altTitles and
// first/last performance tie-breaks depend on that.
func (b *Builder) Build(ctx context.Context) *data.SongIndex {
	fold := newFold()

	for i, year := range b.Years {
		log.Printf("processing year %d (%d of %d)", year, i+1, len(b.Years))

		if err := b.buildYear(ctx, year, fold); err != nil {
			if errors.Is(err, ErrRateLimited) {
				// Abandon the rest of this year rather than retrying
				// indefinitely.
				if err := b.Pacer.CoolDown(ctx); err != nil {
					break
				}
			} else {
				log.Printf("abandoning year %d: %s", year, err)
			}
		}

		if i < len(b.Years)-1 {
			if err := b.Pacer.BetweenYears(ctx); err != nil {
				break
			}
		}
	}

	idx := fold.index()
	log.Printf("index built: %d songs across %d setlists", len(idx.Songs), idx.TotalShows)
	return idx
}

func (b *Builder) buildYear(ctx context.Context, year int, fold *indexFold) error {
	maxPages := b.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	for page := 1; page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		setlists, err := b.Source.GetSetlistPage(ctx, b.ActID, page, year)
		if err != nil {
			return err
		}
		if len(setlists) == 0 {
			log.Printf("no setlists for year %d page %d; done with year", year, page)
			return nil
		}

		log.Printf("folding %d setlists from year %d page %d", len(setlists), year, page)
		for _, setlist := range setlists {
			fold.addSetlist(setlist)
		}

		if page < maxPages {
			if err := b.Pacer.BetweenPages(ctx); err != nil {
				return err
			}
		}
	}

	return nil
}

// indexFold accumulates song entries across setlists, preserving
// first-seen order of slugs.
type indexFold struct {
	entries    map[string]*data.SongIndexEntry
	order      []string
	totalShows int
}

func newFold() *indexFold {
	return &indexFold{entries: map[string]*data.SongIndexEntry{}}
}

func (f *indexFold) addSetlist(setlist data.Setlist) {
	f.totalShows++

	show := data.ShowInfo{
		ID:    setlist.ID,
		Date:  setlist.EventDate,
		Venue: defaultedVenue(setlist.Venue),
		Year:  data.YearOf(setlist.EventDate),
	}
	show.Era = data.EraForYear(show.Year)

	for _, set := range setlist.Sets {
		for _, title := range set.Songs {
			f.addPerformance(title, show)
		}
	}
}

func (f *indexFold) addPerformance(title string, show data.ShowInfo) {
	slug := data.Slug(title)
	if slug == "" {
		return
	}

	entry, has := f.entries[slug]
	if !has {
		entry = &data.SongIndexEntry{
			Title:     title,
			Slug:      slug,
			AltTitles: []string{title},
		}
		f.entries[slug] = entry
		f.order = append(f.order, slug)
	}

	entry.Shows = append(entry.Shows, show)
	entry.TotalPerformances = len(entry.Shows)

	// Strict comparisons keep the first-seen occurrence on ties.
	if entry.FirstPerformance == nil || data.CompareEventDates(show.Date, entry.FirstPerformance.Date) < 0 {
		first := show
		entry.FirstPerformance = &first
	}
	if entry.LastPerformance == nil || data.CompareEventDates(show.Date, entry.LastPerformance.Date) > 0 {
		last := show
		entry.LastPerformance = &last
	}

	if !contains(entry.AltTitles, title) {
		entry.AltTitles = append(entry.AltTitles, title)
	}
}

func (f *indexFold) index() *data.SongIndex {
	songs := make([]data.SongIndexEntry, len(f.order))
	for i, slug := range f.order {
		songs[i] = *f.entries[slug]
	}
	return &data.SongIndex{
		BuildID:     uuid.NewString(),
		Songs:       songs,
		LastUpdated: time.Now(),
		TotalShows:  f.totalShows,
	}
}

func defaultedVenue(v data.Venue) data.Venue {
	if v.Name == "" {
		v.Name = "Unknown Venue"
	}
	if v.City == "" {
		v.City = "Unknown City"
	}
	if v.Country == "" {
		v.Country = "Unknown Country"
	}
	return v
}

func contains(list []string, s string) bool {
	for _, have := range list {
		if have == s {
			return true
		}
	}
	return false
}
