// Package resolver maps shows to archive recordings and song titles to
// audio tracks. Resolution is two sequential phases: an advanced-search
// pass that scores candidate recordings, then a file-listing pass that
// extracts playable tracks from the winner.
package resolver

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/amonks/setstats/archive"
	"github.com/amonks/setstats/data"
)

// ArchiveAPI is the slice of the archive client resolution needs.
type ArchiveAPI interface {
	SearchDocs(ctx context.Context, query string) ([]archive.Doc, error)
	FileListing(ctx context.Context, identifier string) ([]archive.File, error)
}

// A Resolver is stateless per call; independent resolutions may run
// concurrently.
type Resolver struct {
	Archive ArchiveAPI

	// Collection and Shortcode pin searches to the act's archive
	// collection and identifier prefix convention, like "GratefulDead"
	// and "gd".
	Collection string
	Shortcode  string

	// OverlapRatio tunes the fuzzy song/track word-overlap heuristic;
	// zero means the 0.5 default. The constant is empirical, not
	// principled; treat it as a knob.
	OverlapRatio float64
}

// A ShowQuery locates a recording either by date (YYYY-MM-DD, archive
// convention) with optional venue/city/state hints, or directly by
// archive identifier.
type ShowQuery struct {
	Date  string `json:"date"`
	Venue string `json:"venue,omitempty"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`

	// Identifier skips the search phase entirely when set.
	Identifier string `json:"identifier,omitempty"`
}

type Result struct {
	Candidates     []data.ArchiveCandidate `json:"candidates"`
	BestIdentifier string                  `json:"bestIdentifier,omitempty"`
	Tracks         []data.AudioTrack       `json:"tracks"`
}

// Resolve finds the most likely recording for a show. Zero matching
// docs is a normal not-found outcome: empty candidates, no best
// identifier, no error. Only a failure of the search call itself
// surfaces; a failure fetching the winner's file listing degrades to an
// empty track list.
func (r *Resolver) Resolve(ctx context.Context, q ShowQuery) (*Result, error) {
	if q.Identifier != "" {
		return &Result{
			BestIdentifier: q.Identifier,
			Tracks:         r.trackList(ctx, q.Identifier),
		}, nil
	}
	if q.Date == "" {
		return &Result{}, nil
	}

	docs, err := r.Archive.SearchDocs(ctx, r.searchQuery(q))
	if err != nil {
		return nil, fmt.Errorf("archive search error for date '%s': %w", q.Date, err)
	}
	if len(docs) == 0 {
		return &Result{}, nil
	}

	candidates := make([]data.ArchiveCandidate, len(docs))
	for i, doc := range docs {
		candidates[i] = r.scoreCandidate(doc, q)
	}

	// Stable: ties keep original result order; the score already
	// encodes every signal we care about.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	best := candidates[0].Identifier
	return &Result{
		Candidates:     candidates,
		BestIdentifier: best,
		Tracks:         r.trackList(ctx, best),
	}, nil
}

// searchQuery builds the advanced-search expression: collection, exact
// date, identifier prefix, and optional venue/city text constraints,
// ANDed together.
func (r *Resolver) searchQuery(q ShowQuery) string {
	parts := []string{
		fmt.Sprintf("collection:%s", r.Collection),
		fmt.Sprintf("date:%s", q.Date),
		fmt.Sprintf("identifier:%s%s*", r.Shortcode, q.Date),
	}

	if q.Venue != "" {
		parts = append(parts, fmt.Sprintf(`(title:"%s" OR venue:"%s")`, q.Venue, q.Venue))
	}
	if q.City != "" {
		if q.State != "" {
			parts = append(parts, fmt.Sprintf(`(coverage:"%s" OR coverage:"%s, %s")`, q.City, q.City, q.State))
		} else {
			parts = append(parts, fmt.Sprintf(`coverage:"%s"`, q.City))
		}
	}

	return strings.Join(parts, " AND ")
}

// scoreCandidate applies the additive rubric. The date-prefix signal
// dominates: a recording filed under the right date matters far more
// than metadata quality.
func (r *Resolver) scoreCandidate(doc archive.Doc, q ShowQuery) data.ArchiveCandidate {
	candidate := data.ArchiveCandidate{
		Identifier: doc.Identifier,
		Title:      doc.Title.String(),
		Year:       doc.Year.Int(),
		Venue:      doc.Venue.String(),
		Coverage:   doc.Coverage.String(),
		Source:     doc.Source.String(),
		Formats:    doc.Format,
	}

	title := strings.ToLower(candidate.Title)
	venue := strings.ToLower(candidate.Venue)
	coverage := strings.ToLower(candidate.Coverage)
	source := strings.ToLower(candidate.Source)

	if strings.HasPrefix(candidate.Identifier, r.Shortcode+q.Date) {
		candidate.Score += 50
	}

	if q.Venue != "" {
		want := strings.ToLower(q.Venue)
		if strings.Contains(title, want) || strings.Contains(venue, want) {
			candidate.Score += 15
		}
	}

	if q.City != "" && strings.Contains(coverage, strings.ToLower(q.City)) {
		candidate.Score += 10
	}

	if strings.Contains(source, "sbd") || strings.Contains(title, "sbd") || strings.Contains(title, "ultramatrix") {
		candidate.Score += 8
	}

	for _, format := range candidate.Formats {
		lower := strings.ToLower(format)
		if strings.Contains(lower, "mp3") || strings.Contains(lower, "ogg") {
			candidate.Score += 5
			break
		}
	}

	return candidate
}

// trackList fetches and maps a recording's audio files. Any failure
// degrades to an empty list; the caller reads emptiness as not-found.
func (r *Resolver) trackList(ctx context.Context, identifier string) []data.AudioTrack {
	files, err := r.Archive.FileListing(ctx, identifier)
	if err != nil {
		log.Printf("error listing files for '%s': %s", identifier, err)
		return nil
	}
	return audioTracks(identifier, files)
}
