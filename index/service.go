package index

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/amonks/setstats/data"
)

// A Service owns the current SongIndex and is the only thing that may
// replace it. Reads (searches, detail lookups, stats) take a snapshot
// of the index pointer, so a rebuild running concurrently is invisible
// to them until the single atomic swap at the end: readers see either
// the old index or the new one, never a partially built one.
type Service struct {
	builder *Builder
	store   Store

	idx atomic.Pointer[data.SongIndex]

	// maxAge drives ShouldRebuild; zero means indexes never go stale.
	maxAge time.Duration

	// now is replaceable for tests.
	now func() time.Time
}

func NewService(builder *Builder, store Store, maxAge time.Duration) *Service {
	return &Service{
		builder: builder,
		store:   store,
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// LoadStored swaps in a previously persisted index, if there is one.
func (s *Service) LoadStored() error {
	if s.store == nil {
		return nil
	}
	idx, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("error loading stored index: %w", err)
	}
	if idx != nil {
		s.idx.Store(idx)
		log.Printf("loaded stored index: %d songs, built %s", len(idx.Songs), idx.LastUpdated.Format(time.DateOnly))
	}
	return nil
}

// BuildIndex runs a full build, persists the result, and atomically
// replaces the held index. A rebuild is a full replace, never a partial
// merge with the prior index. The build itself cannot fail (see
// Builder.Build); only a failure to persist surfaces.
func (s *Service) BuildIndex(ctx context.Context) (*data.SongIndex, error) {
	if s.builder == nil {
		return nil, fmt.Errorf("no setlist source configured")
	}

	idx := s.builder.Build(ctx)

	if s.store != nil {
		if err := s.store.Save(idx); err != nil {
			return nil, fmt.Errorf("error saving index: %w", err)
		}
	}

	s.idx.Store(idx)
	return idx, nil
}

// Search looks up songs by substring with relevance ranking. See
// searchIndex for the rules.
func (s *Service) Search(query string, limit int) []data.SongIndexEntry {
	return searchIndex(s.idx.Load(), query, limit)
}

// SongDetails returns the entry for a slug, or nil when the slug is
// unknown. Absence is normal control flow, not an error.
func (s *Service) SongDetails(slug string) *data.SongIndexEntry {
	idx := s.idx.Load()
	if idx == nil {
		return nil
	}
	for i := range idx.Songs {
		if idx.Songs[i].Slug == slug {
			song := idx.Songs[i]
			return &song
		}
	}
	return nil
}

// Index returns the current index snapshot, or nil before any build or
// load.
func (s *Service) Index() *data.SongIndex {
	return s.idx.Load()
}

type Stats struct {
	TotalSongs  int       `json:"totalSongs"`
	TotalShows  int       `json:"totalShows"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Stats summarizes the current index, or returns nil when there isn't
// one yet.
func (s *Service) Stats() *Stats {
	idx := s.idx.Load()
	if idx == nil {
		return nil
	}
	return &Stats{
		TotalSongs:  len(idx.Songs),
		TotalShows:  idx.TotalShows,
		LastUpdated: idx.LastUpdated,
	}
}

// NeedsRebuild reports whether the held index is missing or older than
// the service's max age.
func (s *Service) NeedsRebuild() bool {
	return ShouldRebuild(s.idx.Load(), s.now(), s.maxAge)
}

// ShouldRebuild is the staleness policy: rebuild when there is no index
// at all, or when maxAge is set and the index is older than it.
func ShouldRebuild(idx *data.SongIndex, now time.Time, maxAge time.Duration) bool {
	if idx == nil {
		return true
	}
	if maxAge <= 0 {
		return false
	}
	return now.Sub(idx.LastUpdated) > maxAge
}
