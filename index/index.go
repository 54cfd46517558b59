// Package index builds and serves the denormalized song/show search
// index. The builder folds paginated remote setlist data into a
// SongIndex; the service owns the current index and answers searches
// and detail lookups against it.
package index

import (
	"context"
	"errors"

	"github.com/amonks/setstats/data"
)

// ErrRateLimited is the sentinel a SetlistSource wraps its throttling
// errors with, so the builder can tell "cool down and move on" apart
// from ordinary fetch failures. Compare with errors.Is.
var ErrRateLimited = errors.New("rate limited")

// A SetlistSource fetches one page of an act's setlists for one year.
// An empty (or nil) result signals the end of that year's pagination.
type SetlistSource interface {
	GetSetlistPage(ctx context.Context, actID string, page, year int) ([]data.Setlist, error)
}

// A Store persists whole indexes. Load returns (nil, nil) when nothing
// has been stored yet.
type Store interface {
	Save(idx *data.SongIndex) error
	Load() (*data.SongIndex, error)
}
