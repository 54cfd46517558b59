package index

import (
	"sort"
	"strings"

	"github.com/amonks/setstats/data"
)

// DefaultSearchLimit caps results when the caller passes a
// non-positive limit.
const DefaultSearchLimit = 20

// searchIndex does a substring search over an index's titles and
// alternate titles. Exact (case-insensitive) title matches rank above
// all partial matches; partial matches order by performance count
// descending. The sort is stable, so ties keep index order.
//
// An empty or whitespace-only query returns nil; that's a defined empty
// result, not an error.
func searchIndex(idx *data.SongIndex, query string, limit int) []data.SongIndexEntry {
	if idx == nil {
		return nil
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var results []data.SongIndexEntry
	for _, song := range idx.Songs {
		if matchesQuery(song, term) {
			results = append(results, song)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		iExact := strings.ToLower(results[i].Title) == term
		jExact := strings.ToLower(results[j].Title) == term
		if iExact != jExact {
			return iExact
		}
		return results[i].TotalPerformances > results[j].TotalPerformances
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func matchesQuery(song data.SongIndexEntry, term string) bool {
	if strings.Contains(strings.ToLower(song.Title), term) {
		return true
	}
	for _, alt := range song.AltTitles {
		if strings.Contains(strings.ToLower(alt), term) {
			return true
		}
	}
	return false
}
