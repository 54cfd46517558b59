package index

import (
	"context"
	"testing"
	"time"

	"github.com/amonks/setstats/data"
)

type fakeStore struct {
	saved  *data.SongIndex
	stored *data.SongIndex
}

func (f *fakeStore) Save(idx *data.SongIndex) error { f.saved = idx; return nil }
func (f *fakeStore) Load() (*data.SongIndex, error) { return f.stored, nil }

func TestShouldRebuild(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	week := 7 * 24 * time.Hour

	if !ShouldRebuild(nil, now, week) {
		t.Error("nil index must rebuild")
	}

	fresh := &data.SongIndex{LastUpdated: now.Add(-time.Hour)}
	if ShouldRebuild(fresh, now, week) {
		t.Error("hour-old index must not rebuild")
	}

	stale := &data.SongIndex{LastUpdated: now.Add(-8 * 24 * time.Hour)}
	if !ShouldRebuild(stale, now, week) {
		t.Error("eight-day-old index must rebuild")
	}

	if ShouldRebuild(stale, now, 0) {
		t.Error("zero max age disables staleness rebuilds")
	}
}

func TestServiceBuildSavesAndSwaps(t *testing.T) {
	src := &fakeSource{pages: map[string][]data.Setlist{
		key(1977, 1): {setlist("s1", "08-05-1977", "Jack Straw")},
	}}
	store := &fakeStore{}
	svc := NewService(newTestBuilder(src, 1977), store, 0)

	if svc.Index() != nil {
		t.Fatal("service should start with no index")
	}

	idx, err := svc.BuildIndex(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if store.saved != idx {
		t.Error("built index was not saved to the store")
	}
	if svc.Index() != idx {
		t.Error("built index was not swapped in")
	}
	if idx.BuildID == "" {
		t.Error("built index has no build id")
	}

	stats := svc.Stats()
	if stats == nil || stats.TotalSongs != 1 || stats.TotalShows != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestServiceLoadStored(t *testing.T) {
	stored := &data.SongIndex{
		Songs:       []data.SongIndexEntry{{Title: "Jack Straw", Slug: "jack-straw", TotalPerformances: 1}},
		LastUpdated: time.Now(),
		TotalShows:  1,
	}
	svc := NewService(nil, &fakeStore{stored: stored}, 0)

	if err := svc.LoadStored(); err != nil {
		t.Fatal(err)
	}
	if got := svc.SongDetails("jack-straw"); got == nil || got.Title != "Jack Straw" {
		t.Errorf("SongDetails after load = %+v", got)
	}
	if got := svc.SongDetails("no-such-slug"); got != nil {
		t.Errorf("unknown slug returned %+v, want nil", got)
	}
}

func TestServiceNeedsRebuildUsesClock(t *testing.T) {
	stored := &data.SongIndex{LastUpdated: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewService(nil, &fakeStore{stored: stored}, 7*24*time.Hour)
	if err := svc.LoadStored(); err != nil {
		t.Fatal(err)
	}

	svc.now = func() time.Time { return time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC) }
	if svc.NeedsRebuild() {
		t.Error("day-old index should not need rebuild")
	}

	svc.now = func() time.Time { return time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC) }
	if !svc.NeedsRebuild() {
		t.Error("three-week-old index should need rebuild")
	}
}
