package indexfile

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/amonks/setstats/data"
)

func TestSaveAndLoad(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "index.json"))

	first := &data.ShowInfo{ID: "show-1", Date: "08-05-1977", Year: 1977}
	idx := &data.SongIndex{
		BuildID:     "build-1",
		LastUpdated: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		TotalShows:  1,
		Songs: []data.SongIndexEntry{
			{
				Title:             "Jack Straw",
				Slug:              "jack-straw",
				Shows:             []data.ShowInfo{*first},
				TotalPerformances: 1,
				FirstPerformance:  first,
				LastPerformance:   first,
			},
		},
	}

	if err := store.Save(idx); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil {
		t.Fatal("expected a stored index")
	}
	if loaded.BuildID != "build-1" || loaded.TotalShows != 1 {
		t.Errorf("meta = %q / %d", loaded.BuildID, loaded.TotalShows)
	}
	if len(loaded.Songs) != 1 || loaded.Songs[0].Slug != "jack-straw" {
		t.Errorf("songs = %+v", loaded.Songs)
	}
	if loaded.Songs[0].FirstPerformance == nil || loaded.Songs[0].FirstPerformance.Date != "08-05-1977" {
		t.Errorf("firstPerformance = %+v", loaded.Songs[0].FirstPerformance)
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "nope", "index.json"))

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded != nil {
		t.Errorf("missing file should load nil, got %+v", loaded)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "deeply", "nested", "index.json"))

	if err := store.Save(&data.SongIndex{BuildID: "build-1"}); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil || loaded.BuildID != "build-1" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestSaveNil(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "index.json"))
	if err := store.Save(nil); err == nil {
		t.Error("expected an error saving a nil index")
	}
}
