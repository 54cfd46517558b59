package archive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDocUnmarshalScalarAndArrayFields(t *testing.T) {
	scalar := []byte(`{
		"identifier": "gd1977-05-08.sbd",
		"title": "Barton Hall",
		"year": 1977,
		"coverage": "Ithaca, NY",
		"source": "SBD",
		"format": "VBR MP3"
	}`)
	var doc Doc
	if err := json.Unmarshal(scalar, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Title.String() != "Barton Hall" || doc.Year.Int() != 1977 {
		t.Errorf("scalar doc decoded as %+v", doc)
	}
	if len(doc.Format) != 1 || doc.Format[0] != "VBR MP3" {
		t.Errorf("scalar format decoded as %v", doc.Format)
	}

	array := []byte(`{
		"identifier": "gd1977-05-08.sbd",
		"title": ["Barton Hall", "Cornell"],
		"year": "1977",
		"format": ["VBR MP3", "Flac"]
	}`)
	doc = Doc{}
	if err := json.Unmarshal(array, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Title.String() != "Barton Hall" {
		t.Errorf("array title decoded as %q", doc.Title)
	}
	if doc.Year.Int() != 1977 {
		t.Errorf("string year decoded as %d", doc.Year.Int())
	}
	if len(doc.Format) != 2 {
		t.Errorf("array format decoded as %v", doc.Format)
	}
}

func TestFileUnmarshalStringSize(t *testing.T) {
	var file File
	if err := json.Unmarshal([]byte(`{"name":"t04.mp3","size":"12345678","length":"11:30"}`), &file); err != nil {
		t.Fatal(err)
	}
	if file.Size.Int64() != 12345678 {
		t.Errorf("size decoded as %d", file.Size.Int64())
	}
}

func TestDownloadURLEncodesName(t *testing.T) {
	got := DownloadURL("gd77-05-08", "gd77-05-08d1t01 Scarlet Begonias.mp3")
	want := "https://archive.org/download/gd77-05-08/gd77-05-08d1t01%20Scarlet%20Begonias.mp3"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSearchDocs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/advancedsearch.php" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q == "" {
			t.Error("missing q param")
		}
		w.Write([]byte(`{"response":{"docs":[{"identifier":"gd1977-05-08.sbd","title":"Barton Hall"}]}}`))
	}))
	defer srv.Close()

	client := New("")
	client.BaseURL = srv.URL

	docs, err := client.SearchDocs(context.Background(), `collection:(GratefulDead)`)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].Identifier != "gd1977-05-08.sbd" {
		t.Errorf("docs = %+v", docs)
	}
}

func TestFileListingCaches(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"files":[{"name":"t01.mp3","format":"VBR MP3","size":"100"}]}`))
	}))
	defer srv.Close()

	client := New(t.TempDir())
	client.BaseURL = srv.URL

	for i := 0; i < 2; i++ {
		files, err := client.FileListing(context.Background(), "gd1977-05-08.sbd")
		if err != nil {
			t.Fatal(err)
		}
		if len(files) != 1 || files[0].Name != "t01.mp3" {
			t.Fatalf("files = %+v", files)
		}
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1 (second read from cache)", hits)
	}
}
