// Package archive is a client for archive.org's advanced search and
// item metadata endpoints, reduced to the two calls show resolution
// needs.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/amonks/setstats/readthrough"
	"github.com/amonks/setstats/request"
)

const defaultBaseURL = "https://archive.org"

// metadataMaxAge bounds how long cached file listings are trusted.
// Recordings are effectively immutable once uploaded, so this is
// generous.
const metadataMaxAge = 30 * 24 * time.Hour

// searchFields is what we ask advancedsearch to return per doc;
// everything candidate scoring reads.
var searchFields = []string{
	"identifier", "title", "year", "venue", "coverage", "format", "mediatype", "source",
}

type Client struct {
	// BaseURL is settable for tests; New defaults it.
	BaseURL string

	cache *readthrough.ReadThrough
}

// New returns a client. When cacheDir is nonempty, metadata responses
// are cached there read-through, so repeated resolutions of one show
// don't refetch an unchanging file listing.
func New(cacheDir string) *Client {
	c := &Client{BaseURL: defaultBaseURL}
	if cacheDir != "" {
		c.cache = readthrough.New(cacheDir, "archive-meta-", metadataMaxAge)
	}
	return c
}

// SearchDocs runs an advanced-search query and returns the matching
// docs. Zero docs is a normal result, not an error.
func (c *Client) SearchDocs(ctx context.Context, query string) ([]Doc, error) {
	params := url.Values{}
	params.Set("q", query)
	for _, f := range searchFields {
		params.Add("fl[]", f)
	}
	params.Set("rows", "50")
	params.Set("page", "1")
	params.Set("output", "json")

	body, err := c.get(ctx, c.BaseURL+"/advancedsearch.php?"+params.Encode())
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var results struct {
		Response struct {
			Docs []Doc `json:"docs"`
		} `json:"response"`
	}
	if err := json.NewDecoder(body).Decode(&results); err != nil {
		return nil, fmt.Errorf("search decode error: %w", err)
	}
	return results.Response.Docs, nil
}

// FileListing returns the files of one archive item. The metadata
// endpoint's response passes through the on-disk cache when one is
// configured.
func (c *Client) FileListing(ctx context.Context, identifier string) ([]File, error) {
	if identifier == "" {
		return nil, fmt.Errorf("no identifier")
	}
	metadataURL := c.BaseURL + "/metadata/" + url.PathEscape(identifier)

	body, err := c.getCached(ctx, metadataURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var results struct {
		Files []File `json:"files"`
	}
	if err := json.NewDecoder(body).Decode(&results); err != nil {
		return nil, fmt.Errorf("metadata decode error for '%s': %w", identifier, err)
	}
	return results.Files, nil
}

func (c *Client) getCached(ctx context.Context, url string) (io.ReadCloser, error) {
	if c.cache == nil {
		return c.get(ctx, url)
	}

	if cached, _, err := c.cache.Get(url); err == nil {
		return cached, nil
	} else if !errors.Is(err, readthrough.ErrMiss) {
		log.Printf("archive cache read failed, refetching: %s", err)
	}

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	cached, _, err := c.cache.Set(url, body)
	if err != nil {
		return nil, fmt.Errorf("error caching '%s': %w", url, err)
	}
	return cached, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching '%s': %w", url, err)
	}
	if err := request.Error(resp); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch error: %w", err)
	}
	return resp.Body, nil
}

// DownloadURL is the streaming URL template for a file within an item.
func DownloadURL(identifier, name string) string {
	return fmt.Sprintf("%s/download/%s/%s", defaultBaseURL, identifier, url.PathEscape(name))
}
