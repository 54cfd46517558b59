package data

// An AudioTrack is one playable file resolved out of an archive
// recording's file listing.
type AudioTrack struct {
	// Name is the raw filename from the archive listing.
	Name string `json:"name"`

	// URL is the derived streaming URL for the file.
	URL string `json:"url"`

	Size int64 `json:"size"`

	// Format is the archive's freeform format label, like "VBR MP3" or
	// "24bit Flac". The upstream does not constrain it, so neither do
	// we.
	Format string `json:"format"`

	// Duration is in seconds; zero means the listing carried no
	// parseable length. Real tracks are never zero seconds long.
	Duration int `json:"duration,omitempty"`

	// TrackNumber is zero when the listing carried none.
	TrackNumber int `json:"trackNumber,omitempty"`

	// Title defaults to Name when the listing has no title field.
	Title string `json:"title,omitempty"`
}

// An ArchiveCandidate is one scored guess at which archived recording
// corresponds to a requested show.
type ArchiveCandidate struct {
	Identifier string   `json:"identifier"`
	Title      string   `json:"title,omitempty"`
	Year       int      `json:"year,omitempty"`
	Venue      string   `json:"venue,omitempty"`
	Coverage   string   `json:"coverage,omitempty"`
	Source     string   `json:"source,omitempty"`
	Formats    []string `json:"formats,omitempty"`

	// Score is additive; see resolver.scoreCandidate for the rubric.
	Score int `json:"score"`
}
