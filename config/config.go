// Package config loads setstats configuration from a TOML file,
// falling back to built-in defaults when no file exists.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Act identifies the act across the setlist and archive services.
type Act struct {
	MBID       string `toml:"mbid"`
	WebSlug    string `toml:"web_slug"`
	Shortcode  string `toml:"shortcode"`
	Collection string `toml:"collection"`
}

// SetlistFM configures the setlist source and its pacing.
type SetlistFM struct {
	APIKey    string   `toml:"api_key"`
	Years     []int    `toml:"years"`
	MaxPages  int      `toml:"max_pages"`
	PageDelay Duration `toml:"page_delay"`
	YearDelay Duration `toml:"year_delay"`
	Cooldown  Duration `toml:"cooldown"`
}

// Archive configures the archive.org client and track matching.
type Archive struct {
	CacheDir     string  `toml:"cache_dir"`
	OverlapRatio float64 `toml:"overlap_ratio"`
}

// Index configures where the built index is stored and when it goes
// stale.
type Index struct {
	DBPath     string `toml:"db_path"`
	FilePath   string `toml:"file_path"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string   `toml:"addr"`
	RebuildCheck Duration `toml:"rebuild_check"`
}

type Config struct {
	Act       Act       `toml:"act"`
	SetlistFM SetlistFM `toml:"setlistfm"`
	Archive   Archive   `toml:"archive"`
	Index     Index     `toml:"index"`
	Server    Server    `toml:"server"`
}

// Duration wraps time.Duration so TOML values can be written as "2s".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("bad duration '%s': %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Duration() time.Duration { return time.Duration(d) }

// Default returns the built-in configuration: the Grateful Dead, 1977,
// gentle pacing.
func Default() Config {
	return Config{
		Act: Act{
			MBID:       "6faa7ca7-0d99-4a5e-bfa6-1fd5037520c6",
			WebSlug:    "grateful-dead-bd6ad1a.html",
			Shortcode:  "gd",
			Collection: "GratefulDead",
		},
		SetlistFM: SetlistFM{
			Years:     []int{1977},
			MaxPages:  2,
			PageDelay: Duration(2 * time.Second),
			YearDelay: Duration(5 * time.Second),
			Cooldown:  Duration(10 * time.Second),
		},
		Index: Index{
			MaxAgeDays: 7,
		},
		Server: Server{
			Addr:         ":8080",
			RebuildCheck: Duration(time.Hour),
		},
	}
}

// DefaultConfigPath returns where Load looks when no path is given.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "setstats.toml"
	}
	return filepath.Join(home, ".config", "setstats", "config.toml")
}

// Load parses the config file at path, or at DefaultConfigPath when
// path is empty. A missing file is not an error: the defaults are used
// as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath()
	}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg.applyEnv()
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error opening config at '%s': %w", path, err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config at '%s': %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets the environment supply the setlist.fm key so it can
// stay out of the config file.
func (cfg *Config) applyEnv() {
	if cfg.SetlistFM.APIKey == "" {
		cfg.SetlistFM.APIKey = os.Getenv("SETLIST_FM_API_KEY")
	}
}

// CacheDir returns the configured cache directory, defaulting to
// ~/.cache/setstats.
func (cfg Config) CacheDir() string {
	if cfg.Archive.CacheDir != "" {
		return cfg.Archive.CacheDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".setstats-cache"
	}
	return filepath.Join(home, ".cache", "setstats")
}

// IndexFilePath returns where the JSON index store lives when no sqlite
// path is configured.
func (cfg Config) IndexFilePath() string {
	if cfg.Index.FilePath != "" {
		return cfg.Index.FilePath
	}
	return filepath.Join(cfg.CacheDir(), "index.json")
}

// MaxAge converts the configured staleness threshold to a duration.
func (cfg Config) MaxAge() time.Duration {
	days := cfg.Index.MaxAgeDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		return fmt.Errorf("error writing sample config: %w", err)
	}
	return nil
}
