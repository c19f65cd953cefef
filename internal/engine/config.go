package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	GithubToken          string
	FetchTimeout         time.Duration
	MaxDocumentBytes     int // résumé upload ceiling, default 10 MB
	MinDocumentBytes     int // below this the file is likely corrupt, default 100
	MinTextChars         int // decoded text below this is rejected, default 50
	MaxRepoPages         int // GitHub repo listing pagination cap, default 5
	MaxContentChars      int // readable-text cap for snapshots
	SnapshotDBPath       string
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	HTTPClient           *http.Client
	Browser              *Browser // caller-owned rendered-HTML fetcher; nil disables portfolio/instagram scraping
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
// Zero-valued limits fall back to defaults so tests can Init(Config{}).
func Init(c Config) {
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.MaxDocumentBytes == 0 {
		c.MaxDocumentBytes = 10 << 20
	}
	if c.MinDocumentBytes == 0 {
		c.MinDocumentBytes = 100
	}
	if c.MinTextChars == 0 {
		c.MinTextChars = 50
	}
	if c.MaxRepoPages == 0 {
		c.MaxRepoPages = 5
	}
	if c.MaxContentChars == 0 {
		c.MaxContentChars = 6000
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	cfg = c
	Cfg = &cfg
}
