// go_candidate is a candidate public-footprint aggregation service.
//
// Collects and reconciles a candidate's public presence: portfolio
// site scraping, GitHub profile, Instagram profile, and résumé
// parsing, exposed over an HTTP API. See internal/engine/ for the
// extraction and reconciliation layer.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/joho/godotenv"

	"github.com/anatolykoptev/go_candidate/internal/candidateserver"
	"github.com/anatolykoptev/go_candidate/internal/engine"
)

var (
	version  = "dev"
	httpPort = env.Str("HTTP_PORT", "8892")
)

func main() {
	_ = godotenv.Load()

	browser := initEngine()
	if browser != nil {
		defer browser.Close()
	}

	slog.Info("starting go_candidate",
		slog.String("version", version),
		slog.String("port", httpPort),
	)

	router := candidateserver.NewRouter(candidateserver.Config{
		APIKey: env.Str("API_KEY", ""),
	})

	server := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func initEngine() *engine.Browser {
	c := engine.Config{
		GithubToken:          env.Str("GITHUB_TOKEN", ""),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 10*time.Second),
		MaxDocumentBytes:     env.Int("MAX_DOCUMENT_BYTES", 10<<20),
		MinDocumentBytes:     env.Int("MIN_DOCUMENT_BYTES", 100),
		MinTextChars:         env.Int("MIN_TEXT_CHARS", 50),
		MaxRepoPages:         env.Int("MAX_REPO_PAGES", 5),
		MaxContentChars:      env.Int("MAX_CONTENT_CHARS", 6000),
		SnapshotDBPath:       env.Str("SNAPSHOT_DB_PATH", ""),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	var browser *engine.Browser
	if env.Str("DISABLE_BROWSER", "") == "" {
		b, err := engine.NewBrowser()
		if err != nil {
			slog.Warn("headless browser init failed, rendered fetches disabled", slog.Any("error", err))
		} else {
			c.Browser = b
			browser = b
			slog.Info("headless browser initialized")
		}
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)

	return browser
}
