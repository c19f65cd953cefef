package candidateserver

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/anatolykoptev/go_candidate/internal/engine"
)

// Config holds server-level settings.
type Config struct {
	APIKey string // empty disables authentication
}

// NewRouter builds the HTTP API.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", handleHealth)
	r.Get("/metrics", handleMetrics)

	r.Group(func(r chi.Router) {
		if cfg.APIKey != "" {
			r.Use(requireAPIKey(cfg.APIKey))
		}
		r.Post("/collect-candidate-data", handleCollect)
		r.Get("/scrape-portfolio", handleScrapePortfolio)
		r.Get("/github-profile/{username}", handleGitHubProfile)
		r.Get("/instagram-profile/{username}", handleInstagramProfile)
		r.Post("/parse-resume", handleParseResume)
		r.Post("/cross-reference", handleCrossReference)
		r.Get("/snapshots", handleListSnapshots)
		r.Get("/snapshots/{id}", handleGetSnapshot)
	})

	return r
}

// requireAPIKey rejects requests without the expected X-API-Key header.
func requireAPIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				writeError(w, http.StatusUnauthorized, errors.New("missing or invalid API key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", slog.Any("error", err))
	}
}

// writeError maps engine error kinds onto HTTP status codes when the
// caller passes 0 for status.
func writeError(w http.ResponseWriter, status int, err error) {
	if status == 0 {
		switch {
		case errors.Is(err, engine.ErrUnsupportedFormat):
			status = http.StatusUnsupportedMediaType
		case errors.Is(err, engine.ErrInvalidInput):
			status = http.StatusBadRequest
		case errors.Is(err, engine.ErrDecode),
			errors.Is(err, engine.ErrInsufficientContent),
			errors.Is(err, engine.ErrNoMeaningfulData):
			status = http.StatusUnprocessableEntity
		default:
			status = http.StatusInternalServerError
		}
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
