package candidateserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anatolykoptev/go_candidate/internal/engine"
	"github.com/anatolykoptev/go_candidate/internal/engine/sources"
)

// maxResumeUpload bounds the multipart memory buffer; the engine
// enforces its own document size limits after this.
const maxResumeUpload = 16 << 20

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(engine.FormatMetrics()))
}

// handleCollect runs a full collection. Accepts multipart form data so
// a résumé file can ride along with the source fields.
func handleCollect(w http.ResponseWriter, r *http.Request) {
	input, err := collectInputFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	data, err := sources.Collect(r.Context(), input)
	if err != nil {
		writeError(w, 0, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func collectInputFromRequest(r *http.Request) (sources.CollectInput, error) {
	var input sources.CollectInput

	if err := r.ParseMultipartForm(maxResumeUpload); err == nil {
		input.CandidateName = r.FormValue("candidate_name")
		input.PortfolioURL = r.FormValue("portfolio_url")
		input.GitHubUsername = r.FormValue("github_username")
		input.InstagramUsername = r.FormValue("instagram_username")

		file, header, err := r.FormFile("resume")
		if err == nil {
			defer file.Close()
			content, err := io.ReadAll(io.LimitReader(file, maxResumeUpload))
			if err != nil {
				return input, err
			}
			input.ResumeContent = content
			input.ResumeFilename = header.Filename
		}
		return input, nil
	}

	// JSON body for resume-less collections.
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return input, errors.New("expected multipart form or JSON body")
	}
	return input, nil
}

func handleScrapePortfolio(w http.ResponseWriter, r *http.Request) {
	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		writeError(w, http.StatusBadRequest, errors.New("url query parameter is required"))
		return
	}
	rec, err := sources.ScrapePortfolio(r.Context(), pageURL)
	if err != nil {
		writeError(w, 0, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func handleGitHubProfile(w http.ResponseWriter, r *http.Request) {
	rec, err := sources.FetchGitHubProfile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, 0, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func handleInstagramProfile(w http.ResponseWriter, r *http.Request) {
	rec, err := sources.FetchInstagramProfile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, 0, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func handleParseResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxResumeUpload); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("expected multipart form with a resume file"))
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("resume file is required"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxResumeUpload))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	rec, err := engine.ParseResume(content, header.Filename)
	if err != nil {
		engine.IncrResumeErrors()
		writeError(w, 0, err)
		return
	}
	engine.IncrResumeParses()
	writeJSON(w, http.StatusOK, rec)
}

// crossReferenceRequest carries already-collected records for a
// standalone reconciliation.
type crossReferenceRequest struct {
	Portfolio *engine.PortfolioRecord `json:"portfolio,omitempty"`
	GitHub    *engine.GitHubRecord    `json:"github,omitempty"`
	Resume    *engine.ResumeRecord    `json:"resume,omitempty"`
}

func handleCrossReference(w http.ResponseWriter, r *http.Request) {
	var req crossReferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}
	if req.Portfolio == nil && req.GitHub == nil && req.Resume == nil {
		writeError(w, http.StatusBadRequest, errors.New("at least one record is required"))
		return
	}
	engine.IncrReconciliations()
	writeJSON(w, http.StatusOK, engine.CrossReference(req.Portfolio, req.GitHub, req.Resume))
}

func handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := engine.ListSnapshots(r.URL.Query().Get("candidate"), 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"snapshots": snaps, "total": len(snaps)})
}

func handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := engine.GetSnapshot(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
