package sources

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_candidate/internal/engine"
)

// CollectInput names the candidate and the places to look. Any subset
// of the source fields may be set; the résumé, when present, seeds the
// sources the caller left blank.
type CollectInput struct {
	CandidateName     string `json:"candidate_name"`
	PortfolioURL      string `json:"portfolio_url,omitempty"`
	GitHubUsername    string `json:"github_username,omitempty"`
	InstagramUsername string `json:"instagram_username,omitempty"`

	// Résumé document, optional.
	ResumeContent  []byte `json:"-"`
	ResumeFilename string `json:"resume_filename,omitempty"`
}

// CandidateData aggregates per-source records with per-source errors.
// A failed source leaves its record nil and its error message in
// Errors; the collection as a whole fails only when every requested
// source failed.
type CandidateData struct {
	CandidateName  string                       `json:"candidate_name"`
	Portfolio      *engine.PortfolioRecord      `json:"portfolio,omitempty"`
	GitHub         *engine.GitHubRecord         `json:"github,omitempty"`
	Instagram      *engine.InstagramRecord      `json:"instagram,omitempty"`
	Resume         *engine.ResumeRecord         `json:"resume,omitempty"`
	Reconciliation *engine.ReconciliationReport `json:"cross_reference,omitempty"`
	SnapshotID     string                       `json:"snapshot_id,omitempty"`
	Errors         map[string]string            `json:"errors,omitempty"`
}

// Collect gathers every requested source for one candidate. The résumé
// is parsed first so its extracted links can seed sources the caller
// did not name; the network sources then run concurrently.
func Collect(ctx context.Context, input CollectInput) (*CandidateData, error) {
	if strings.TrimSpace(input.CandidateName) == "" {
		return nil, fmt.Errorf("%w: candidate name is required", engine.ErrInvalidInput)
	}

	data := &CandidateData{
		CandidateName: input.CandidateName,
		Errors:        make(map[string]string),
	}

	requested := 0

	// Résumé first: its links seed the other sources.
	if len(input.ResumeContent) > 0 {
		requested++
		rec, err := engine.ParseResume(input.ResumeContent, input.ResumeFilename)
		if err != nil {
			engine.IncrResumeErrors()
			data.Errors["resume"] = err.Error()
			slog.Warn("resume parse failed", slog.Any("error", err))
		} else {
			engine.IncrResumeParses()
			data.Resume = rec
			if input.PortfolioURL == "" {
				input.PortfolioURL = rec.PortfolioURL
			}
			if input.GitHubUsername == "" {
				input.GitHubUsername = engine.GitHubUsernameFromURL(rec.GitHubURL)
			}
			if input.InstagramUsername == "" {
				input.InstagramUsername = rec.InstagramUsername
			}
		}
	}

	type sourceResult struct {
		name  string
		apply func()
		err   error
	}
	var channels []chan sourceResult
	launch := func(name string, fn func() (func(), error)) {
		requested++
		ch := make(chan sourceResult, 1)
		channels = append(channels, ch)
		go func() {
			apply, err := fn()
			ch <- sourceResult{name: name, apply: apply, err: err}
		}()
	}

	if input.PortfolioURL != "" {
		launch("portfolio", func() (func(), error) {
			rec, err := ScrapePortfolio(ctx, input.PortfolioURL)
			return func() { data.Portfolio = rec }, err
		})
	}
	if input.GitHubUsername != "" {
		launch("github", func() (func(), error) {
			rec, err := FetchGitHubProfile(ctx, input.GitHubUsername)
			return func() { data.GitHub = rec }, err
		})
	}
	if input.InstagramUsername != "" {
		launch("instagram", func() (func(), error) {
			rec, err := FetchInstagramProfile(ctx, input.InstagramUsername)
			return func() { data.Instagram = rec }, err
		})
	}

	for _, ch := range channels {
		res := <-ch
		if res.err != nil {
			data.Errors[res.name] = res.err.Error()
			slog.Warn("source failed", slog.String("source", res.name), slog.Any("error", res.err))
			continue
		}
		res.apply()
	}

	if requested == 0 {
		return nil, fmt.Errorf("%w: no sources provided", engine.ErrInvalidInput)
	}
	if len(data.Errors) == requested {
		return nil, fmt.Errorf("all %d sources failed for %s", requested, input.CandidateName)
	}

	if data.Portfolio != nil || data.GitHub != nil || data.Resume != nil {
		engine.IncrReconciliations()
		data.Reconciliation = engine.CrossReference(data.Portfolio, data.GitHub, data.Resume)
	}

	var collected []string
	for _, s := range []struct {
		name string
		ok   bool
	}{
		{"portfolio", data.Portfolio != nil},
		{"github", data.GitHub != nil},
		{"instagram", data.Instagram != nil},
		{"resume", data.Resume != nil},
	} {
		if s.ok {
			collected = append(collected, s.name)
		}
	}
	id, err := engine.SaveSnapshot(input.CandidateName, strings.Join(collected, ","), data)
	if err != nil {
		slog.Warn("snapshot save failed", slog.Any("error", err))
	} else {
		data.SnapshotID = id
	}

	if len(data.Errors) == 0 {
		data.Errors = nil
	}
	return data, nil
}
