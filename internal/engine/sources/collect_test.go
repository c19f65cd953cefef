package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/anatolykoptev/go_candidate/internal/engine"
)

func TestCollectRequiresName(t *testing.T) {
	_, err := Collect(context.Background(), CollectInput{PortfolioURL: "https://janedoe.dev"})
	if !errors.Is(err, engine.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCollectRequiresSources(t *testing.T) {
	_, err := Collect(context.Background(), CollectInput{CandidateName: "Jane Doe"})
	if !errors.Is(err, engine.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScrapePortfolioRejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "not-a-url", "ftp://example.com", "javascript:alert(1)"} {
		if _, err := ScrapePortfolio(context.Background(), u); !errors.Is(err, engine.ErrInvalidInput) {
			t.Errorf("%q: expected ErrInvalidInput, got %v", u, err)
		}
	}
}

func TestFetchGitHubProfileRejectsBadUsername(t *testing.T) {
	for _, u := range []string{"", "-lead", "has space", "slash/name"} {
		if _, err := FetchGitHubProfile(context.Background(), u); !errors.Is(err, engine.ErrInvalidInput) {
			t.Errorf("%q: expected ErrInvalidInput, got %v", u, err)
		}
	}
}

func TestFetchInstagramProfileRejectsBadHandle(t *testing.T) {
	for _, u := range []string{"", "way-too!wrong", "has space"} {
		if _, err := FetchInstagramProfile(context.Background(), u); !errors.Is(err, engine.ErrInvalidInput) {
			t.Errorf("%q: expected ErrInvalidInput, got %v", u, err)
		}
	}
}
