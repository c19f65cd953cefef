package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_candidate/internal/engine"
)

// ScrapePortfolio fetches a portfolio page and structures it. The
// headless browser is used when configured, since most portfolio sites
// render client-side; otherwise a plain GET is attempted.
func ScrapePortfolio(ctx context.Context, pageURL string) (*engine.PortfolioRecord, error) {
	pageURL = strings.TrimSpace(pageURL)
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid portfolio url %q", engine.ErrInvalidInput, pageURL)
	}

	cacheKey := engine.CacheKey("portfolio", pageURL)
	if rec, ok := engine.CacheLoadJSON[*engine.PortfolioRecord](ctx, cacheKey); ok {
		return rec, nil
	}

	engine.IncrPortfolioScrapes()

	var html string
	if engine.Cfg.Browser != nil {
		html, err = engine.Cfg.Browser.FetchRenderedHTML(ctx, pageURL)
	} else {
		html, err = engine.FetchStaticHTML(ctx, pageURL)
	}
	if err != nil {
		return nil, err
	}

	rec := engine.ParsePortfolio(html, pageURL)
	rec.PageText = engine.ReadableText(html)
	engine.CacheStoreJSON(ctx, cacheKey, rec)
	return rec, nil
}
