package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"
)

// UserAgentBot identifies API requests made on our own behalf.
const UserAgentBot = "go-candidate-bot/1.0"

// Browser fetches fully rendered page HTML through headless Chrome.
// Portfolio sites and Instagram render their content client-side, so a
// plain GET returns an empty shell. The zero value is not usable; use
// NewBrowser and Close it when done.
type Browser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	limiter     *rate.Limiter
	settle      time.Duration
}

// NewBrowser starts a shared Chrome allocator. Each fetch gets its own
// tab; the limiter keeps concurrent callers from hammering target
// sites.
func NewBrowser() (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Browser{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		limiter:     rate.NewLimiter(rate.Every(time.Second), 2),
		settle:      2 * time.Second,
	}, nil
}

// Close shuts the allocator down. In-flight fetches fail.
func (b *Browser) Close() {
	b.allocCancel()
}

// FetchRenderedHTML navigates to rawURL in a fresh tab and returns the
// rendered document's outer HTML after client-side scripts settle.
func (b *Browser) FetchRenderedHTML(ctx context.Context, rawURL string) (string, error) {
	IncrFetchRequests()

	if err := b.limiter.Wait(ctx); err != nil {
		return "", err
	}

	tabCtx, cancel := chromedp.NewContext(b.allocCtx)
	defer cancel()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, cfg.FetchTimeout+b.settle)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(b.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		IncrFetchErrors()
		return "", fmt.Errorf("rendered fetch %s: %w", rawURL, err)
	}
	slog.Debug("fetched rendered page", slog.String("url", rawURL), slog.Int("bytes", len(html)))
	return html, nil
}

// FetchStaticHTML fetches page HTML over plain HTTP with retry. Used
// when a headless browser is unavailable or a site serves complete
// markup without scripts.
func FetchStaticHTML(ctx context.Context, rawURL string) (string, error) {
	IncrFetchRequests()

	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		return cfg.HTTPClient.Do(req)
	})
	if err != nil {
		IncrFetchErrors()
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		IncrFetchErrors()
		return "", fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(cfg.MaxDocumentBytes)))
	if err != nil {
		IncrFetchErrors()
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	return string(body), nil
}

// ReadableText converts page HTML to markdown-ish plain text for
// snapshot storage, capped at MaxContentChars.
func ReadableText(html string) string {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		md = html
	}
	text := strings.TrimSpace(md)
	if len(text) > cfg.MaxContentChars {
		text = text[:cfg.MaxContentChars] + "..."
	}
	return text
}
