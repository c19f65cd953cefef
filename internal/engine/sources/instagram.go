package sources

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go_candidate/internal/engine"
)

// handleRe is Instagram's handle grammar: letters, digits, dots and
// underscores, at most 30 characters.
var handleRe = regexp.MustCompile(`^[a-zA-Z0-9._]{1,30}$`)

// Instagram serves profile stats both in the og:description meta tag
// ("1,234 Followers, 56 Following, 78 Posts - ...") and in embedded
// JSON. The meta tag variant survives markup changes best, so it is
// tried first.
var (
	followerRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)([\d.,]+[kmb]?)\s*Followers`),
		regexp.MustCompile(`"edge_followed_by"\s*:\s*\{\s*"count"\s*:\s*(\d+)`),
	}
	postsRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)([\d.,]+[kmb]?)\s*Posts`),
		regexp.MustCompile(`"edge_owner_to_timeline_media"\s*:\s*\{\s*"count"\s*:\s*(\d+)`),
	}
	biographyRe = regexp.MustCompile(`"biography"\s*:\s*"((?:\\.|[^"\\])*)"`)
	loginWallRe = regexp.MustCompile(`(?i)(log in to instagram|page isn't available|content isn't available)`)
)

// FetchInstagramProfile scrapes the public slice of an Instagram
// profile through the headless browser. Requires a configured Browser.
func FetchInstagramProfile(ctx context.Context, username string) (*engine.InstagramRecord, error) {
	username = strings.TrimPrefix(username, "@")
	if !handleRe.MatchString(username) {
		return nil, fmt.Errorf("%w: invalid instagram username %q", engine.ErrInvalidInput, username)
	}

	cacheKey := engine.CacheKey("instagram", username)
	if rec, ok := engine.CacheLoadJSON[*engine.InstagramRecord](ctx, cacheKey); ok {
		return rec, nil
	}

	if engine.Cfg.Browser == nil {
		return nil, fmt.Errorf("instagram: no browser configured")
	}

	engine.IncrInstagramScrapes()

	html, err := engine.Cfg.Browser.FetchRenderedHTML(ctx, "https://www.instagram.com/"+username+"/")
	if err != nil {
		return nil, err
	}

	rec, err := ParseInstagramProfilePage(username, html)
	if err != nil {
		return nil, err
	}
	engine.CacheStoreJSON(ctx, cacheKey, rec)
	return rec, nil
}

// ParseInstagramProfilePage extracts profile stats from rendered page
// HTML. Fails with ErrNoMeaningfulData when the page carries no stats
// at all, which usually means a login wall or a missing profile.
func ParseInstagramProfilePage(username, html string) (*engine.InstagramRecord, error) {
	rec := &engine.InstagramRecord{
		Username:   username,
		Followers:  matchCount(html, followerRes),
		PostsCount: matchCount(html, postsRes),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	if m := biographyRe.FindStringSubmatch(html); m != nil {
		if bio, err := strconv.Unquote(`"` + m[1] + `"`); err == nil {
			rec.Bio = engine.CleanText(bio)
		}
	}

	if rec.Bio == "" && rec.Followers == 0 && rec.PostsCount == 0 {
		if loginWallRe.MatchString(html) {
			return nil, fmt.Errorf("%w: instagram profile %q behind login wall or missing", engine.ErrNoMeaningfulData, username)
		}
		return nil, fmt.Errorf("%w: no profile stats for %q", engine.ErrNoMeaningfulData, username)
	}
	return rec, nil
}

// matchCount runs the regex table in order and parses the first hit.
func matchCount(html string, res []*regexp.Regexp) int {
	for _, re := range res {
		if m := re.FindStringSubmatch(html); m != nil {
			if n, ok := parseAbbrevCount(m[1]); ok {
				return n
			}
		}
	}
	return 0
}

// parseAbbrevCount parses counts like "1,234", "1.2k", or "3.4m".
func parseAbbrevCount(s string) (int, bool) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	mult := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		mult, s = 1e3, strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		mult, s = 1e6, strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "b"):
		mult, s = 1e9, strings.TrimSuffix(s, "b")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f * mult), true
}
