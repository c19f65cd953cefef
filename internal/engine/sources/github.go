package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/anatolykoptev/go_candidate/internal/engine"
)

// usernameRe is GitHub's username grammar: alphanumerics and inner
// hyphens, at most 39 characters, no leading or trailing hyphen.
var usernameRe = regexp.MustCompile(`^[a-zA-Z\d](?:[a-zA-Z\d-]{0,37}[a-zA-Z\d])?$`)

// ghUser mirrors the GitHub REST /users/:username response.
type ghUser struct {
	Login           string `json:"login"`
	Name            string `json:"name"`
	Bio             string `json:"bio"`
	Location        string `json:"location"`
	Company         string `json:"company"`
	Blog            string `json:"blog"`
	Email           string `json:"email"`
	TwitterUsername string `json:"twitter_username"`
	PublicRepos     int    `json:"public_repos"`
	PublicGists     int    `json:"public_gists"`
	Followers       int    `json:"followers"`
	Following       int    `json:"following"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
	AvatarURL       string `json:"avatar_url"`
	Hireable        bool   `json:"hireable"`
}

// ghRepo mirrors one entry of the /users/:username/repos response.
type ghRepo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	OpenIssues  int      `json:"open_issues_count"`
	Watchers    int      `json:"watchers_count"`
	HTMLURL     string   `json:"html_url"`
	Homepage    string   `json:"homepage"`
	Topics      []string `json:"topics"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	PushedAt    string   `json:"pushed_at"`
	Fork        bool     `json:"fork"`
	Archived    bool     `json:"archived"`
}

// ghEvent mirrors the slice of /users/:username/events/public we read.
type ghEvent struct {
	Type string `json:"type"`
	Repo struct {
		Name string `json:"name"`
	} `json:"repo"`
	Payload struct {
		Commits []json.RawMessage `json:"commits"`
	} `json:"payload"`
}

// FetchGitHubProfile fetches a public GitHub profile, its repository
// listing, and recent contribution activity. Results are cached for
// CacheTTL to stay inside unauthenticated rate limits.
func FetchGitHubProfile(ctx context.Context, username string) (*engine.GitHubRecord, error) {
	if !usernameRe.MatchString(username) {
		return nil, fmt.Errorf("%w: invalid github username %q", engine.ErrInvalidInput, username)
	}

	cacheKey := engine.CacheKey("github", username)
	if rec, ok := engine.CacheLoadJSON[*engine.GitHubRecord](ctx, cacheKey); ok {
		return rec, nil
	}

	engine.IncrGitHubFetches()

	userBody, err := githubGet(ctx, "https://api.github.com/users/"+username)
	if err != nil {
		return nil, err
	}
	rec, err := ParseGitHubUser(userBody)
	if err != nil {
		return nil, err
	}

	repos, err := fetchAllRepos(ctx, username)
	if err != nil {
		// Profile without repos is still useful.
		slog.Warn("github repos fetch failed",
			slog.String("username", username),
			slog.Any("error", err),
		)
		repos = nil
	}
	rec.Repositories = repos

	if contrib, err := fetchContributions(ctx, username); err == nil {
		rec.Contributions = contrib
	}

	engine.CacheStoreJSON(ctx, cacheKey, rec)
	return rec, nil
}

// ParseGitHubUser decodes a /users/:username response body.
func ParseGitHubUser(body []byte) (*engine.GitHubRecord, error) {
	var u ghUser
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("%w: github user: %v", engine.ErrDecode, err)
	}
	return &engine.GitHubRecord{
		Username:        u.Login,
		Name:            u.Name,
		Bio:             u.Bio,
		Location:        u.Location,
		Company:         u.Company,
		Blog:            u.Blog,
		Email:           u.Email,
		TwitterUsername: u.TwitterUsername,
		PublicRepos:     u.PublicRepos,
		PublicGists:     u.PublicGists,
		Followers:       u.Followers,
		Following:       u.Following,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
		AvatarURL:       u.AvatarURL,
		Hireable:        u.Hireable,
	}, nil
}

// ParseGitHubRepos decodes one page of a /users/:username/repos
// response body.
func ParseGitHubRepos(body []byte) ([]engine.GitHubRepo, error) {
	var page []ghRepo
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: github repos: %v", engine.ErrDecode, err)
	}
	repos := make([]engine.GitHubRepo, 0, len(page))
	for _, r := range page {
		repos = append(repos, engine.GitHubRepo{
			Name:        r.Name,
			Description: r.Description,
			Language:    r.Language,
			Stars:       r.Stars,
			Forks:       r.Forks,
			OpenIssues:  r.OpenIssues,
			Watchers:    r.Watchers,
			URL:         r.HTMLURL,
			Homepage:    r.Homepage,
			Topics:      r.Topics,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
			PushedAt:    r.PushedAt,
			IsFork:      r.Fork,
			Archived:    r.Archived,
		})
	}
	return repos, nil
}

// ParseGitHubEvents aggregates recent public activity into
// contribution counts.
func ParseGitHubEvents(body []byte) (*engine.GitHubContributions, error) {
	var events []ghEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("%w: github events: %v", engine.ErrDecode, err)
	}
	contrib := &engine.GitHubContributions{}
	seen := make(map[string]bool)
	for _, ev := range events {
		switch ev.Type {
		case "PushEvent":
			contrib.Commits += len(ev.Payload.Commits)
		case "PullRequestEvent":
			contrib.PullRequests++
		case "IssuesEvent":
			contrib.Issues++
		}
		if ev.Repo.Name != "" && !seen[ev.Repo.Name] {
			seen[ev.Repo.Name] = true
			contrib.RepositoriesContributedTo = append(contrib.RepositoriesContributedTo, ev.Repo.Name)
		}
	}
	return contrib, nil
}

// fetchAllRepos pages through the repository listing, 100 per page,
// capped at Cfg.MaxRepoPages.
func fetchAllRepos(ctx context.Context, username string) ([]engine.GitHubRepo, error) {
	var repos []engine.GitHubRepo
	for page := 1; page <= engine.Cfg.MaxRepoPages; page++ {
		u := fmt.Sprintf("https://api.github.com/users/%s/repos?per_page=100&page=%d&sort=updated", username, page)
		body, err := githubGet(ctx, u)
		if err != nil {
			return repos, err
		}
		batch, err := ParseGitHubRepos(body)
		if err != nil {
			return repos, err
		}
		repos = append(repos, batch...)
		if len(batch) < 100 {
			break
		}
	}
	return repos, nil
}

func fetchContributions(ctx context.Context, username string) (*engine.GitHubContributions, error) {
	body, err := githubGet(ctx, fmt.Sprintf("https://api.github.com/users/%s/events/public?per_page=100", username))
	if err != nil {
		return nil, err
	}
	return ParseGitHubEvents(body)
}

// githubGet performs one authenticated GitHub REST call with retry and
// maps the status codes callers care about.
func githubGet(ctx context.Context, apiURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, engine.Cfg.FetchTimeout)
	defer cancel()

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/vnd.github.v3+json")
		req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
		req.Header.Set("User-Agent", engine.UserAgentBot)
		if engine.Cfg.GithubToken != "" {
			req.Header.Set("Authorization", "Bearer "+engine.Cfg.GithubToken)
		}
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("github: %s: %w", apiURL, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: github resource not found: %s", engine.ErrInvalidInput, apiURL)
	case http.StatusForbidden:
		reset := resp.Header.Get("X-RateLimit-Reset")
		return nil, fmt.Errorf("github: rate limited (reset %s)", reset)
	default:
		return nil, fmt.Errorf("github: status %d for %s", resp.StatusCode, apiURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("github: read body: %w", err)
	}
	return body, nil
}
