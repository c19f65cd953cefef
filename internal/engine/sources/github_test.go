package sources

import (
	"testing"
)

const sampleGitHubUserJSON = `{
	"login": "janedoe",
	"name": "Jane Doe",
	"bio": "Backend engineer. Distributed systems.",
	"location": "Lisbon, Portugal",
	"company": "@acme",
	"blog": "https://janedoe.dev",
	"email": "jane@example.com",
	"twitter_username": "janedoe",
	"public_repos": 42,
	"public_gists": 7,
	"followers": 310,
	"following": 58,
	"created_at": "2014-03-01T10:00:00Z",
	"updated_at": "2026-08-01T10:00:00Z",
	"avatar_url": "https://avatars.githubusercontent.com/u/1?v=4",
	"hireable": true
}`

const sampleGitHubReposJSON = `[
	{
		"name": "task-manager",
		"description": "Collaborative task tracker",
		"language": "Go",
		"stargazers_count": 120,
		"forks_count": 14,
		"open_issues_count": 3,
		"watchers_count": 120,
		"html_url": "https://github.com/janedoe/task-manager",
		"homepage": "https://tasks.janedoe.dev",
		"topics": ["go", "productivity"],
		"created_at": "2021-01-01T00:00:00Z",
		"updated_at": "2026-07-15T00:00:00Z",
		"pushed_at": "2026-07-15T00:00:00Z",
		"fork": false,
		"archived": false
	},
	{
		"name": "dotfiles",
		"description": null,
		"language": null,
		"stargazers_count": 2,
		"forks_count": 0,
		"open_issues_count": 0,
		"watchers_count": 2,
		"html_url": "https://github.com/janedoe/dotfiles",
		"fork": true,
		"archived": false
	}
]`

const sampleGitHubEventsJSON = `[
	{"type": "PushEvent", "repo": {"name": "janedoe/task-manager"}, "payload": {"commits": [{}, {}, {}]}},
	{"type": "PushEvent", "repo": {"name": "janedoe/task-manager"}, "payload": {"commits": [{}]}},
	{"type": "PullRequestEvent", "repo": {"name": "acme/platform"}, "payload": {}},
	{"type": "IssuesEvent", "repo": {"name": "acme/platform"}, "payload": {}},
	{"type": "WatchEvent", "repo": {"name": "golang/go"}, "payload": {}}
]`

func TestParseGitHubUser(t *testing.T) {
	rec, err := ParseGitHubUser([]byte(sampleGitHubUserJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Username != "janedoe" {
		t.Errorf("username = %q", rec.Username)
	}
	if rec.Name != "Jane Doe" {
		t.Errorf("name = %q", rec.Name)
	}
	if rec.Blog != "https://janedoe.dev" {
		t.Errorf("blog = %q", rec.Blog)
	}
	if rec.PublicRepos != 42 || rec.Followers != 310 {
		t.Errorf("counts = %d repos, %d followers", rec.PublicRepos, rec.Followers)
	}
	if !rec.Hireable {
		t.Error("hireable lost")
	}
}

func TestParseGitHubUserMalformed(t *testing.T) {
	if _, err := ParseGitHubUser([]byte("<html>rate limited</html>")); err == nil {
		t.Error("expected decode error")
	}
}

func TestParseGitHubRepos(t *testing.T) {
	repos, err := ParseGitHubRepos([]byte(sampleGitHubReposJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("repos = %+v", repos)
	}

	tm := repos[0]
	if tm.Name != "task-manager" || tm.Language != "Go" || tm.Stars != 120 {
		t.Errorf("task-manager = %+v", tm)
	}
	if tm.URL != "https://github.com/janedoe/task-manager" {
		t.Errorf("url = %q", tm.URL)
	}
	if len(tm.Topics) != 2 {
		t.Errorf("topics = %v", tm.Topics)
	}

	// null description/language decode to zero values, fork flag kept.
	df := repos[1]
	if df.Description != "" || df.Language != "" {
		t.Errorf("dotfiles nulls = %+v", df)
	}
	if !df.IsFork {
		t.Error("fork flag lost")
	}
}

func TestParseGitHubEvents(t *testing.T) {
	contrib, err := ParseGitHubEvents([]byte(sampleGitHubEventsJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contrib.Commits != 4 {
		t.Errorf("commits = %d, want 4", contrib.Commits)
	}
	if contrib.PullRequests != 1 {
		t.Errorf("pull requests = %d, want 1", contrib.PullRequests)
	}
	if contrib.Issues != 1 {
		t.Errorf("issues = %d, want 1", contrib.Issues)
	}
	if len(contrib.RepositoriesContributedTo) != 3 {
		t.Errorf("repos contributed to = %v", contrib.RepositoriesContributedTo)
	}
}

func TestUsernameValidation(t *testing.T) {
	valid := []string{"janedoe", "jane-doe", "a", "j4ne", "Jane-Doe-99"}
	for _, u := range valid {
		if !usernameRe.MatchString(u) {
			t.Errorf("%q should be valid", u)
		}
	}
	invalid := []string{"", "-jane", "jane-", "jane doe", "jane_doe", "a/b"}
	for _, u := range invalid {
		if usernameRe.MatchString(u) {
			t.Errorf("%q should be invalid", u)
		}
	}
}
