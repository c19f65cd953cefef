package sources

import (
	"errors"
	"testing"

	"github.com/anatolykoptev/go_candidate/internal/engine"
)

const sampleInstagramHTML = `<!DOCTYPE html>
<html>
<head>
	<meta property="og:description" content="1,234 Followers, 56 Following, 78 Posts - See Instagram photos and videos from Jane Doe (@jane.codes)">
	<script type="application/json">{"biography":"Backend engineer • coffee person","edge_followed_by":{"count":1234}}</script>
</head>
<body></body>
</html>`

func TestParseInstagramProfilePage(t *testing.T) {
	rec, err := ParseInstagramProfilePage("jane.codes", sampleInstagramHTML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Username != "jane.codes" {
		t.Errorf("username = %q", rec.Username)
	}
	if rec.Followers != 1234 {
		t.Errorf("followers = %d, want 1234", rec.Followers)
	}
	if rec.PostsCount != 78 {
		t.Errorf("posts = %d, want 78", rec.PostsCount)
	}
	if rec.Bio == "" {
		t.Error("bio empty")
	}
	if rec.Timestamp == "" {
		t.Error("timestamp empty")
	}
}

func TestParseInstagramProfilePageAbbreviatedCounts(t *testing.T) {
	html := `<meta content="1.2k Followers, 10 Following, 3 Posts">`
	rec, err := ParseInstagramProfilePage("someone", html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Followers != 1200 {
		t.Errorf("followers = %d, want 1200", rec.Followers)
	}
	if rec.PostsCount != 3 {
		t.Errorf("posts = %d, want 3", rec.PostsCount)
	}
}

func TestParseInstagramProfilePageEmbeddedJSONFallback(t *testing.T) {
	html := `<script>{"edge_followed_by":{"count":4521},"edge_owner_to_timeline_media":{"count":97}}</script>`
	rec, err := ParseInstagramProfilePage("someone", html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Followers != 4521 {
		t.Errorf("followers = %d, want 4521", rec.Followers)
	}
	if rec.PostsCount != 97 {
		t.Errorf("posts = %d, want 97", rec.PostsCount)
	}
}

func TestParseInstagramProfilePageLoginWall(t *testing.T) {
	html := `<html><body><h1>Log in to Instagram</h1></body></html>`
	_, err := ParseInstagramProfilePage("someone", html)
	if !errors.Is(err, engine.ErrNoMeaningfulData) {
		t.Errorf("expected ErrNoMeaningfulData, got %v", err)
	}
}

func TestParseAbbrevCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1,234", 1234, true},
		{"1.2k", 1200, true},
		{"3.4m", 3400000, true},
		{"12", 12, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseAbbrevCount(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseAbbrevCount(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
