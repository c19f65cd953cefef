package engine

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const sampleResumeText = `Jane Doe
jane.doe@example.com
Phone: (415) 555-2671
github.com/janedoe
Portfolio: https://janedoe.dev
Instagram: @jane.codes

SKILLS
Python, Go, Rust, Docker, Kubernetes, PostgreSQL

EXPERIENCE
Senior Backend Engineer at ACME Corp
2021 - Present
- Led migration to event-driven architecture
- Reduced p99 latency by 40%

Software Developer at Initech
2018 - 2021
- Built internal billing tools

EDUCATION
Bachelor of Science in Computer Science
University of Lisbon
2014 - 2018
GPA: 3.8/4.0

CERTIFICATIONS
AWS Certified Solutions Architect

PROJECTS
Task Manager App
- A collaborative task tracker built with Go and PostgreSQL`

func TestParseResumeText(t *testing.T) {
	rec, err := ParseResumeText(sampleResumeText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Email != "jane.doe@example.com" {
		t.Errorf("email = %q", rec.Email)
	}
	if !strings.Contains(rec.Phone, "4155552671") {
		t.Errorf("phone = %q", rec.Phone)
	}
	if rec.GitHubURL != "https://github.com/janedoe" {
		t.Errorf("github_url = %q", rec.GitHubURL)
	}
	if rec.PortfolioURL != "https://janedoe.dev" {
		t.Errorf("portfolio_url = %q", rec.PortfolioURL)
	}
	if rec.InstagramUsername != "jane.codes" {
		t.Errorf("instagram_username = %q", rec.InstagramUsername)
	}

	for _, want := range []string{"Go", "Python", "Docker", "PostgreSQL"} {
		found := false
		for _, s := range rec.Skills {
			if s == want {
				found = true
			}
		}
		if !found {
			t.Errorf("skills missing %q: %v", want, rec.Skills)
		}
	}

	if len(rec.Experience) != 2 {
		t.Fatalf("experience = %+v", rec.Experience)
	}
	exp := rec.Experience[0]
	if exp.Title != "Senior Backend Engineer" {
		t.Errorf("exp title = %q", exp.Title)
	}
	if exp.Company != "ACME Corp" {
		t.Errorf("exp company = %q", exp.Company)
	}
	if exp.Duration != "2021 - Present" {
		t.Errorf("exp duration = %q", exp.Duration)
	}
	if len(exp.Description) != 2 {
		t.Errorf("exp description = %v", exp.Description)
	}

	if len(rec.Education) != 1 {
		t.Fatalf("education = %+v", rec.Education)
	}
	edu := rec.Education[0]
	if !strings.Contains(edu.Degree, "Bachelor of Science") {
		t.Errorf("degree = %q", edu.Degree)
	}
	if edu.Institution != "University of Lisbon" {
		t.Errorf("institution = %q", edu.Institution)
	}
	if edu.Year != "2014 - 2018" {
		t.Errorf("year = %q", edu.Year)
	}
	if edu.GPA != "3.8/4.0" {
		t.Errorf("gpa = %q", edu.GPA)
	}

	if len(rec.Certifications) != 1 || !strings.Contains(rec.Certifications[0].Name, "AWS Certified") {
		t.Errorf("certifications = %+v", rec.Certifications)
	}

	if len(rec.Projects) != 1 {
		t.Fatalf("projects = %+v", rec.Projects)
	}
	proj := rec.Projects[0]
	if proj.Name != "Task Manager App" {
		t.Errorf("project name = %q", proj.Name)
	}
	if proj.Technologies == "" {
		t.Error("project technologies empty despite Go and PostgreSQL in description")
	}

	if rec.Metadata.Length != len(sampleResumeText) {
		t.Errorf("metadata length = %d, want %d", rec.Metadata.Length, len(sampleResumeText))
	}
	if rec.Metadata.Timestamp == "" {
		t.Error("metadata timestamp empty")
	}
}

func TestParseResumeTextNoEmptyScalars(t *testing.T) {
	rec, err := ParseResumeText(sampleResumeText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Present scalar fields are never empty strings; omitempty drops
	// absent ones entirely.
	if strings.Contains(string(data), `:""`) {
		t.Errorf("serialized record carries empty string fields: %s", data)
	}
}

func TestParseResumeTextSkillsSortedUnique(t *testing.T) {
	rec, err := ParseResumeText(sampleResumeText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(rec.Skills); i++ {
		if !(rec.Skills[i-1] < rec.Skills[i]) {
			t.Fatalf("skills not sorted/unique: %v", rec.Skills)
		}
	}
}

func TestParseResumeTextIdempotent(t *testing.T) {
	first, err := ParseResumeText(sampleResumeText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ParseResumeText(sampleResumeText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Timestamps differ between runs; everything else must not.
	second.Metadata.Timestamp = first.Metadata.Timestamp
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("repeated parse differs:\n%s\n%s", a, b)
	}
}

func TestParseResumeTextSectionCaps(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("jane@example.com\n")
	for i := 0; i < 12; i++ {
		sb.WriteString("Software Engineer at Company\n2020 - 2021\n")
		sb.WriteString("AWS Certified Developer\n")
		sb.WriteString("Developed a scheduling system\n")
		sb.WriteString("Bachelor of Science\nSome University\n")
	}
	rec, err := ParseResumeText(sb.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Experience) > 5 {
		t.Errorf("experience over cap: %d", len(rec.Experience))
	}
	if len(rec.Education) > 5 {
		t.Errorf("education over cap: %d", len(rec.Education))
	}
	if len(rec.Certifications) > 5 {
		t.Errorf("certifications over cap: %d", len(rec.Certifications))
	}
	if len(rec.Projects) > 5 {
		t.Errorf("projects over cap: %d", len(rec.Projects))
	}
}

func TestParseResumeTextInsufficientContent(t *testing.T) {
	_, err := ParseResumeText("too short")
	if !errors.Is(err, ErrInsufficientContent) {
		t.Errorf("expected ErrInsufficientContent, got %v", err)
	}
}

func TestParseResumeTextNoMeaningfulData(t *testing.T) {
	// Long enough to pass the length gate, but carries no identity
	// fields, skills, education, or experience.
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 5)
	_, err := ParseResumeText(text)
	if !errors.Is(err, ErrNoMeaningfulData) {
		t.Errorf("expected ErrNoMeaningfulData, got %v", err)
	}
}
