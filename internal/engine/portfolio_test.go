package engine

import (
	"testing"
)

const samplePortfolioHTML = `<!DOCTYPE html>
<html>
<head><title>Jane Doe | Portfolio</title></head>
<body>
	<header class="hero"><h1>Jane Doe</h1></header>
	<section id="about">
		<p>Backend engineer focused on distributed systems and developer tooling, currently based in Lisbon.</p>
	</section>
	<section id="skills">
		<span>Python</span><span>Go</span><span>Rust</span>
	</section>
	<section id="experience">
		<div class="experience-item">
			<h3>Senior Backend Engineer</h3>
			<p class="company">ACME Corp</p>
			<p class="date-range">Jan 2021 - Present</p>
			<ul><li>Led migration to event-driven architecture</li><li>Mentored four engineers</li></ul>
		</div>
	</section>
	<section id="projects">
		<div class="project-item">
			<h3>Task Manager App</h3>
			<p>A collaborative task tracker.</p>
			<a class="project-link" href="https://github.com/janedoe/task-manager">Source</a>
		</div>
	</section>
	<section id="education">
		<div class="education-item">
			<p class="years">2014 - 2018</p>
			<h3>University of Lisbon</h3>
			<p class="degree">BSc Computer Science</p>
		</div>
	</section>
	<footer id="contact">
		<a href="mailto:jane@example.com">Email</a>
		<a href="https://github.com/janedoe">GitHub</a>
		<a href="https://linkedin.com/in/janedoe">LinkedIn</a>
		<a href="https://janedoe.dev">Blog</a>
	</footer>
</body>
</html>`

func TestParsePortfolio(t *testing.T) {
	rec := ParsePortfolio(samplePortfolioHTML, "https://janedoe.dev")

	if rec.Name != "Jane Doe" {
		t.Errorf("name = %q", rec.Name)
	}
	if rec.About == "" {
		t.Error("about empty")
	}

	if len(rec.Skills) != 3 {
		t.Fatalf("skills = %v", rec.Skills)
	}
	for i, want := range []string{"Python", "Go", "Rust"} {
		if rec.Skills[i] != want {
			t.Errorf("skill %d = %q, want %q", i, rec.Skills[i], want)
		}
	}

	if len(rec.Experience) != 1 {
		t.Fatalf("experience = %+v", rec.Experience)
	}
	exp := rec.Experience[0]
	if exp.Title != "Senior Backend Engineer" {
		t.Errorf("exp title = %q", exp.Title)
	}
	if exp.Company != "ACME Corp" {
		t.Errorf("exp company = %q", exp.Company)
	}
	if exp.Date != "Jan 2021 - Present" {
		t.Errorf("exp date = %q", exp.Date)
	}
	if len(exp.Responsibilities) != 2 {
		t.Errorf("responsibilities = %v", exp.Responsibilities)
	}

	if len(rec.Projects) != 1 {
		t.Fatalf("projects = %+v", rec.Projects)
	}
	proj := rec.Projects[0]
	if proj.Title != "Task Manager App" {
		t.Errorf("project title = %q", proj.Title)
	}
	if proj.Link != "https://github.com/janedoe/task-manager" {
		t.Errorf("project link = %q", proj.Link)
	}

	if len(rec.Education) != 1 {
		t.Fatalf("education = %+v", rec.Education)
	}
	edu := rec.Education[0]
	if edu.Institution != "University of Lisbon" {
		t.Errorf("institution = %q", edu.Institution)
	}
	if edu.Degree != "BSc Computer Science" {
		t.Errorf("degree = %q", edu.Degree)
	}
	if edu.Years != "2014 - 2018" {
		t.Errorf("years = %q", edu.Years)
	}

	if rec.Contact["email"] != "jane@example.com" {
		t.Errorf("contact email = %q", rec.Contact["email"])
	}
	if rec.Contact["github"] != "https://github.com/janedoe" {
		t.Errorf("contact github = %q", rec.Contact["github"])
	}
	if rec.Contact["linkedin"] != "https://linkedin.com/in/janedoe" {
		t.Errorf("contact linkedin = %q", rec.Contact["linkedin"])
	}
	if rec.Contact["website"] != "https://janedoe.dev" {
		t.Errorf("contact website = %q", rec.Contact["website"])
	}
}

func TestParsePortfolioTitleFallback(t *testing.T) {
	html := `<html><head><title>John Smith | Developer</title></head><body><p>hi</p></body></html>`
	rec := ParsePortfolio(html, "https://example.dev")
	if rec.Name != "John Smith" {
		t.Errorf("title fallback gave %q", rec.Name)
	}
}

func TestParsePortfolioEmptyPage(t *testing.T) {
	rec := ParsePortfolio("<html><body></body></html>", "https://example.dev")
	if rec == nil {
		t.Fatal("nil record")
	}
	if !rec.Empty() {
		t.Errorf("expected empty record, got %+v", rec)
	}
}

func TestParsePortfolioNotHTML(t *testing.T) {
	// goquery parses almost anything; plain text must not panic and
	// yields an effectively empty record.
	rec := ParsePortfolio("just some plain text, no markup", "https://example.dev")
	if rec == nil {
		t.Fatal("nil record")
	}
	if len(rec.Skills) != 0 || len(rec.Experience) != 0 || len(rec.Projects) != 0 {
		t.Errorf("plain text produced structure: %+v", rec)
	}
}
