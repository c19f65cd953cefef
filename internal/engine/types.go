package engine

// --- Portfolio record ---
//
// All scalar fields hold either a cleaned non-empty string or the zero
// value; the structurers never emit a present-but-empty field, so zero
// value unambiguously means "absent" and omitempty drops it on the wire.

// PortfolioExperience is one experience entry scraped from a portfolio page.
type PortfolioExperience struct {
	Title            string   `json:"title,omitempty"`
	Company          string   `json:"company,omitempty"`
	Date             string   `json:"date,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// PortfolioProject is one project entry scraped from a portfolio page.
type PortfolioProject struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// PortfolioEducation is one education entry scraped from a portfolio page.
type PortfolioEducation struct {
	Years       string `json:"years,omitempty"`
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
}

// PortfolioRecord is the structured result of scraping one portfolio page.
type PortfolioRecord struct {
	Name       string                `json:"name,omitempty"`
	About      string                `json:"about,omitempty"`
	Skills     []string              `json:"skills,omitempty"`
	Experience []PortfolioExperience `json:"experience,omitempty"`
	Projects   []PortfolioProject    `json:"projects,omitempty"`
	Education  []PortfolioEducation  `json:"education,omitempty"`
	Contact    map[string]string     `json:"contact,omitempty"`

	// PageText is a readable rendition of the fetched page, kept with
	// the record for snapshot review. Not part of extraction.
	PageText string `json:"page_text,omitempty"`
}

// Empty reports whether nothing at all was extracted. Portfolio
// structuring never fails outright; callers may treat an all-empty
// record as a soft failure.
func (p *PortfolioRecord) Empty() bool {
	return p.Name == "" && p.About == "" &&
		len(p.Skills) == 0 && len(p.Experience) == 0 &&
		len(p.Projects) == 0 && len(p.Education) == 0 &&
		len(p.Contact) == 0
}

// --- Résumé record ---

// ResumeEducation is one education entry parsed from résumé text.
type ResumeEducation struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// ResumeExperience is one work-experience entry parsed from résumé text.
type ResumeExperience struct {
	Title       string   `json:"title,omitempty"`
	Company     string   `json:"company,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Description []string `json:"description,omitempty"`
}

// ResumeCertification is one certification entry parsed from résumé text.
type ResumeCertification struct {
	Name string `json:"name,omitempty"`
}

// ResumeProject is one project entry parsed from résumé text.
type ResumeProject struct {
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
}

// ResumeMetadata carries provenance for a parsed résumé.
type ResumeMetadata struct {
	Length    int    `json:"length"`
	Timestamp string `json:"timestamp"`
}

// ResumeRecord is the structured result of parsing one résumé document.
type ResumeRecord struct {
	Email             string                `json:"email,omitempty"`
	Phone             string                `json:"phone,omitempty"`
	GitHubURL         string                `json:"github_url,omitempty"`
	PortfolioURL      string                `json:"portfolio_url,omitempty"`
	InstagramUsername string                `json:"instagram_username,omitempty"`
	Skills            []string              `json:"skills,omitempty"`
	Education         []ResumeEducation     `json:"education,omitempty"`
	Experience        []ResumeExperience    `json:"experience,omitempty"`
	Certifications    []ResumeCertification `json:"certifications,omitempty"`
	Projects          []ResumeProject       `json:"projects,omitempty"`
	RawText           string                `json:"raw_text,omitempty"`
	Metadata          ResumeMetadata        `json:"metadata"`
}

// --- GitHub record (consumed read-only by the reconciler) ---

// GitHubRepo holds repository metadata from the GitHub REST API.
type GitHubRepo struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Language    string   `json:"language,omitempty"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	OpenIssues  int      `json:"open_issues"`
	Watchers    int      `json:"watchers"`
	URL         string   `json:"url,omitempty"`
	Homepage    string   `json:"homepage,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
	PushedAt    string   `json:"pushed_at,omitempty"`
	IsFork      bool     `json:"is_fork"`
	Archived    bool     `json:"archived"`
}

// GitHubContributions aggregates recent public activity.
type GitHubContributions struct {
	Commits                   int      `json:"commits"`
	PullRequests              int      `json:"pull_requests"`
	Issues                    int      `json:"issues"`
	RepositoriesContributedTo []string `json:"repositories_contributed_to,omitempty"`
}

// GitHubRecord is a GitHub profile plus its repository listing.
type GitHubRecord struct {
	Username        string                `json:"username"`
	Name            string                `json:"name,omitempty"`
	Bio             string                `json:"bio,omitempty"`
	Location        string                `json:"location,omitempty"`
	Company         string                `json:"company,omitempty"`
	Blog            string                `json:"blog,omitempty"`
	Email           string                `json:"email,omitempty"`
	TwitterUsername string                `json:"twitter_username,omitempty"`
	PublicRepos     int                   `json:"public_repos"`
	PublicGists     int                   `json:"public_gists"`
	Followers       int                   `json:"followers"`
	Following       int                   `json:"following"`
	CreatedAt       string                `json:"created_at,omitempty"`
	UpdatedAt       string                `json:"updated_at,omitempty"`
	AvatarURL       string                `json:"avatar_url,omitempty"`
	Hireable        bool                 `json:"hireable"`
	Repositories    []GitHubRepo         `json:"repositories,omitempty"`
	Contributions   *GitHubContributions `json:"contributions,omitempty"`
}

// --- Instagram record ---

// InstagramRecord is the public slice of an Instagram profile.
type InstagramRecord struct {
	Username   string `json:"username"`
	Bio        string `json:"bio,omitempty"`
	Followers  int    `json:"followers"`
	PostsCount int    `json:"posts_count"`
	Timestamp  string `json:"timestamp,omitempty"`
}

// --- Reconciliation report ---

// SkillMatch records which sources mention a skill.
// Confidence is len(Sources)/3: one of 0, 1/3, 2/3, 1.
type SkillMatch struct {
	Skill      string   `json:"skill"`
	Sources    []string `json:"sources"`
	Confidence float64  `json:"confidence"`
}

// ExperienceCheck verifies one portfolio experience entry against the résumé.
type ExperienceCheck struct {
	Title            string `json:"title,omitempty"`
	Date             string `json:"date,omitempty"`
	VerifiedInResume bool   `json:"verified_in_resume"`
}

// EducationCheck verifies one portfolio education entry against the résumé.
type EducationCheck struct {
	Institution      string `json:"institution,omitempty"`
	Degree           string `json:"degree,omitempty"`
	VerifiedInResume bool   `json:"verified_in_resume"`
}

// ProjectCheck verifies one portfolio project against the GitHub repo list.
type ProjectCheck struct {
	Title            string `json:"title,omitempty"`
	VerifiedInGitHub bool   `json:"verified_in_github"`
}

// ContactCheck compares one contact field across sources.
type ContactCheck struct {
	Portfolio  string `json:"portfolio,omitempty"`
	Resume     string `json:"resume,omitempty"`
	GitHub     string `json:"github,omitempty"`
	Consistent bool   `json:"consistent"`
}

// ReconciliationReport is the cross-source consistency analysis.
type ReconciliationReport struct {
	SkillsMatch            []SkillMatch            `json:"skills_match"`
	ExperienceVerification []ExperienceCheck       `json:"experience_verification"`
	EducationVerification  []EducationCheck        `json:"education_verification"`
	ProjectVerification    []ProjectCheck          `json:"project_verification"`
	ContactConsistency     map[string]ContactCheck `json:"contact_consistency"`
}
