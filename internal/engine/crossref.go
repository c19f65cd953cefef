package engine

import (
	"sort"
	"strings"
)

// CrossReference reconciles the records gathered from the three
// sources. Any of the inputs may be nil; a missing source simply
// contributes nothing. The output is deterministic for the same
// inputs, so repeated reconciliation of unchanged records is stable.
func CrossReference(p *PortfolioRecord, g *GitHubRecord, r *ResumeRecord) *ReconciliationReport {
	return &ReconciliationReport{
		SkillsMatch:            crossReferenceSkills(p, g, r),
		ExperienceVerification: verifyExperience(p, r),
		EducationVerification:  verifyEducation(p, r),
		ProjectVerification:    verifyProjects(p, g),
		ContactConsistency:     verifyContact(p, g, r),
	}
}

// crossReferenceSkills unions skills across sources case-insensitively,
// keeping the first-seen spelling for display. Confidence is the
// fraction of the three sources claiming the skill.
func crossReferenceSkills(p *PortfolioRecord, g *GitHubRecord, r *ResumeRecord) []SkillMatch {
	type claim struct {
		display string
		sources []string
	}
	claims := make(map[string]*claim)

	addAll := func(source string, skills []string) {
		for _, skill := range skills {
			key := strings.ToLower(CleanText(skill))
			if key == "" {
				continue
			}
			c, ok := claims[key]
			if !ok {
				c = &claim{display: CleanText(skill)}
				claims[key] = c
			}
			if len(c.sources) == 0 || c.sources[len(c.sources)-1] != source {
				c.sources = append(c.sources, source)
			}
		}
	}

	if p != nil {
		addAll("portfolio", p.Skills)
	}
	if g != nil {
		addAll("github", githubLanguages(g))
	}
	if r != nil {
		addAll("resume", r.Skills)
	}

	matches := make([]SkillMatch, 0, len(claims))
	for _, c := range claims {
		matches = append(matches, SkillMatch{
			Skill:      c.display,
			Sources:    c.sources,
			Confidence: float64(len(c.sources)) / 3.0,
		})
	}
	sort.Slice(matches, func(i, j int) bool {
		return strings.ToLower(matches[i].Skill) < strings.ToLower(matches[j].Skill)
	})
	return matches
}

// githubLanguages collects the distinct primary languages across a
// profile's repositories, in repository order.
func githubLanguages(g *GitHubRecord) []string {
	var langs []string
	seen := make(map[string]bool)
	for _, repo := range g.Repositories {
		key := strings.ToLower(repo.Language)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		langs = append(langs, repo.Language)
	}
	return langs
}

// verifyExperience checks each portfolio experience entry against the
// résumé: verified when any résumé experience title appears
// case-insensitively inside the portfolio title. The direction is
// fixed; a portfolio title never verifies by being contained in a
// longer résumé title. Empty titles never verify.
func verifyExperience(p *PortfolioRecord, r *ResumeRecord) []ExperienceCheck {
	if p == nil {
		return nil
	}
	checks := make([]ExperienceCheck, 0, len(p.Experience))
	for _, exp := range p.Experience {
		check := ExperienceCheck{Title: exp.Title, Date: exp.Date}
		if r != nil && exp.Title != "" {
			for _, re := range r.Experience {
				if containsFold(exp.Title, re.Title) {
					check.VerifiedInResume = true
					break
				}
			}
		}
		checks = append(checks, check)
	}
	return checks
}

// verifyEducation checks portfolio education entries against the
// résumé by institution name, with the same fixed direction: the
// résumé institution must appear inside the portfolio one.
func verifyEducation(p *PortfolioRecord, r *ResumeRecord) []EducationCheck {
	if p == nil {
		return nil
	}
	checks := make([]EducationCheck, 0, len(p.Education))
	for _, edu := range p.Education {
		check := EducationCheck{Institution: edu.Institution, Degree: edu.Degree}
		if r != nil && edu.Institution != "" {
			for _, re := range r.Education {
				if containsFold(edu.Institution, re.Institution) {
					check.VerifiedInResume = true
					break
				}
			}
		}
		checks = append(checks, check)
	}
	return checks
}

// verifyProjects checks portfolio projects against GitHub repository
// names: verified when a repository name appears inside the project
// title. The comparison is a literal case-insensitive substring, so
// renderings that differ in punctuation ("Task Manager App" vs
// "task-manager") do not verify.
func verifyProjects(p *PortfolioRecord, g *GitHubRecord) []ProjectCheck {
	if p == nil {
		return nil
	}
	checks := make([]ProjectCheck, 0, len(p.Projects))
	for _, proj := range p.Projects {
		check := ProjectCheck{Title: proj.Title}
		if g != nil && proj.Title != "" {
			for _, repo := range g.Repositories {
				if containsFold(proj.Title, repo.Name) {
					check.VerifiedInGitHub = true
					break
				}
			}
		}
		checks = append(checks, check)
	}
	return checks
}

// verifyContact compares contact fields across sources. A field is
// consistent only when both compared sources carry a value and the
// values are exactly equal; no case folding or URL normalization is
// applied.
func verifyContact(p *PortfolioRecord, g *GitHubRecord, r *ResumeRecord) map[string]ContactCheck {
	checks := make(map[string]ContactCheck)

	var portfolioEmail, portfolioWebsite string
	if p != nil {
		portfolioEmail = p.Contact["email"]
		portfolioWebsite = p.Contact["website"]
	}

	email := ContactCheck{Portfolio: portfolioEmail}
	if r != nil {
		email.Resume = r.Email
	}
	email.Consistent = email.Portfolio != "" && email.Resume != "" &&
		email.Portfolio == email.Resume
	checks["email"] = email

	website := ContactCheck{Portfolio: portfolioWebsite}
	if g != nil {
		website.GitHub = g.Blog
	}
	website.Consistent = website.Portfolio != "" && website.GitHub != "" &&
		website.Portfolio == website.GitHub
	checks["website"] = website

	return checks
}

// containsFold reports whether s contains substr, ignoring case.
// Empty strings never match.
func containsFold(s, substr string) bool {
	if s == "" || substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
