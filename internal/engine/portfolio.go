package engine

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selector groups for the seven portfolio zones, ordered from site
// conventions (semantic IDs, class hints) down to utility-framework
// class fragments. Specific selectors are tried first; coarse
// heuristics are the fallback.
var (
	nameSelectors  = []string{"h1.text-5xl", "h2.text-4xl", ".name", ".profile-name", ".hero h1"}
	aboutSelectors = []string{"#about p", "#hero p.text-lg", ".about p", ".bio p", ".intro p", ".max-w-prose"}

	skillsSectionSelector = "#skills, .skills, .technologies"
	skillsSelectors       = []string{"#skills .skill-item", "#skills span.inline-block", ".skills li", ".technologies span.text-sm", ".flex-wrap span.rounded", "#skills span"}

	experienceSectionSelector = "#experience, .experience, .timeline, [class*='experience']"
	experienceEntrySelector   = ".timeline-entry, .experience-item, .job, div.mb-8"
	expTitleSelectors         = []string{"h3.text-xl", "h3", "h4.text-lg", ".job-title", ".title"}
	expCompanySelectors       = []string{".company", ".employer", "h4.company", ".subtitle"}
	expDateSelectors          = []string{".date-range", ".duration", ".text-sm"}
	expResponsibilitySelector = "ul li, .description p"

	projectSectionSelector = "#projects, .projects, .portfolio, [class*='projects'], .grid"
	projectEntrySelector   = ".project-item, .portfolio-item, div.rounded-lg"
	projTitleSelectors     = []string{"h3.text-lg", "h3", "h4", ".project-name"}
	projDescSelectors      = []string{"p.description", ".summary", "p"}
	projLinkSelectors      = []string{"a.project-link", "a[href*='github.com']", "a[href]"}

	educationSectionSelector = "#education, .education, [class*='education']"
	educationEntrySelector   = ".education-item, div.mb-6"
	eduYearsSelectors        = []string{".years", ".duration", ".text-sm"}
	eduInstitutionSelectors  = []string{"h3.text-lg", "h3", ".institution"}
	eduDegreeSelectors       = []string{"p.degree", ".qualification"}

	contactSectionSelector = "#contact, .contact, .connect, footer, [class*='contact'], .social-links"
)

// contactLinkSelectors map contact platforms to their anchor selectors.
// email, phone, and website get special handling in extractContact.
var contactLinkSelectors = []struct{ platform, selector string }{
	{"linkedin", "a[href*='linkedin.com']"},
	{"github", "a[href*='github.com']"},
	{"twitter", "a[href*='twitter.com'], a[href*='x.com']"},
	{"instagram", "a[href*='instagram.com']"},
}

// dateRangeRe trims an experience date down to its month-year range.
var dateRangeRe = regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\w* \d{4}\s*[-–]\s*(?:Present|\w+ \d{4})\b`)

// ParsePortfolio builds a structured record from already-fetched
// portfolio HTML. It never fails: selector misses degrade to coarse
// heuristics and finally to absent fields; a wholly empty record is a
// valid output whose sufficiency is judged by the caller.
func ParsePortfolio(htmlContent, pageURL string) *PortfolioRecord {
	rec := &PortfolioRecord{}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return rec
	}
	root := doc.Selection

	rec.Name = extractName(root)
	rec.About = extractAbout(root)

	if root.Find(skillsSectionSelector).Length() > 0 {
		rec.Skills = ExtractList(root, skillsSelectors, ",")
	}

	rec.Experience = extractExperience(root)
	rec.Projects = extractProjects(root, pageURL)
	rec.Education = extractEducation(root)
	rec.Contact = extractContact(root, pageURL)

	return rec
}

// extractName tries the name selectors, then falls back to the page
// title split on "|".
func extractName(root *goquery.Selection) string {
	name := ExtractText(root, nameSelectors, 100, nil,
		[]string{"projects", "skills", "experience", "responsibilities"})
	if name != "" {
		return name
	}
	title := CleanText(root.Find("title").First().Text())
	if title == "" {
		return ""
	}
	return CleanText(strings.SplitN(title, "|", 2)[0])
}

// extractAbout tries the about selectors, then falls back to the first
// paragraph longer than 100 characters that avoids structural keywords.
func extractAbout(root *goquery.Selection) string {
	about := ExtractText(root, aboutSelectors, 1000, nil,
		[]string{"contact", "resume", "projects", "skills", "copyright", "privacy"})
	if about != "" {
		return about
	}
	root.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := CleanText(s.Text())
		if len(text) > 100 && !containsAny(text, defaultExcludeKeywords) {
			about = Truncate(text, 1000)
			return false
		}
		return true
	})
	return about
}

func extractExperience(root *goquery.Selection) []PortfolioExperience {
	section := root.Find(experienceSectionSelector).First()
	if section.Length() == 0 {
		return nil
	}
	var entries []PortfolioExperience
	section.Find(experienceEntrySelector).Each(func(_ int, entry *goquery.Selection) {
		exp := PortfolioExperience{
			Title:   ExtractSingleText(entry, expTitleSelectors, 100),
			Company: ExtractSingleText(entry, expCompanySelectors, 100),
			Date:    cleanDateRange(ExtractSingleText(entry, expDateSelectors, 50)),
		}
		entry.Find(expResponsibilitySelector).Each(func(_ int, r *goquery.Selection) {
			if text := CleanText(r.Text()); text != "" {
				exp.Responsibilities = append(exp.Responsibilities, text)
			}
		})
		if exp.Title != "" || exp.Company != "" || exp.Date != "" || len(exp.Responsibilities) > 0 {
			entries = append(entries, exp)
		}
	})
	return entries
}

// cleanDateRange keeps only the month-year range when one is present.
func cleanDateRange(date string) string {
	if m := dateRangeRe.FindString(date); m != "" {
		return m
	}
	return date
}

func extractProjects(root *goquery.Selection, pageURL string) []PortfolioProject {
	section := root.Find(projectSectionSelector).First()
	if section.Length() == 0 {
		return nil
	}
	var projects []PortfolioProject
	section.Find(projectEntrySelector).Each(func(_ int, entry *goquery.Selection) {
		p := PortfolioProject{
			Title:       ExtractSingleText(entry, projTitleSelectors, 100),
			Description: ExtractSingleText(entry, projDescSelectors, 500),
			Link:        ExtractLink(entry, projLinkSelectors, pageURL),
		}
		if p.Title != "" || p.Description != "" || p.Link != "" {
			projects = append(projects, p)
		}
	})
	return projects
}

func extractEducation(root *goquery.Selection) []PortfolioEducation {
	section := root.Find(educationSectionSelector).First()
	if section.Length() == 0 {
		return nil
	}
	var entries []PortfolioEducation
	section.Find(educationEntrySelector).Each(func(_ int, entry *goquery.Selection) {
		edu := PortfolioEducation{
			Years:       ExtractSingleText(entry, eduYearsSelectors, 50),
			Institution: ExtractSingleText(entry, eduInstitutionSelectors, 100),
			Degree:      ExtractSingleText(entry, eduDegreeSelectors, 100),
		}
		if edu.Years != "" || edu.Institution != "" || edu.Degree != "" {
			entries = append(entries, edu)
		}
	})
	return entries
}

// extractContact reads platform links from the contact section (the
// whole page when no section exists). Email and phone fall back to
// pattern matches over the section text when no mailto:/tel: anchor
// exists; website takes the first external link that is not a known
// social host.
func extractContact(root *goquery.Selection, pageURL string) map[string]string {
	section := root.Find(contactSectionSelector).First()
	if section.Length() == 0 {
		section = root
	}

	contact := make(map[string]string)
	for _, cs := range contactLinkSelectors {
		if href, ok := section.Find(cs.selector).First().Attr("href"); ok && href != "" {
			contact[cs.platform] = resolveURL(pageURL, href)
		}
	}

	if email := ExtractLink(section, []string{"a[href^='mailto:']"}, pageURL); email != "" {
		contact["email"] = email
	} else if email := ExtractEmail(section.Text()); email != "" {
		contact["email"] = email
	}

	if href, ok := section.Find("a[href^='tel:']").First().Attr("href"); ok {
		if phone := normalizePhone(strings.TrimPrefix(href, "tel:")); phone != "" {
			contact["phone"] = phone
		}
	}
	if contact["phone"] == "" {
		if phone := ExtractPhone(section.Text()); phone != "" {
			contact["phone"] = phone
		} else {
			delete(contact, "phone")
		}
	}

	section.Find("a[href^='http']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if host := hostOf(href); host != "" && !isSocialHost(strings.ToLower(host)) {
			contact["website"] = href
			return false
		}
		return true
	})

	if len(contact) == 0 {
		return nil
	}
	return contact
}
