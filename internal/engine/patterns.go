package engine

import (
	"regexp"
	"sort"
	"strings"
)

// SkillVocabulary is the curated list of technical-skill tokens matched
// case-insensitively as whole words in résumé text and reconciliation.
var SkillVocabulary = []string{
	// Programming languages
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Ruby", "PHP",
	"Go", "Rust", "Swift", "Kotlin", "HTML", "CSS", "SQL", "NoSQL", "GraphQL",
	"R", "MATLAB", "Scala", "Perl", "Shell", "Bash", "PowerShell",
	// Web
	"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask", "Spring",
	"Laravel", "ASP.NET", "jQuery", "Bootstrap", "Tailwind CSS", "SASS", "LESS",
	"Webpack", "Babel", "npm", "Yarn", "REST", "SOAP", "WebSocket",
	// Databases
	"MySQL", "PostgreSQL", "MongoDB", "Redis", "Elasticsearch", "Cassandra",
	"Oracle", "SQL Server", "DynamoDB", "Firebase", "CouchDB", "Neo4j", "SQLite",
	// Cloud
	"AWS", "Azure", "GCP", "Digital Ocean", "Heroku", "Vercel", "Netlify",
	"Lambda", "EC2", "S3", "RDS", "CloudFront", "Route 53", "CloudFormation",
	// DevOps & tooling
	"Docker", "Kubernetes", "Jenkins", "Git", "GitHub", "GitLab", "Bitbucket",
	"CI/CD", "Terraform", "Ansible", "Puppet", "Chef", "Prometheus", "Grafana",
	"ELK Stack", "Splunk", "Jira", "Confluence", "Trello", "Asana",
	// AI & ML
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Keras",
	"Scikit-learn", "Pandas", "NumPy", "SciPy", "NLTK", "SpaCy", "OpenCV",
	"Computer Vision", "NLP", "Natural Language Processing", "Data Science",
	// Mobile
	"iOS", "Android", "React Native", "Flutter", "Xamarin",
	"Mobile App Development", "App Store", "Google Play",
	// Security
	"Cybersecurity", "Network Security", "Application Security", "Cloud Security",
	"Penetration Testing", "Vulnerability Assessment", "SIEM", "Firewall",
	"IDS/IPS", "Cryptography", "SSL/TLS", "OAuth", "JWT", "SAML",
	// Other
	"Blockchain", "Smart Contracts", "Solidity", "Ethereum", "Bitcoin",
	"IoT", "Embedded Systems", "Arduino", "Raspberry Pi", "Microcontrollers",
	"Game Development", "Unity", "Unreal Engine", "3D Modeling", "CAD",
	"Virtual Reality", "Augmented Reality", "AR/VR",
}

// skillRes holds one whole-word matcher per vocabulary entry, with
// alphanumeric boundaries so "C++" and "Node.js" match correctly and
// "Go" does not fire inside "Google".
var skillRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(SkillVocabulary))
	for i, skill := range SkillVocabulary {
		res[i] = regexp.MustCompile(`(?i)(^|[^\p{L}\p{N}])` + regexp.QuoteMeta(skill) + `($|[^\p{L}\p{N}+#])`)
	}
	return res
}()

// skillPhraseRes capture the object of an explicit proficiency claim;
// the captured phrase is re-matched against the vocabulary.
var skillPhraseRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:proficient|expert|skilled|experienced|familiar|knowledgeable)\s+(?:in|with|at)\s+([\w\s+#./-]+)`),
	regexp.MustCompile(`(?i)\b(?:experience|knowledge|skills)\s+(?:in|with)\s+([\w\s+#./-]+)`),
	regexp.MustCompile(`(?i)\b(?:worked|developed|built|created|implemented)\s+(?:with|using)\s+([\w\s+#./-]+)`),
	regexp.MustCompile(`(?i)\b(?:certified|certification)\s+(?:in|for)\s+([\w\s+#./-]+)`),
}

// ExtractSkills returns the sorted union of vocabulary hits and
// phrase-pattern hits found in text. Pure and deterministic.
func ExtractSkills(text string) []string {
	found := make(map[string]bool)
	for i, re := range skillRes {
		if re.MatchString(text) {
			found[SkillVocabulary[i]] = true
		}
	}
	for _, re := range skillPhraseRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			phrase := strings.ToLower(m[1])
			for _, skill := range SkillVocabulary {
				if strings.Contains(phrase, strings.ToLower(skill)) {
					found[skill] = true
				}
			}
		}
	}
	if len(found) == 0 {
		return nil
	}
	skills := make([]string, 0, len(found))
	for s := range found {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}

// --- Identity-field extractors ---
//
// Each extractor returns the first structurally valid match or "".
// Pattern families are ordered tables: first match wins.

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// ExtractEmail returns the first email address found in text.
func ExtractEmail(text string) string {
	return emailRe.FindString(text)
}

var phoneRes = []*regexp.Regexp{
	regexp.MustCompile(`\+\d{1,3}[\s.-]?\(?\d{2,4}\)?[\s.-]?\d{3}[\s.-]?\d{3,4}`),
	regexp.MustCompile(`\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`),
	regexp.MustCompile(`\+?[\d\s().-]{10,}`),
}

// ExtractPhone returns the first phone number found in text,
// normalized to a digit string (plus an optional leading +) of at
// least 10 digits.
func ExtractPhone(text string) string {
	for _, re := range phoneRes {
		for _, m := range re.FindAllString(text, -1) {
			if n := normalizePhone(m); n != "" {
				return n
			}
		}
	}
	return ""
}

// normalizePhone strips separators, keeping digits and a leading +.
// Returns "" when fewer than 10 digits remain.
func normalizePhone(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 && b.Len() == 0 {
			b.WriteRune(r)
		}
	}
	n := b.String()
	if len(strings.TrimPrefix(n, "+")) < 10 {
		return ""
	}
	return n
}

var githubProfileRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/([A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)`)

// githubReservedPaths are github.com top-level paths that are not user profiles.
var githubReservedPaths = map[string]bool{
	"topics": true, "explore": true, "trending": true, "search": true,
	"settings": true, "notifications": true, "features": true, "orgs": true,
	"marketplace": true, "sponsors": true, "about": true, "login": true,
}

// ExtractGitHubURL returns the first GitHub profile URL found in text,
// canonicalized to https://github.com/<username>.
func ExtractGitHubURL(text string) string {
	for _, m := range githubProfileRe.FindAllStringSubmatch(text, -1) {
		if username := m[1]; !githubReservedPaths[strings.ToLower(username)] {
			return "https://github.com/" + username
		}
	}
	return ""
}

// GitHubUsernameFromURL extracts the username from a GitHub profile URL.
func GitHubUsernameFromURL(u string) string {
	m := githubProfileRe.FindStringSubmatch(u)
	if m == nil || githubReservedPaths[strings.ToLower(m[1])] {
		return ""
	}
	return m[1]
}

var (
	portfolioLabelRe = regexp.MustCompile(`(?i)\b(?:portfolio|personal\s+(?:web)?site|website)\s*[:\-]?\s*(https?://[^\s,;)\]]+)`)
	urlRe            = regexp.MustCompile(`https?://[^\s,;)\]]+`)
)

// socialHosts are domains never considered a personal portfolio site.
var socialHosts = []string{
	"github.com", "instagram.com", "linkedin.com",
	"twitter.com", "x.com", "facebook.com", "youtube.com",
}

// personalHostHints mark a hostname as a plausible personal site.
var personalHostHints = []string{"vercel.app", "netlify.app", "github.io", "portfolio", "personal"}

// ExtractPortfolioURL finds a personal-site URL in text. Stage one
// prefers a URL following an explicit "portfolio:"-style label; stage
// two scans all URLs, skips known social hosts, and accepts only hosts
// matching the personal-site heuristic list.
func ExtractPortfolioURL(text string) string {
	if m := portfolioLabelRe.FindStringSubmatch(text); m != nil {
		return strings.TrimRight(m[1], ".")
	}
	for _, u := range urlRe.FindAllString(text, -1) {
		u = strings.TrimRight(u, ".")
		host := strings.ToLower(hostOf(u))
		if host == "" || isSocialHost(host) {
			continue
		}
		for _, hint := range personalHostHints {
			if strings.Contains(host, hint) {
				return u
			}
		}
	}
	return ""
}

func hostOf(rawURL string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(rawURL, "https://"), "http://")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimPrefix(s, "www.")
}

func isSocialHost(host string) bool {
	for _, s := range socialHosts {
		if host == s || strings.HasSuffix(host, "."+s) {
			return true
		}
	}
	return false
}

var instagramRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)instagram\.com/([A-Za-z0-9._]{1,30})`),
	regexp.MustCompile(`(?i)\b(?:instagram|insta|ig)\s*[:\-@]\s*@?([A-Za-z0-9._]{2,30})`),
	regexp.MustCompile(`(?:^|[^\w.@])@([A-Za-z0-9_][A-Za-z0-9._]{1,29})`),
}

// ExtractInstagramHandle finds an Instagram username, from either an
// instagram.com URL, a labeled handle, or a bare @handle (the latter
// excludes email local parts via the preceding-character guard).
func ExtractInstagramHandle(text string) string {
	for _, re := range instagramRes {
		if m := re.FindStringSubmatch(text); m != nil {
			handle := strings.Trim(m[1], ".")
			if handle != "" && !strings.EqualFold(handle, "p") && !strings.EqualFold(handle, "reel") {
				return handle
			}
		}
	}
	return ""
}

// --- Section-header keyword families for the résumé line scanner ---

var degreeRe = regexp.MustCompile(`(?i)\b(?:bachelor(?:'s)?|master(?:'s)?|ph\.?d\.?|b\.?tech|m\.?tech|b\.?sc|m\.?sc|b\.?s\b|m\.?s\b|b\.?a\b|m\.?a\b|b\.?e\b|m\.?e\b|mba|associate degree|diploma)`)

var institutionRe = regexp.MustCompile(`(?i)(?:[\p{L}][\p{L}.,&'-]*\s+)*(?:university|college|institute|polytechnic|school|academy)(?:\s+of\s+[\p{L}][\p{L}\s]*)?`)

var (
	yearRangeRe = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\s*[-–—]\s*(?:(?:19|20)\d{2}|present|current|now)\b`)
	yearRe      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	gpaRe       = regexp.MustCompile(`(?i)\b(?:gpa|cgpa)\s*[:\s]\s*([0-9](?:\.[0-9]{1,2})?(?:\s*/\s*(?:4|5|10)(?:\.0)?)?)`)
)

// jobTitleKeywords classify a line as an experience header.
var jobTitleKeywords = []string{
	"engineer", "developer", "architect", "scientist", "manager",
	"consultant", "analyst", "specialist", "administrator", "designer",
	"lead", "intern", "director", "founder",
}

// MatchesJobTitle reports whether a line looks like a job-title header.
func MatchesJobTitle(line string) bool {
	l := strings.ToLower(line)
	for _, kw := range jobTitleKeywords {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return false
}

// certKeywords classify a line as a certification header.
var certKeywords = []string{
	"certified", "certification", "certificate",
	"aws", "azure", "gcp", "cisco", "microsoft", "oracle", "ibm",
	"comptia", "cissp", "pmp", "itil", "scrum",
}

// MatchesCertification reports whether a line looks like a certification header.
func MatchesCertification(line string) bool {
	l := strings.ToLower(line)
	for _, kw := range certKeywords {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return false
}

// projectKeywords classify a line as a project header: either a
// project-type noun or a build verb opening the line.
var (
	projectNounRe = regexp.MustCompile(`(?i)\b(?:project|application|system|platform|website|app|software|tool|framework|library)\b`)
	projectVerbRe = regexp.MustCompile(`(?i)^(?:developed|created|built|implemented|designed|led|managed)\b`)
)

// MatchesProject reports whether a line looks like a project header.
func MatchesProject(line string) bool {
	return projectNounRe.MatchString(line) || projectVerbRe.MatchString(line)
}
