package engine

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// maxSectionEntries caps every résumé section regardless of input length.
const maxSectionEntries = 5

// ParseResume decodes a résumé document and structures its text.
// Fails with ErrUnsupportedFormat, ErrInvalidInput, ErrDecode,
// ErrInsufficientContent, or ErrNoMeaningfulData; all terminal for
// this record.
func ParseResume(content []byte, filename string) (*ResumeRecord, error) {
	kind, err := KindFromFilename(filename)
	if err != nil {
		return nil, err
	}
	text, err := ExtractDocumentText(content, kind)
	if err != nil {
		return nil, err
	}
	return ParseResumeText(text)
}

// ParseResumeText structures already-extracted résumé text.
func ParseResumeText(text string) (*ResumeRecord, error) {
	if len(CleanText(text)) < cfg.MinTextChars {
		return nil, fmt.Errorf("%w: %d chars of text (minimum %d)", ErrInsufficientContent, len(CleanText(text)), cfg.MinTextChars)
	}

	sections := sectionize(splitLines(text))
	rec := &ResumeRecord{
		Email:             ExtractEmail(text),
		Phone:             ExtractPhone(text),
		GitHubURL:         ExtractGitHubURL(text),
		PortfolioURL:      ExtractPortfolioURL(text),
		InstagramUsername: ExtractInstagramHandle(text),
		Skills:            ExtractSkills(text),
		Education:         scanEducation(sections.lines(secEducation)),
		Experience:        scanExperience(sections.lines(secExperience)),
		Certifications:    scanCertifications(sections.lines(secCertifications)),
		Projects:          scanProjects(sections.lines(secProjects)),
		RawText:           text,
		Metadata: ResumeMetadata{
			Length:    len(text),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	if rec.Email == "" && rec.Phone == "" && rec.GitHubURL == "" &&
		rec.PortfolioURL == "" && rec.InstagramUsername == "" &&
		len(rec.Skills) == 0 && len(rec.Education) == 0 && len(rec.Experience) == 0 {
		return nil, ErrNoMeaningfulData
	}
	return rec, nil
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = CleanText(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// --- Section detection ---
//
// Résumés usually carry short standalone headers ("EXPERIENCE",
// "Technical Skills:"). When a family's header exists, its scanner
// sees only that section's lines, so a certification line can never
// open a bogus experience entry. Headerless documents degrade to
// scanning the unsectioned lines.

type sectionKind int

const (
	secNone sectionKind = iota
	secSkills
	secExperience
	secEducation
	secCertifications
	secProjects
	secOther
)

// sectionHeaderRe matches a standalone section-header line: a few
// words, letters only, optional trailing colon.
var sectionHeaderRe = regexp.MustCompile(`(?i)^[a-z][a-z &/]{1,40}:?$`)

func classifySectionHeader(line string) (sectionKind, bool) {
	if !sectionHeaderRe.MatchString(line) || len(strings.Fields(line)) > 4 {
		return secNone, false
	}
	l := strings.ToLower(line)
	switch {
	case strings.Contains(l, "experience") || strings.Contains(l, "employment"):
		return secExperience, true
	case strings.Contains(l, "education"):
		return secEducation, true
	case strings.Contains(l, "certification"):
		return secCertifications, true
	case strings.Contains(l, "project"):
		return secProjects, true
	case strings.Contains(l, "skill"):
		return secSkills, true
	case strings.Contains(l, "summary") || strings.Contains(l, "objective") ||
		strings.Contains(l, "contact") || strings.Contains(l, "reference") ||
		strings.Contains(l, "interest"):
		return secOther, true
	}
	return secNone, false
}

type sectionedLines struct {
	byKind map[sectionKind][]string
}

// sectionize assigns every line to the section whose header most
// recently preceded it; header lines themselves are dropped.
func sectionize(lines []string) sectionedLines {
	s := sectionedLines{byKind: make(map[sectionKind][]string)}
	current := secNone
	for _, line := range lines {
		if kind, ok := classifySectionHeader(line); ok {
			current = kind
			continue
		}
		s.byKind[current] = append(s.byKind[current], line)
	}
	return s
}

// lines returns the section's lines when its header was present, else
// the unsectioned lines so headerless résumés still parse.
func (s sectionedLines) lines(kind sectionKind) []string {
	if l, ok := s.byKind[kind]; ok {
		return l
	}
	return s.byKind[secNone]
}

// --- Line-oriented section scanner ---
//
// One scan per section family, each over the full line sequence.
// A line is either a header (starts a new entry, flushing the open
// one) or a continuation (merges into the open entry). After the last
// line the open entry is flushed. Sections cap at five entries.

var bulletRe = regexp.MustCompile(`^[-•*·]\s*`)

// lineScanner drives the header/continuation state machine for one
// section family.
type lineScanner[T any] struct {
	skip     func(line string) bool // drop the line before classification
	isHeader func(line string) bool
	start    func(header string) T
	merge    func(entry *T, line string)
	empty    func(entry *T) bool
}

func (sc lineScanner[T]) scan(lines []string) []T {
	var (
		out     []T
		current *T
	)
	flush := func() {
		if current != nil && !sc.empty(current) && len(out) < maxSectionEntries {
			out = append(out, *current)
		}
		current = nil
	}
	for _, line := range lines {
		if sc.skip != nil && sc.skip(line) {
			continue
		}
		if sc.isHeader(line) {
			flush()
			e := sc.start(line)
			current = &e
		} else if current != nil {
			sc.merge(current, line)
		}
	}
	flush()
	return out
}

// isContinuation reports whether a line extends the open entry rather
// than standing alone: a bullet, or a bare year / year range.
func isContinuation(line string) bool {
	return bulletRe.MatchString(line) || yearRangeRe.MatchString(line) || yearRe.MatchString(line)
}

func scanEducation(lines []string) []ResumeEducation {
	sc := lineScanner[ResumeEducation]{
		isHeader: func(line string) bool { return degreeRe.MatchString(line) },
		start: func(header string) ResumeEducation {
			e := ResumeEducation{Degree: CleanTextStrict(header)}
			if m := institutionRe.FindString(header); m != "" {
				e.Institution = CleanText(m)
			}
			if m := yearRangeRe.FindString(header); m != "" {
				e.Year = CleanText(m)
			} else if m := yearRe.FindString(header); m != "" {
				e.Year = m
			}
			if m := gpaRe.FindStringSubmatch(header); m != nil {
				e.GPA = CleanText(m[1])
			}
			return e
		},
		merge: func(e *ResumeEducation, line string) {
			if e.Institution == "" {
				if m := institutionRe.FindString(line); m != "" {
					e.Institution = CleanText(m)
				}
			}
			if e.Year == "" {
				if m := yearRangeRe.FindString(line); m != "" {
					e.Year = CleanText(m)
				} else if m := yearRe.FindString(line); m != "" {
					e.Year = m
				}
			}
			if e.GPA == "" {
				if m := gpaRe.FindStringSubmatch(line); m != nil {
					e.GPA = CleanText(m[1])
				}
			}
		},
		empty: func(e *ResumeEducation) bool {
			return e.Degree == "" && e.Institution == ""
		},
	}
	return sc.scan(lines)
}

// atCompanyRe splits a "Title at Company" header line.
var atCompanyRe = regexp.MustCompile(`(?i)^(.*?)\s+(?:at|@)\s+(.+)$`)

func scanExperience(lines []string) []ResumeExperience {
	sc := lineScanner[ResumeExperience]{
		// Contact lines would otherwise classify as job titles.
		skip: func(line string) bool {
			return emailRe.MatchString(line) || longestDigitRun(line) >= 10
		},
		isHeader: func(line string) bool {
			return MatchesJobTitle(line) && !bulletRe.MatchString(line)
		},
		start: func(header string) ResumeExperience {
			e := ResumeExperience{}
			title := header
			if m := yearRangeRe.FindString(header); m != "" {
				e.Duration = CleanText(m)
				title = strings.Replace(title, m, "", 1)
			}
			if m := atCompanyRe.FindStringSubmatch(title); m != nil {
				e.Title = CleanTextStrict(m[1])
				e.Company = CleanTextStrict(m[2])
			} else {
				e.Title = CleanTextStrict(title)
			}
			return e
		},
		merge: func(e *ResumeExperience, line string) {
			if bulletRe.MatchString(line) {
				if text := CleanText(bulletRe.ReplaceAllString(line, "")); text != "" {
					e.Description = append(e.Description, text)
				}
				return
			}
			if e.Duration == "" {
				if m := yearRangeRe.FindString(line); m != "" {
					e.Duration = CleanText(m)
					return
				}
				if yearRe.MatchString(line) && len(strings.Fields(line)) <= 3 {
					e.Duration = CleanText(line)
					return
				}
			}
			if e.Company == "" && len(strings.Fields(line)) <= 6 {
				e.Company = CleanTextStrict(line)
				return
			}
			if text := CleanText(line); text != "" {
				e.Description = append(e.Description, text)
			}
		},
		empty: func(e *ResumeExperience) bool {
			return e.Title == "" && e.Company == ""
		},
	}
	return sc.scan(lines)
}

// longestDigitRun returns the longest run of digits in line, treating
// common phone separators as part of the run.
func longestDigitRun(line string) int {
	best, run := 0, 0
	for _, r := range line {
		switch {
		case r >= '0' && r <= '9':
			run++
			if run > best {
				best = run
			}
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')' || r == '+':
			// separator inside a phone number, keep the run open
		default:
			run = 0
		}
	}
	return best
}

func scanCertifications(lines []string) []ResumeCertification {
	sc := lineScanner[ResumeCertification]{
		isHeader: func(line string) bool { return MatchesCertification(line) },
		start: func(header string) ResumeCertification {
			return ResumeCertification{Name: CleanText(bulletRe.ReplaceAllString(header, ""))}
		},
		merge: func(_ *ResumeCertification, _ string) {},
		empty: func(c *ResumeCertification) bool { return c.Name == "" },
	}
	return sc.scan(lines)
}

func scanProjects(lines []string) []ResumeProject {
	sc := lineScanner[ResumeProject]{
		isHeader: func(line string) bool {
			return MatchesProject(line) && !bulletRe.MatchString(line)
		},
		start: func(header string) ResumeProject {
			return ResumeProject{Name: CleanText(header)}
		},
		merge: func(p *ResumeProject, line string) {
			if !isContinuation(line) {
				return
			}
			text := CleanText(bulletRe.ReplaceAllString(line, ""))
			if text == "" {
				return
			}
			if p.Description == "" {
				p.Description = text
			} else {
				p.Description += " " + text
			}
		},
		empty: func(p *ResumeProject) bool { return p.Name == "" },
	}
	projects := sc.scan(lines)
	for i := range projects {
		if skills := ExtractSkills(projects[i].Name + " " + projects[i].Description); len(skills) > 0 {
			projects[i].Technologies = strings.Join(skills, ", ")
		}
	}
	return projects
}
