package engine

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// defaultExcludeKeywords filter out boilerplate and section-header text
// during free-text extraction.
var defaultExcludeKeywords = []string{
	"copyright", "privacy", "terms", "cookie", "all rights",
	"responsibilities", "experience", "projects", "skills", "education", "contact",
}

// listExcludeKeywords filter out navigation/header items during list
// extraction.
var listExcludeKeywords = []string{
	"projects", "skills", "experience", "education", "contact", "resume",
	"certificates", "terms", "conditions", "icon", "hackathons", "internships",
}

// containsAny reports whether the lowercase form of text contains any
// of the given keywords.
func containsAny(text string, keywords []string) bool {
	l := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(l, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// ExtractText gathers matching-tag text across an ordered selector
// group: each match is cleaned, kept when it fits maxLen, contains a
// keyword (when keywords are given), and contains no exclude keyword;
// survivors are de-duplicated preserving order, joined with a single
// space, and truncated to maxLen. When the selector pass yields
// nothing and fallbackTags are supplied, the same filter runs over
// plain tag-name matches. Returns "" when nothing survives.
func ExtractText(root *goquery.Selection, selectors []string, maxLen int, keywords, exclude []string, fallbackTags ...string) string {
	if exclude == nil {
		exclude = defaultExcludeKeywords
	}

	keep := func(text string) bool {
		if text == "" || len(text) > maxLen {
			return false
		}
		if len(keywords) > 0 && !containsAny(text, keywords) {
			return false
		}
		return !containsAny(text, exclude)
	}

	var texts []string
	seen := make(map[string]bool)
	collect := func(sel *goquery.Selection) {
		sel.Each(func(_ int, s *goquery.Selection) {
			text := CleanText(s.Text())
			if keep(text) && !seen[text] {
				seen[text] = true
				texts = append(texts, text)
			}
		})
	}

	for _, selector := range selectors {
		collect(root.Find(selector))
	}
	if len(texts) == 0 {
		for _, tag := range fallbackTags {
			collect(root.Find(tag))
		}
	}
	if len(texts) == 0 {
		return ""
	}
	return Truncate(strings.Join(texts, " "), maxLen)
}

// ExtractSingleText returns the first selector's first matching,
// cleaned, length-bounded text, for fields where multiplicity is not
// wanted, such as a single entry's title.
func ExtractSingleText(root *goquery.Selection, selectors []string, maxLen int) string {
	for _, selector := range selectors {
		text := CleanText(root.Find(selector).First().Text())
		if text != "" {
			return Truncate(text, maxLen)
		}
	}
	return ""
}

// ExtractList gathers unique short text items from list-like markup.
// Each matched element contributes its text (or alt/title attribute);
// values containing the separator are split into items, others are
// kept whole when at most five words long. Items matching the
// exclusion set are dropped; order of first appearance is preserved.
func ExtractList(root *goquery.Selection, selectors []string, separator string) []string {
	var items []string
	seen := make(map[string]bool)

	add := func(item string) {
		item = CleanText(item)
		if item == "" || seen[item] || containsAny(item, listExcludeKeywords) {
			return
		}
		seen[item] = true
		items = append(items, item)
	}

	for _, selector := range selectors {
		root.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := CleanText(s.Text())
			if text == "" {
				text = CleanText(s.AttrOr("alt", ""))
			}
			if text == "" {
				text = CleanText(s.AttrOr("title", ""))
			}
			if text == "" || containsAny(text, listExcludeKeywords) {
				return
			}
			if strings.Contains(text, separator) {
				for _, part := range strings.Split(text, separator) {
					add(part)
				}
			} else if len(strings.Fields(text)) <= 5 {
				add(text)
			}
		})
	}
	return items
}

// ExtractLink returns the first selector's first element carrying an
// href, resolved against baseURL. mailto: targets are returned with
// the scheme stripped.
func ExtractLink(root *goquery.Selection, selectors []string, baseURL string) string {
	for _, selector := range selectors {
		href, ok := root.Find(selector).First().Attr("href")
		if !ok || href == "" {
			continue
		}
		if strings.HasPrefix(href, "mailto:") {
			return strings.TrimPrefix(href, "mailto:")
		}
		return resolveURL(baseURL, href)
	}
	return ""
}

// resolveURL resolves href against base, returning href untouched when
// either side fails to parse.
func resolveURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
