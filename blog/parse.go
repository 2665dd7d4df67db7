package blog

import (
	"strings"
)

// Parsing limits.
const (
	MaxTags      = 30
	MaxSubtitles = 5
	MaxKeywords  = 2

	titleSourceRunes = 2000
	bodySourceRunes  = 4000
	seoSourceRunes   = 4000
)

// Section delimiters of the SEO strategy response.
const (
	StrategyDelimiter = "[Strategy Analysis]"
	TagsDelimiter     = "[Recommended Tags]"
)

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// SplitStrategy splits an SEO response into its analysis and its tags.
// The analysis is the text before TagsDelimiter, or the whole text when the
// delimiter is absent, in which case tags are empty.
func SplitStrategy(text string) (analysis string, tags []string) {
	idx := strings.Index(text, TagsDelimiter)
	if idx < 0 {
		return strings.TrimSpace(text), []string{}
	}
	return strings.TrimSpace(text[:idx]), ParseTags(text[idx+len(TagsDelimiter):])
}

// ParseTags splits a tag list on commas and newlines. Tags are trimmed,
// a leading '#' is dropped, empty tags are skipped and the result is
// capped at MaxTags.
func ParseTags(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		tag := strings.TrimSpace(f)
		tag = strings.TrimSpace(strings.TrimLeft(tag, "#"))
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == MaxTags {
			break
		}
	}
	return tags
}

// ParseTitle returns the first non-empty line of text with surrounding
// quotes, a leading Markdown heading marker and a "Title:" label removed.
func ParseTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))
		if rest, ok := cutPrefixFold(line, "title:"); ok {
			line = strings.TrimSpace(rest)
		}
		line = strings.TrimSpace(strings.Trim(line, "\"'*`“”"))
		if line != "" {
			return line
		}
	}
	return ""
}

// ParseSubtitles returns up to MaxSubtitles lines of text, skipping blank
// lines and lines that start with "**".
func ParseSubtitles(text string) []string {
	subtitles := make([]string, 0, MaxSubtitles)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "**") {
			continue
		}
		subtitles = append(subtitles, line)
		if len(subtitles) == MaxSubtitles {
			break
		}
	}
	return subtitles
}

// ExtractHeadings returns the text of every line starting with "## ", in
// order.
func ExtractHeadings(body string) []string {
	headings := []string{}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, "## ") {
			continue
		}
		if h := strings.TrimSpace(strings.TrimPrefix(line, "## ")); h != "" {
			headings = append(headings, h)
		}
	}
	return headings
}

// ParseKeywords splits an underscore-joined keyword answer and keeps at
// most MaxKeywords non-empty entries.
func ParseKeywords(text string) []string {
	line := ParseTitle(text)
	keywords := make([]string, 0, MaxKeywords)
	for _, kw := range strings.Split(line, "_") {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		keywords = append(keywords, kw)
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}

// oneLine collapses a generated image prompt to a single trimmed line.
func oneLine(text string) string {
	return strings.Join(strings.Fields(strings.Trim(strings.TrimSpace(text), "\"")), " ")
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
