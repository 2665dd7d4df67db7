package blog

import (
	"fmt"
	"strings"

	"github.com/spetersoncode/blogsmith/workflow"
)

// Post is a typed snapshot of a pipeline state. It round-trips through JSON
// so a finished run can be saved and resumed later.
type Post struct {
	SourceURL    string `json:"source_url"`
	ScrapedTitle string `json:"scraped_title,omitempty"`
	ScrapedText  string `json:"scraped_text,omitempty"`
	ScrapeFailed bool   `json:"scrape_failed"`

	SEOAnalysis string   `json:"seo_analysis,omitempty"`
	SEOTags     []string `json:"seo_tags"`

	Title       string   `json:"draft_title,omitempty"`
	Subtitles   []string `json:"draft_subtitles"`
	Body        string   `json:"draft_body,omitempty"`
	Subheadings []string `json:"subheadings"`

	QualityScore  int    `json:"quality_score"`
	QualityReport string `json:"quality_report,omitempty"`
	RewriteCount  int    `json:"rewrite_count"`

	ImageKeywords       []string `json:"image_keywords"`
	PrimaryImageRef     string   `json:"primary_image_ref,omitempty"`
	PrimaryImagePrompt  string   `json:"primary_image_prompt,omitempty"`
	SectionImageRefs    []string `json:"section_image_refs"`
	SectionImagePrompts []string `json:"section_image_prompts"`
}

// SectionImage pairs a subtitle image with the prompt that produced it.
type SectionImage struct {
	Prompt string `json:"prompt"`
	Ref    string `json:"ref"`
}

// PostFrom reads a Post from state. Missing fields are zero values.
func PostFrom(s *workflow.State) Post {
	return Post{
		SourceURL:           s.GetString(FieldSourceURL),
		ScrapedTitle:        s.GetString(FieldScrapedTitle),
		ScrapedText:         s.GetString(FieldScrapedText),
		ScrapeFailed:        scrapeFailed(s),
		SEOAnalysis:         s.GetString(FieldSEOAnalysis),
		SEOTags:             s.GetStrings(FieldSEOTags),
		Title:               s.GetString(FieldDraftTitle),
		Subtitles:           s.GetStrings(FieldDraftSubtitles),
		Body:                s.GetString(FieldDraftBody),
		Subheadings:         s.GetStrings(FieldSubheadings),
		QualityScore:        s.GetInt(FieldQualityScore),
		QualityReport:       s.GetString(FieldQualityReport),
		RewriteCount:        s.GetInt(FieldRewriteCount),
		ImageKeywords:       s.GetStrings(FieldImageKeywords),
		PrimaryImageRef:     s.GetString(FieldPrimaryImageRef),
		PrimaryImagePrompt:  s.GetString(FieldPrimaryImagePrompt),
		SectionImageRefs:    s.GetStrings(FieldSectionImageRefs),
		SectionImagePrompts: s.GetStrings(FieldSectionPrompts),
	}
}

// Patch converts the post back into state fields. Fields the post never
// had (an empty draft body, say) are left out so they stay absent.
func (p Post) Patch() workflow.Patch {
	out := KeySourceURL.Set(nil, p.SourceURL)
	KeyScrapeFailed.Set(out, p.ScrapeFailed)
	setString := func(k workflow.Key[string], v string) {
		if v != "" {
			k.Set(out, v)
		}
	}
	setStrings := func(k workflow.Key[[]string], v []string) {
		if v != nil {
			k.Set(out, append([]string(nil), v...))
		}
	}

	setString(KeyScrapedTitle, p.ScrapedTitle)
	setString(KeyScrapedText, p.ScrapedText)
	setString(KeySEOAnalysis, p.SEOAnalysis)
	setStrings(KeySEOTags, p.SEOTags)
	setString(KeyDraftTitle, p.Title)
	setStrings(KeyDraftSubtitles, p.Subtitles)
	setString(KeyDraftBody, p.Body)
	setStrings(KeySubheadings, p.Subheadings)
	setString(KeyQualityReport, p.QualityReport)
	setStrings(KeyImageKeywords, p.ImageKeywords)
	setString(KeyPrimaryImageRef, p.PrimaryImageRef)
	setString(KeyPrimaryImagePrompt, p.PrimaryImagePrompt)
	setStrings(KeySectionImageRefs, p.SectionImageRefs)
	setStrings(KeySectionPrompts, p.SectionImagePrompts)

	if p.Body != "" {
		KeyQualityScore.Set(out, p.QualityScore)
		KeyRewriteCount.Set(out, p.RewriteCount)
	}
	return out
}

// SectionImages returns the subtitle images that were rendered, skipping
// blank refs.
func (p Post) SectionImages() []SectionImage {
	n := min(len(p.SectionImageRefs), len(p.SectionImagePrompts))
	images := make([]SectionImage, 0, n)
	for i := 0; i < n; i++ {
		if p.SectionImageRefs[i] == "" {
			continue
		}
		images = append(images, SectionImage{Prompt: p.SectionImagePrompts[i], Ref: p.SectionImageRefs[i]})
	}
	return images
}

// Markdown renders the post for publishing: title, primary image, body,
// section images and hashtags.
func (p Post) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.PrimaryImageRef != "" {
		fmt.Fprintf(&b, "![%s](%s)\n\n", altText(p.ImageKeywords, p.Title), p.PrimaryImageRef)
	}
	b.WriteString(strings.TrimSpace(p.Body))
	b.WriteString("\n")

	if images := p.SectionImages(); len(images) > 0 {
		b.WriteString("\n")
		for _, img := range images {
			fmt.Fprintf(&b, "![%s](%s)\n", img.Prompt, img.Ref)
		}
	}
	if len(p.SEOTags) > 0 {
		tags := make([]string, len(p.SEOTags))
		for i, t := range p.SEOTags {
			tags[i] = "#" + strings.ReplaceAll(t, " ", "")
		}
		fmt.Fprintf(&b, "\n%s\n", strings.Join(tags, " "))
	}
	return b.String()
}

func altText(keywords []string, fallback string) string {
	if len(keywords) > 0 {
		return strings.Join(keywords, " ")
	}
	return fallback
}
