package blog

import (
	"strings"

	"github.com/spetersoncode/blogsmith/workflow"
)

// State field names.
const (
	FieldSourceURL          = "source_url"
	FieldScrapedTitle       = "scraped_title"
	FieldScrapedText        = "scraped_text"
	FieldScrapeFailed       = "scrape_failed"
	FieldSEOAnalysis        = "seo_analysis"
	FieldSEOTags            = "seo_tags"
	FieldDraftTitle         = "draft_title"
	FieldDraftSubtitles     = "draft_subtitles"
	FieldDraftBody          = "draft_body"
	FieldSubheadings        = "subheadings"
	FieldQualityScore       = "quality_score"
	FieldQualityReport      = "quality_report"
	FieldRewriteCount       = "rewrite_count"
	FieldRewriteRequested   = "rewrite_requested"
	FieldRewriteFeedback    = "rewrite_feedback"
	FieldImageKeywords      = "image_keywords"
	FieldPrimaryImageRef    = "primary_image_ref"
	FieldPrimaryImagePrompt = "primary_image_prompt"
	FieldSectionImageRefs   = "section_image_refs"
	FieldSectionPrompts     = "section_image_prompts"
)

// Typed keys for the fields stages write.
var (
	KeySourceURL          = workflow.NewKey[string](FieldSourceURL)
	KeyScrapedTitle       = workflow.NewKey[string](FieldScrapedTitle)
	KeyScrapedText        = workflow.NewKey[string](FieldScrapedText)
	KeyScrapeFailed       = workflow.NewKey[bool](FieldScrapeFailed)
	KeySEOAnalysis        = workflow.NewKey[string](FieldSEOAnalysis)
	KeySEOTags            = workflow.NewKey[[]string](FieldSEOTags)
	KeyDraftTitle         = workflow.NewKey[string](FieldDraftTitle)
	KeyDraftSubtitles     = workflow.NewKey[[]string](FieldDraftSubtitles)
	KeyDraftBody          = workflow.NewKey[string](FieldDraftBody)
	KeySubheadings        = workflow.NewKey[[]string](FieldSubheadings)
	KeyQualityScore       = workflow.NewKey[int](FieldQualityScore)
	KeyQualityReport      = workflow.NewKey[string](FieldQualityReport)
	KeyRewriteCount       = workflow.NewKey[int](FieldRewriteCount)
	KeyRewriteRequested   = workflow.NewKey[bool](FieldRewriteRequested)
	KeyRewriteFeedback    = workflow.NewKey[string](FieldRewriteFeedback)
	KeyImageKeywords      = workflow.NewKey[[]string](FieldImageKeywords)
	KeyPrimaryImageRef    = workflow.NewKey[string](FieldPrimaryImageRef)
	KeyPrimaryImagePrompt = workflow.NewKey[string](FieldPrimaryImagePrompt)
	KeySectionImageRefs   = workflow.NewKey[[]string](FieldSectionImageRefs)
	KeySectionPrompts     = workflow.NewKey[[]string](FieldSectionPrompts)
)

// FailureTag prefixes scraped_text when the source could not be fetched.
const FailureTag = "analysis failed:"

// Fallback values written by degraded stages.
const (
	SEOUnavailable     = "SEO analysis unavailable"
	TitleUnavailable   = "Title unavailable"
	DraftUnavailable   = "Draft unavailable"
	ScoringUnavailable = "Quality scoring unavailable"
)

// FailureReason is the closed set of reasons carried after FailureTag.
type FailureReason string

const (
	ReasonNetwork     FailureReason = "network error"
	ReasonForbidden   FailureReason = "forbidden or empty content"
	ReasonUnparseable FailureReason = "unparseable page structure"
)

// IsFailureMarker reports whether text starts with FailureTag. Only a
// prefix counts, so page text that merely quotes the tag is not a failure.
// The router reads scrape_failed first and uses this test only for states
// that lack it.
func IsFailureMarker(text string) bool {
	return strings.HasPrefix(text, FailureTag)
}

// FailureMarker builds the scraped_text value for a failed fetch. detail
// is appended in parentheses when non-empty.
func FailureMarker(reason FailureReason, detail string) string {
	marker := FailureTag + " " + string(reason)
	if detail != "" {
		marker += " (" + detail + ")"
	}
	return marker
}

// scrapeFailed reads the research outcome. The derived boolean wins when
// present; states built by hand fall back to the prefix test.
func scrapeFailed(s *workflow.State) bool {
	if failed, ok := workflow.Get(s, KeyScrapeFailed); ok {
		return failed
	}
	return IsFailureMarker(s.GetString(FieldScrapedText))
}
