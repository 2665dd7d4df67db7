package blog

import (
	"context"
	"strings"

	"github.com/spetersoncode/blogsmith/internal/prompts"
	"github.com/spetersoncode/blogsmith/workflow"
)

// StageWriting is the name of the writing stage.
const StageWriting = "writing"

type writingStage struct {
	generator TextGenerator
	report    *reporter
}

func (st *writingStage) Name() string { return StageWriting }

// Run drafts a title, subtitles and a body. On a rewrite pass the body
// prompt carries the quality report and any editor feedback.
func (st *writingStage) Run(ctx context.Context, s *workflow.State) (workflow.Patch, error) {
	rewrite := s.GetBool(FieldRewriteRequested)
	count := 0
	if rewrite {
		count = s.GetInt(FieldRewriteCount) + 1
	}

	p := workflow.Patch{}
	KeyRewriteRequested.Set(p, false)
	KeyRewriteFeedback.Set(p, "")
	KeyRewriteCount.Set(p, count)

	if st.generator == nil {
		st.report.degraded(ctx, StageWriting, "drafting skipped: text generator not configured", nil)
		return draftPatch(p, TitleUnavailable, []string{}, DraftUnavailable), nil
	}

	analysis := s.GetString(FieldSEOAnalysis)
	source := s.GetString(FieldScrapedText)

	title := TitleUnavailable
	text, err := st.generate(ctx, TaskTitle, "", "title", map[string]string{
		"Analysis": analysis,
		"Content":  Truncate(source, titleSourceRunes),
	})
	if err != nil {
		return nil, err
	}
	if t := ParseTitle(text); t != "" {
		title = t
	}

	subtitles := []string{}
	text, err = st.generate(ctx, TaskSubtitles, "", "subtitles", map[string]string{
		"Title":    title,
		"Analysis": analysis,
	})
	if err != nil {
		return nil, err
	}
	if text != "" {
		subtitles = ParseSubtitles(text)
	}

	system := prompts.MustGet(prompts.Blog, "draft-system")
	if rewrite {
		system += rewriteGuidance(s.GetString(FieldQualityReport), s.GetString(FieldRewriteFeedback))
	}
	body := DraftUnavailable
	text, err = st.generate(ctx, TaskDraft, system, "draft-user", map[string]string{
		"Title":    title,
		"Analysis": analysis,
		"Content":  Truncate(source, bodySourceRunes),
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) != "" {
		body = text
	}

	return draftPatch(p, title, subtitles, body), nil
}

// generate renders key and calls the generator. A generator failure is
// reported and yields "", only cancellation is returned as an error.
func (st *writingStage) generate(ctx context.Context, task Task, system, key string, data map[string]string) (string, error) {
	user, err := prompts.Render(prompts.Blog, key, data)
	if err != nil {
		return "", err
	}
	text, err := st.generator.Generate(ctx, Prompt{Task: task, System: system, User: user})
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return "", cerr
		}
		st.report.degraded(ctx, StageWriting, string(task)+" generation failed", err)
		return "", nil
	}
	return text, nil
}

func rewriteGuidance(report, feedback string) string {
	var b strings.Builder
	if report != "" {
		b.WriteString(prompts.Format(prompts.MustGet(prompts.Blog, "rewrite-guidance"), map[string]string{"Report": report}))
	}
	if feedback != "" && strings.TrimSpace(feedback) != strings.TrimSpace(report) {
		b.WriteString(prompts.Format(prompts.MustGet(prompts.Blog, "editor-feedback"), map[string]string{"Feedback": feedback}))
	}
	return b.String()
}

func draftPatch(p workflow.Patch, title string, subtitles []string, body string) workflow.Patch {
	KeyDraftTitle.Set(p, title)
	KeyDraftSubtitles.Set(p, subtitles)
	KeyDraftBody.Set(p, body)
	KeySubheadings.Set(p, ExtractHeadings(body))
	return p
}
