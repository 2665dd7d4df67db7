package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/blogsmith/event"
	"github.com/spetersoncode/blogsmith/workflow"
)

func testReporter(obs event.Observer) *reporter {
	if obs == nil {
		obs = event.Discard
	}
	return &reporter{obs: obs, log: slog.New(slog.DiscardHandler)}
}

func TestSEOStage(t *testing.T) {
	state := func() *workflow.State {
		return workflow.NewState(map[string]any{FieldScrapedText: strings.Repeat("word ", 2000)})
	}

	t.Run("idempotent for a deterministic generator", func(t *testing.T) {
		st := &seoStage{retriever: okRetriever(), generator: scriptedGenerator(75), query: DefaultTrendQuery, results: 3, report: testReporter(nil)}

		first, err := st.Run(context.Background(), state())
		require.NoError(t, err)
		second, err := st.Run(context.Background(), state())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("queries trends and truncates the source", func(t *testing.T) {
		retriever := okRetriever()
		gen := scriptedGenerator(75)
		st := &seoStage{retriever: retriever, generator: gen, query: "q", results: 3, report: testReporter(nil)}

		_, err := st.Run(context.Background(), state())
		require.NoError(t, err)
		assert.Equal(t, []string{"q/3"}, retriever.queries)

		calls := gen.prompts(TaskSEO)
		require.Len(t, calls, 1)
		assert.Contains(t, calls[0].User, "Title: SEO 2026")
		assert.Less(t, len(calls[0].User), 4000+500)
		assert.Contains(t, calls[0].System, TagsDelimiter)
	})

	t.Run("retriever error still runs the generator", func(t *testing.T) {
		rec := &event.Recorder{}
		gen := scriptedGenerator(75)
		st := &seoStage{retriever: &fakeRetriever{err: errors.New("quota")}, generator: gen, query: "q", results: 3, report: testReporter(rec)}

		p, err := st.Run(context.Background(), state())
		require.NoError(t, err)
		assert.Equal(t, []string{"golang", "generics", "go tutorial", "type parameters"}, p[FieldSEOTags])
		assert.Contains(t, gen.prompts(TaskSEO)[0].User, "No trend data available.")
		assert.Len(t, rec.OfType(event.StageDegraded), 1)
	})

	t.Run("missing delimiter gives empty tags", func(t *testing.T) {
		gen := &fakeGenerator{handler: func(Prompt, int) (string, error) { return "just advice", nil }}
		st := &seoStage{retriever: okRetriever(), generator: gen, query: "q", results: 3, report: testReporter(nil)}

		p, err := st.Run(context.Background(), state())
		require.NoError(t, err)
		assert.Equal(t, "just advice", p[FieldSEOAnalysis])
		assert.Equal(t, []string{}, p[FieldSEOTags])
	})

	t.Run("tag cap", func(t *testing.T) {
		var tags []string
		for i := 0; i < 40; i++ {
			tags = append(tags, fmt.Sprintf("t%d", i))
		}
		gen := &fakeGenerator{handler: func(Prompt, int) (string, error) {
			return "analysis\n" + TagsDelimiter + "\n" + strings.Join(tags, ", "), nil
		}}
		st := &seoStage{retriever: okRetriever(), generator: gen, query: "q", results: 3, report: testReporter(nil)}

		p, err := st.Run(context.Background(), state())
		require.NoError(t, err)
		assert.Len(t, p[FieldSEOTags], MaxTags)
	})
}

func TestWritingStage(t *testing.T) {
	t.Run("fresh pass resets the rewrite count", func(t *testing.T) {
		s := workflow.NewState(map[string]any{FieldScrapedText: sourceText, FieldRewriteCount: 2})
		st := &writingStage{generator: scriptedGenerator(75), report: testReporter(nil)}

		p, err := st.Run(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, 0, p[FieldRewriteCount])
		assert.Equal(t, false, p[FieldRewriteRequested])
		assert.Equal(t, "", p[FieldRewriteFeedback])
	})

	t.Run("rewrite pass increments and clears the request", func(t *testing.T) {
		s := workflow.NewState(map[string]any{
			FieldScrapedText:      sourceText,
			FieldRewriteCount:     1,
			FieldRewriteRequested: true,
			FieldRewriteFeedback:  "Use more examples.",
			FieldQualityReport:    "Criterion 1: 3/10",
		})
		gen := scriptedGenerator(75)
		st := &writingStage{generator: gen, report: testReporter(nil)}

		p, err := st.Run(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, 2, p[FieldRewriteCount])
		assert.Equal(t, false, p[FieldRewriteRequested])
		assert.Equal(t, "", p[FieldRewriteFeedback])

		system := gen.prompts(TaskDraft)[0].System
		assert.Contains(t, system, "Criterion 1: 3/10")
		assert.Contains(t, system, "Use more examples.")
	})

	t.Run("subtitle cap and title prompt budget", func(t *testing.T) {
		gen := &fakeGenerator{handler: func(p Prompt, _ int) (string, error) {
			switch p.Task {
			case TaskSubtitles:
				return "a\nb\nc\nd\ne\nf\ng\nh", nil
			case TaskTitle:
				return "T", nil
			}
			return draftReply, nil
		}}
		s := workflow.NewState(map[string]any{FieldScrapedText: strings.Repeat("x", 5000)})
		st := &writingStage{generator: gen, report: testReporter(nil)}

		p, err := st.Run(context.Background(), s)
		require.NoError(t, err)
		assert.Len(t, p[FieldDraftSubtitles], MaxSubtitles)
		assert.NotContains(t, gen.prompts(TaskTitle)[0].User, strings.Repeat("x", titleSourceRunes+1))
		assert.Contains(t, gen.prompts(TaskDraft)[0].User, strings.Repeat("x", bodySourceRunes))
		assert.NotContains(t, gen.prompts(TaskDraft)[0].User, strings.Repeat("x", bodySourceRunes+1))
	})

	t.Run("each call degrades on its own", func(t *testing.T) {
		gen := &fakeGenerator{handler: func(p Prompt, _ int) (string, error) {
			if p.Task == TaskTitle {
				return "", errors.New("timeout")
			}
			if p.Task == TaskSubtitles {
				return "Only one", nil
			}
			return draftReply, nil
		}}
		st := &writingStage{generator: gen, report: testReporter(nil)}

		p, err := st.Run(context.Background(), workflow.NewState(map[string]any{FieldScrapedText: sourceText}))
		require.NoError(t, err)
		assert.Equal(t, TitleUnavailable, p[FieldDraftTitle])
		assert.Equal(t, []string{"Only one"}, p[FieldDraftSubtitles])
		assert.Equal(t, []string{"Intro", "Details"}, p[FieldSubheadings])
	})
}

func TestScoringStage(t *testing.T) {
	body := workflow.NewState(map[string]any{FieldDraftBody: draftReply})

	t.Run("json format", func(t *testing.T) {
		gen := scriptedGenerator(81)
		st := &scoringStage{generator: gen, format: ScoreFormatJSON, report: testReporter(nil)}

		p, err := st.Run(context.Background(), body)
		require.NoError(t, err)
		assert.Equal(t, 81, p[FieldQualityScore])
		assert.True(t, gen.prompts(TaskScore)[0].JSON)
	})

	t.Run("text format", func(t *testing.T) {
		gen := &fakeGenerator{handler: func(Prompt, int) (string, error) {
			return "Criterion 1: 8/10\nTotal: 58/100", nil
		}}
		st := &scoringStage{generator: gen, format: ScoreFormatText, report: testReporter(nil)}

		p, err := st.Run(context.Background(), body)
		require.NoError(t, err)
		assert.Equal(t, 58, p[FieldQualityScore])
		assert.Equal(t, "Criterion 1: 8/10\nTotal: 58/100", p[FieldQualityReport])
		assert.False(t, gen.prompts(TaskScore)[0].JSON)
		assert.Contains(t, gen.prompts(TaskScore)[0].System, "Total: N/100")
	})

	t.Run("unparseable response scores zero", func(t *testing.T) {
		rec := &event.Recorder{}
		gen := &fakeGenerator{handler: func(Prompt, int) (string, error) { return "looks fine", nil }}
		st := &scoringStage{generator: gen, format: ScoreFormatJSON, report: testReporter(rec)}

		p, err := st.Run(context.Background(), body)
		require.NoError(t, err)
		assert.Equal(t, 0, p[FieldQualityScore])
		assert.Equal(t, "looks fine", p[FieldQualityReport])
		assert.Len(t, rec.OfType(event.StageDegraded), 1)
	})

	t.Run("generator failure", func(t *testing.T) {
		gen := &fakeGenerator{handler: func(Prompt, int) (string, error) { return "", errors.New("boom") }}
		st := &scoringStage{generator: gen, report: testReporter(nil)}

		p, err := st.Run(context.Background(), body)
		require.NoError(t, err)
		assert.Equal(t, 0, p[FieldQualityScore])
		assert.Equal(t, ScoringUnavailable, p[FieldQualityReport])
	})
}

func TestArtStage(t *testing.T) {
	state := func() *workflow.State {
		return workflow.NewState(map[string]any{
			FieldDraftTitle:     "Mastering Go Generics",
			FieldDraftSubtitles: []string{"First", "Second", "Third", "Fourth"},
		})
	}

	t.Run("title and three subtitles", func(t *testing.T) {
		images := &fakeImages{}
		st := &artStage{generator: scriptedGenerator(75), images: images, report: testReporter(nil)}

		p, err := st.Run(context.Background(), state())
		require.NoError(t, err)
		assert.Equal(t, "An illustration of Mastering Go Generics.", p[FieldPrimaryImagePrompt])
		assert.Equal(t, "https://img.example/1.png", p[FieldPrimaryImageRef])
		assert.Equal(t, []string{
			"An illustration of First.",
			"An illustration of Second.",
			"An illustration of Third.",
		}, p[FieldSectionPrompts])
		assert.Len(t, p[FieldSectionImageRefs], 3)
		assert.Len(t, images.prompts, 4)
	})

	t.Run("image failure leaves a blank ref in place", func(t *testing.T) {
		images := &fakeImages{fail: func(prompt string) bool { return strings.Contains(prompt, "Second") }}
		st := &artStage{generator: scriptedGenerator(75), images: images, report: testReporter(nil)}

		p, err := st.Run(context.Background(), state())
		require.NoError(t, err)
		refs := p[FieldSectionImageRefs].([]string)
		require.Len(t, refs, 3)
		assert.NotEmpty(t, refs[0])
		assert.Empty(t, refs[1])
		assert.NotEmpty(t, refs[2])
		assert.Len(t, p[FieldSectionPrompts], 3)
	})

	t.Run("prompt failure drops the subtitle", func(t *testing.T) {
		gen := scriptedGenerator(75)
		inner := gen.handler
		gen.handler = func(p Prompt, n int) (string, error) {
			if p.Task == TaskImagePrompt && strings.Contains(p.User, "'First'") {
				return "", errors.New("refused")
			}
			return inner(p, n)
		}
		st := &artStage{generator: gen, images: &fakeImages{}, report: testReporter(nil)}

		p, err := st.Run(context.Background(), state())
		require.NoError(t, err)
		assert.Equal(t, []string{"An illustration of Second.", "An illustration of Third."}, p[FieldSectionPrompts])
		assert.Len(t, p[FieldSectionImageRefs], 2)
	})

	t.Run("no image generator", func(t *testing.T) {
		gen := scriptedGenerator(75)
		st := &artStage{generator: gen, report: testReporter(nil)}

		p, err := st.Run(context.Background(), state())
		require.NoError(t, err)
		assert.Equal(t, workflow.Patch{
			FieldImageKeywords:      []string{},
			FieldPrimaryImageRef:    "",
			FieldPrimaryImagePrompt: "",
			FieldSectionImageRefs:   []string{},
			FieldSectionPrompts:     []string{},
		}, p)
		assert.Empty(t, gen.calls)
	})
}
