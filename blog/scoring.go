package blog

import (
	"context"
	"strings"

	"github.com/spetersoncode/blogsmith/internal/prompts"
	"github.com/spetersoncode/blogsmith/workflow"
)

// StageScoring is the name of the quality scoring stage.
const StageScoring = "scoring"

type scoringStage struct {
	generator TextGenerator
	format    ScoreFormat
	report    *reporter
}

func (st *scoringStage) Name() string { return StageScoring }

func (st *scoringStage) Run(ctx context.Context, s *workflow.State) (workflow.Patch, error) {
	body := s.GetString(FieldDraftBody)
	if st.generator == nil || body == "" || body == DraftUnavailable {
		st.report.degraded(ctx, StageScoring, "scoring skipped: no draft or text generator", nil)
		return scorePatch(0, ScoringUnavailable), nil
	}

	systemKey := "score-system-json"
	if st.format == ScoreFormatText {
		systemKey = "score-system-text"
	}
	user, err := prompts.Render(prompts.Blog, "score-user", map[string]string{"Draft": body})
	if err != nil {
		return nil, err
	}

	text, err := st.generator.Generate(ctx, Prompt{
		Task:   TaskScore,
		System: prompts.MustGet(prompts.Blog, systemKey),
		User:   user,
		JSON:   st.format != ScoreFormatText,
	})
	if err != nil || strings.TrimSpace(text) == "" {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		st.report.degraded(ctx, StageScoring, "quality scoring failed", err)
		return scorePatch(0, ScoringUnavailable), nil
	}

	score, ok := ParseScore(text)
	if !ok {
		st.report.degraded(ctx, StageScoring, "quality score not found in response", nil)
	}
	return scorePatch(score, text), nil
}

func scorePatch(score int, report string) workflow.Patch {
	p := KeyQualityScore.Set(nil, score)
	KeyQualityReport.Set(p, report)
	return p
}
