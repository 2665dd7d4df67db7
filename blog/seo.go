package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/spetersoncode/blogsmith/internal/prompts"
	"github.com/spetersoncode/blogsmith/search"
	"github.com/spetersoncode/blogsmith/workflow"
)

// StageSEO is the name of the SEO strategy stage.
const StageSEO = "seo"

// Trend search defaults.
const (
	DefaultTrendQuery   = "latest blog SEO optimization strategies"
	DefaultTrendResults = 3
)

type seoStage struct {
	retriever TrendRetriever
	generator TextGenerator
	query     string
	results   int
	report    *reporter
}

func (st *seoStage) Name() string { return StageSEO }

func (st *seoStage) Run(ctx context.Context, s *workflow.State) (workflow.Patch, error) {
	if st.generator == nil || st.retriever == nil {
		st.report.degraded(ctx, StageSEO, "SEO strategy skipped: trend search or text generator not configured", nil)
		return seoPatch(SEOUnavailable, []string{}), nil
	}

	trends := prompts.MustGet(prompts.Blog, "seo-no-trends")
	results, err := st.retriever.Search(ctx, st.query, st.results)
	switch {
	case err != nil:
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		st.report.degraded(ctx, StageSEO, "trend search failed", err)
	case len(results) > 0:
		trends = formatTrends(results)
	}

	user, err := prompts.Render(prompts.Blog, "seo-user", map[string]string{
		"Trends":  trends,
		"Content": Truncate(s.GetString(FieldScrapedText), seoSourceRunes),
	})
	if err != nil {
		return nil, err
	}

	text, err := st.generator.Generate(ctx, Prompt{
		Task:   TaskSEO,
		System: prompts.MustGet(prompts.Blog, "seo-system"),
		User:   user,
	})
	if err != nil || strings.TrimSpace(text) == "" {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		st.report.degraded(ctx, StageSEO, "SEO strategy generation failed", err)
		return seoPatch(SEOUnavailable, []string{}), nil
	}

	analysis, tags := SplitStrategy(text)
	if analysis == "" {
		analysis = SEOUnavailable
	}
	return seoPatch(analysis, tags), nil
}

func seoPatch(analysis string, tags []string) workflow.Patch {
	p := KeySEOAnalysis.Set(nil, analysis)
	KeySEOTags.Set(p, tags)
	return p
}

func formatTrends(results []search.Result) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "Title: %s\nContent: %s\n\n", r.Title, r.Content)
	}
	return strings.TrimSpace(b.String())
}
