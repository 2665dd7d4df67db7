package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spetersoncode/blogsmith/internal/prompts"
)

// Revise rewrites draft according to feedback with a single generation
// call. It does not touch any pipeline state.
func (p *Pipeline) Revise(ctx context.Context, draft, feedback, title, seoAnalysis string) (string, error) {
	if p.deps.Generator == nil {
		return "", ErrNoGenerator
	}
	if strings.TrimSpace(draft) == "" {
		return "", errors.New("blog: revise: draft is empty")
	}

	user, err := prompts.Render(prompts.Blog, "revise-user", map[string]string{
		"Title":    title,
		"Analysis": seoAnalysis,
		"Feedback": feedback,
		"Draft":    draft,
	})
	if err != nil {
		return "", err
	}

	text, err := p.deps.Generator.Generate(ctx, Prompt{
		Task:   TaskRevise,
		System: prompts.MustGet(prompts.Blog, "revise-system"),
		User:   user,
	})
	if err != nil {
		return "", fmt.Errorf("blog: revise: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("blog: revise: empty response")
	}
	return text, nil
}
