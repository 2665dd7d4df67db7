package blog

import (
	"context"

	"github.com/spetersoncode/blogsmith/fetch"
	"github.com/spetersoncode/blogsmith/search"
)

// ContentFetcher retrieves the title and main text of a page.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Page, error)
}

// TrendRetriever returns ranked search results for a query.
type TrendRetriever interface {
	Search(ctx context.Context, query string, max int) ([]search.Result, error)
}

// TextGenerator produces text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// ImageGenerator produces an image for a prompt and returns a reference to
// it: a URL or a data URI.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Task names the purpose of a generation request.
type Task string

const (
	TaskSEO         Task = "seo"
	TaskTitle       Task = "title"
	TaskSubtitles   Task = "subtitles"
	TaskDraft       Task = "draft"
	TaskScore       Task = "score"
	TaskKeywords    Task = "keywords"
	TaskImagePrompt Task = "image_prompt"
	TaskRevise      Task = "revise"
)

// Prompt is one generation request.
type Prompt struct {
	Task   Task
	System string
	User   string

	// JSON asks for a single JSON object in the response.
	JSON bool
}
