package blog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/spetersoncode/blogsmith/fetch"
	"github.com/spetersoncode/blogsmith/search"
)

type fakeFetcher struct {
	page *fetch.Page
	err  error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*fetch.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := *f.page
	p.URL = url
	return &p, nil
}

type fakeRetriever struct {
	results []search.Result
	err     error
	queries []string
}

func (f *fakeRetriever) Search(_ context.Context, query string, max int) ([]search.Result, error) {
	f.queries = append(f.queries, fmt.Sprintf("%s/%d", query, max))
	return f.results, f.err
}

// fakeGenerator answers prompts through handler, which receives the
// prompt and the 1-indexed number of calls made so far for its task.
type fakeGenerator struct {
	mu      sync.Mutex
	handler func(p Prompt, n int) (string, error)
	calls   []Prompt
	counts  map[Task]int
}

func (f *fakeGenerator) Generate(_ context.Context, p Prompt) (string, error) {
	f.mu.Lock()
	if f.counts == nil {
		f.counts = map[Task]int{}
	}
	f.counts[p.Task]++
	n := f.counts[p.Task]
	f.calls = append(f.calls, p)
	f.mu.Unlock()
	return f.handler(p, n)
}

func (f *fakeGenerator) count(t Task) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[t]
}

func (f *fakeGenerator) prompts(t Task) []Prompt {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Prompt
	for _, p := range f.calls {
		if p.Task == t {
			out = append(out, p)
		}
	}
	return out
}

type fakeImages struct {
	mu      sync.Mutex
	fail    func(prompt string) bool
	prompts []string
}

func (f *fakeImages) GenerateImage(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.fail != nil && f.fail(prompt) {
		return "", fmt.Errorf("image backend down")
	}
	return fmt.Sprintf("https://img.example/%d.png", len(f.prompts)), nil
}

const (
	sourceText = "Go generics let you write functions over many types."
	seoReply   = "[Strategy Analysis]\n- lead with the keyword\n[Recommended Tags]\n#golang, generics,  , go tutorial\ntype parameters"
	draftReply = "Intro text\n## Intro\nplain text\n## Details\nMore text"
)

// scriptedGenerator returns a generator that scores the n-th draft with
// scores[n-1], repeating the last score when it runs out.
func scriptedGenerator(scores ...int) *fakeGenerator {
	return &fakeGenerator{handler: func(p Prompt, n int) (string, error) {
		switch p.Task {
		case TaskSEO:
			return seoReply, nil
		case TaskTitle:
			return `Title: "Mastering Go Generics"`, nil
		case TaskSubtitles:
			return "Why generics matter\n**Note**\n\nThree patterns to know\nCommon pitfalls\nReal-world results", nil
		case TaskDraft:
			return fmt.Sprintf("%s\n\ndraft %d", draftReply, n), nil
		case TaskScore:
			score := scores[len(scores)-1]
			if n <= len(scores) {
				score = scores[n-1]
			}
			return fmt.Sprintf("```json\n{\"blog_index\": {\"total_score\": %d}}\n```", score), nil
		case TaskKeywords:
			return "go_generics", nil
		case TaskImagePrompt:
			subject := p.User[strings.Index(p.User, "'")+1 : strings.LastIndex(p.User, "'")]
			return "An illustration of " + subject + ".", nil
		case TaskRevise:
			return "revised draft", nil
		}
		return "", fmt.Errorf("unexpected task %s", p.Task)
	}}
}

func okFetcher() *fakeFetcher {
	return &fakeFetcher{page: &fetch.Page{Title: "Generics in Go", Text: sourceText}}
}

func okRetriever() *fakeRetriever {
	return &fakeRetriever{results: []search.Result{{Title: "SEO 2026", Content: "Use long-tail keywords."}}}
}
