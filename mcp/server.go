package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/server"

	"github.com/spetersoncode/blogsmith/blog"
	"github.com/spetersoncode/blogsmith/store"
	"github.com/spetersoncode/blogsmith/workflow"
)

// Service is the caller API the server exposes. *blog.Pipeline implements
// it.
type Service interface {
	Run(ctx context.Context, initial map[string]any) (*blog.Outcome, error)
	ResumeWithRewriteFeedback(ctx context.Context, state *workflow.State, feedback string) (*blog.Outcome, error)
	Revise(ctx context.Context, draft, feedback, title, seoAnalysis string) (string, error)
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
	posts   *store.Posts
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// WithStore sets where finished posts are kept by run ID. rewrite_post can
// then be called with a run_id instead of the full post. Defaults to an
// in-memory store.
func WithStore(posts *store.Posts) ServerOption {
	return func(c *serverConfig) {
		c.posts = posts
	}
}

// NewServer creates an MCP server exposing svc as the generate_post,
// rewrite_post and revise_draft tools.
//
// rewrite_post only succeeds when svc runs in manual rewrite mode.
func NewServer(svc Service, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "blogsmith",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.posts == nil {
		cfg.posts = store.NewPosts(nil)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	h := &handlers{svc: svc, posts: cfg.posts}
	for _, t := range []tool{
		newTool(ToolGeneratePost, "Research an article and turn it into an SEO-optimized blog post with images.", generateSchema, h.generate),
		newTool(ToolRewritePost, "Rewrite the draft of a previously generated post using editor feedback.", rewriteSchema, h.rewrite),
		newTool(ToolReviseDraft, "Revise a Markdown draft according to feedback.", reviseSchema, h.revise),
	} {
		s.AddTool(t.Tool, t.Handler)
	}
	return s
}

type handlers struct {
	svc   Service
	posts *store.Posts
}

func (h *handlers) generate(ctx context.Context, req GenerateRequest) (*PostResult, error) {
	url := strings.TrimSpace(req.SourceURL)
	if url == "" {
		return nil, blog.ErrMissingSourceURL
	}
	out, err := h.svc.Run(ctx, map[string]any{blog.FieldSourceURL: url})
	if err != nil {
		return nil, err
	}
	return h.save(ctx, out)
}

func (h *handlers) rewrite(ctx context.Context, req RewriteRequest) (*PostResult, error) {
	post, err := h.rewriteSource(ctx, req)
	if err != nil {
		return nil, err
	}
	out, err := h.svc.ResumeWithRewriteFeedback(ctx, workflow.NewState(post.Patch()), req.Feedback)
	if err != nil {
		return nil, err
	}
	return h.save(ctx, out)
}

// rewriteSource returns the post to rewrite: the stored post for RunID, or
// the inline one.
func (h *handlers) rewriteSource(ctx context.Context, req RewriteRequest) (blog.Post, error) {
	if req.RunID != "" {
		return h.posts.Load(ctx, req.RunID)
	}
	if req.Post == nil || req.Post.SourceURL == "" {
		return blog.Post{}, errors.New("run_id or post with source_url is required")
	}
	return *req.Post, nil
}

// save keeps the outcome's post under its run ID and converts it.
func (h *handlers) save(ctx context.Context, out *blog.Outcome) (*PostResult, error) {
	res := NewPostResult(out)
	if err := h.posts.Save(ctx, out.RunID, res.Post); err != nil {
		return nil, err
	}
	return res, nil
}

func (h *handlers) revise(ctx context.Context, req ReviseRequest) (*ReviseResult, error) {
	draft, err := h.svc.Revise(ctx, req.Draft, req.Feedback, req.Title, req.SEOAnalysis)
	if err != nil {
		return nil, err
	}
	return &ReviseResult{Draft: draft}, nil
}

// ServeStdio serves svc over stdin/stdout. This is the standard transport
// for MCP servers invoked as subprocesses.
func ServeStdio(svc Service, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(svc, opts...))
}
