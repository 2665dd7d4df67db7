// Package mcp exposes the blog pipeline over MCP (Model Context Protocol).
//
// This package provides both sides of the integration:
//
//   - Server: serve a [Service] (usually a *blog.Pipeline) as MCP tools, so
//     MCP clients can generate, rewrite and revise posts.
//   - Client: call a running blogsmith MCP server through [Remote].
//
// # Serving
//
//	pipeline := blog.New(deps, blog.WithRewriteMode(blog.RewriteManual))
//	if err := mcp.ServeStdio(pipeline); err != nil {
//	    log.Fatal(err)
//	}
//
// # Calling
//
//	remote, err := mcp.NewRemote(ctx, "blogsmith", nil, "mcp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
//
//	res, err := remote.GeneratePost(ctx, "https://example.com/article")
package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/spetersoncode/blogsmith/blog"
)

// Tool names.
const (
	ToolGeneratePost = "generate_post"
	ToolRewritePost  = "rewrite_post"
	ToolReviseDraft  = "revise_draft"
)

// GenerateRequest are the arguments of generate_post.
type GenerateRequest struct {
	SourceURL string `json:"source_url"`
}

// RewriteRequest are the arguments of rewrite_post. The post to rewrite is
// either looked up by RunID or passed inline as returned by generate_post.
type RewriteRequest struct {
	RunID    string     `json:"run_id,omitempty"`
	Post     *blog.Post `json:"post,omitempty"`
	Feedback string     `json:"feedback,omitempty"`
}

// ReviseRequest are the arguments of revise_draft.
type ReviseRequest struct {
	Draft       string `json:"draft"`
	Feedback    string `json:"feedback"`
	Title       string `json:"title,omitempty"`
	SEOAnalysis string `json:"seo_analysis,omitempty"`
}

// PostResult is returned by generate_post and rewrite_post.
type PostResult struct {
	RunID    string    `json:"run_id"`
	Terminal string    `json:"terminal"`
	Path     []string  `json:"path"`
	Failed   bool      `json:"failed"`
	Post     blog.Post `json:"post"`
	Markdown string    `json:"markdown,omitempty"`
}

// ReviseResult is returned by revise_draft.
type ReviseResult struct {
	Draft string `json:"draft"`
}

// NewPostResult converts a pipeline outcome to a PostResult. Markdown is
// only rendered for successful runs.
func NewPostResult(o *blog.Outcome) *PostResult {
	path := make([]string, len(o.Path))
	for i, n := range o.Path {
		path[i] = n.String()
	}
	res := &PostResult{
		RunID:    o.RunID,
		Terminal: o.Terminal.String(),
		Path:     path,
		Failed:   o.Failed(),
		Post:     o.Post(),
	}
	if !res.Failed {
		res.Markdown = res.Post.Markdown()
	}
	return res
}

var (
	generateSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "source_url": {"type": "string", "description": "URL of the article to turn into a blog post"}
  },
  "required": ["source_url"]
}`)

	rewriteSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "run_id": {"type": "string", "description": "run_id returned by generate_post or rewrite_post"},
    "post": {"type": "object", "description": "The post object returned by generate_post or rewrite_post, used when run_id is not given"},
    "feedback": {"type": "string", "description": "Editor feedback for the rewrite; the quality report is used when empty"}
  }
}`)

	reviseSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "draft": {"type": "string", "description": "Markdown draft to revise"},
    "feedback": {"type": "string", "description": "What to change"},
    "title": {"type": "string", "description": "Post title"},
    "seo_analysis": {"type": "string", "description": "SEO strategy the draft follows"}
  },
  "required": ["draft", "feedback"]
}`)
)

// tool pairs an MCP tool definition with its handler.
type tool struct {
	Tool    mcp.Tool
	Handler func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// newTool binds the request arguments to R, calls handler and returns its
// result as JSON text. Handler errors become error results, not protocol
// errors.
func newTool[R any, T any](name, desc string, schema json.RawMessage, handler func(ctx context.Context, req R) (*T, error)) tool {
	return tool{
		Tool: mcp.NewToolWithRawSchema(name, desc, schema),
		Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var req R
			if err := request.BindArguments(&req); err != nil {
				return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
			}
			resp, err := handler(ctx, req)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			data, err := json.Marshal(resp)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(string(data)), nil
		},
	}
}

// resultText joins the text content of a tool result.
func resultText(result *mcp.CallToolResult) string {
	var text string
	for _, c := range result.Content {
		var part string
		switch content := c.(type) {
		case mcp.TextContent:
			part = content.Text
		case *mcp.TextContent:
			part = content.Text
		default:
			continue
		}
		if text != "" {
			text += "\n"
		}
		text += part
	}
	return text
}
