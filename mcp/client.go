package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/spetersoncode/blogsmith/blog"
)

// Remote calls the tools of a blogsmith MCP server.
type Remote struct {
	client *client.Client
}

// NewRemote starts command as a stdio MCP server and connects to it.
//
// Example:
//
//	remote, err := mcp.NewRemote(ctx, "blogsmith", os.Environ(), "mcp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
func NewRemote(ctx context.Context, command string, env []string, args ...string) (*Remote, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}
	return NewRemoteFromClient(ctx, c)
}

// NewRemoteFromClient initializes an MCP session on c.
func NewRemoteFromClient(ctx context.Context, c *client.Client) (*Remote, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "blogsmith-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}
	return &Remote{client: c}, nil
}

// Close closes the connection to the server.
func (r *Remote) Close() error {
	return r.client.Close()
}

// GeneratePost calls generate_post.
func (r *Remote) GeneratePost(ctx context.Context, sourceURL string) (*PostResult, error) {
	var res PostResult
	if err := r.call(ctx, ToolGeneratePost, GenerateRequest{SourceURL: sourceURL}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RewritePost calls rewrite_post with an inline post.
func (r *Remote) RewritePost(ctx context.Context, post blog.Post, feedback string) (*PostResult, error) {
	return r.rewrite(ctx, RewriteRequest{Post: &post, Feedback: feedback})
}

// RewriteRun calls rewrite_post for a post the server kept under runID.
func (r *Remote) RewriteRun(ctx context.Context, runID, feedback string) (*PostResult, error) {
	return r.rewrite(ctx, RewriteRequest{RunID: runID, Feedback: feedback})
}

func (r *Remote) rewrite(ctx context.Context, req RewriteRequest) (*PostResult, error) {
	var res PostResult
	if err := r.call(ctx, ToolRewritePost, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ReviseDraft calls revise_draft and returns the revised draft.
func (r *Remote) ReviseDraft(ctx context.Context, req ReviseRequest) (string, error) {
	var res ReviseResult
	if err := r.call(ctx, ToolReviseDraft, req, &res); err != nil {
		return "", err
	}
	return res.Draft, nil
}

// call sends args as a tool call and decodes the JSON text result into out.
// An error result is returned as an error carrying its text.
func (r *Remote) call(ctx context.Context, name string, args, out any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return err
	}
	var arguments map[string]any
	if err := json.Unmarshal(data, &arguments); err != nil {
		return err
	}

	result, err := r.client.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: arguments},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if result == nil {
		return fmt.Errorf("%s: empty result", name)
	}
	text := resultText(result)
	if result.IsError {
		return fmt.Errorf("%s: %s", name, text)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%s: decode result: %w", name, err)
	}
	return nil
}
