// Package anthropic provides an Anthropic Claude client implementing
// [blogsmith.ChatProvider].
//
// JSON responses are requested through a forced tool call, since the
// Messages API has no JSON mode. Anthropic offers no image generation.
//
//	c := anthropic.New(os.Getenv("ANTHROPIC_API_KEY"), anthropic.WithModel("claude-sonnet-4-5"))
//	resp, err := c.Chat(ctx, []ai.Message{ai.UserMessage("Summarize this page.")})
package anthropic
