package anthropic

import "github.com/anthropics/anthropic-sdk-go"

const jsonResponseToolName = "json_response"

// buildJSONTool returns a tool accepting any JSON object and a tool choice
// that forces Claude to call it.
func buildJSONTool() (anthropic.ToolUnionParam, anthropic.ToolChoiceUnionParam) {
	tool := anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        jsonResponseToolName,
			Description: anthropic.String("Output the response as structured JSON"),
			InputSchema: anthropic.ToolInputSchemaParam{
				ExtraFields: map[string]any{"additionalProperties": true},
			},
		},
	}

	choice := anthropic.ToolChoiceUnionParam{
		OfTool: &anthropic.ToolChoiceToolParam{
			Name: jsonResponseToolName,
		},
	}

	return tool, choice
}
