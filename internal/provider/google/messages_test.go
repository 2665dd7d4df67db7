package google

import (
	"testing"

	ai "github.com/spetersoncode/blogsmith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestConvertMessages(t *testing.T) {
	t.Run("system messages become the instruction", func(t *testing.T) {
		contents, system := convertMessages([]ai.Message{
			ai.SystemMessage("rule one"),
			ai.SystemMessage("rule two"),
			ai.UserMessage("hello"),
			{Role: ai.RoleAssistant, Content: "hi"},
		})
		require.NotNil(t, system)
		require.Len(t, system.Parts, 1)
		assert.Equal(t, "rule one\n\nrule two", system.Parts[0].Text)

		require.Len(t, contents, 2)
		assert.Equal(t, string(genai.RoleUser), contents[0].Role)
		assert.Equal(t, string(genai.RoleModel), contents[1].Role)
	})

	t.Run("no system instruction when absent", func(t *testing.T) {
		contents, system := convertMessages([]ai.Message{ai.UserMessage("x"), ai.UserMessage("")})
		assert.Nil(t, system)
		assert.Len(t, contents, 1)
	})
}
