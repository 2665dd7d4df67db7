package openai

import (
	"testing"

	ai "github.com/spetersoncode/blogsmith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMessages(t *testing.T) {
	t.Run("maps roles", func(t *testing.T) {
		got := convertMessages([]ai.Message{
			ai.SystemMessage("be brief"),
			ai.UserMessage("hello"),
			{Role: ai.RoleAssistant, Content: "hi"},
		})
		require.Len(t, got, 3)
		assert.NotNil(t, got[0].OfSystem)
		assert.NotNil(t, got[1].OfUser)
		assert.NotNil(t, got[2].OfAssistant)
	})

	t.Run("drops empty messages", func(t *testing.T) {
		got := convertMessages([]ai.Message{ai.SystemMessage(""), ai.UserMessage("x")})
		require.Len(t, got, 1)
		assert.NotNil(t, got[0].OfUser)
	})
}
