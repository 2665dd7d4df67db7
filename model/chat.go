package model

import ai "github.com/spetersoncode/blogsmith"

// ChatModel represents a chat/completion model from any provider.
type ChatModel struct {
	id       string
	provider ai.Provider
	pricing  ChatPricing
}

// String returns the API identifier for this model.
func (m ChatModel) String() string { return m.id }

// Provider returns which provider this model belongs to.
func (m ChatModel) Provider() ai.Provider { return m.provider }

// Pricing returns the pricing for this model.
func (m ChatModel) Pricing() ChatPricing { return m.pricing }

// Cost estimates the USD cost of the given usage.
func (m ChatModel) Cost(u ai.Usage) float64 { return m.pricing.Cost(u) }

// NewChatModel returns a model for an identifier the catalogue does not
// list. Its pricing is unknown and reports zero cost.
func NewChatModel(id string, provider ai.Provider) ChatModel {
	return ChatModel{id: id, provider: provider}
}

// Anthropic Claude models.
var (
	ClaudeOpus45   = ChatModel{id: "claude-opus-4-5", provider: ai.ProviderAnthropic, pricing: ChatPricing{InputPerMillion: 5.00, OutputPerMillion: 25.00}}
	ClaudeSonnet45 = ChatModel{id: "claude-sonnet-4-5", provider: ai.ProviderAnthropic, pricing: ChatPricing{InputPerMillion: 3.00, OutputPerMillion: 15.00}}
	ClaudeHaiku45  = ChatModel{id: "claude-haiku-4-5", provider: ai.ProviderAnthropic, pricing: ChatPricing{InputPerMillion: 1.00, OutputPerMillion: 5.00}}
	ClaudeSonnet4  = ChatModel{id: "claude-sonnet-4-20250514", provider: ai.ProviderAnthropic, pricing: ChatPricing{InputPerMillion: 3.00, OutputPerMillion: 15.00}}

	// DefaultClaudeModel is the default Anthropic model.
	DefaultClaudeModel = ClaudeSonnet45
)

// OpenAI GPT models.
var (
	GPT5     = ChatModel{id: "gpt-5", provider: ai.ProviderOpenAI, pricing: ChatPricing{InputPerMillion: 1.25, OutputPerMillion: 10.00}}
	GPT5Mini = ChatModel{id: "gpt-5-mini", provider: ai.ProviderOpenAI, pricing: ChatPricing{InputPerMillion: 0.25, OutputPerMillion: 1.00}}
	GPT5Nano = ChatModel{id: "gpt-5-nano", provider: ai.ProviderOpenAI, pricing: ChatPricing{InputPerMillion: 0.10, OutputPerMillion: 0.40}}
	GPT41    = ChatModel{id: "gpt-4.1", provider: ai.ProviderOpenAI, pricing: ChatPricing{InputPerMillion: 2.00, OutputPerMillion: 8.00}}

	// DefaultGPTModel is the default OpenAI model.
	DefaultGPTModel = GPT5
)

// Google Gemini models.
var (
	Gemini25Pro       = ChatModel{id: "gemini-2.5-pro", provider: ai.ProviderGoogle, pricing: ChatPricing{InputPerMillion: 1.25, OutputPerMillion: 10.00}}
	Gemini25Flash     = ChatModel{id: "gemini-2.5-flash", provider: ai.ProviderGoogle, pricing: ChatPricing{InputPerMillion: 0.15, OutputPerMillion: 0.60}}
	Gemini25FlashLite = ChatModel{id: "gemini-2.5-flash-lite", provider: ai.ProviderGoogle, pricing: ChatPricing{InputPerMillion: 0.075, OutputPerMillion: 0.30}}

	// DefaultGeminiModel is the default Google model.
	DefaultGeminiModel = Gemini25Flash
)

var chatModels = []ChatModel{
	ClaudeOpus45, ClaudeSonnet45, ClaudeHaiku45, ClaudeSonnet4,
	GPT5, GPT5Mini, GPT5Nano, GPT41,
	Gemini25Pro, Gemini25Flash, Gemini25FlashLite,
}

// DefaultChat returns the default chat model for a provider.
func DefaultChat(p ai.Provider) (ChatModel, bool) {
	switch p {
	case ai.ProviderAnthropic:
		return DefaultClaudeModel, true
	case ai.ProviderOpenAI:
		return DefaultGPTModel, true
	case ai.ProviderGoogle:
		return DefaultGeminiModel, true
	}
	return ChatModel{}, false
}

// LookupChat resolves a model identifier for a provider. An empty id yields
// the provider default; an unknown id yields an uncatalogued model so new
// releases can be used before they are listed here.
func LookupChat(p ai.Provider, id string) (ChatModel, bool) {
	if id == "" {
		return DefaultChat(p)
	}
	for _, m := range chatModels {
		if m.id == id && m.provider == p {
			return m, true
		}
	}
	if _, ok := DefaultChat(p); !ok {
		return ChatModel{}, false
	}
	return NewChatModel(id, p), true
}
