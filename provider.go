package blogsmith

// Provider identifies an AI provider.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
)

// ParseProvider maps a configuration string to a Provider.
// It returns false for unknown names.
func ParseProvider(name string) (Provider, bool) {
	switch Provider(name) {
	case ProviderAnthropic, ProviderOpenAI, ProviderGoogle:
		return Provider(name), true
	case "gemini":
		return ProviderGoogle, true
	case "claude":
		return ProviderAnthropic, true
	}
	return "", false
}

// Model identifies a concrete model and the provider that serves it.
type Model interface {
	String() string
	Provider() Provider
}
