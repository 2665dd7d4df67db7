package client

import "fmt"

// ErrFeatureNotSupported is returned when a feature is unavailable for the provider.
type ErrFeatureNotSupported struct {
	Provider string
	Feature  string
}

func (e *ErrFeatureNotSupported) Error() string {
	return fmt.Sprintf("%s provider does not support %s", e.Provider, e.Feature)
}

// ErrMissingAPIKey is returned when a model is used but no API key
// is configured for that model's provider.
type ErrMissingAPIKey struct {
	Provider string
	Model    string
}

func (e *ErrMissingAPIKey) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("no API key configured for %s (required by model %q)", e.Provider, e.Model)
	}
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// ErrNoModel is returned when no model is specified and no default is configured.
type ErrNoModel struct {
	Operation string
}

// operationHints maps operation names to their config field and option function.
var operationHints = map[string]struct {
	configField string
	optionFunc  string
}{
	"chat":  {"Defaults.Chat", "ai.WithModel()"},
	"image": {"Defaults.Image", "ai.WithImageModel()"},
}

func (e *ErrNoModel) Error() string {
	if hint, ok := operationHints[e.Operation]; ok {
		return fmt.Sprintf("no model specified for %s: set client.Config %s or use %s",
			e.Operation, hint.configField, hint.optionFunc)
	}
	return fmt.Sprintf("no model specified for %s and no default configured", e.Operation)
}
