package model

import ai "github.com/spetersoncode/blogsmith"

// ImageModel represents an image generation model from any provider.
type ImageModel struct {
	id       string
	provider ai.Provider
	pricing  ImagePricing
}

// String returns the API identifier for this model.
func (m ImageModel) String() string { return m.id }

// Provider returns which provider this model belongs to.
func (m ImageModel) Provider() ai.Provider { return m.provider }

// Pricing returns the pricing for this model.
func (m ImageModel) Pricing() ImagePricing { return m.pricing }

// OpenAI image models.
var (
	DallE3        = ImageModel{id: "dall-e-3", provider: ai.ProviderOpenAI, pricing: ImagePricing{PerImage: 0.04}}
	GPTImage1     = ImageModel{id: "gpt-image-1", provider: ai.ProviderOpenAI, pricing: ImagePricing{PerImage: 0.042}}
	GPTImage1Mini = ImageModel{id: "gpt-image-1-mini", provider: ai.ProviderOpenAI, pricing: ImagePricing{PerImage: 0.013}}

	// DefaultOpenAIImageModel is the default OpenAI image model.
	DefaultOpenAIImageModel = DallE3
)

// Google Imagen models.
var (
	Imagen4     = ImageModel{id: "imagen-4.0-generate-001", provider: ai.ProviderGoogle, pricing: ImagePricing{PerImage: 0.04}}
	Imagen4Fast = ImageModel{id: "imagen-4.0-fast-generate-001", provider: ai.ProviderGoogle, pricing: ImagePricing{PerImage: 0.02}}

	// DefaultImagenModel is the default Google image model.
	DefaultImagenModel = Imagen4
)

var imageModels = []ImageModel{DallE3, GPTImage1, GPTImage1Mini, Imagen4, Imagen4Fast}

// DefaultImage returns the default image model for a provider.
// Anthropic has no image models.
func DefaultImage(p ai.Provider) (ImageModel, bool) {
	switch p {
	case ai.ProviderOpenAI:
		return DefaultOpenAIImageModel, true
	case ai.ProviderGoogle:
		return DefaultImagenModel, true
	}
	return ImageModel{}, false
}

// LookupImage resolves an image model identifier for a provider, following
// the same rules as LookupChat.
func LookupImage(p ai.Provider, id string) (ImageModel, bool) {
	if id == "" {
		return DefaultImage(p)
	}
	for _, m := range imageModels {
		if m.id == id && m.provider == p {
			return m, true
		}
	}
	if _, ok := DefaultImage(p); !ok {
		return ImageModel{}, false
	}
	return ImageModel{id: id, provider: p}, true
}
