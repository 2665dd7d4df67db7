package model

import ai "github.com/spetersoncode/blogsmith"

// ChatPricing contains pricing per million tokens (USD) for chat models.
type ChatPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// Cost returns the USD cost of the given token usage.
func (p ChatPricing) Cost(u ai.Usage) float64 {
	return float64(u.InputTokens)/1_000_000*p.InputPerMillion +
		float64(u.OutputTokens)/1_000_000*p.OutputPerMillion
}

// ImagePricing contains image generation pricing (USD).
type ImagePricing struct {
	// PerImage is the price of one standard-quality square image.
	PerImage float64
}

// Cost returns the USD cost of n images.
func (p ImagePricing) Cost(n int) float64 {
	return float64(n) * p.PerImage
}
