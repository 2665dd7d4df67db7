package openai

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	ai "github.com/spetersoncode/blogsmith"
)

// GenerateImage generates images from a text prompt using DALL-E or
// gpt-image.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts ...ai.ImageOption) (*ai.ImageResponse, error) {
	options := ai.ApplyImageOptions(opts...)

	model := DefaultImageModel
	if options.Model != nil {
		model = options.Model.String()
	}

	params := openai.ImageGenerateParams{
		Model:  openai.ImageModel(model),
		Prompt: prompt,
	}

	size := options.Size
	if size == "" {
		size = ai.ImageSize1024x1024
	}
	params.Size = openai.ImageGenerateParamsSize(size)

	// DALL-E 3 only supports n=1
	n := options.Count
	if n <= 0 {
		n = 1
	}
	params.N = openai.Int(int64(n))

	if options.Quality != "" {
		params.Quality = openai.ImageGenerateParamsQuality(options.Quality)
	}
	if options.Style != "" {
		params.Style = openai.ImageGenerateParamsStyle(options.Style)
	}

	// gpt-image models always answer with base64 and reject response_format.
	if strings.HasPrefix(model, "dall-e") {
		format := options.Format
		if format == "" {
			format = ai.ImageFormatURL
		}
		params.ResponseFormat = openai.ImageGenerateParamsResponseFormat(format)
	}

	resp, err := c.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	images := make([]ai.GeneratedImage, len(resp.Data))
	for i, img := range resp.Data {
		images[i] = ai.GeneratedImage{
			URL:           img.URL,
			Base64:        img.B64JSON,
			RevisedPrompt: img.RevisedPrompt,
		}
	}

	return &ai.ImageResponse{Images: images}, nil
}
