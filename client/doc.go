// Package client provides a unified multi-provider client for chat and
// image generation.
//
// Models know their provider, so the client routes each request to the
// right backend and lazily creates provider clients on first use. Transient
// failures are retried with exponential backoff, and request lifecycle
// events can be observed through a channel.
//
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{
//	        Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
//	        OpenAI:    os.Getenv("OPENAI_API_KEY"),
//	    },
//	    Defaults: client.Defaults{
//	        Chat:  model.ClaudeSonnet45,
//	        Image: model.DallE3,
//	    },
//	}, client.WithDefaultTemperature(0.7))
//
//	resp, err := c.Chat(ctx, []ai.Message{ai.UserMessage("Suggest a title")})
//	img, err := c.GenerateImage(ctx, "a lighthouse at dawn")
//
// A model whose provider has no API key fails with [*ErrMissingAPIKey]
// before any network call. Image requests for Anthropic models fail with
// [*ErrFeatureNotSupported].
package client
