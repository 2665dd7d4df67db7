// Package blogsmith turns a source URL into a search-engine-optimized blog
// post by chaining text and image generation calls.
//
// The root package holds the provider-neutral vocabulary shared by every
// layer: chat messages and responses, request options, image requests and
// the categorized errors providers return. Most callers never use it
// directly and start from [github.com/spetersoncode/blogsmith/blog]:
//
//	c := client.New(client.Config{
//	    APIKeys:  client.APIKeys{OpenAI: os.Getenv("OPENAI_API_KEY")},
//	    Defaults: client.Defaults{Chat: model.GPT5, Image: model.DallE3},
//	})
//
//	p := blog.New(blog.Deps{
//	    Fetcher:   fetch.New(nil),
//	    Retriever: search.NewTavily(os.Getenv("TAVILY_API_KEY"), ""),
//	    Generator: blog.NewChatGenerator(c),
//	    Images:    blog.NewImageRenderer(c),
//	})
//
//	out, err := p.Run(ctx, map[string]any{blog.FieldSourceURL: "https://example.com/post"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out.Post().Markdown())
//
// # Providers
//
// Chat is available from Anthropic (Claude), OpenAI (GPT) and Google
// (Gemini). Images are available from OpenAI (DALL-E, gpt-image) and Google
// (Imagen). See [github.com/spetersoncode/blogsmith/model] for the catalogue.
//
// # Errors
//
// Provider failures are wrapped in [*Error] with an [ErrorCategory]. Use
// [IsTransient] to decide whether a request may be retried; the client
// package does this automatically.
package blogsmith
