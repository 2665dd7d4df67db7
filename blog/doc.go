// Package blog turns a source URL into an SEO-optimized blog post.
//
// A run moves through five stages over a shared workflow.State:
//
//	research -> seo -> writing -> scoring -> art
//
// Research fetches the source page. If that fails the run ends at
// NodeTerminatedFailure and scraped_text carries FailureTag followed by a
// reason. Every other collaborator failure degrades: the stage writes a
// fallback value, reports an event.StageDegraded event and the run goes on.
//
// After scoring, a draft at or below the threshold is sent back to writing
// with the quality report as guidance, at most MaxRewrites times. Who asks
// for the rewrite depends on the RewriteMode: the router itself
// (RewriteAuto) or the caller through ResumeWithRewriteFeedback
// (RewriteManual).
//
// Example:
//
//	p := blog.New(blog.Deps{
//	    Fetcher:   fetch.New(nil),
//	    Retriever: search.NewTavily(os.Getenv("TAVILY_API_KEY"), ""),
//	    Generator: blog.NewChatGenerator(c),
//	    Images:    blog.NewImageRenderer(c),
//	}, blog.WithObserver(obs))
//
//	out, err := p.Run(ctx, map[string]any{blog.FieldSourceURL: url})
//	if err != nil {
//	    return err
//	}
//	if out.Failed() {
//	    fmt.Println(out.State.GetString(blog.FieldScrapedText))
//	}
//	post := out.Post()
package blog
