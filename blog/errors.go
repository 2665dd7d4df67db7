package blog

import "errors"

var (
	// ErrMissingSourceURL indicates Run was called without a source_url string.
	ErrMissingSourceURL = errors.New("blog: source_url is required")

	// ErrNotResumable indicates the state cannot re-enter writing, either
	// because research failed or because no run produced it.
	ErrNotResumable = errors.New("blog: state is not resumable")

	// ErrRewriteBudgetExhausted indicates rewrite_count already reached
	// the maximum number of rewrites.
	ErrRewriteBudgetExhausted = errors.New("blog: rewrite budget exhausted")

	// ErrManualRewriteDisabled indicates ResumeWithRewriteFeedback was
	// called on a pipeline configured with RewriteAuto.
	ErrManualRewriteDisabled = errors.New("blog: manual rewrite requires RewriteManual mode")

	// ErrNoGenerator indicates no text generator is configured.
	ErrNoGenerator = errors.New("blog: no text generator configured")

	// ErrNoImage indicates an image backend answered without an image.
	ErrNoImage = errors.New("blog: image backend returned no image")
)
