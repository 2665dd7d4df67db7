package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/blogsmith/blog"
	"github.com/spetersoncode/blogsmith/workflow"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite a saved post with editor feedback",
	Long:  "Loads a post saved with run --out (or kept under --store-dir by run ID) and sends it back through writing, scoring and art with the given feedback. Counts against the rewrite budget.",
	Args:  cobra.NoArgs,
	RunE:  runRewrite,
}

var (
	rewriteRunID        string
	rewritePostFile     string
	rewriteFeedback     string
	rewriteOutFile      string
	rewriteMarkdownFile string
)

func init() {
	rewriteCmd.Flags().StringVarP(&rewritePostFile, "post", "p", "", "Path to a post JSON file")
	rewriteCmd.Flags().StringVar(&rewriteRunID, "run", "", "Run ID of a post kept under --store-dir")
	rewriteCmd.Flags().StringVarP(&rewriteFeedback, "feedback", "f", "", "Editor feedback (the saved quality report is used when empty)")
	rewriteCmd.Flags().StringVarP(&rewriteOutFile, "out", "o", "", "Save the rewritten post as JSON")
	rewriteCmd.Flags().StringVarP(&rewriteMarkdownFile, "markdown", "m", "", "Write the Markdown post to this file instead of stdout")

	rewriteCmd.MarkFlagsOneRequired("post", "run")
	rewriteCmd.MarkFlagsMutuallyExclusive("post", "run")
	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

	// Caller-requested rewrites need manual mode.
	a, err := newApp(cmd.Context(), cfg, log, progressWriter(cmd), blog.WithRewriteMode(blog.RewriteManual))
	if err != nil {
		return err
	}
	defer a.close()

	post, err := loadRewriteSource(cmd.Context(), a)
	if err != nil {
		return err
	}

	feedback := rewriteFeedback
	if feedback == "" {
		feedback = post.QualityReport
	}
	out, err := a.pipeline.ResumeWithRewriteFeedback(cmd.Context(), workflow.NewState(post.Patch()), feedback)
	if err != nil {
		return fmt.Errorf("rewrite failed: %w", err)
	}
	a.logUsage()
	if err := a.keep(cmd.Context(), out); err != nil {
		return err
	}
	return writeOutcome(cmd, out, rewriteOutFile, rewriteMarkdownFile)
}

func loadRewriteSource(ctx context.Context, a *app) (blog.Post, error) {
	if rewriteRunID == "" {
		return readPost(rewritePostFile)
	}
	if a.posts == nil {
		return blog.Post{}, errors.New("--run needs --store-dir (or store_dir in the config)")
	}
	return a.posts.Load(ctx, rewriteRunID)
}
