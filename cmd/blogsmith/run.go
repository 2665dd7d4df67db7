package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/blogsmith/blog"
)

var runCmd = &cobra.Command{
	Use:   "run <source-url>",
	Short: "Generate a blog post from a source article",
	Long:  "Fetches the source article, plans an SEO strategy, drafts and scores a post (rewriting weak drafts) and illustrates it. The Markdown post is printed to stdout.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

var (
	runOutFile      string
	runMarkdownFile string
)

func init() {
	runCmd.Flags().StringVarP(&runOutFile, "out", "o", "", "Save the post as JSON (input for rewrite and revise)")
	runCmd.Flags().StringVarP(&runMarkdownFile, "markdown", "m", "", "Write the Markdown post to this file instead of stdout")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

	a, err := newApp(cmd.Context(), cfg, log, progressWriter(cmd))
	if err != nil {
		return err
	}
	defer a.close()

	out, err := a.pipeline.Run(cmd.Context(), map[string]any{blog.FieldSourceURL: args[0]})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	a.logUsage()
	if err := a.keep(cmd.Context(), out); err != nil {
		return err
	}
	return writeOutcome(cmd, out, runOutFile, runMarkdownFile)
}

// writeOutcome saves the post JSON and writes the Markdown. A failed run
// saves its state and returns the failure marker as an error.
func writeOutcome(cmd *cobra.Command, out *blog.Outcome, jsonPath, markdownPath string) error {
	post := out.Post()
	if jsonPath != "" {
		if err := writeJSON(jsonPath, post); err != nil {
			return err
		}
	}
	if out.Failed() {
		return fmt.Errorf("source could not be used: %s", post.ScrapedText)
	}

	md := post.Markdown()
	if markdownPath == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), md)
		return err
	}
	return writeFile(markdownPath, []byte(md))
}

func progressWriter(cmd *cobra.Command) io.Writer {
	if flags.quiet {
		return nil
	}
	return cmd.ErrOrStderr()
}

func readPost(path string) (blog.Post, error) {
	var post blog.Post
	data, err := os.ReadFile(path)
	if err != nil {
		return post, fmt.Errorf("failed to read post file: %w", err)
	}
	if err := json.Unmarshal(data, &post); err != nil {
		return post, fmt.Errorf("failed to unmarshal post JSON: %w", err)
	}
	return post, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
