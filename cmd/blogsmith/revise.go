package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var reviseCmd = &cobra.Command{
	Use:   "revise",
	Short: "Revise a draft according to feedback",
	Long:  "Makes a single revision of a Markdown draft. The draft, title and SEO analysis come from a saved post (--post) or a Markdown file (--draft).",
	Args:  cobra.NoArgs,
	RunE:  runRevise,
}

var (
	revisePostFile  string
	reviseDraftFile string
	reviseFeedback  string
	reviseTitle     string
	reviseOutFile   string
)

func init() {
	reviseCmd.Flags().StringVarP(&revisePostFile, "post", "p", "", "Path to a post JSON file")
	reviseCmd.Flags().StringVarP(&reviseDraftFile, "draft", "d", "", "Path to a Markdown draft")
	reviseCmd.Flags().StringVarP(&reviseFeedback, "feedback", "f", "", "What to change (required)")
	reviseCmd.Flags().StringVarP(&reviseTitle, "title", "t", "", "Post title (overrides the saved one)")
	reviseCmd.Flags().StringVarP(&reviseOutFile, "out", "o", "", "Write the revised draft to this file instead of stdout")

	if err := reviseCmd.MarkFlagRequired("feedback"); err != nil {
		panic(fmt.Sprintf("failed to mark feedback flag as required: %v", err))
	}
	reviseCmd.MarkFlagsOneRequired("post", "draft")
	reviseCmd.MarkFlagsMutuallyExclusive("post", "draft")
	rootCmd.AddCommand(reviseCmd)
}

func runRevise(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

	var draft, title, analysis string
	switch {
	case revisePostFile != "":
		post, err := readPost(revisePostFile)
		if err != nil {
			return err
		}
		draft, title, analysis = post.Body, post.Title, post.SEOAnalysis
	case reviseDraftFile != "":
		data, err := os.ReadFile(reviseDraftFile)
		if err != nil {
			return fmt.Errorf("failed to read draft file: %w", err)
		}
		draft = string(data)
	default:
		return errors.New("one of --post or --draft is required")
	}
	if reviseTitle != "" {
		title = reviseTitle
	}

	a, err := newApp(cmd.Context(), cfg, log, nil)
	if err != nil {
		return err
	}
	defer a.close()

	revised, err := a.pipeline.Revise(cmd.Context(), draft, reviseFeedback, title, analysis)
	if err != nil {
		return err
	}
	a.logUsage()

	if reviseOutFile == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), revised+"\n")
		return err
	}
	return writeFile(reviseOutFile, []byte(revised+"\n"))
}
