// Command blogsmith turns an article into an SEO-optimized blog post.
//
// Usage:
//
//	blogsmith run https://example.com/article --out post.json
//	blogsmith rewrite --post post.json --feedback "Add a code sample."
//	blogsmith rewrite --store-dir runs --run run-... --feedback "More depth."
//	blogsmith revise --post post.json --feedback "Shorter intro."
//	blogsmith mcp
//
// Credentials are read from the environment or a .env file:
// OPENAI_API_KEY, GOOGLE_API_KEY (or GEMINI_API_KEY), ANTHROPIC_API_KEY,
// TAVILY_API_KEY, GOOGLE_SEARCH_API_KEY and GOOGLE_SEARCH_CX.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// flagValues holds the root persistent flags. They override the config
// file and the environment only when set.
type flagValues struct {
	config        string
	textProvider  string
	textModel     string
	imageProvider string
	imageModel    string
	search        string
	rewriteMode   string
	threshold     int
	maxRewrites   int
	scoreFormat   string
	browser       bool
	insecureTLS   bool
	storeDir      string
	logLevel      string
	logFormat     string
	quiet         bool
}

var flags flagValues

var rootCmd = &cobra.Command{
	Use:           "blogsmith",
	Short:         "Turn an article into an SEO-optimized blog post",
	Long:          "blogsmith researches a source article, plans an SEO strategy from current trends, drafts a post, scores it against a ten-point rubric, rewrites weak drafts and illustrates the result.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "Path to a YAML config file")
	pf.StringVar(&flags.textProvider, "text-provider", "", "Text provider: openai, google or anthropic")
	pf.StringVar(&flags.textModel, "text-model", "", "Text model (provider default when empty)")
	pf.StringVar(&flags.imageProvider, "image-provider", "", "Image provider: openai, google or none")
	pf.StringVar(&flags.imageModel, "image-model", "", "Image model (provider default when empty)")
	pf.StringVar(&flags.search, "search", "", "Trend search backend: tavily, google or none")
	pf.StringVar(&flags.rewriteMode, "rewrite-mode", "", "Rewrite trigger: auto or manual")
	pf.IntVar(&flags.threshold, "threshold", 0, "Scores at or below this trigger a rewrite")
	pf.IntVar(&flags.maxRewrites, "max-rewrites", 0, "Maximum rewrites per run")
	pf.StringVar(&flags.scoreFormat, "score-format", "", "Scoring response format: json or text")
	pf.BoolVar(&flags.browser, "browser", false, "Render script-heavy pages with a headless browser")
	pf.BoolVar(&flags.insecureTLS, "insecure-tls", false, "Retry without certificate verification when TLS fails")
	pf.StringVar(&flags.storeDir, "store-dir", "", "Keep finished posts by run ID in this directory")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "Do not print stage progress")
}

// loadConfig resolves the configuration for cmd.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	cfg, err := LoadConfig(flags.config, os.Getenv)
	if err != nil {
		return nil, err
	}
	cfg.applyFlags(cmd, &flags)
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
