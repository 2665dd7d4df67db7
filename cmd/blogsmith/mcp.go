package main

import (
	"github.com/spf13/cobra"

	"github.com/spetersoncode/blogsmith/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve generate_post, rewrite_post and revise_draft over MCP stdio",
	Long:  "Runs an MCP server on stdin/stdout. Rewrites are caller-driven, so the pipeline runs in manual rewrite mode unless --rewrite-mode is given.",
	Args:  cobra.NoArgs,
	RunE:  runMCP,
}

var mcpName string

func init() {
	mcpCmd.Flags().StringVar(&mcpName, "name", "blogsmith", "Server name reported to MCP clients")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("rewrite-mode") {
		cfg.RewriteMode = "manual"
	}
	log := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

	a, err := newApp(cmd.Context(), cfg, log, nil)
	if err != nil {
		return err
	}
	defer a.close()

	opts := []mcp.ServerOption{mcp.WithName(mcpName)}
	if a.posts != nil {
		opts = append(opts, mcp.WithStore(a.posts))
	}

	log.Info("serving MCP on stdio", "name", mcpName, "rewrite_mode", cfg.RewriteMode, "store_dir", cfg.StoreDir)
	defer a.logUsage()
	return mcp.ServeStdio(a.pipeline, opts...)
}
